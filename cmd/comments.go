package main

import (
	"net/http"
	"time"

	"github.com/siahsang/conduit/internal/utils/functional"
	"github.com/siahsang/conduit/internal/validator"
	"github.com/siahsang/conduit/models"
)

type commentBody struct {
	ID        int64        `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Body      string       `json:"body"`
	Author    *profileBody `json:"author"`
}

func toCommentBody(comment *models.Comment) *commentBody {
	return &commentBody{
		ID:        comment.ID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Body:      comment.Body,
		Author:    toProfileBody(comment.Author),
	}
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	type CreateCommentPayload struct {
		Body string `json:"body"`
	}

	type CreateCommentRequest struct {
		CreateCommentPayload `json:"comment"`
	}

	var createCommentRequest CreateCommentRequest
	if !app.readJSONOrReject(w, r, &createCommentRequest) {
		return
	}

	v := validator.New()
	v.CheckNotBlank(createCommentRequest.Body, "body", "must be provided")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	comment, err := app.core.CreateComment(r.Context(), app.auth.AuthenticatedUserID(r), pathParam(r, "slug"), createCommentRequest.Body)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"comment": toCommentBody(comment)}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	comments, err := app.core.GetComments(r.Context(), app.auth.AuthenticatedUserID(r), pathParam(r, "slug"))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comments": functional.Map(comments, toCommentBody)}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	commentID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.core.DeleteComment(r.Context(), app.auth.AuthenticatedUserID(r), pathParam(r, "slug"), commentID); err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
