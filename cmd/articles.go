package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/utils/functional"
	"github.com/siahsang/conduit/internal/validator"
	"github.com/siahsang/conduit/models"
)

type articleBody struct {
	Slug           string       `json:"slug"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Body           string       `json:"body"`
	TagList        []string     `json:"tagList"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	Favorited      bool         `json:"favorited"`
	FavoritesCount int64        `json:"favoritesCount"`
	Author         *profileBody `json:"author"`
}

func toArticleBody(article *models.Article) *articleBody {
	tagList := article.TagList
	if tagList == nil {
		tagList = []string{}
	}
	return &articleBody{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        tagList,
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      article.Favorited,
		FavoritesCount: article.FavoritesCount,
		Author:         toProfileBody(article.Author),
	}
}

func articleResponse(article *models.Article) envelope {
	return envelope{"article": toArticleBody(article)}
}

func multiArticleResponse(list *core.ArticleList) envelope {
	return envelope{
		"articles":      functional.Map(list.Articles, toArticleBody),
		"articlesCount": list.ArticlesCount,
	}
}

// readPage parses limit and offset; with sortable it also accepts sortOrder.
func (app *application) readPage(r *http.Request, v *validator.Validator, sortable bool) filter.Filter {
	query := r.URL.Query()
	limit := app.readInt(query, "limit", filter.DefaultLimit, v)
	offset := app.readInt(query, "offset", 0, v)

	sortOrder := ""
	if sortable {
		sortOrder = app.readString(query, "sortOrder", filter.SortDesc)
	}

	page := filter.NewFilter(limit, offset, sortOrder)
	filter.ValidateFilters(page, v)
	return page
}

func (app *application) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	page := app.readPage(r, v, true)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	query := r.URL.Query()
	list, err := app.core.FindAll(r.Context(), app.auth.AuthenticatedUserID(r), core.ArticleQuery{
		Author:    app.readString(query, "author", ""),
		Tag:       app.readString(query, "tag", ""),
		Favorited: app.readString(query, "favorited", ""),
		Search:    app.readString(query, "search", ""),
		Filter:    page,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, multiArticleResponse(list), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) feedHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	page := app.readPage(r, v, false)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	list, err := app.core.GetFeed(r.Context(), app.auth.AuthenticatedUserID(r), page)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, multiArticleResponse(list), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// getArticleHandler also serves GET /api/articles/feed, which httprouter
// cannot register next to /api/articles/:slug.
func (app *application) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := pathParam(r, "slug")
	if slug == "feed" {
		app.requireAuthenticatedUser(app.feedHandler)(w, r)
		return
	}

	article, err := app.core.GetArticle(r.Context(), app.auth.AuthenticatedUserID(r), slug)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func checkTags(v *validator.Validator, tags []string) {
	for _, tag := range tags {
		v.CheckNotBlank(tag, "tagList", "must not contain blank tags")
	}
}

func (app *application) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	}

	type CreateArticleRequest struct {
		input `json:"article"`
	}

	var requestPayload CreateArticleRequest
	if !app.readJSONOrReject(w, r, &requestPayload) {
		return
	}

	v := validator.New()
	v.CheckNotBlank(requestPayload.Title, "title", "must be provided")
	v.CheckNotBlank(requestPayload.Description, "description", "must be provided")
	v.CheckNotBlank(requestPayload.Body, "body", "must be provided")
	checkTags(v, requestPayload.TagList)

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	article, err := app.core.CreateArticle(r.Context(), app.auth.AuthenticatedUserID(r), core.ArticleInput{
		Title:       strings.TrimSpace(requestPayload.Title),
		Description: requestPayload.Description,
		Body:        requestPayload.Body,
		TagList:     requestPayload.TagList,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		TagList     *[]string `json:"tagList"`
	}

	type UpdateArticleRequest struct {
		input `json:"article"`
	}

	var requestPayload UpdateArticleRequest
	if !app.readJSONOrReject(w, r, &requestPayload) {
		return
	}

	v := validator.New()
	if requestPayload.Title != nil {
		*requestPayload.Title = strings.TrimSpace(*requestPayload.Title)
		v.CheckNotBlank(*requestPayload.Title, "title", "must not be blank")
	}
	if requestPayload.Description != nil {
		v.CheckNotBlank(*requestPayload.Description, "description", "must not be blank")
	}
	if requestPayload.Body != nil {
		v.CheckNotBlank(*requestPayload.Body, "body", "must not be blank")
	}
	if requestPayload.TagList != nil {
		checkTags(v, *requestPayload.TagList)
	}

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	article, err := app.core.UpdateArticle(r.Context(), app.auth.AuthenticatedUserID(r), pathParam(r, "slug"), core.ArticleUpdate{
		Title:       requestPayload.Title,
		Description: requestPayload.Description,
		Body:        requestPayload.Body,
		TagList:     requestPayload.TagList,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.core.DeleteArticle(r.Context(), app.auth.AuthenticatedUserID(r), pathParam(r, "slug")); err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) favoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, err := app.core.Favorite(r.Context(), app.auth.AuthenticatedUserID(r), pathParam(r, "slug"))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) unfavoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, err := app.core.Unfavorite(r.Context(), app.auth.AuthenticatedUserID(r), pathParam(r, "slug"))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
