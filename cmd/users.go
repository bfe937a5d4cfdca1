package main

import (
	"net/http"
	"strings"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/validator"
)

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	type registerUserPayload struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	type RegisterUserRequest struct {
		registerUserPayload `json:"user"`
	}

	var registerUserRequest RegisterUserRequest
	if !app.readJSONOrReject(w, r, &registerUserRequest) {
		return
	}

	user := &auth.User{
		Email:    strings.TrimSpace(registerUserRequest.Email),
		Username: strings.TrimSpace(registerUserRequest.Username),
	}

	v := validator.New()
	checkEmail(v, user.Email)
	checkUsername(v, user.Username)
	checkPassword(v, registerUserRequest.Password)

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := user.SetPassword(registerUserRequest.Password); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.core.CreateNewUser(r.Context(), user); err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	app.writeUserWithToken(w, r, http.StatusCreated, user)
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	type loginUserPayload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	type LoginUserRequest struct {
		loginUserPayload `json:"user"`
	}

	var loginUserRequest LoginUserRequest
	if !app.readJSONOrReject(w, r, &loginUserRequest) {
		return
	}

	v := validator.New()
	checkEmail(v, loginUserRequest.Email)
	v.CheckNotBlank(loginUserRequest.Password, "password", "must be provided")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := app.core.Login(r.Context(), strings.TrimSpace(loginUserRequest.Email), loginUserRequest.Password)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	app.writeUserWithToken(w, r, http.StatusOK, user)
}

func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, userResponse(user, user.Token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	type updateUserPayload struct {
		Email    *string `json:"email"`
		Username *string `json:"username"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	}

	type UpdateUserRequest struct {
		updateUserPayload `json:"user"`
	}

	var updateUserRequest UpdateUserRequest
	if !app.readJSONOrReject(w, r, &updateUserRequest) {
		return
	}

	v := validator.New()
	if updateUserRequest.Email != nil {
		*updateUserRequest.Email = strings.TrimSpace(*updateUserRequest.Email)
		checkEmail(v, *updateUserRequest.Email)
	}
	if updateUserRequest.Username != nil {
		*updateUserRequest.Username = strings.TrimSpace(*updateUserRequest.Username)
		checkUsername(v, *updateUserRequest.Username)
	}
	if updateUserRequest.Password != nil {
		checkPassword(v, *updateUserRequest.Password)
	}

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	currentUser, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	updated, err := app.core.UpdateUser(r.Context(), currentUser.ID, core.UserUpdate{
		Email:    updateUserRequest.Email,
		Username: updateUserRequest.Username,
		Password: updateUserRequest.Password,
		Bio:      updateUserRequest.Bio,
		Image:    updateUserRequest.Image,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	app.writeUserWithToken(w, r, http.StatusOK, updated)
}

// writeUserWithToken answers with user and a freshly issued token, since the
// claims carry the username and email.
func (app *application) writeUserWithToken(w http.ResponseWriter, r *http.Request, status int, user *auth.User) {
	token, err := app.auth.GenerateToken(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, status, userResponse(user, token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func userResponse(user *auth.User, token string) envelope {
	user.Token = token
	return envelope{"user": user}
}
