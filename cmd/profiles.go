package main

import (
	"net/http"

	"github.com/siahsang/conduit/models"
)

// profileBody is the public shape of a profile. It carries no email.
type profileBody struct {
	Username       string  `json:"username"`
	Bio            *string `json:"bio"`
	Image          *string `json:"image"`
	Following      bool    `json:"following"`
	FollowersCount int64   `json:"followersCount"`
}

func toProfileBody(profile *models.Profile) *profileBody {
	if profile == nil {
		return nil
	}
	return &profileBody{
		Username:       profile.Username,
		Bio:            profile.Bio,
		Image:          profile.Image,
		Following:      profile.Following,
		FollowersCount: profile.FollowersCount,
	}
}

func profileResponse(profile *models.Profile) envelope {
	return envelope{"profile": toProfileBody(profile)}
}

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := app.core.GetProfile(r.Context(), pathParam(r, "username"), app.auth.AuthenticatedUserID(r))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, profileResponse(profile), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) followUserHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := app.core.FollowUser(r.Context(), pathParam(r, "username"), app.auth.AuthenticatedUserID(r))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, profileResponse(profile), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) unfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := app.core.UnfollowUser(r.Context(), pathParam(r, "username"), app.auth.AuthenticatedUserID(r))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, profileResponse(profile), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
