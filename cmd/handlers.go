package main

import (
	"context"
	"net/http"
	"time"
)

func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	status := envelope{"status": "available", "env": app.config.Env}

	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Warn("Database ping failed", "error", err.Error())
			status["status"] = "unavailable"
			if err := app.writeJSON(w, http.StatusServiceUnavailable, status, nil); err != nil {
				app.internalErrorResponse(w, r, err)
			}
			return
		}
	}

	if err := app.writeJSON(w, http.StatusOK, status, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
