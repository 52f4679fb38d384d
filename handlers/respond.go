// handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/yataco/dashboard/backend/database"
	"github.com/yataco/dashboard/backend/ingest"
	"github.com/yataco/dashboard/backend/services"
	"github.com/yataco/dashboard/backend/utils"
)

var validate = validator.New()

func respondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	render.Status(r, code)
	render.JSON(w, r, payload)
}

func respondWithError(w http.ResponseWriter, r *http.Request, code int, message string) {
	utils.Log.Warnf("Handler: API error %d on %s %s: %s", code, r.Method, r.URL.Path, message)
	respondWithJSON(w, r, code, map[string]string{"error": message})
}

// respondWithServiceError maps service and ingest errors to HTTP status codes.
// Errors that are not recognized come from reading the upload, hence 400.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		respondWithError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		respondWithError(w, r, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, database.ErrNotConfigured):
		respondWithError(w, r, http.StatusServiceUnavailable, "upload log is disabled")
	default:
		respondWithError(w, r, http.StatusBadRequest, "could not process the file: "+err.Error())
	}
}
