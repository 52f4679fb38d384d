// handlers/admin_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/yataco/dashboard/backend/database"
	"github.com/yataco/dashboard/backend/services"
	"github.com/yataco/dashboard/backend/utils"
)

// HealthHandler reports liveness and, when the upload log is enabled, database reachability.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if database.DB != nil {
		if err := database.DB.PingContext(r.Context()); err != nil {
			respondWithJSON(w, r, http.StatusInternalServerError, map[string]string{
				"status":  "error",
				"message": "database connection error",
			})
			return
		}
	}
	respondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": services.Sessions.Len(),
	})
}

// RecentUploadsHandler handles GET /api/admin/uploads?limit=N.
func RecentUploadsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			respondWithError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	uploads, err := database.GetRecentUploads(r.Context(), limit)
	if errors.Is(err, database.ErrNotConfigured) {
		respondWithError(w, r, http.StatusServiceUnavailable, "upload log is disabled")
		return
	}
	if err != nil {
		// e.g. upload_log was dropped or the database went away
		utils.Log.Errorf("Handler: failed to list recent uploads: %v", err)
		respondWithError(w, r, http.StatusInternalServerError, "failed to read upload log")
		return
	}
	respondWithJSON(w, r, http.StatusOK, uploads)
}
