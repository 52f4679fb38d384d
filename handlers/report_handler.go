// handlers/report_handler.go
package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/ingest"
	"github.com/yataco/dashboard/backend/models"
	"github.com/yataco/dashboard/backend/services"
	"github.com/yataco/dashboard/backend/utils"
)

// UploadReportHandler handles POST /api/reports with a multipart "file" field.
func UploadReportHandler(w http.ResponseWriter, r *http.Request) {
	maxBytes := config.AppConfig.Server.MaxUploadMB << 20
	// Caps the whole request body, multipart overhead included.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, r, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		respondWithError(w, r, http.StatusBadRequest, "Invalid multipart body: "+err.Error())
		return
	}

	// The frontend posts the report under the "file" field; the file name picks the reader.
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Missing 'file' in form data")
		return
	}
	defer file.Close()

	utils.Log.Infof("Handler: received upload %s (%d bytes)", header.Filename, header.Size)
	view, err := services.LoadReport(r.Context(), header.Filename, file)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusCreated, view)
}

// FetchReportHandler handles POST /api/reports/fetch with {"url": "..."}.
func FetchReportHandler(w http.ResponseWriter, r *http.Request) {
	var req models.FetchReportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	name, data, err := ingest.FetchRemote(r.Context(), req.URL)
	if err != nil { // remote server down, non-200 or too large
		respondWithError(w, r, http.StatusBadGateway, err.Error())
		return
	}

	view, err := services.LoadReport(r.Context(), name, bytes.NewReader(data))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusCreated, view)
}

// GetReportHandler handles GET /api/reports/{id}.
func GetReportHandler(w http.ResponseWriter, r *http.Request) {
	view, err := services.GetReport(chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, view)
}

// FilterReportHandler handles POST /api/reports/{id}/filter.
func FilterReportHandler(w http.ResponseWriter, r *http.Request) {
	// Fields left out of the body stay as they are, e.g. {"periods": [...]} keeps the sites.
	var req models.FilterRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view, err := services.ApplyFilter(chi.URLParam(r, "id"), req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, view)
}

// DeleteReportHandler handles DELETE /api/reports/{id}.
func DeleteReportHandler(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteReport(chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent) // nothing to render
}
