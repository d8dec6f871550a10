package server

import (
	"io"
	"log"
	"net/http"

	"github.com/santoshgudeti/skillmatrix-offers/internal/db"
	"github.com/santoshgudeti/skillmatrix-offers/internal/letterhead"
)

// LetterheadResponse describes the active letterhead.
type LetterheadResponse struct {
	Letterhead *db.Letterhead `json:"letterhead"`
	PreviewURL string         `json:"preview_url,omitempty"`
}

// handleUploadLetterhead registers a new active letterhead for the
// caller's company.
func (s *Server) handleUploadLetterhead(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}

	// Cap the read slightly above the validation limit so oversized
	// uploads fail the size check instead of truncating silently.
	if err := r.ParseMultipartForm(letterhead.MaxFileSize + 4096); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("letterhead")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Missing 'letterhead' file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, letterhead.MaxFileSize+1))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	lh, err := s.letterheads.Activate(r.Context(), companyID, header.Filename, data)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// Best-effort housekeeping: drop superseded letterheads past the
	// retention window. Never fails the upload.
	if removed, err := s.letterheads.Cleanup(r.Context(), companyID, s.lhRetention); err != nil {
		log.Printf("letterheads: cleanup for %s failed: %v", companyID, err)
	} else if removed > 0 {
		log.Printf("letterheads: removed %d superseded letterheads for %s", removed, companyID)
	}

	jsonResponse(w, http.StatusCreated, LetterheadResponse{Letterhead: lh})
}

// handleGetLetterhead returns the active letterhead with a preview link.
func (s *Server) handleGetLetterhead(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}

	lh, _, err := s.letterheads.GetActive(r.Context(), companyID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load letterhead: "+err.Error())
		return
	}
	if lh == nil {
		errorResponse(w, http.StatusNotFound, "No active letterhead")
		return
	}

	url, err := s.letterheads.PreviewURL(r.Context(), companyID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to sign preview link: "+err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, LetterheadResponse{Letterhead: lh, PreviewURL: url})
}

// handleDeleteLetterhead deactivates the active letterhead. Offers
// generated afterwards ship content-only.
func (s *Server) handleDeleteLetterhead(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}

	deactivated, err := s.letterheads.Deactivate(r.Context(), companyID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to deactivate letterhead: "+err.Error())
		return
	}
	if !deactivated {
		errorResponse(w, http.StatusNotFound, "No active letterhead")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
