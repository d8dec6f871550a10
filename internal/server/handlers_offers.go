package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/santoshgudeti/skillmatrix-offers/internal/db"
	"github.com/santoshgudeti/skillmatrix-offers/internal/notify"
	"github.com/santoshgudeti/skillmatrix-offers/internal/payroll"
	"github.com/santoshgudeti/skillmatrix-offers/internal/pipeline"
	"github.com/santoshgudeti/skillmatrix-offers/internal/server/middleware"
	"github.com/santoshgudeti/skillmatrix-offers/internal/types"
)

// CreateOfferResponse is the body returned after generation.
type CreateOfferResponse struct {
	Offer      *db.Offer         `json:"offer"`
	Breakdown  payroll.Breakdown `json:"breakdown"`
	Composited bool              `json:"composited"`
	PageCount  int               `json:"page_count"`
}

// ListOffersResponse is a page of offers.
type ListOffersResponse struct {
	Offers []db.Offer `json:"offers"`
	Total  int        `json:"total"`
	Page   int        `json:"page"`
	Limit  int        `json:"limit"`
}

// UpdateStatusRequest is the body for PATCH /offers/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DownloadResponse carries a signed artifact link.
type DownloadResponse struct {
	DownloadURL      string `json:"download_url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// SendOfferResponse is the body for POST /offers/{id}/send.
type SendOfferResponse struct {
	Offer    *db.Offer `json:"offer"`
	Notified bool      `json:"notified"`
}

func (s *Server) companyFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	companyID, err := middleware.GetCompanyID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return companyID, true
}

func (s *Server) offerIDFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid offer ID format")
		return uuid.Nil, false
	}
	return id, true
}

// handleCreateOffer runs the generation pipeline for one candidate.
func (s *Server) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}

	var facts types.OfferFacts
	if err := json.NewDecoder(r.Body).Decode(&facts); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.generator.Generate(r.Context(), &facts, pipeline.Options{CompanyID: companyID})
	if err != nil {
		log.Printf("offers: generation for %s failed: %v", companyID, err)
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jsonResponse(w, http.StatusCreated, CreateOfferResponse{
		Offer:      result.Offer,
		Breakdown:  result.Breakdown,
		Composited: result.Composited,
		PageCount:  result.PageCount,
	})
}

// handleListOffers returns a page of the company's offers.
func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !db.ValidStatus(status) {
		errorResponse(w, http.StatusBadRequest, "Unknown status: "+status)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	offers, total, err := s.offers.ListOffers(r.Context(), companyID, status, page, limit)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if offers == nil {
		offers = []db.Offer{}
	}

	jsonResponse(w, http.StatusOK, ListOffersResponse{
		Offers: offers,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

// handleGetOffer returns one offer record.
func (s *Server) handleGetOffer(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}
	id, ok := s.offerIDFrom(w, r)
	if !ok {
		return
	}

	offer, err := s.offers.GetOffer(r.Context(), id, companyID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if offer == nil {
		err := &ErrOfferNotFound{OfferID: id}
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, offer)
}

// handleUpdateOfferStatus moves an offer through its lifecycle.
func (s *Server) handleUpdateOfferStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}
	id, ok := s.offerIDFrom(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !db.ValidStatus(req.Status) {
		errorResponse(w, http.StatusBadRequest, "Unknown status: "+req.Status)
		return
	}

	offer, err := s.offers.GetOffer(r.Context(), id, companyID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if offer == nil {
		err := &ErrOfferNotFound{OfferID: id}
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if !db.CanTransition(offer.Status, req.Status) {
		err := &ErrInvalidTransition{From: offer.Status, To: req.Status}
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	updated, err := s.offers.UpdateOfferStatus(r.Context(), id, companyID, req.Status)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteOffer soft-deletes an offer.
func (s *Server) handleDeleteOffer(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}
	id, ok := s.offerIDFrom(w, r)
	if !ok {
		return
	}

	deleted, err := s.offers.SoftDeleteOffer(r.Context(), id, companyID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		err := &ErrOfferNotFound{OfferID: id}
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDownloadOffer returns a signed link to the stored letter.
func (s *Server) handleDownloadOffer(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}
	id, ok := s.offerIDFrom(w, r)
	if !ok {
		return
	}

	offer, err := s.offers.GetOffer(r.Context(), id, companyID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if offer == nil {
		err := &ErrOfferNotFound{OfferID: id}
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	url, err := s.store.Sign(r.Context(), offer.StorageKey, s.signTTL)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to sign download link: "+err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, DownloadResponse{
		DownloadURL:      url,
		ExpiresInSeconds: int(s.signTTL.Seconds()),
	})
}

// handleSendOffer notifies the candidate and the HR contact, then marks
// the offer sent. Delivery confirmation drives the transition: a mail
// failure leaves the offer in its current status and reports 502, with
// the stored artifact untouched and the send retryable.
func (s *Server) handleSendOffer(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.companyFrom(w, r)
	if !ok {
		return
	}
	id, ok := s.offerIDFrom(w, r)
	if !ok {
		return
	}

	offer, err := s.offers.GetOffer(r.Context(), id, companyID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if offer == nil {
		err := &ErrOfferNotFound{OfferID: id}
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if !db.CanTransition(offer.Status, db.StatusSent) {
		err := &ErrInvalidTransition{From: offer.Status, To: db.StatusSent}
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	url, err := s.store.Sign(r.Context(), offer.StorageKey, s.signTTL)
	if err != nil {
		log.Printf("offers: failed to sign link for %s: %v", offer.ID, err)
	}

	var facts types.OfferFacts
	if err := json.Unmarshal(offer.Facts, &facts); err != nil {
		log.Printf("offers: failed to decode facts for %s: %v", offer.ID, err)
	}

	if err := s.notifier.NotifyOfferSent(r.Context(), notify.Delivery{
		CandidateName:  offer.CandidateName,
		CandidateEmail: offer.CandidateEmail,
		HREmail:        facts.HREmail,
		CompanyName:    facts.CompanyName,
		Position:       offer.Position,
		DownloadURL:    url,
		ValidUntil:     facts.OfferValidUntil(),
	}); err != nil {
		log.Printf("offers: notification for %s failed: %v", offer.ID, err)
		jsonResponse(w, http.StatusBadGateway, SendOfferResponse{Offer: offer, Notified: false})
		return
	}

	updated, err := s.offers.UpdateOfferStatus(r.Context(), id, companyID, db.StatusSent)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, SendOfferResponse{Offer: updated, Notified: true})
}
