package server

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/santoshgudeti/skillmatrix-offers/internal/config"
	"github.com/santoshgudeti/skillmatrix-offers/internal/db"
	"github.com/santoshgudeti/skillmatrix-offers/internal/notify"
	"github.com/santoshgudeti/skillmatrix-offers/internal/pipeline"
	"github.com/santoshgudeti/skillmatrix-offers/internal/storage"
	"github.com/santoshgudeti/skillmatrix-offers/internal/types"
)

// fakeOfferStore is an in-memory OfferStore for handler tests.
type fakeOfferStore struct {
	offers map[uuid.UUID]*db.Offer
}

func newFakeOfferStore() *fakeOfferStore {
	return &fakeOfferStore{offers: make(map[uuid.UUID]*db.Offer)}
}

func (f *fakeOfferStore) add(o *db.Offer) *db.Offer {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	f.offers[o.ID] = o
	return o
}

func (f *fakeOfferStore) GetOffer(_ context.Context, id uuid.UUID, companyID string) (*db.Offer, error) {
	o, ok := f.offers[id]
	if !ok || o.CompanyID != companyID || o.Status == db.StatusDeleted {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOfferStore) ListOffers(_ context.Context, companyID, status string, page, limit int) ([]db.Offer, int, error) {
	var all []db.Offer
	for _, o := range f.offers {
		if o.CompanyID != companyID || o.Status == db.StatusDeleted {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		all = append(all, *o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (f *fakeOfferStore) UpdateOfferStatus(_ context.Context, id uuid.UUID, companyID, status string) (*db.Offer, error) {
	o, ok := f.offers[id]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	if !db.CanTransition(o.Status, status) {
		return nil, fmt.Errorf("invalid status transition %s -> %s", o.Status, status)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	if status == db.StatusSent {
		now := time.Now()
		o.SentAt = &now
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOfferStore) SoftDeleteOffer(_ context.Context, id uuid.UUID, companyID string) (bool, error) {
	o, ok := f.offers[id]
	if !ok || o.CompanyID != companyID || o.Status == db.StatusDeleted {
		return false, nil
	}
	o.Status = db.StatusDeleted
	return true, nil
}

// fakeGenerator records the last request instead of producing a PDF.
type fakeGenerator struct {
	store  *fakeOfferStore
	err    error
	called bool
}

func (f *fakeGenerator) Generate(_ context.Context, facts *types.OfferFacts, opts pipeline.Options) (*pipeline.Result, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	if err := facts.Validate(); err != nil {
		return nil, &pipeline.GenerationError{Stage: pipeline.StageValidating, Cause: err}
	}
	offer := f.store.add(&db.Offer{
		CompanyID:      opts.CompanyID,
		CandidateID:    facts.CandidateID,
		StorageKey:     "offers/" + opts.CompanyID + "/" + facts.CandidateID + "/offer.pdf",
		Filename:       "offer.pdf",
		FileSize:       4096,
		CandidateName:  facts.CandidateName,
		CandidateEmail: facts.CandidateEmail,
		Position:       facts.Position,
		GrossAnnual:    facts.GrossAnnual,
		Status:         db.StatusGenerated,
		Facts:          []byte(`{"company_name":"Acme Corp"}`),
	})
	return &pipeline.Result{Offer: offer, Composited: false, PageCount: 2, FileSize: 4096}, nil
}

// fakeNotifier counts deliveries.
type fakeNotifier struct {
	sent []notify.Delivery
	err  error
}

func (f *fakeNotifier) NotifyOfferSent(_ context.Context, d notify.Delivery) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, d)
	return nil
}

// newTestServer builds a Server with in-memory collaborators and a
// working JWT service.
func newTestServer(offers *fakeOfferStore, gen Generator, letterheads LetterheadManager) (*Server, *fakeNotifier) {
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	notifier := &fakeNotifier{}
	return &Server{
		store:       storage.NewMemoryStore(),
		offers:      offers,
		generator:   gen,
		letterheads: letterheads,
		notifier:    notifier,
		jwtService:  jwtService,
		signTTL:     time.Hour,
	}, notifier
}

// authHeader issues a bearer token for the given company.
func authHeader(s *Server, companyID string) string {
	token, err := s.jwtService.GenerateToken(uuid.New(), companyID)
	if err != nil {
		panic(err)
	}
	return "Bearer " + token
}
