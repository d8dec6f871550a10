package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santoshgudeti/skillmatrix-offers/internal/db"
	"github.com/santoshgudeti/skillmatrix-offers/internal/storage"
	"github.com/santoshgudeti/skillmatrix-offers/internal/types"
)

type fakeLetterheads struct {
	record *db.Letterhead
	data   []byte
	err    error
}

func (f *fakeLetterheads) GetActive(_ context.Context, _ string) (*db.Letterhead, []byte, error) {
	return f.record, f.data, f.err
}

type fakePersister struct {
	created *db.Offer
	err     error
}

func (f *fakePersister) CreateOffer(_ context.Context, o *db.Offer) (*db.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *o
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

// letterheadPDF produces a small valid PDF to stand in for an uploaded
// letterhead background.
func letterheadPDF(t *testing.T, pages int) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "A4", "")
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.SetFont("Helvetica", "B", 24)
		doc.CellFormat(0, 40, "ACME CORP", "", 1, "C", false, 0, "")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func sampleFacts() *types.OfferFacts {
	return &types.OfferFacts{
		CandidateID:    "cand-42",
		CandidateName:  "Priya Sharma",
		CandidateEmail: "priya@example.com",
		Position:       "Backend Engineer",
		GrossAnnual:    600000,
		StartDate:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		OfferDate:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CompanyName:    "Acme Corp",
	}
}

func TestGenerate_ContentOnly(t *testing.T) {
	store := storage.NewMemoryStore()
	persister := &fakePersister{}
	p := New(&fakeLetterheads{}, store, persister)
	p.now = func() time.Time { return time.Unix(1756700000, 0) }

	var stages []string
	res, err := p.Generate(context.Background(), sampleFacts(), Options{
		CompanyID: "acme",
		OnProgress: func(e ProgressEvent) {
			stages = append(stages, e.Stage)
		},
	})
	require.NoError(t, err)

	assert.False(t, res.Composited)
	assert.Nil(t, res.Offer.LetterheadID)
	assert.Equal(t, "offers/acme/cand-42/offer_priya_sharma_1756700000.pdf", res.Offer.StorageKey)
	assert.Equal(t, "offer_priya_sharma.pdf", res.Offer.Filename)
	assert.Equal(t, db.StatusGenerated, res.Offer.Status)
	assert.Equal(t, 600000.0, res.Offer.GrossAnnual)
	assert.GreaterOrEqual(t, res.PageCount, 1)
	assert.Equal(t, 1, store.Len())

	// Facts round-trip through the persisted record
	var facts types.OfferFacts
	require.NoError(t, json.Unmarshal(persister.created.Facts, &facts))
	assert.Equal(t, "Priya Sharma", facts.CandidateName)

	assert.Contains(t, stages, StageRendering)
	assert.Contains(t, stages, StageLetterheadLookup)
	assert.NotContains(t, stages, StageCompositing)
	assert.Contains(t, stages, StageDone)
}

func TestGenerate_WithLetterhead(t *testing.T) {
	lhID := uuid.New()
	lh := &fakeLetterheads{
		record: &db.Letterhead{ID: lhID, CompanyID: "acme", Active: true},
		data:   letterheadPDF(t, 1),
	}
	store := storage.NewMemoryStore()
	p := New(lh, store, &fakePersister{})

	res, err := p.Generate(context.Background(), sampleFacts(), Options{CompanyID: "acme"})
	require.NoError(t, err)

	assert.True(t, res.Composited)
	require.NotNil(t, res.Offer.LetterheadID)
	assert.Equal(t, lhID, *res.Offer.LetterheadID)
	assert.GreaterOrEqual(t, res.PageCount, 1)
}

func TestGenerate_CorruptLetterheadDegrades(t *testing.T) {
	lh := &fakeLetterheads{
		record: &db.Letterhead{ID: uuid.New(), CompanyID: "acme", Active: true},
		data:   []byte("%PDF-1.4 truncated garbage"),
	}
	p := New(lh, storage.NewMemoryStore(), &fakePersister{})

	res, err := p.Generate(context.Background(), sampleFacts(), Options{CompanyID: "acme"})
	require.NoError(t, err)
	assert.False(t, res.Composited)
	assert.Nil(t, res.Offer.LetterheadID)
}

func TestGenerate_LookupFailureDegrades(t *testing.T) {
	lh := &fakeLetterheads{err: errors.New("registry down")}
	p := New(lh, storage.NewMemoryStore(), &fakePersister{})

	res, err := p.Generate(context.Background(), sampleFacts(), Options{CompanyID: "acme"})
	require.NoError(t, err)
	assert.False(t, res.Composited)
}

func TestGenerate_InvalidFacts(t *testing.T) {
	p := New(&fakeLetterheads{}, storage.NewMemoryStore(), &fakePersister{})

	facts := sampleFacts()
	facts.GrossAnnual = 0

	_, err := p.Generate(context.Background(), facts, Options{CompanyID: "acme"})
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, StageValidating, gerr.Stage)
}

func TestGenerate_UploadFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailPut = true
	persister := &fakePersister{}
	p := New(&fakeLetterheads{}, store, persister)

	_, err := p.Generate(context.Background(), sampleFacts(), Options{CompanyID: "acme"})
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, StageUploading, gerr.Stage)
	assert.Nil(t, persister.created)
	assert.Equal(t, 0, store.Len())
}

func TestGenerate_PersistFailureKeepsArtifact(t *testing.T) {
	store := storage.NewMemoryStore()
	p := New(&fakeLetterheads{}, store, &fakePersister{err: errors.New("db down")})

	_, err := p.Generate(context.Background(), sampleFacts(), Options{CompanyID: "acme"})
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, StagePersisting, gerr.Stage)
	// Stored bytes are kept for reconciliation
	assert.Equal(t, 1, store.Len())
}

func TestGenerate_CancelledContext(t *testing.T) {
	p := New(&fakeLetterheads{}, storage.NewMemoryStore(), &fakePersister{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, sampleFacts(), Options{CompanyID: "acme"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "priya_sharma", safeName("Priya Sharma"))
	assert.Equal(t, "o_brien__dj_", safeName("O'Brien (DJ)"))
	assert.Equal(t, "r_o", safeName("R O"))
}
