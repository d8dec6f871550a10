// Package pipeline provides the high-level orchestration for offer letter
// generation: breakdown, rendering, letterhead compositing, upload, and
// persistence.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/santoshgudeti/skillmatrix-offers/internal/compositing"
	"github.com/santoshgudeti/skillmatrix-offers/internal/db"
	"github.com/santoshgudeti/skillmatrix-offers/internal/letter"
	"github.com/santoshgudeti/skillmatrix-offers/internal/payroll"
	"github.com/santoshgudeti/skillmatrix-offers/internal/rendering"
	"github.com/santoshgudeti/skillmatrix-offers/internal/storage"
	"github.com/santoshgudeti/skillmatrix-offers/internal/types"
)

// ProgressEvent represents a progress update during offer generation.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ProgressCallback is called as generation moves through its stages.
type ProgressCallback func(event ProgressEvent)

// LetterheadSource supplies the active letterhead bytes for a company.
// A (nil, nil, nil) return means the company has no letterhead and the
// offer ships content-only.
type LetterheadSource interface {
	GetActive(ctx context.Context, companyID string) (*db.Letterhead, []byte, error)
}

// Persister stores the generated offer's metadata record.
type Persister interface {
	CreateOffer(ctx context.Context, o *db.Offer) (*db.Offer, error)
}

// Options holds per-run configuration.
type Options struct {
	CompanyID  string
	Verbose    bool
	OnProgress ProgressCallback
}

// Result is the outcome of one generation run.
type Result struct {
	Offer      *db.Offer
	Breakdown  payroll.Breakdown
	Composited bool
	PageCount  int
	FileSize   int64
}

// Pipeline wires the generation stages together.
type Pipeline struct {
	letterheads LetterheadSource
	store       storage.Store
	persister   Persister
	policy      payroll.Policy
	template    letter.Template
	bands       compositing.Bands
	formatters  letter.Formatters
	now         func() time.Time
}

// New creates a pipeline with the default payroll policy, letter template,
// and exclusion bands.
func New(letterheads LetterheadSource, store storage.Store, persister Persister) *Pipeline {
	return &Pipeline{
		letterheads: letterheads,
		store:       store,
		persister:   persister,
		policy:      payroll.DefaultPolicy(),
		template:    letter.DefaultTemplate(),
		bands:       compositing.DefaultBands(),
		formatters:  letter.DefaultFormatters(),
		now:         time.Now,
	}
}

// WithTemplate replaces the letter template.
func (p *Pipeline) WithTemplate(t letter.Template) *Pipeline {
	p.template = t
	return p
}

// WithPolicy replaces the payroll policy.
func (p *Pipeline) WithPolicy(pol payroll.Policy) *Pipeline {
	p.policy = pol
	return p
}

// WithBands replaces the letterhead exclusion bands.
func (p *Pipeline) WithBands(b compositing.Bands) *Pipeline {
	p.bands = b
	return p
}

func emit(opts *Options, stage, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Stage: stage, Message: message})
	}
	if opts.Verbose {
		log.Printf("[%s] %s", stage, message)
	}
}

// Generate runs the full pipeline for one offer. A missing or unusable
// letterhead never fails the run: the offer degrades to content-only
// output and the record carries no letterhead reference. Storage and
// persistence failures abort the run; nothing is recorded unless the
// artifact was stored.
func (p *Pipeline) Generate(ctx context.Context, facts *types.OfferFacts, opts Options) (*Result, error) {
	emit(&opts, StageValidating, "validating offer facts")
	if err := facts.Validate(); err != nil {
		return nil, stageErr(StageValidating, err)
	}

	emit(&opts, StageComputing, fmt.Sprintf("computing breakdown for gross %.0f", facts.GrossAnnual))
	breakdown, err := payroll.ComputeBreakdown(facts.GrossAnnual, facts.PayrollOverrides(), p.policy)
	if err != nil {
		return nil, stageErr(StageComputing, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, stageErr(StageRendering, err)
	}
	emit(&opts, StageRendering, "rendering offer letter")
	doc := letter.Build(facts, breakdown, p.template, p.formatters)
	content, err := rendering.RenderPDF(doc, facts.OfferDate)
	if err != nil {
		return nil, stageErr(StageRendering, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, stageErr(StageLetterheadLookup, err)
	}
	emit(&opts, StageLetterheadLookup, "looking up company letterhead")
	final := content
	composited := false
	var letterheadID *uuid.UUID
	lh, lhBytes, err := p.letterheads.GetActive(ctx, opts.CompanyID)
	if err != nil {
		// Lookup failure degrades the same way a missing letterhead does.
		log.Printf("pipeline: letterhead lookup for %s failed: %v", opts.CompanyID, err)
		emit(&opts, StageLetterheadLookup, "letterhead unavailable, using content-only output")
	} else if lh == nil {
		emit(&opts, StageLetterheadLookup, "no active letterhead, using content-only output")
	} else {
		emit(&opts, StageCompositing, fmt.Sprintf("compositing onto letterhead %s", lh.ID))
		merged, err := compositing.Composite(content, lhBytes, p.bands)
		if err != nil {
			log.Printf("pipeline: compositing with letterhead %s failed: %v", lh.ID, err)
			emit(&opts, StageCompositing, "compositing failed, falling back to content-only output")
		} else {
			final = merged
			composited = true
			id := lh.ID
			letterheadID = &id
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, stageErr(StageUploading, err)
	}
	key := storageKey(opts.CompanyID, facts.CandidateID, facts.CandidateName, p.now())
	emit(&opts, StageUploading, "uploading "+key)
	if err := p.store.Put(ctx, key, final, "application/pdf"); err != nil {
		return nil, stageErr(StageUploading, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, stageErr(StagePersisting, err)
	}
	emit(&opts, StagePersisting, "recording offer metadata")
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return nil, stageErr(StagePersisting, err)
	}
	offer, err := p.persister.CreateOffer(ctx, &db.Offer{
		CompanyID:      opts.CompanyID,
		CandidateID:    facts.CandidateID,
		LetterheadID:   letterheadID,
		StorageKey:     key,
		Filename:       filename(facts.CandidateName),
		FileSize:       int64(len(final)),
		CandidateName:  facts.CandidateName,
		CandidateEmail: facts.CandidateEmail,
		Position:       facts.Position,
		GrossAnnual:    facts.GrossAnnual,
		Status:         db.StatusGenerated,
		Facts:          factsJSON,
	})
	if err != nil {
		// The stored object is left in place for manual reconciliation.
		return nil, stageErr(StagePersisting, err)
	}

	pages, err := compositing.PageCount(final)
	if err != nil {
		pages = 0
	}
	emit(&opts, StageDone, fmt.Sprintf("offer %s generated (%d pages, %d bytes)", offer.ID, pages, len(final)))

	return &Result{
		Offer:      offer,
		Breakdown:  breakdown,
		Composited: composited,
		PageCount:  pages,
		FileSize:   int64(len(final)),
	}, nil
}

// storageKey builds the object key for a generated offer:
// offers/{company}/{candidate}/offer_{safeName}_{unix}.pdf
func storageKey(companyID, candidateID, candidateName string, now time.Time) string {
	return fmt.Sprintf("offers/%s/%s/offer_%s_%d.pdf",
		companyID, candidateID, safeName(candidateName), now.Unix())
}

func filename(candidateName string) string {
	return fmt.Sprintf("offer_%s.pdf", safeName(candidateName))
}

// safeName reduces a candidate name to a storage-safe token.
func safeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
