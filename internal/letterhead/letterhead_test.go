package letterhead

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santoshgudeti/skillmatrix-offers/internal/db"
	"github.com/santoshgudeti/skillmatrix-offers/internal/storage"
)

// fakeRegistry is an in-memory stand-in for the database registry.
type fakeRegistry struct {
	records     map[uuid.UUID]*db.Letterhead
	failOnWrite bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{records: make(map[uuid.UUID]*db.Letterhead)}
}

func (f *fakeRegistry) ActivateLetterhead(_ context.Context, lh *db.Letterhead) (*db.Letterhead, error) {
	if f.failOnWrite {
		return nil, errors.New("registry unavailable")
	}
	for _, r := range f.records {
		if r.CompanyID == lh.CompanyID {
			r.Active = false
		}
	}
	created := *lh
	created.ID = uuid.New()
	created.Active = true
	created.UploadedAt = time.Now()
	f.records[created.ID] = &created
	return &created, nil
}

func (f *fakeRegistry) GetActiveLetterhead(_ context.Context, companyID string) (*db.Letterhead, error) {
	var latest *db.Letterhead
	for _, r := range f.records {
		if r.CompanyID == companyID && r.Active {
			if latest == nil || r.UploadedAt.After(latest.UploadedAt) {
				latest = r
			}
		}
	}
	return latest, nil
}

func (f *fakeRegistry) ListSupersededLetterheads(_ context.Context, companyID string, cutoff time.Time) ([]db.Letterhead, error) {
	var out []db.Letterhead
	for _, r := range f.records {
		if r.CompanyID == companyID && !r.Active && r.UploadedAt.Before(cutoff) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRegistry) DeleteLetterhead(_ context.Context, id uuid.UUID) error {
	delete(f.records, id)
	return nil
}

func (f *fakeRegistry) DeactivateLetterheads(_ context.Context, companyID string) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.CompanyID == companyID && r.Active {
			r.Active = false
			n++
		}
	}
	return n, nil
}

func pdfBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, "%PDF-1.4\n")
	return data
}

func TestValidate(t *testing.T) {
	t.Run("accepts well formed pdf", func(t *testing.T) {
		assert.NoError(t, Validate("letterhead.pdf", pdfBytes(1024)))
	})

	t.Run("rejects wrong extension", func(t *testing.T) {
		err := Validate("letterhead.png", pdfBytes(1024))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Message, "PDF file")
	})

	t.Run("rejects empty file", func(t *testing.T) {
		var verr *ValidationError
		require.ErrorAs(t, Validate("x.pdf", nil), &verr)
	})

	t.Run("rejects missing signature", func(t *testing.T) {
		err := Validate("x.pdf", []byte("JVBERi0x not a pdf"))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Message, "not a valid PDF")
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		err := Validate("x.pdf", pdfBytes(MaxFileSize+1))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("accepts file at exactly the cap", func(t *testing.T) {
		assert.NoError(t, Validate("x.pdf", pdfBytes(MaxFileSize)))
	})
}

func TestService_Activate(t *testing.T) {
	reg := newFakeRegistry()
	store := storage.NewMemoryStore()
	svc := NewService(reg, store, time.Hour)

	lh, err := svc.Activate(context.Background(), "acme", "Company Letterhead.pdf", pdfBytes(2048))
	require.NoError(t, err)
	assert.True(t, lh.Active)
	assert.Equal(t, int64(2048), lh.FileSize)
	assert.Equal(t, "Company Letterhead.pdf", lh.Filename)
	assert.True(t, strings.HasPrefix(lh.StorageKey, "letterheads/acme/"))
	assert.NotContains(t, lh.StorageKey, " ")
	assert.Equal(t, 1, store.Len())
}

func TestService_Activate_SupersedesPrevious(t *testing.T) {
	reg := newFakeRegistry()
	store := storage.NewMemoryStore()
	svc := NewService(reg, store, time.Hour)
	ctx := context.Background()

	first, err := svc.Activate(ctx, "acme", "first.pdf", pdfBytes(100))
	require.NoError(t, err)
	second, err := svc.Activate(ctx, "acme", "second.pdf", pdfBytes(100))
	require.NoError(t, err)

	active, err := reg.GetActiveLetterhead(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.False(t, reg.records[first.ID].Active)
	// Superseded bytes stay in storage for provenance
	assert.Equal(t, 2, store.Len())
}

func TestService_Activate_RegistryFailureRemovesObject(t *testing.T) {
	reg := newFakeRegistry()
	reg.failOnWrite = true
	store := storage.NewMemoryStore()
	svc := NewService(reg, store, time.Hour)

	_, err := svc.Activate(context.Background(), "acme", "x.pdf", pdfBytes(100))
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestService_Activate_RejectsInvalidUpload(t *testing.T) {
	reg := newFakeRegistry()
	store := storage.NewMemoryStore()
	svc := NewService(reg, store, time.Hour)

	_, err := svc.Activate(context.Background(), "acme", "x.pdf", []byte("nope"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, store.Len())
}

func TestService_GetActive(t *testing.T) {
	reg := newFakeRegistry()
	store := storage.NewMemoryStore()
	svc := NewService(reg, store, time.Hour)
	ctx := context.Background()

	data := pdfBytes(512)
	_, err := svc.Activate(ctx, "acme", "x.pdf", data)
	require.NoError(t, err)

	lh, got, err := svc.GetActive(ctx, "acme")
	require.NoError(t, err)
	require.NotNil(t, lh)
	assert.True(t, bytes.Equal(data, got))

	lh, got, err = svc.GetActive(ctx, "no-such-company")
	require.NoError(t, err)
	assert.Nil(t, lh)
	assert.Nil(t, got)
}

func TestService_PreviewURL(t *testing.T) {
	reg := newFakeRegistry()
	store := storage.NewMemoryStore()
	svc := NewService(reg, store, 30*time.Minute)
	ctx := context.Background()

	url, err := svc.PreviewURL(ctx, "acme")
	require.NoError(t, err)
	assert.Empty(t, url)

	_, err = svc.Activate(ctx, "acme", "x.pdf", pdfBytes(100))
	require.NoError(t, err)

	url, err = svc.PreviewURL(ctx, "acme")
	require.NoError(t, err)
	assert.Contains(t, url, "letterheads/acme/")
}

func TestService_Deactivate(t *testing.T) {
	reg := newFakeRegistry()
	svc := NewService(reg, storage.NewMemoryStore(), time.Hour)
	ctx := context.Background()

	ok, err := svc.Deactivate(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Activate(ctx, "acme", "x.pdf", pdfBytes(100))
	require.NoError(t, err)

	ok, err = svc.Deactivate(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, ok)

	active, err := reg.GetActiveLetterhead(ctx, "acme")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestService_Cleanup(t *testing.T) {
	reg := newFakeRegistry()
	store := storage.NewMemoryStore()
	svc := NewService(reg, store, time.Hour)
	ctx := context.Background()

	old, err := svc.Activate(ctx, "acme", "old.pdf", pdfBytes(100))
	require.NoError(t, err)
	_, err = svc.Activate(ctx, "acme", "new.pdf", pdfBytes(100))
	require.NoError(t, err)

	// Age the superseded record past the retention window
	reg.records[old.ID].UploadedAt = time.Now().Add(-48 * time.Hour)

	removed, err := svc.Cleanup(ctx, "acme", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
	_, exists := reg.records[old.ID]
	assert.False(t, exists)
}
