package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akeath18/HPE-assets/internal/domain"
	"github.com/akeath18/HPE-assets/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (repository.SubmissionRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "submissions.json")
	store, err := NewSubmissionStore(path)
	require.NoError(t, err)
	return store, path
}

func testSubmission(id string, submittedAt time.Time) *domain.Submission {
	return &domain.Submission{
		ID:          id,
		Status:      domain.StatusPending,
		SubmittedAt: submittedAt,
		SubmittedBy: "Coach A",
		ClientID:    "jane-doe",
		UpdatedClient: domain.ClientPlan{
			ID:      "jane-doe",
			Profile: domain.ClientProfile{ClientName: "Jane"},
		},
	}
}

func TestSubmissionStore_InsertAndGet(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	sub := testSubmission("sub-1", time.Now().UTC())
	require.NoError(t, store.Insert(ctx, sub))

	got, err := store.GetByID(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", got.ClientID)
	assert.Equal(t, domain.StatusPending, got.Status)

	// The store file is rewritten wholesale on every mutation.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"submissions\"")
	assert.Contains(t, string(data), "sub-1")
}

func TestSubmissionStore_GetByID_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmissionStore_DuplicateInsert(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testSubmission("sub-1", time.Now().UTC())))
	assert.ErrorIs(t, store.Insert(ctx, testSubmission("sub-1", time.Now().UTC())), repository.ErrDuplicateID)
}

func TestSubmissionStore_ListPending_NewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, store.Insert(ctx, testSubmission("older", base.Add(-time.Hour))))
	require.NoError(t, store.Insert(ctx, testSubmission("newest", base)))
	require.NoError(t, store.Insert(ctx, testSubmission("oldest", base.Add(-2*time.Hour))))

	pending, err := store.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "newest", pending[0].ID)
	assert.Equal(t, "older", pending[1].ID)
	assert.Equal(t, "oldest", pending[2].ID)
}

func TestSubmissionStore_ListHistory_ExcludesPendingAndSortsByReview(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	pending := testSubmission("still-pending", base)
	require.NoError(t, store.Insert(ctx, pending))

	early := testSubmission("reviewed-early", base.Add(-3*time.Hour))
	earlyReview := base.Add(-2 * time.Hour)
	early.Status = domain.StatusRejected
	early.ReviewedAt = &earlyReview
	require.NoError(t, store.Insert(ctx, early))

	late := testSubmission("reviewed-late", base.Add(-4*time.Hour))
	lateReview := base.Add(-time.Hour)
	late.Status = domain.StatusApproved
	late.ReviewedAt = &lateReview
	require.NoError(t, store.Insert(ctx, late))

	history, err := store.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "reviewed-late", history[0].ID)
	assert.Equal(t, "reviewed-early", history[1].ID)
}

func TestSubmissionStore_Update(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sub := testSubmission("sub-1", time.Now().UTC())
	require.NoError(t, store.Insert(ctx, sub))

	now := time.Now().UTC()
	sub.Status = domain.StatusApproved
	sub.ReviewedAt = &now
	sub.ReviewedBy = "Coach"
	require.NoError(t, store.Update(ctx, sub))

	got, err := store.GetByID(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, "Coach", got.ReviewedBy)

	missing := testSubmission("nope", time.Now().UTC())
	assert.ErrorIs(t, store.Update(ctx, missing), repository.ErrNotFound)
}

func TestSubmissionStore_CorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewSubmissionStore(path)
	require.NoError(t, err)

	pending, err := store.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Writes still work after the reset.
	require.NoError(t, store.Insert(context.Background(), testSubmission("sub-1", time.Now().UTC())))
	got, err := store.GetByID(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", got.ID)
}
