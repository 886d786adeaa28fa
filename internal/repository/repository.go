package repository

import (
	"context"

	"github.com/akeath18/HPE-assets/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound    = RepositoryError("not found")
	ErrDuplicateID = RepositoryError("duplicate submission id")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SubmissionRepository defines the interface for the durable review queue.
// Implementations must keep the listing order contracts: ListPending is
// newest submission first, ListHistory is newest review first (falling back
// to the submission time for records that lack one).
type SubmissionRepository interface {
	Insert(ctx context.Context, submission *domain.Submission) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	Update(ctx context.Context, submission *domain.Submission) error
	ListPending(ctx context.Context) ([]domain.Submission, error)
	ListHistory(ctx context.Context) ([]domain.Submission, error)
}
