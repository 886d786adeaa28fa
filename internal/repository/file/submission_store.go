// internal/repository/file/submission_store.go
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/akeath18/HPE-assets/internal/domain"
	"github.com/akeath18/HPE-assets/internal/repository"
)

// storeDocument is the on-disk shape: a single JSON object wrapping the full
// submission list. Every mutation reads the whole file and rewrites it
// wholesale. Within one process the mutex makes queue updates linearizable;
// multiple processes sharing the file are not guarded (known limitation, the
// expected deployment is a single instance).
type storeDocument struct {
	Submissions []domain.Submission `json:"submissions"`
}

// fileSubmissionStore implements repository.SubmissionRepository on top of a
// single JSON file.
type fileSubmissionStore struct {
	path string
	mu   sync.Mutex
}

// NewSubmissionStore creates a file-backed submission repository. The parent
// directory is created if needed and an empty store file is written when none
// exists yet.
func NewSubmissionStore(path string) (repository.SubmissionRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	store := &fileSubmissionStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := store.write(&storeDocument{Submissions: []domain.Submission{}}); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *fileSubmissionStore) Insert(ctx context.Context, submission *domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	for i := range doc.Submissions {
		if doc.Submissions[i].ID == submission.ID {
			return repository.ErrDuplicateID
		}
	}
	doc.Submissions = append(doc.Submissions, *submission)
	return s.write(doc)
}

func (s *fileSubmissionStore) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	for i := range doc.Submissions {
		if doc.Submissions[i].ID == id {
			found := doc.Submissions[i]
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fileSubmissionStore) Update(ctx context.Context, submission *domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	for i := range doc.Submissions {
		if doc.Submissions[i].ID == submission.ID {
			doc.Submissions[i] = *submission
			return s.write(doc)
		}
	}
	return repository.ErrNotFound
}

func (s *fileSubmissionStore) ListPending(ctx context.Context) ([]domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	pending := make([]domain.Submission, 0)
	for i := range doc.Submissions {
		if doc.Submissions[i].Status == domain.StatusPending {
			pending = append(pending, doc.Submissions[i])
		}
	}
	sort.SliceStable(pending, func(a, b int) bool {
		return pending[a].SubmittedAt.After(pending[b].SubmittedAt)
	})
	return pending, nil
}

func (s *fileSubmissionStore) ListHistory(ctx context.Context) ([]domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	history := make([]domain.Submission, 0)
	for i := range doc.Submissions {
		if doc.Submissions[i].Status != domain.StatusPending {
			history = append(history, doc.Submissions[i])
		}
	}
	sort.SliceStable(history, func(a, b int) bool {
		return history[a].ReviewSortTime().After(history[b].ReviewSortTime())
	})
	return history, nil
}

// read loads the whole store file. A missing, unreadable, or corrupt file
// degrades to an empty store rather than failing the request.
func (s *fileSubmissionStore) read() *storeDocument {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return &storeDocument{Submissions: []domain.Submission{}}
	}

	var doc storeDocument
	if err := json.Unmarshal(data, &doc); err != nil || doc.Submissions == nil {
		return &storeDocument{Submissions: []domain.Submission{}}
	}
	return &doc
}

// write rewrites the whole store file (two-space indent plus trailing
// newline, matching the existing submissions.json format).
func (s *fileSubmissionStore) write(doc *storeDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode submission store: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write submission store: %w", err)
	}
	return nil
}
