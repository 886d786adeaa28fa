package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akeath18/HPE-assets/internal/domain"
	"github.com/akeath18/HPE-assets/internal/plan"
	"github.com/akeath18/HPE-assets/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrInvalidSubmission = errors.New("invalid submission")
)

// Field length caps applied to free-text submission fields.
const (
	maxNameLength = 80
	maxNoteLength = 500
)

// SubmissionInput is the raw, untrusted body of a submit request. The client
// payload stays raw JSON until validation has confirmed it is an object with
// a profile; decoding it eagerly would blur "missing" and "empty".
type SubmissionInput struct {
	ClientID      string
	SubmittedBy   string
	Note          string
	UpdatedClient json.RawMessage
}

// --- Service Interface ---
type SubmissionService interface {
	Submit(ctx context.Context, input SubmissionInput) (*domain.Submission, error)
	ListPending(ctx context.Context) ([]domain.Submission, error)
	ListHistory(ctx context.Context) ([]domain.Submission, error)
}

// --- Service Implementation ---

type submissionService struct {
	repo repository.SubmissionRepository
}

// NewSubmissionService creates a new instance of submissionService.
func NewSubmissionService(repo repository.SubmissionRepository) SubmissionService {
	return &submissionService{repo: repo}
}

// Submit validates a change request, normalizes the proposed client plan,
// and appends it to the review queue as pending.
func (s *submissionService) Submit(ctx context.Context, input SubmissionInput) (*domain.Submission, error) {
	if !isJSONObject(input.UpdatedClient) {
		return nil, fmt.Errorf("%w: updatedClient must be an object", ErrInvalidSubmission)
	}

	var probe struct {
		ID      string          `json:"id"`
		Profile json.RawMessage `json:"profile"`
	}
	if err := json.Unmarshal(input.UpdatedClient, &probe); err != nil {
		return nil, fmt.Errorf("%w: updatedClient must be an object", ErrInvalidSubmission)
	}

	candidateID := input.ClientID
	if candidateID == "" {
		candidateID = probe.ID
	}
	clientID := plan.SlugifyStrict(candidateID)
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientId is required", ErrInvalidSubmission)
	}

	if !isJSONObject(probe.Profile) {
		return nil, fmt.Errorf("%w: updatedClient.profile is required", ErrInvalidSubmission)
	}

	submittedBy := sanitizeText(input.SubmittedBy, maxNameLength)
	if submittedBy == "" {
		return nil, fmt.Errorf("%w: submittedBy is required", ErrInvalidSubmission)
	}

	// Decoding into the typed model is the deep copy: the caller's JSON can
	// never alias the stored record.
	var client domain.ClientPlan
	if err := json.Unmarshal(input.UpdatedClient, &client); err != nil {
		return nil, fmt.Errorf("%w: updatedClient is malformed: %v", ErrInvalidSubmission, err)
	}
	client.ID = clientID
	plan.NormalizeClient(&client)

	submission := &domain.Submission{
		ID:            uuid.NewString(),
		Status:        domain.StatusPending,
		SubmittedAt:   time.Now().UTC(),
		SubmittedBy:   submittedBy,
		Note:          sanitizeText(input.Note, maxNoteLength),
		ClientID:      clientID,
		UpdatedClient: client,
	}

	if err := s.repo.Insert(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// ListPending returns the open review queue, newest submission first.
func (s *submissionService) ListPending(ctx context.Context) ([]domain.Submission, error) {
	return s.repo.ListPending(ctx)
}

// ListHistory returns reviewed submissions, newest review first.
func (s *submissionService) ListHistory(ctx context.Context) ([]domain.Submission, error) {
	return s.repo.ListHistory(ctx)
}

// isJSONObject reports whether raw holds a JSON object (not null, not an
// array, not a scalar, not absent).
func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// sanitizeText trims whitespace and caps the value at maxLength runes.
func sanitizeText(value string, maxLength int) string {
	trimmed := strings.TrimSpace(value)
	runes := []rune(trimmed)
	if len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return trimmed
}
