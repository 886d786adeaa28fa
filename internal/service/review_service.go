package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akeath18/HPE-assets/internal/domain"
	"github.com/akeath18/HPE-assets/internal/repository"
	"github.com/akeath18/HPE-assets/internal/storage"
)

// --- Error Definitions ---
var (
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrCorruptRemoteState  = errors.New("current plan document is invalid JSON in the remote store")
	ErrRemoteLookupFailed  = errors.New("remote file lookup failed")
	ErrRemotePublishFailed = errors.New("remote publish failed")
	ErrPublishConflict     = errors.New("plan document changed since it was read, approval not published")
)

// Fallback reviewer identity when the request does not carry one.
const defaultReviewer = "Coach"

// AlreadyReviewedError reports a transition attempt on a terminal submission,
// carrying the status it already holds.
type AlreadyReviewedError struct {
	Status domain.SubmissionStatus
}

func (e *AlreadyReviewedError) Error() string {
	return fmt.Sprintf("submission already %s", e.Status)
}

// PublishResult describes a successful approval.
type PublishResult struct {
	SubmissionID string
	CommitURL    string
	CommitSHA    string
}

// --- Service Interface ---
type ReviewService interface {
	Approve(ctx context.Context, submissionID, approvedBy string) (*PublishResult, error)
	Reject(ctx context.Context, submissionID, reviewedBy, reason string) error
}

// --- Service Implementation ---

type reviewService struct {
	repo  repository.SubmissionRepository
	plans storage.PlanStore
}

// NewReviewService creates a new instance of reviewService.
func NewReviewService(repo repository.SubmissionRepository, plans storage.PlanStore) ReviewService {
	return &reviewService{repo: repo, plans: plans}
}

// Approve publishes a pending submission: read the current remote document,
// merge the approved client in, write it back conditioned on the version
// token captured by the read, then mark the queue record approved. Failure at
// any step returns before the record is touched, so the submission stays
// pending and the approval can simply be retried.
func (s *reviewService) Approve(ctx context.Context, submissionID, approvedBy string) (*PublishResult, error) {
	submission, err := s.loadPending(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.plans.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteLookupFailed, err)
	}

	var doc domain.PlanDocument
	if err := json.Unmarshal(snapshot.Content, &doc); err != nil {
		// Do not guess a blank document over a corrupt one; a bad write here
		// would clobber every client's plan.
		return nil, ErrCorruptRemoteState
	}
	if doc.Clients == nil {
		doc.Clients = []domain.ClientPlan{}
	}

	mergeClient(&doc, submission)
	doc.LastUpdated = time.Now().UTC().Format("2006-01-02")

	content, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemotePublishFailed, err)
	}
	content = append(content, '\n')

	commit, err := s.plans.WriteIfMatch(ctx, content, snapshot.Version, commitMessage(submission))
	if err != nil {
		if errors.Is(err, storage.ErrVersionMismatch) {
			return nil, fmt.Errorf("%w: %v", ErrPublishConflict, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRemotePublishFailed, err)
	}

	now := time.Now().UTC()
	submission.Status = domain.StatusApproved
	submission.ReviewedAt = &now
	submission.ReviewedBy = reviewerName(approvedBy)
	submission.CommitURL = commit.URL

	if err := s.repo.Update(ctx, submission); err != nil {
		// The remote write already landed; surfacing the error keeps the
		// record pending and a retry republishes the same client.
		return nil, err
	}

	return &PublishResult{
		SubmissionID: submission.ID,
		CommitURL:    commit.URL,
		CommitSHA:    commit.SHA,
	}, nil
}

// Reject marks a pending submission rejected. No remote interaction.
func (s *reviewService) Reject(ctx context.Context, submissionID, reviewedBy, reason string) error {
	submission, err := s.loadPending(ctx, submissionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	submission.Status = domain.StatusRejected
	submission.ReviewedAt = &now
	submission.ReviewedBy = reviewerName(reviewedBy)
	submission.RejectionReason = sanitizeText(reason, maxNoteLength)

	return s.repo.Update(ctx, submission)
}

// loadPending fetches the submission and enforces the pending -> terminal
// state machine guards shared by approve and reject.
func (s *reviewService) loadPending(ctx context.Context, submissionID string) (*domain.Submission, error) {
	submission, err := s.repo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	if submission.Status.IsTerminal() {
		return nil, &AlreadyReviewedError{Status: submission.Status}
	}
	return submission, nil
}

// mergeClient replaces the matching client positionally, or appends when the
// client is new to the document.
func mergeClient(doc *domain.PlanDocument, submission *domain.Submission) {
	for i := range doc.Clients {
		if doc.Clients[i].ID == submission.ClientID {
			doc.Clients[i] = submission.UpdatedClient
			return
		}
	}
	doc.Clients = append(doc.Clients, submission.UpdatedClient)
}

func commitMessage(submission *domain.Submission) string {
	name := submission.UpdatedClient.Profile.ClientName
	if name == "" {
		name = submission.ClientID
	}
	return fmt.Sprintf("approve plan update for %s", name)
}

func reviewerName(name string) string {
	sanitized := sanitizeText(name, maxNameLength)
	if sanitized == "" {
		return defaultReviewer
	}
	return sanitized
}
