// internal/domain/submission.go
package domain

import "time"

// SubmissionStatus tracks the review lifecycle of a change request.
// A submission is created pending and transitions exactly once to
// approved or rejected; both are terminal.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// IsTerminal reports whether the status allows no further transitions.
func (s SubmissionStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Submission is a proposed change to one client's plan, held in the review
// queue until a coach approves or rejects it.
type Submission struct {
	ID              string           `bson:"_id" json:"id"`
	Status          SubmissionStatus `bson:"status" json:"status"`
	SubmittedAt     time.Time        `bson:"submittedAt" json:"submittedAt"`
	SubmittedBy     string           `bson:"submittedBy" json:"submittedBy"`
	Note            string           `bson:"note" json:"note"`
	ClientID        string           `bson:"clientId" json:"clientId"`
	UpdatedClient   ClientPlan       `bson:"updatedClient" json:"updatedClient"`
	ReviewedAt      *time.Time       `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy      string           `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	CommitURL       string           `bson:"commitUrl,omitempty" json:"commitUrl,omitempty"`
	RejectionReason string           `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

// ReviewSortTime is the timestamp history listings order by: the review time
// when the submission has been reviewed, the submission time otherwise.
func (s *Submission) ReviewSortTime() time.Time {
	if s.ReviewedAt != nil {
		return *s.ReviewedAt
	}
	return s.SubmittedAt
}
