// internal/api/submission_handler.go
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/akeath18/HPE-assets/internal/service"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService service.SubmissionService
	reviewService     service.ReviewService
}

func NewSubmissionHandler(
	submissionService service.SubmissionService,
	reviewService service.ReviewService,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		reviewService:     reviewService,
	}
}

// --- DTOs ---

type createSubmissionRequest struct {
	ClientID      string          `json:"clientId"`
	SubmittedBy   string          `json:"submittedBy"`
	Note          string          `json:"note"`
	UpdatedClient json.RawMessage `json:"updatedClient"`
}

type reviewActionRequest struct {
	ApprovedBy string `json:"approvedBy"`
	ReviewedBy string `json:"reviewedBy"`
	Reason     string `json:"reason"`
}

// --- Handler Methods ---

// Create accepts a proposed plan change and queues it for review.
// POST /api/submissions
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	submission, err := h.submissionService.Submit(c.Request.Context(), service.SubmissionInput{
		ClientID:      req.ClientID,
		SubmittedBy:   req.SubmittedBy,
		Note:          req.Note,
		UpdatedClient: req.UpdatedClient,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubmission) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR: Failed to store submission: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to store submission.")
		return
	}

	// Only the id is surfaced; the full record stays server-side until a
	// coach lists the queue.
	c.JSON(http.StatusCreated, gin.H{"ok": true, "submissionId": submission.ID})
}

// ListPending returns the open review queue.
// GET /api/submissions/pending (coach key required)
func (h *SubmissionHandler) ListPending(c *gin.Context) {
	submissions, err := h.submissionService.ListPending(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Failed to list pending submissions: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load pending submissions.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// ListHistory returns reviewed submissions, newest review first.
// GET /api/submissions/history (coach key required)
func (h *SubmissionHandler) ListHistory(c *gin.Context) {
	submissions, err := h.submissionService.ListHistory(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Failed to list submission history: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load submission history.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// Approve publishes a pending submission to the remote plan document.
// POST /api/submissions/:id/approve (coach key required)
func (h *SubmissionHandler) Approve(c *gin.Context) {
	// The body is optional; a missing approvedBy falls back server-side.
	var req reviewActionRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.reviewService.Approve(c.Request.Context(), c.Param("id"), req.ApprovedBy)
	if err != nil {
		h.abortReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"submissionId": result.SubmissionID,
		"commitUrl":    result.CommitURL,
		"commitSha":    result.CommitSHA,
	})
}

// Reject marks a pending submission rejected without touching the remote
// document.
// POST /api/submissions/:id/reject (coach key required)
func (h *SubmissionHandler) Reject(c *gin.Context) {
	var req reviewActionRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.reviewService.Reject(c.Request.Context(), c.Param("id"), req.ReviewedBy, req.Reason); err != nil {
		h.abortReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "submissionId": c.Param("id")})
}

// abortReviewError maps review/publish errors to HTTP statuses.
func (h *SubmissionHandler) abortReviewError(c *gin.Context, err error) {
	var alreadyReviewed *service.AlreadyReviewedError

	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		abortWithError(c, http.StatusNotFound, "Submission not found.")
	case errors.As(err, &alreadyReviewed):
		abortWithError(c, http.StatusConflict, alreadyReviewed.Error()+".")
	case errors.Is(err, service.ErrPublishConflict):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		// Corrupt remote state and upstream store failures all land here.
		log.Printf("ERROR: Review action failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}
