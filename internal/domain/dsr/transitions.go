package dsr

import (
	"strings"
	"time"

	"grc/internal/domain"
)

// transitions is the authoritative edge table for DSR status. Completed
// and rejected are terminal.
var transitions = map[string][]string{
	StatusSubmitted:   {StatusUnderReview, StatusInProgress, StatusRejected},
	StatusUnderReview: {StatusInProgress, StatusRejected},
	StatusInProgress:  {StatusCompleted, StatusRejected},
	StatusCompleted:   {},
	StatusRejected:    {},
}

func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves a request to the target status. Completing requires a
// response summary supplied atomically with the transition; rejecting
// requires a rejection reason. The deadline is never touched.
func Transition(request Request, input TransitionInput, asOf time.Time) (Request, error) {
	to := input.Status
	if !CanTransition(request.Status, to) {
		return Request{}, &domain.InvalidTransitionError{Entity: "dsr request", From: request.Status, To: to}
	}

	switch to {
	case StatusCompleted:
		summary := strings.TrimSpace(input.ResponseSummary)
		if summary == "" {
			return Request{}, domain.NewValidationError("responseSummary", "required to complete a request")
		}
		completed := asOf
		request.CompletedDate = &completed
		request.ResponseSummary = summary
	case StatusRejected:
		reason := strings.TrimSpace(input.RejectionReason)
		if reason == "" {
			return Request{}, domain.NewValidationError("rejectionReason", "required to reject a request")
		}
		request.RejectionReason = reason
	}

	request.Status = to
	return request, nil
}
