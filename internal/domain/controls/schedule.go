package controls

import (
	"strings"
	"time"

	"grc/internal/domain"
)

// NextDueDate returns the review due date implied by the instance's
// schedule: lastReviewedAt + interval once a review has occurred,
// otherwise activatedAt + interval.
func NextDueDate(instance ControlInstance) time.Time {
	anchor := instance.ActivatedAt
	if instance.LastReviewedAt != nil {
		anchor = *instance.LastReviewedAt
	}
	return anchor.AddDate(0, 0, instance.ReviewIntervalDays)
}

// IsOverdue reports whether the instance's review is past due at asOf.
// Deactivated instances are never overdue.
func IsOverdue(instance ControlInstance, asOf time.Time) bool {
	if !instance.Active {
		return false
	}
	return asOf.After(instance.NextReviewDue)
}

// ApplyEvidence returns the instance as it stands after recording the
// given evidence at asOf: lastReviewedAt moves to asOf, status takes the
// submitted compliance outcome, and the due date is recomputed. Each call
// advances the schedule again; repeated submissions are last write wins.
func ApplyEvidence(instance ControlInstance, input EvidenceInput, asOf time.Time) (ControlInstance, error) {
	verr := &domain.ValidationError{}
	if !instance.Active {
		verr.Add("control", "control is not activated")
	}
	if strings.TrimSpace(input.Notes) == "" {
		verr.Add("notes", "must not be empty")
	}
	if !ValidComplianceStatus(input.ComplianceStatus) {
		verr.Add("complianceStatus", "must be compliant or non_compliant")
	}
	if len(verr.Issues) > 0 {
		return ControlInstance{}, verr
	}

	reviewed := asOf
	instance.LastReviewedAt = &reviewed
	instance.Status = input.ComplianceStatus
	instance.NextReviewDue = NextDueDate(instance)
	return instance, nil
}
