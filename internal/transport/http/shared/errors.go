package shared

import (
	"errors"
	"net/http"

	"grc/internal/domain"
	"grc/internal/transport/http/api"
)

// WriteDomainError maps the domain error kinds to their HTTP responses.
// It returns false when the error is none of them, leaving the caller to
// handle not-found sentinels and the 500 fallback.
func WriteDomainError(w http.ResponseWriter, err error, requestID string) bool {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		issues := make([]ValidationIssue, 0, len(verr.Issues))
		for _, issue := range verr.Issues {
			issues = append(issues, ValidationIssue{Field: issue.Field, Reason: issue.Reason})
		}
		FailValidation(w, requestID, issues)
		return true
	}

	var rerr *domain.RangeError
	if errors.As(err, &rerr) {
		api.FailWithDetails(w, http.StatusBadRequest, "out_of_range", rerr.Error(), map[string]any{
			"field": rerr.Field,
			"min":   rerr.Min,
			"max":   rerr.Max,
		}, requestID)
		return true
	}

	var terr *domain.InvalidTransitionError
	if errors.As(err, &terr) {
		api.FailWithDetails(w, http.StatusConflict, "invalid_transition", terr.Error(), map[string]any{
			"from": terr.From,
			"to":   terr.To,
		}, requestID)
		return true
	}

	return false
}
