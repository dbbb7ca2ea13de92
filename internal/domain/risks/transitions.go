package risks

import "grc/internal/domain"

// transitions is the authoritative edge table for risk status. Closed is
// terminal; there is no enforced ordering between assessed, mitigated and
// accepted beyond these edges.
var transitions = map[string][]string{
	StatusIdentified: {StatusAssessed, StatusClosed},
	StatusAssessed:   {StatusMitigated, StatusAccepted, StatusClosed},
	StatusMitigated:  {StatusAccepted, StatusClosed},
	StatusAccepted:   {StatusClosed},
	StatusClosed:     {},
}

func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition returns the assessment with its status moved to the target,
// or an InvalidTransitionError when the edge is not in the table.
func Transition(assessment RiskAssessment, to string) (RiskAssessment, error) {
	if !CanTransition(assessment.Status, to) {
		return RiskAssessment{}, &domain.InvalidTransitionError{Entity: "risk", From: assessment.Status, To: to}
	}
	assessment.Status = to
	return assessment, nil
}
