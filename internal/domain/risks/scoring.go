package risks

import (
	"strings"

	"grc/internal/domain"
)

// Score multiplies likelihood by impact. Both inputs must sit on the
// 1..5 scale; anything outside is a RangeError, not a silent clamp.
func Score(likelihood, impact int) (int, error) {
	if likelihood < ScaleMin || likelihood > ScaleMax {
		return 0, &domain.RangeError{Field: "likelihood", Value: likelihood, Min: ScaleMin, Max: ScaleMax}
	}
	if impact < ScaleMin || impact > ScaleMax {
		return 0, &domain.RangeError{Field: "impact", Value: impact, Min: ScaleMin, Max: ScaleMax}
	}
	return likelihood * impact, nil
}

// SeverityBand maps a 1..25 score to its band. Boundaries are
// inclusive-lower: 15 is Critical, 10 is High, 6 is Medium.
func SeverityBand(score int) string {
	switch {
	case score >= 15:
		return BandCritical
	case score >= 10:
		return BandHigh
	case score >= 6:
		return BandMedium
	default:
		return BandLow
	}
}

// ResidualScore falls back to the inherent likelihood and impact for any
// residual figure not yet entered, so an unmitigated risk reads at its
// inherent score rather than a spurious low residual.
func ResidualScore(assessment RiskAssessment) int {
	likelihood := assessment.Likelihood
	if assessment.ResidualLikelihood != nil {
		likelihood = *assessment.ResidualLikelihood
	}
	impact := assessment.Impact
	if assessment.ResidualImpact != nil {
		impact = *assessment.ResidualImpact
	}
	return likelihood * impact
}

// Validate checks an assessment's user-editable fields before it is
// created or updated.
func Validate(assessment RiskAssessment) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(assessment.Title) == "" {
		verr.Add("title", "must not be empty")
	}
	if assessment.Likelihood < ScaleMin || assessment.Likelihood > ScaleMax {
		verr.Add("likelihood", "must be between 1 and 5")
	}
	if assessment.Impact < ScaleMin || assessment.Impact > ScaleMax {
		verr.Add("impact", "must be between 1 and 5")
	}
	if assessment.ResidualLikelihood != nil && (*assessment.ResidualLikelihood < ScaleMin || *assessment.ResidualLikelihood > ScaleMax) {
		verr.Add("residualLikelihood", "must be between 1 and 5")
	}
	if assessment.ResidualImpact != nil && (*assessment.ResidualImpact < ScaleMin || *assessment.ResidualImpact > ScaleMax) {
		verr.Add("residualImpact", "must be between 1 and 5")
	}
	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}
