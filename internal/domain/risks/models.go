package risks

import "time"

type RiskAssessment struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Category           string     `json:"category,omitempty"`
	Owner              string     `json:"owner,omitempty"`
	Likelihood         int        `json:"likelihood"`
	Impact             int        `json:"impact"`
	ResidualLikelihood *int       `json:"residualLikelihood"`
	ResidualImpact     *int       `json:"residualImpact"`
	MitigationPlan     string     `json:"mitigationPlan,omitempty"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// ScoredRisk is an assessment plus its derived scores. Scores are always
// recomputed from the inputs, never stored, so they cannot drift.
type ScoredRisk struct {
	RiskAssessment
	RiskScore         int    `json:"riskScore"`
	SeverityBand      string `json:"severityBand"`
	ResidualRiskScore int    `json:"residualRiskScore"`
	ResidualBand      string `json:"residualSeverityBand"`
}

func Scored(assessment RiskAssessment) ScoredRisk {
	inherent := assessment.Likelihood * assessment.Impact
	residual := ResidualScore(assessment)
	return ScoredRisk{
		RiskAssessment:    assessment,
		RiskScore:         inherent,
		SeverityBand:      SeverityBand(inherent),
		ResidualRiskScore: residual,
		ResidualBand:      SeverityBand(residual),
	}
}
