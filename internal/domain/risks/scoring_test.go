package risks

import (
	"errors"
	"testing"

	"grc/internal/domain"
)

func TestScore(t *testing.T) {
	for likelihood := 1; likelihood <= 5; likelihood++ {
		for impact := 1; impact <= 5; impact++ {
			score, err := Score(likelihood, impact)
			if err != nil {
				t.Fatalf("unexpected error for (%d,%d): %v", likelihood, impact, err)
			}
			if score != likelihood*impact {
				t.Fatalf("expected %d for (%d,%d), got %d", likelihood*impact, likelihood, impact, score)
			}
		}
	}
}

func TestScoreOutOfRange(t *testing.T) {
	cases := [][2]int{{0, 3}, {6, 3}, {3, 0}, {3, 6}, {-1, 2}}
	for _, c := range cases {
		_, err := Score(c[0], c[1])
		var rerr *domain.RangeError
		if !errors.As(err, &rerr) {
			t.Fatalf("expected RangeError for (%d,%d), got %v", c[0], c[1], err)
		}
	}
}

func TestSeverityBandBoundaries(t *testing.T) {
	cases := map[int]string{
		1:  BandLow,
		5:  BandLow,
		6:  BandMedium,
		9:  BandMedium,
		10: BandHigh,
		14: BandHigh,
		15: BandCritical,
		25: BandCritical,
	}
	for score, want := range cases {
		if got := SeverityBand(score); got != want {
			t.Fatalf("expected band %s for score %d, got %s", want, score, got)
		}
	}
}

func TestResidualScoreFallsBackToInherent(t *testing.T) {
	assessment := RiskAssessment{Likelihood: 4, Impact: 5}
	if got := ResidualScore(assessment); got != 20 {
		t.Fatalf("expected residual 20 before mitigation, got %d", got)
	}
}

func TestResidualScoreUsesResidualFigures(t *testing.T) {
	two := 2
	assessment := RiskAssessment{Likelihood: 5, Impact: 5, ResidualLikelihood: &two, ResidualImpact: &two}

	scored := Scored(assessment)
	if scored.RiskScore != 25 {
		t.Fatalf("expected inherent 25, got %d", scored.RiskScore)
	}
	if scored.SeverityBand != BandCritical {
		t.Fatalf("expected Critical, got %s", scored.SeverityBand)
	}
	if scored.ResidualRiskScore != 4 {
		t.Fatalf("expected residual 4, got %d", scored.ResidualRiskScore)
	}
	if scored.ResidualBand != BandLow {
		t.Fatalf("expected residual band Low, got %s", scored.ResidualBand)
	}
}

func TestResidualScorePartialFallback(t *testing.T) {
	three := 3
	assessment := RiskAssessment{Likelihood: 5, Impact: 4, ResidualLikelihood: &three}
	// residual impact unset, inherit inherent impact 4
	if got := ResidualScore(assessment); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	err := Validate(RiskAssessment{Title: "Vendor data breach", Likelihood: 3, Impact: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = Validate(RiskAssessment{Title: " ", Likelihood: 0, Impact: 9})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(verr.Issues))
	}
}
