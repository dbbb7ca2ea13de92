package dashboard

import (
	"testing"
	"time"

	"grc/internal/domain/controls"
	"grc/internal/domain/dsr"
	"grc/internal/domain/risks"
)

func control(standardID, standardName, status string, active bool, due time.Time) controls.ControlInstance {
	return controls.ControlInstance{
		StandardID:         standardID,
		StandardName:       standardName,
		ReviewIntervalDays: 90,
		NextReviewDue:      due,
		Status:             status,
		Active:             active,
	}
}

func TestSummarizeEmptyCollection(t *testing.T) {
	summary := Summarize(nil, time.Now().UTC())
	if summary.Total != 0 || summary.Overdue != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if summary.CompliancePercentage != 0 {
		t.Fatalf("expected 0%% for empty collection, got %v", summary.CompliancePercentage)
	}
}

func TestSummarize(t *testing.T) {
	asOf := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	future := asOf.AddDate(0, 0, 30)
	past := asOf.AddDate(0, 0, -4)

	instances := []controls.ControlInstance{
		control("iso", "ISO 27001", controls.StatusCompliant, true, future),
		control("iso", "ISO 27001", controls.StatusNonCompliant, true, past),
		control("iso", "ISO 27001", controls.StatusPending, true, past),
		control("soc2", "SOC 2", controls.StatusCompliant, false, past),
	}

	summary := Summarize(instances, asOf)
	if summary.Total != 4 {
		t.Fatalf("expected total 4, got %d", summary.Total)
	}
	if summary.Activated != 3 {
		t.Fatalf("expected activated 3, got %d", summary.Activated)
	}
	if summary.Compliant != 2 || summary.NonCompliant != 1 {
		t.Fatalf("unexpected compliant/nonCompliant: %+v", summary)
	}
	// the deactivated control is past due but never counts as overdue
	if summary.Overdue != 2 {
		t.Fatalf("expected overdue 2, got %d", summary.Overdue)
	}
	if summary.CompliancePercentage != 50 {
		t.Fatalf("expected 50%%, got %v", summary.CompliancePercentage)
	}
}

func TestProgressByStandardOrdering(t *testing.T) {
	due := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	instances := []controls.ControlInstance{
		control("gdpr", "GDPR", controls.StatusCompliant, true, due),
		control("gdpr", "GDPR", controls.StatusCompliant, true, due),
		control("iso", "ISO 27001", controls.StatusCompliant, true, due),
		control("iso", "ISO 27001", controls.StatusPending, true, due),
		control("soc2", "SOC 2", controls.StatusCompliant, true, due),
		control("soc2", "SOC 2", controls.StatusNonCompliant, true, due),
	}

	progress := ProgressByStandard(instances)
	if len(progress) != 3 {
		t.Fatalf("expected 3 standards, got %d", len(progress))
	}
	if progress[0].Standard != "GDPR" || progress[0].Percentage != 100 {
		t.Fatalf("expected GDPR first at 100%%, got %+v", progress[0])
	}
	// ISO 27001 and SOC 2 tie at 50%; name ascending breaks the tie
	if progress[1].Standard != "ISO 27001" || progress[2].Standard != "SOC 2" {
		t.Fatalf("expected deterministic tie-break, got %s then %s", progress[1].Standard, progress[2].Standard)
	}

	again := ProgressByStandard(instances)
	for i := range progress {
		if progress[i] != again[i] {
			t.Fatalf("ordering not stable across runs at index %d", i)
		}
	}
}

func TestRiskMatrixHasAllCells(t *testing.T) {
	assessments := []risks.RiskAssessment{
		{Likelihood: 5, Impact: 5},
		{Likelihood: 5, Impact: 5},
		{Likelihood: 1, Impact: 3},
		{Likelihood: 9, Impact: 1}, // out of scale, skipped
	}

	cells := RiskMatrix(assessments)
	if len(cells) != 25 {
		t.Fatalf("expected 25 cells, got %d", len(cells))
	}

	counts := map[[2]int]int{}
	for _, cell := range cells {
		counts[[2]int{cell.Likelihood, cell.Impact}] = cell.Count
	}
	if counts[[2]int{5, 5}] != 2 {
		t.Fatalf("expected cell (5,5) count 2, got %d", counts[[2]int{5, 5}])
	}
	if counts[[2]int{1, 3}] != 1 {
		t.Fatalf("expected cell (1,3) count 1, got %d", counts[[2]int{1, 3}])
	}
	if counts[[2]int{2, 2}] != 0 {
		t.Fatalf("expected empty cell count 0, got %d", counts[[2]int{2, 2}])
	}
}

func TestSummarizeDSR(t *testing.T) {
	asOf := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	requests := []dsr.Request{
		{RequestType: dsr.TypeAccess, Status: dsr.StatusSubmitted, DeadlineDate: asOf.AddDate(0, 0, 20)},
		{RequestType: dsr.TypeAccess, Status: dsr.StatusInProgress, DeadlineDate: asOf.AddDate(0, 0, 3)},
		{RequestType: dsr.TypeErasure, Status: dsr.StatusUnderReview, DeadlineDate: asOf.AddDate(0, 0, -2)},
		{RequestType: dsr.TypeErasure, Status: dsr.StatusCompleted, DeadlineDate: asOf.AddDate(0, 0, -30)},
	}

	summary := SummarizeDSR(requests, asOf)
	if summary.Open != 3 {
		t.Fatalf("expected 3 open, got %d", summary.Open)
	}
	if summary.Overdue != 1 {
		t.Fatalf("expected 1 overdue, got %d", summary.Overdue)
	}
	if summary.DueSoon != 1 {
		t.Fatalf("expected 1 due soon, got %d", summary.DueSoon)
	}
	if summary.ByType[dsr.TypeAccess] != 2 || summary.ByType[dsr.TypeErasure] != 2 {
		t.Fatalf("unexpected byType: %+v", summary.ByType)
	}
	if _, ok := summary.ByType[dsr.TypePortability]; !ok {
		t.Fatal("expected every request type present in byType")
	}
}
