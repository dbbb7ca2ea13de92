package controls

import (
	"errors"
	"testing"
	"time"

	"grc/internal/domain"
)

func activatedInstance(intervalDays int, activated time.Time) ControlInstance {
	inst := ControlInstance{
		ID:                 "ctl-1",
		ReviewIntervalDays: intervalDays,
		ActivatedAt:        activated,
		Status:             StatusPending,
		Active:             true,
	}
	inst.NextReviewDue = NextDueDate(inst)
	return inst
}

func TestNextDueDateBeforeFirstReview(t *testing.T) {
	activated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inst := activatedInstance(90, activated)

	due := NextDueDate(inst)
	want := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, due)
	}
}

func TestNextDueDateAfterReview(t *testing.T) {
	activated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inst := activatedInstance(30, activated)
	reviewed := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	inst.LastReviewedAt = &reviewed

	due := NextDueDate(inst)
	want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, due)
	}
}

func TestIsOverdue(t *testing.T) {
	activated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inst := activatedInstance(90, activated)

	asOf := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	if !IsOverdue(inst, asOf) {
		t.Fatalf("expected control due %v to be overdue at %v", inst.NextReviewDue, asOf)
	}

	asOf = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if IsOverdue(inst, asOf) {
		t.Fatal("expected control not overdue on its due date")
	}
}

func TestIsOverdueIgnoresDeactivated(t *testing.T) {
	inst := activatedInstance(30, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	inst.Active = false

	if IsOverdue(inst, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("deactivated control must never be overdue")
	}
}

func TestApplyEvidenceAdvancesSchedule(t *testing.T) {
	inst := activatedInstance(90, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	before := inst.NextReviewDue

	asOf := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	updated, err := ApplyEvidence(inst, EvidenceInput{ComplianceStatus: StatusCompliant, Notes: "quarterly access review complete"}, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusCompliant {
		t.Fatalf("expected status compliant, got %s", updated.Status)
	}
	if updated.LastReviewedAt == nil || !updated.LastReviewedAt.Equal(asOf) {
		t.Fatalf("expected lastReviewedAt %v, got %v", asOf, updated.LastReviewedAt)
	}
	want := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	if !updated.NextReviewDue.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, updated.NextReviewDue)
	}
	if !updated.NextReviewDue.After(before) {
		t.Fatal("expected evidence to strictly advance the due date")
	}
}

func TestApplyEvidenceTwiceLastWriteWins(t *testing.T) {
	inst := activatedInstance(30, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	first := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	updated, err := ApplyEvidence(inst, EvidenceInput{ComplianceStatus: StatusCompliant, Notes: "first pass"}, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	updated, err = ApplyEvidence(updated, EvidenceInput{ComplianceStatus: StatusNonCompliant, Notes: "second pass"}, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusNonCompliant {
		t.Fatalf("expected second submission to win, got %s", updated.Status)
	}
	want := second.AddDate(0, 0, 30)
	if !updated.NextReviewDue.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, updated.NextReviewDue)
	}
}

func TestApplyEvidenceRejectsEmptyNotes(t *testing.T) {
	inst := activatedInstance(30, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := ApplyEvidence(inst, EvidenceInput{ComplianceStatus: StatusCompliant, Notes: "   "}, time.Now().UTC())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestApplyEvidenceRejectsDeactivatedControl(t *testing.T) {
	inst := activatedInstance(30, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	inst.Active = false

	_, err := ApplyEvidence(inst, EvidenceInput{ComplianceStatus: StatusCompliant, Notes: "late evidence"}, time.Now().UTC())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestApplyEvidenceRejectsUnknownStatus(t *testing.T) {
	inst := activatedInstance(30, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := ApplyEvidence(inst, EvidenceInput{ComplianceStatus: "partial", Notes: "notes"}, time.Now().UTC())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
