package dsr

import (
	"errors"
	"testing"
	"time"

	"grc/internal/domain"
)

func openRequest(status string) Request {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return Request{
		ID:           "dsr-1",
		RequestType:  TypeAccess,
		Status:       status,
		CreatedAt:    created,
		DeadlineDate: Deadline(created),
	}
}

func TestTransitionDirectCompleteFails(t *testing.T) {
	_, err := Transition(openRequest(StatusSubmitted), TransitionInput{Status: StatusCompleted, ResponseSummary: "done"}, time.Now().UTC())
	var terr *domain.InvalidTransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestTransitionCompleteRequiresSummary(t *testing.T) {
	_, err := Transition(openRequest(StatusInProgress), TransitionInput{Status: StatusCompleted}, time.Now().UTC())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestTransitionComplete(t *testing.T) {
	asOf := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	updated, err := Transition(openRequest(StatusInProgress), TransitionInput{Status: StatusCompleted, ResponseSummary: "export delivered to subject"}, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if updated.CompletedDate == nil || !updated.CompletedDate.Equal(asOf) {
		t.Fatalf("expected completedDate %v, got %v", asOf, updated.CompletedDate)
	}
	if updated.ResponseSummary != "export delivered to subject" {
		t.Fatalf("unexpected summary %q", updated.ResponseSummary)
	}
}

func TestTransitionRejectRequiresReason(t *testing.T) {
	for _, from := range []string{StatusSubmitted, StatusUnderReview, StatusInProgress} {
		_, err := Transition(openRequest(from), TransitionInput{Status: StatusRejected, RejectionReason: "  "}, time.Now().UTC())
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError for %s -> rejected, got %v", from, err)
		}
	}
}

func TestTransitionReject(t *testing.T) {
	updated, err := Transition(openRequest(StatusUnderReview), TransitionInput{Status: StatusRejected, RejectionReason: "identity could not be verified"}, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", updated.Status)
	}
	if updated.RejectionReason == "" {
		t.Fatal("expected rejection reason to be recorded")
	}
}

func TestTerminalStatusesAreImmutable(t *testing.T) {
	targets := []string{StatusSubmitted, StatusUnderReview, StatusInProgress, StatusCompleted, StatusRejected}
	for _, from := range []string{StatusCompleted, StatusRejected} {
		for _, to := range targets {
			_, err := Transition(openRequest(from), TransitionInput{Status: to, ResponseSummary: "x", RejectionReason: "y"}, time.Now().UTC())
			var terr *domain.InvalidTransitionError
			if !errors.As(err, &terr) {
				t.Fatalf("expected InvalidTransitionError for %s -> %s, got %v", from, to, err)
			}
		}
	}
}

func TestTransitionDoesNotMoveDeadline(t *testing.T) {
	request := openRequest(StatusSubmitted)
	deadline := request.DeadlineDate

	updated, err := Transition(request, TransitionInput{Status: StatusUnderReview}, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.DeadlineDate.Equal(deadline) {
		t.Fatalf("deadline moved from %v to %v", deadline, updated.DeadlineDate)
	}
}
