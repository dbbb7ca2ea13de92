package risks

import (
	"errors"
	"testing"

	"grc/internal/domain"
)

func TestTransitionTable(t *testing.T) {
	allowed := [][2]string{
		{StatusIdentified, StatusAssessed},
		{StatusIdentified, StatusClosed},
		{StatusAssessed, StatusMitigated},
		{StatusAssessed, StatusAccepted},
		{StatusAssessed, StatusClosed},
		{StatusMitigated, StatusAccepted},
		{StatusMitigated, StatusClosed},
		{StatusAccepted, StatusClosed},
	}
	for _, edge := range allowed {
		if !CanTransition(edge[0], edge[1]) {
			t.Fatalf("expected %s -> %s to be allowed", edge[0], edge[1])
		}
	}

	denied := [][2]string{
		{StatusIdentified, StatusMitigated},
		{StatusIdentified, StatusAccepted},
		{StatusMitigated, StatusAssessed},
		{StatusAccepted, StatusMitigated},
		{StatusClosed, StatusIdentified},
		{StatusClosed, StatusAssessed},
		{StatusClosed, StatusClosed},
	}
	for _, edge := range denied {
		if CanTransition(edge[0], edge[1]) {
			t.Fatalf("expected %s -> %s to be denied", edge[0], edge[1])
		}
	}
}

func TestTransitionClosedIsTerminal(t *testing.T) {
	assessment := RiskAssessment{Status: StatusClosed}
	for _, to := range []string{StatusIdentified, StatusAssessed, StatusMitigated, StatusAccepted, StatusClosed} {
		_, err := Transition(assessment, to)
		var terr *domain.InvalidTransitionError
		if !errors.As(err, &terr) {
			t.Fatalf("expected InvalidTransitionError for closed -> %s, got %v", to, err)
		}
	}
}

func TestTransitionUpdatesStatus(t *testing.T) {
	assessment := RiskAssessment{Status: StatusIdentified}
	updated, err := Transition(assessment, StatusAssessed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusAssessed {
		t.Fatalf("expected assessed, got %s", updated.Status)
	}
}
