package dsr

import (
	"testing"
	"time"
)

func TestDeadline(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := Deadline(created)
	want := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	if !deadline.Equal(want) {
		t.Fatalf("expected deadline %v, got %v", want, deadline)
	}
}

func TestDaysRemaining(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	request := Request{Status: StatusSubmitted, CreatedAt: created, DeadlineDate: Deadline(created)}

	asOf := time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)
	if got := DaysRemaining(request, asOf); got != 6 {
		t.Fatalf("expected 6 days remaining, got %d", got)
	}

	asOf = time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC)
	if got := DaysRemaining(request, asOf); got != -4 {
		t.Fatalf("expected 4 days overdue, got %d", got)
	}
}

func TestDaysRemainingRoundsPartialDaysUp(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	request := Request{Status: StatusSubmitted, CreatedAt: created, DeadlineDate: Deadline(created)}

	asOf := time.Date(2024, 1, 30, 15, 0, 0, 0, time.UTC)
	if got := DaysRemaining(request, asOf); got != 1 {
		t.Fatalf("expected partial day to round to 1, got %d", got)
	}
}

func TestUrgencyBand(t *testing.T) {
	cases := map[int]string{
		-10: BandOverdue,
		-1:  BandOverdue,
		0:   BandDueSoon,
		6:   BandDueSoon,
		7:   BandDueSoon,
		8:   BandOnTrack,
		30:  BandOnTrack,
	}
	for remaining, want := range cases {
		if got := UrgencyBand(remaining); got != want {
			t.Fatalf("expected band %s for %d days, got %s", want, remaining, got)
		}
	}
}

func TestUrgencySuppressedForTerminalStatuses(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []string{StatusCompleted, StatusRejected} {
		request := Request{Status: status, CreatedAt: created, DeadlineDate: Deadline(created)}
		if _, ok := Urgency(request, asOf); ok {
			t.Fatalf("expected no urgency for %s request", status)
		}
	}

	open := Request{Status: StatusInProgress, CreatedAt: created, DeadlineDate: Deadline(created)}
	band, ok := Urgency(open, asOf)
	if !ok || band != BandOverdue {
		t.Fatalf("expected Overdue for open request, got %q ok=%v", band, ok)
	}
}

func TestViewScenario(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	request := Request{Status: StatusSubmitted, CreatedAt: created, DeadlineDate: Deadline(created)}

	view := View(request, time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC))
	if view.DaysRemaining != 6 {
		t.Fatalf("expected 6 days remaining, got %d", view.DaysRemaining)
	}
	if view.UrgencyBand != BandDueSoon {
		t.Fatalf("expected Due soon, got %s", view.UrgencyBand)
	}
	if view.Overdue {
		t.Fatal("expected not overdue")
	}
}
