package dsr

import "time"

type Request struct {
	ID              string     `json:"id"`
	SubjectName     string     `json:"subjectName"`
	SubjectEmail    string     `json:"subjectEmail"`
	RequestType     string     `json:"requestType"`
	Details         string     `json:"details,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	DeadlineDate    time.Time  `json:"deadlineDate"`
	CompletedDate   *time.Time `json:"completedDate"`
	ResponseSummary string     `json:"responseSummary,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

// RequestView carries the deadline indicators derived for display.
// urgencyBand is omitted for terminal requests.
type RequestView struct {
	Request
	DaysRemaining int    `json:"daysRemaining"`
	UrgencyBand   string `json:"urgencyBand,omitempty"`
	Overdue       bool   `json:"overdue"`
}

func View(request Request, asOf time.Time) RequestView {
	view := RequestView{
		Request:       request,
		DaysRemaining: DaysRemaining(request, asOf),
	}
	if band, ok := Urgency(request, asOf); ok {
		view.UrgencyBand = band
		view.Overdue = band == BandOverdue
	}
	return view
}

type TransitionInput struct {
	Status          string `json:"status"`
	ResponseSummary string `json:"responseSummary"`
	RejectionReason string `json:"rejectionReason"`
}
