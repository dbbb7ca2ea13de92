package controls

import "time"

type ControlInstance struct {
	ID                 string     `json:"id"`
	LibraryControlID   string     `json:"libraryControlId"`
	StandardID         string     `json:"standardId"`
	StandardName       string     `json:"standardName"`
	Code               string     `json:"code"`
	Title              string     `json:"title"`
	ReviewIntervalDays int        `json:"reviewIntervalDays"`
	ActivatedAt        time.Time  `json:"activatedAt"`
	LastReviewedAt     *time.Time `json:"lastReviewedAt"`
	NextReviewDue      time.Time  `json:"nextReviewDueDate"`
	Status             string     `json:"status"`
	Active             bool       `json:"active"`
	Owner              string     `json:"owner,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type EvidenceEntry struct {
	ID                string    `json:"id"`
	ControlInstanceID string    `json:"controlInstanceId"`
	ComplianceStatus  string    `json:"complianceStatus"`
	Notes             string    `json:"notes"`
	EvidenceLink      string    `json:"evidenceLink,omitempty"`
	SubmittedBy       string    `json:"submittedBy"`
	SubmittedAt       time.Time `json:"submittedAt"`
}

type EvidenceInput struct {
	ComplianceStatus string `json:"complianceStatus"`
	Notes            string `json:"notes"`
	EvidenceLink     string `json:"evidenceLink"`
}
