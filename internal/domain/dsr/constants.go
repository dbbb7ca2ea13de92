package dsr

// StatutoryDays is the GDPR Art. 12(3) response period.
const StatutoryDays = 30

const (
	TypeAccess        = "access"
	TypeErasure       = "erasure"
	TypeRectification = "rectification"
	TypePortability   = "portability"
	TypeRestriction   = "restriction"
	TypeObjection     = "objection"
)

const (
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under_review"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
	StatusRejected    = "rejected"
)

const (
	BandOverdue = "Overdue"
	BandDueSoon = "Due soon"
	BandOnTrack = "On track"
)

// DueSoonDays is the remaining-day threshold below which an open request
// reads as "Due soon".
const DueSoonDays = 7

var RequestTypes = []string{TypeAccess, TypeErasure, TypeRectification, TypePortability, TypeRestriction, TypeObjection}

func ValidRequestType(requestType string) bool {
	for _, t := range RequestTypes {
		if t == requestType {
			return true
		}
	}
	return false
}

func Terminal(status string) bool {
	return status == StatusCompleted || status == StatusRejected
}
