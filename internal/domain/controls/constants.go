package controls

const (
	StatusPending      = "pending"
	StatusCompliant    = "compliant"
	StatusNonCompliant = "non_compliant"
)

func ValidComplianceStatus(status string) bool {
	return status == StatusCompliant || status == StatusNonCompliant
}
