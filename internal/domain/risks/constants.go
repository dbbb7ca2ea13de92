package risks

const (
	StatusIdentified = "identified"
	StatusAssessed   = "assessed"
	StatusMitigated  = "mitigated"
	StatusAccepted   = "accepted"
	StatusClosed     = "closed"
)

const (
	BandLow      = "Low"
	BandMedium   = "Medium"
	BandHigh     = "High"
	BandCritical = "Critical"
)

const (
	ScaleMin = 1
	ScaleMax = 5
)
