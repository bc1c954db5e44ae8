package domain

// Status is the three-state qualitative classification shared by the scoring
// engine and the module calculators.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// Valid reports whether the status is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusGreen, StatusYellow, StatusRed:
		return true
	}
	return false
}

// ClassifyScore maps a 0-100 domain score to a traffic-light status.
// Thresholds are inclusive: 70 classifies green, 40 classifies yellow.
func ClassifyScore(score int) Status {
	switch {
	case score >= 70:
		return StatusGreen
	case score >= 40:
		return StatusYellow
	default:
		return StatusRed
	}
}

// Color returns the presentation hex color for a status. Display collaborators
// consume this; it carries no core logic.
func (s Status) Color() string {
	switch s {
	case StatusGreen:
		return "#10B981"
	case StatusYellow:
		return "#F59E0B"
	case StatusRed:
		return "#EF4444"
	default:
		return "#9CA3AF"
	}
}
