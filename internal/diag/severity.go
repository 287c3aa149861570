package diag

import "fmt"

// Severity orders diagnostics. Only SevError stops table emission; model
// conflicts are always SevWarning.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// MarshalText lets JSON output carry the upper-case name.
func (s Severity) MarshalText() ([]byte, error) {
	if s > SevError {
		return nil, fmt.Errorf("invalid severity %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "INFO":
		*s = SevInfo
	case "WARNING":
		*s = SevWarning
	case "ERROR":
		*s = SevError
	default:
		return fmt.Errorf("unknown severity %q", b)
	}
	return nil
}
