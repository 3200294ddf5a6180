package rules

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity classifies an Issue. The zero value is the passing level.
type Severity int

const (
	// SeverityDebug marks a check that passed: nothing to fix.
	SeverityDebug Severity = iota

	// SeverityInfo marks an observation worth surfacing, not a defect.
	SeverityInfo

	// SeverityWarn marks a defect that should be fixed but does not block
	// the package.
	SeverityWarn

	// SeverityCritical marks a defect that must be fixed; any critical
	// issue fails the validation.
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "PASS"
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity converts a display name back into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PASS", "DEBUG":
		return SeverityDebug, nil
	case "INFO":
		return SeverityInfo, nil
	case "WARNING", "WARN":
		return SeverityWarn, nil
	case "CRITICAL":
		return SeverityCritical, nil
	default:
		return 0, fmt.Errorf("unknown severity: %q", s)
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
