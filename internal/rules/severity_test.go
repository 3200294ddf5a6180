package rules

import (
	"encoding/json"
	"testing"
)

func TestSeverityString(t *testing.T) {
	cases := []struct {
		sev  Severity
		want string
	}{
		{SeverityDebug, "PASS"},
		{SeverityInfo, "INFO"},
		{SeverityWarn, "WARNING"},
		{SeverityCritical, "CRITICAL"},
	}
	for _, c := range cases {
		if got := c.sev.String(); got != c.want {
			t.Errorf("Severity(%d).String() = %q, want %q", int(c.sev), got, c.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	for _, name := range []string{"PASS", "pass", " Debug ", "INFO", "warning", "WARN", "critical"} {
		if _, err := ParseSeverity(name); err != nil {
			t.Errorf("ParseSeverity(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("Expected error for unknown severity")
	}
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	issue := Issue{RuleID: "r", Package: "p", Severity: SeverityWarn, Description: "d"}

	raw, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Issue
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Severity != SeverityWarn {
		t.Errorf("Expected WARNING severity, got %s", decoded.Severity)
	}
}

func TestIssuePassed(t *testing.T) {
	if !(Issue{Severity: SeverityDebug}).Passed() {
		t.Error("Debug issue should pass")
	}
	for _, sev := range []Severity{SeverityInfo, SeverityWarn, SeverityCritical} {
		if (Issue{Severity: sev}).Passed() {
			t.Errorf("%s issue should not pass", sev)
		}
	}
}
