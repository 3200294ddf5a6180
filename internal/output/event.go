package output

import "pkgmedic/internal/rules"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - package.started
// - rule.issue
// - package.finished
// - run.finished
//
// JSON mode remains an aggregate of rules.Issue values.
type Event struct {
	Type    string `json:"type"`
	Package string `json:"package,omitempty"`
	*rules.Issue
	Packages int  `json:"packages,omitempty"`
	Rules    int  `json:"rules,omitempty"`
	Failed   bool `json:"failed,omitempty"`
	ExitCode int  `json:"exit_code,omitempty"`
}

func eventFromIssue(i rules.Issue) Event {
	return Event{Type: "rule.issue", Package: i.Package, Issue: &i}
}
