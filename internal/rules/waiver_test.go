package rules

import (
	"testing"

	"pkgmedic/internal/pypkg"
)

func TestWaiverIsWaived(t *testing.T) {
	var w Waiver
	w.Configure(map[string]string{
		"waive.packages": "fn_known_bad, fn_other",
		"waive.patterns": "fn_internal_*",
	})

	cases := []struct {
		name   string
		waived bool
		reason string
	}{
		{"fn_known_bad", true, "waive.packages"},
		{"FN_Known_Bad", true, "waive.packages"},
		{"fn_other", true, "waive.packages"},
		{"fn_internal_tools", true, "waive.patterns"},
		{"fn_external_tools", false, ""},
		{"fn_something", false, ""},
	}
	for _, c := range cases {
		waived, reason := w.IsWaived(&pypkg.Package{Name: c.name})
		if waived != c.waived || reason != c.reason {
			t.Errorf("IsWaived(%s) = (%v, %q), want (%v, %q)", c.name, waived, reason, c.waived, c.reason)
		}
	}
}

func TestWaiverZeroValue(t *testing.T) {
	var w Waiver
	if waived, _ := w.IsWaived(&pypkg.Package{Name: "anything"}); waived {
		t.Error("Zero-value waiver should not waive anything")
	}
	if waived, _ := w.IsWaived(nil); waived {
		t.Error("Nil package should not be waived")
	}
}

func TestWaiverCheckIssue(t *testing.T) {
	var w Waiver
	w.Configure(map[string]string{"waive.packages": "fn_waived"})

	pkg := &pypkg.Package{Name: "fn_waived"}
	failing := CriticalIssue(pkg, "some-rule", "some check", "broken", "fix it")

	got := w.CheckIssue(pkg, failing)
	if !got.Passed() {
		t.Fatalf("Expected waived issue to pass, got severity %s", got.Severity)
	}
	if got.Solution != "" {
		t.Errorf("Waived issue should carry no solution, got %q", got.Solution)
	}

	// Passing issues are returned untouched.
	passing := PassIssue(pkg, "some-rule", "some check", "all good")
	if got := w.CheckIssue(pkg, passing); got != passing {
		t.Errorf("Passing issue should be unchanged, got %+v", got)
	}

	// Unwaived packages keep their failure.
	other := &pypkg.Package{Name: "fn_other"}
	otherFail := CriticalIssue(other, "some-rule", "some check", "broken", "fix it")
	if got := w.CheckIssue(other, otherFail); got.Passed() {
		t.Error("Unwaived failure should stay a failure")
	}
}
