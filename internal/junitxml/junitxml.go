// Package junitxml reads JUnit XML reports produced by test runners.
//
// The schema is small and fixed, so the report is decoded with
// encoding/xml directly.
package junitxml

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Summary aggregates a test report across all suites.
type Summary struct {
	Tests    int
	Failures int
	Errors   int
	Skipped  int

	// FailureDetails holds the message and output of each failed or
	// errored case, for display.
	FailureDetails []string
}

// Passed reports whether every executed test succeeded.
func (s Summary) Passed() bool {
	return s.Failures == 0 && s.Errors == 0
}

type suites struct {
	XMLName xml.Name `xml:"testsuites"`
	Suites  []suite  `xml:"testsuite"`
}

type suite struct {
	XMLName xml.Name   `xml:"testsuite"`
	Cases   []testCase `xml:"testcase"`
}

type testCase struct {
	Name      string   `xml:"name,attr"`
	ClassName string   `xml:"classname,attr"`
	Failure   *failure `xml:"failure"`
	Error     *failure `xml:"error"`
	Skipped   *failure `xml:"skipped"`
}

type failure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

// ParseReport reads a JUnit XML file. Both a <testsuites> root and a
// bare <testsuite> root are accepted.
func ParseReport(path string) (Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("read test report: %w", err)
	}
	return Parse(raw)
}

// Parse decodes JUnit XML report content.
func Parse(raw []byte) (Summary, error) {
	var all []suite

	var multi suites
	if err := xml.Unmarshal(raw, &multi); err == nil {
		all = multi.Suites
	} else {
		var single suite
		if serr := xml.Unmarshal(raw, &single); serr != nil {
			return Summary{}, fmt.Errorf("decode test report: %w", err)
		}
		all = []suite{single}
	}

	var sum Summary
	for _, s := range all {
		for _, tc := range s.Cases {
			sum.Tests++
			switch {
			case tc.Failure != nil:
				sum.Failures++
				sum.FailureDetails = append(sum.FailureDetails, caseDetail(tc, tc.Failure))
			case tc.Error != nil:
				sum.Errors++
				sum.FailureDetails = append(sum.FailureDetails, caseDetail(tc, tc.Error))
			case tc.Skipped != nil:
				sum.Skipped++
			}
		}
	}
	return sum, nil
}

func caseDetail(tc testCase, f *failure) string {
	name := tc.Name
	if tc.ClassName != "" {
		name = tc.ClassName + "." + tc.Name
	}
	msg := strings.TrimSpace(f.Message)
	if msg == "" {
		msg = strings.TrimSpace(f.Body)
	}
	if msg == "" {
		return name
	}
	return name + ": " + msg
}
