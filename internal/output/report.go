package output

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"

	"pkgmedic/internal/rules"
)

// ReportSink accumulates the whole run and writes a Markdown report on
// Close: a per-package summary table followed by every finding.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	issues       []rules.Issue
	packages     map[string]struct{}
	exitCode     int
	haveExitCode bool
	started      time.Time
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path:     path,
		file:     f,
		packages: make(map[string]struct{}),
		started:  time.Now(),
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case rules.Issue:
		s.issues = append(s.issues, t)
		if t.Package != "" {
			s.packages[t.Package] = struct{}{}
		}
	case Event:
		if t.Package != "" {
			s.packages[t.Package] = struct{}{}
		}
		if t.Type == "run.finished" {
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

type packageStats struct {
	pass, info, warn, critical int
}

func (p packageStats) verdict() string {
	if p.critical > 0 {
		return "FAIL"
	}
	return "PASS"
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for name := range s.packages {
		names = append(names, name)
	}
	sort.Strings(names)

	perPackage := make(map[string]*packageStats)
	for _, name := range names {
		perPackage[name] = &packageStats{}
	}
	for _, issue := range s.issues {
		stats, ok := perPackage[issue.Package]
		if !ok {
			continue
		}
		switch issue.Severity {
		case rules.SeverityCritical:
			stats.critical++
		case rules.SeverityWarn:
			stats.warn++
		case rules.SeverityInfo:
			stats.info++
		default:
			stats.pass++
		}
	}

	var sb strings.Builder
	sb.WriteString("# Package Validation Report\n\n")
	fmt.Fprintf(&sb, "Generated %s\n\n", s.started.Format(time.RFC3339))
	if s.haveExitCode {
		fmt.Fprintf(&sb, "Exit code: %d\n\n", s.exitCode)
	}

	sb.WriteString("## Summary\n\n```\n")
	table := tablewriter.NewWriter(&sb)
	table.Header([]string{"Package", "Verdict", "Critical", "Warning", "Info", "Pass"})
	var data [][]string
	for _, name := range names {
		stats := perPackage[name]
		data = append(data, []string{
			name,
			stats.verdict(),
			strconv.Itoa(stats.critical),
			strconv.Itoa(stats.warn),
			strconv.Itoa(stats.info),
			strconv.Itoa(stats.pass),
		})
	}
	if err := table.Bulk(data); err != nil {
		_ = s.file.Close()
		return err
	}
	if err := table.Render(); err != nil {
		_ = s.file.Close()
		return err
	}
	sb.WriteString("```\n\n")

	sb.WriteString("## Findings\n\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "### %s\n\n", name)
		found := false
		for _, issue := range s.issues {
			if issue.Package != name || issue.Passed() {
				continue
			}
			found = true
			fmt.Fprintf(&sb, "- **%s** `%s`: %s\n", issue.Severity, issue.RuleID, issue.Description)
			if issue.Solution != "" {
				fmt.Fprintf(&sb, "  - %s\n", strings.ReplaceAll(issue.Solution, "\n", "\n    "))
			}
		}
		if !found {
			sb.WriteString("No findings.\n")
		}
		sb.WriteString("\n")
	}

	if _, err := s.file.WriteString(sb.String()); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
