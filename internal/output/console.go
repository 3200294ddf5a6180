package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"pkgmedic/internal/rules"
)

var severityColors = map[rules.Severity]*color.Color{
	rules.SeverityDebug:    color.New(color.FgGreen),
	rules.SeverityInfo:     color.New(color.FgCyan),
	rules.SeverityWarn:     color.New(color.FgYellow),
	rules.SeverityCritical: color.New(color.FgRed, color.Bold),
}

type ConsoleSink struct {
	writer            io.Writer
	format            string // "text", "json", "ndjson"
	mu                sync.Mutex
	issues            []rules.Issue // For JSON array output
	allowedSeverities map[string]bool
}

func NewConsoleSink(w io.Writer, format string, filterSeverities []string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}

	if len(filterSeverities) > 0 {
		s.allowedSeverities = make(map[string]bool)
		for _, sev := range filterSeverities {
			s.allowedSeverities[strings.ToUpper(sev)] = true
		}
	}

	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	// Apply filtering if configured
	if len(s.allowedSeverities) > 0 {
		if i, ok := v.(rules.Issue); ok {
			if !s.allowedSeverities[i.Severity.String()] {
				return nil
			}
		}
	}

	switch s.format {
	case "json":
		i, ok := v.(rules.Issue)
		if !ok {
			// Ignore non-issue events in JSON console mode.
			return nil
		}
		s.issues = append(s.issues, i)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case rules.Issue:
			e := eventFromIssue(t)
			if err := encoder.Encode(e); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		i, ok := v.(rules.Issue)
		if !ok {
			// Ignore events in text mode.
			return nil
		}
		label := i.Severity.String()
		if c, ok := severityColors[i.Severity]; ok {
			label = c.Sprint(label)
		}
		if _, err := fmt.Fprintf(s.writer, "[%s] %s: %s - %s", label, i.Package, i.RuleID, i.Description); err != nil {
			return err
		}
		if i.Solution != "" {
			if _, err := fmt.Fprintf(s.writer, "\n\t%s", strings.ReplaceAll(i.Solution, "\n", "\n\t")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(s.writer); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.issues); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
