package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// validation behavior, keep the CLI flags in internal/cli/validate.go
	// in sync.
	Targeting Targeting
	Rules     Rules
	Output    Output
	Runtime   Runtime
}

type Targeting struct {
	// Paths lists the package root directories to validate (see --path).
	// Values may be provided as repeated flags and/or comma-separated lists.
	Paths []string

	// AppConfig is an explicit app.config file passed to selftest runs via
	// $APP_CONFIG_FILE (see --app-config).
	AppConfig string

	// DryRun resolves the package set and prints the validation plan
	// without gathering evidence or evaluating rules (see --dry-run).
	DryRun bool
}

type Rules struct {
	// Selector selects which rules to run.
	// Empty means all rules; otherwise it is a comma-separated list of rule
	// IDs and/or group names (see --rules).
	Selector string

	// Set provides per-rule option overrides from the CLI.
	// Entries are of the form ruleID.option=value (repeatable;
	// comma-separated accepted; see --set).
	Set []string
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see
	// --console-format). Allowed values: text, json, ndjson.
	ConsoleFormat string

	// ConsoleFilterSeverity filters console output by issue severity (see
	// --console-filter-severity). Allowed values: PASS, INFO, WARNING,
	// CRITICAL.
	ConsoleFilterSeverity []string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out
	// file extension.
	OutFormat string

	// Emit writes an additional structured event stream to stdout (see
	// --emit). Allowed values: json, ndjson.
	Emit []string

	// NoConsole suppresses the console sink (see --no-console).
	// Use with --emit/--out/--report for machine-readable output.
	NoConsole bool
}

type Runtime struct {
	// Concurrency controls parallelism for evidence gathering across
	// packages (see --concurrency). Must be >= 1.
	Concurrency int

	// Timeout is the global timeout for the run (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// SelftestTimeout bounds a single selftest subprocess (see
	// --selftest-timeout).
	SelftestTimeout time.Duration

	// ToxTimeout bounds a single tox subprocess (see --tox-timeout).
	ToxTimeout time.Duration

	// Python is the Python interpreter executable used to inspect the
	// environment (see --python).
	Python string

	// Verbose enables more detailed diagnostics, including subprocess
	// logging.
	Verbose bool
}

func New() *Config {
	return &Config{
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency:     3,
			Timeout:         30 * time.Minute,
			SelftestTimeout: 2 * time.Minute,
			ToxTimeout:      10 * time.Minute,
			Python:          "python",
		},
	}
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Targeting.Paths = splitCommaList(c.Targeting.Paths)
	c.Rules.Set = splitCommaList(c.Rules.Set)

	// Targeting validation
	if len(c.Targeting.Paths) == 0 {
		return errors.New("at least one --path must be provided")
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: text, json, ndjson")
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	for i, sev := range c.Output.ConsoleFilterSeverity {
		v := strings.ToUpper(strings.TrimSpace(sev))
		if v != "PASS" && v != "INFO" && v != "WARNING" && v != "CRITICAL" {
			return fmt.Errorf("unsupported --console-filter-severity value: %s (must be one of: PASS, INFO, WARNING, CRITICAL)", sev)
		}
		c.Output.ConsoleFilterSeverity[i] = v
	}

	for _, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v == "" {
			return errors.New("--emit must be one of: json, ndjson")
		}
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", v)
		}
	}

	// Runtime validation
	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	if c.Runtime.SelftestTimeout < 0 {
		return errors.New("--selftest-timeout must be >= 0")
	}
	if c.Runtime.ToxTimeout < 0 {
		return errors.New("--tox-timeout must be >= 0")
	}
	if strings.TrimSpace(c.Runtime.Python) == "" {
		c.Runtime.Python = "python"
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	// Rule option syntax validation (rule.option=value)
	if len(c.Rules.Set) > 0 {
		if _, err := ParseRuleOptionAssignments(c.Rules.Set); err != nil {
			return err
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseRuleOptionAssignments parses values of the form "ruleID.option=value".
//
// Notes:
// - Entries may be provided via repeated flags and/or comma-delimited lists.
// - This validates syntax only (no validation of rule IDs or option names).
// - Empty values are allowed ("rule.option=").
func ParseRuleOptionAssignments(values []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, raw := range splitCommaList(values) {
		left, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected rule.option=value", raw)
		}
		left = strings.TrimSpace(left)
		value = strings.TrimSpace(value)
		ruleID, opt, ok := strings.Cut(left, ".")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected rule.option=value", raw)
		}
		ruleID = strings.TrimSpace(ruleID)
		opt = strings.TrimSpace(opt)
		if ruleID == "" || opt == "" {
			return nil, fmt.Errorf("invalid --set entry %q: expected non-empty rule and option", raw)
		}
		if _, ok := out[ruleID]; !ok {
			out[ruleID] = make(map[string]string)
		}
		out[ruleID][opt] = value
	}
	return out, nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
