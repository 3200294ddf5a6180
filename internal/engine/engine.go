package engine

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pkgmedic/internal/config"
	"pkgmedic/internal/data"
	"pkgmedic/internal/execx"
	"pkgmedic/internal/gatherer"
	"pkgmedic/internal/output"
	"pkgmedic/internal/pypkg"
	"pkgmedic/internal/rules"
)

func exitCodeForRun(fatal, partial, findings bool) int {
	// Exit code contract (CLI spec):
	// 0 = clean run, no critical findings
	// 1 = critical findings detected
	// 2 = partial failure (some evidence or rules errored)
	// 3 = fatal error (validation did not run)
	if fatal {
		return 3
	}
	if partial {
		return 2
	}
	if findings {
		return 1
	}
	return 0
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterSeverity)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(os.Stdout, emit)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

// applyRuleOptionsIfAny applies per-rule configuration supplied via repeated
// --set flags.
//
// --set values are parsed as "ruleID.option=value" and routed to the matching
// rule's Configure method (only rules that implement rules.ConfigurableRule).
//
// Example:
//
//	pkgmedic validate --path ./my_app --set selftest-runtime-installed.min.version=44.0.0
func applyRuleOptionsIfAny(cfg *config.Config) error {
	if len(cfg.Rules.Set) == 0 {
		return nil
	}

	assignments, err := config.ParseRuleOptionAssignments(cfg.Rules.Set)
	if err != nil {
		return err
	}

	all := rules.List()
	byID := make(map[string]rules.Rule, len(all))
	for _, r := range all {
		byID[r.ID()] = r
	}

	for ruleID, opts := range assignments {
		r, ok := byID[ruleID]
		if !ok {
			return fmt.Errorf("unknown rule ID %q", ruleID)
		}
		cr, ok := r.(rules.ConfigurableRule)
		if !ok {
			return fmt.Errorf("rule %q does not support options", ruleID)
		}

		allowed := make(map[string]struct{})
		for _, opt := range cr.Options() {
			allowed[opt.Name] = struct{}{}
		}
		for name := range opts {
			if _, ok := allowed[name]; !ok {
				return fmt.Errorf("unknown option %q for rule %q", name, ruleID)
			}
		}

		if err := cr.Configure(opts); err != nil {
			return fmt.Errorf("configure rule %q: %w", ruleID, err)
		}
	}

	return nil
}

// issueIfEvidenceMissingOrFailed returns a synthetic issue when required
// evidence is missing or failed to gather.
//
// Evidence is gathered ahead of time by the scheduler and placed into the
// package's data.EvidenceContext; if a required key is missing from the
// context (or failed to gather), the rule can't be evaluated normally.
func issueIfEvidenceMissingOrFailed(pkg *pypkg.Package, r rules.Rule, ev data.EvidenceContext, deps []data.EvidenceKey, depErrs map[data.EvidenceKey]error) (rules.Issue, bool) {
	var missing []string
	var failed []string

	for _, d := range deps {
		if _, ok := ev.Get(d); ok {
			continue
		}
		if depErrs != nil {
			if depErr := depErrs[d]; depErr != nil {
				failed = append(failed, fmt.Sprintf("%s: %v", d, depErr))
				continue
			}
		}
		missing = append(missing, string(d))
	}

	if len(failed) > 0 {
		msg := strings.Join(failed, "; ")
		if len(failed) == 1 {
			if _, after, ok := strings.Cut(failed[0], ": "); ok {
				msg = after
			}
		}
		return rules.CriticalIssue(pkg, r.ID(), r.Title(),
			fmt.Sprintf("unable to gather required evidence: %s", msg), ""), true
	}

	if len(missing) > 0 {
		return rules.CriticalIssue(pkg, r.ID(), r.Title(),
			fmt.Sprintf("missing evidence: %v", missing), ""), true
	}

	return rules.Issue{}, false
}

type Engine struct {
	Runner execx.Runner
	Log    *zap.Logger

	// schedulerExecute is a test seam for streaming execution.
	// If nil, Engine uses the real gatherer + scheduler.
	schedulerExecute func(ctx context.Context, cfg *config.Config, plan *ValidationPlan) (<-chan PackageExecutionResult, <-chan error)
}

func NewEngine(runner execx.Runner, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		Runner: runner,
		Log:    log,
	}
}

func (e *Engine) executePlanStream(ctx context.Context, cfg *config.Config, plan *ValidationPlan) (<-chan PackageExecutionResult, <-chan error) {
	if e.schedulerExecute != nil {
		return e.schedulerExecute(ctx, cfg, plan)
	}

	g := gatherer.NewGatherer(e.Runner, gatherer.Options{
		AppConfigPath:   cfg.Targeting.AppConfig,
		SelftestTimeout: cfg.Runtime.SelftestTimeout,
		ToxTimeout:      cfg.Runtime.ToxTimeout,
		Python:          cfg.Runtime.Python,
	}, e.Log)

	scheduler, err := NewScheduler(g, cfg.Runtime.Concurrency)
	if err != nil {
		resCh := make(chan PackageExecutionResult)
		errCh := make(chan error, 1)
		close(resCh)
		errCh <- err
		close(errCh)
		return resCh, errCh
	}
	return scheduler.Execute(ctx, plan)
}

// evaluateStreamingResults receives streamed per-package execution results
// (gathered evidence + any gather errors), validates that each rule's required
// evidence is present, executes rule logic, and forwards issues/events to the
// configured output sinks.
//
// Rules inside a sequential group form a chain: once a rule in such a group
// does not pass (or errors), the remaining rules of that group are skipped for
// the package, since they assume the earlier step succeeded.
func (e *Engine) evaluateStreamingResults(ctx context.Context, cfg *config.Config, plan *ValidationPlan, resCh <-chan PackageExecutionResult, outMgr *output.Manager) (hasErrors bool, hasFindings bool) {
	for res := range resCh {
		pp := plan.PackagePlans[res.PkgIndex]
		if pp == nil {
			hasErrors = true
			continue
		}

		pkgName := rules.PackageName(pp.Pkg)
		_ = outMgr.Write(output.Event{Type: "package.started", Package: pkgName})

		ev := res.Data
		if ev == nil {
			ev = data.NewMapEvidenceContext(map[data.EvidenceKey]any{})
		}

		var stoppedGroup rules.Group
		stopped := false

		for _, rule := range pp.Rules {
			if stopped && rule.Group() == stoppedGroup {
				e.Log.Debug("skipping rule after failed sequential step",
					zap.String("package", pkgName),
					zap.String("rule", rule.ID()),
					zap.String("group", string(rule.Group())))
				continue
			}
			stopped = false

			stopGroup := func() {
				if rule.Group().Sequential() {
					stopped = true
					stoppedGroup = rule.Group()
				}
			}

			deps, err := rule.Dependencies(ctx, pp.Pkg)
			if err != nil {
				_ = outMgr.Write(rules.CriticalIssue(pp.Pkg, rule.ID(), rule.Title(),
					fmt.Sprintf("failed to determine evidence requirements: %v", err), ""))
				hasErrors = true
				stopGroup()
				continue
			}

			if issue, ok := issueIfEvidenceMissingOrFailed(pp.Pkg, rule, ev, deps, res.DepErrs); ok {
				_ = outMgr.Write(issue)
				hasErrors = true
				stopGroup()
				continue
			}

			// Enforce the rules contract: a rule must not read evidence keys it
			// did not declare in Dependencies(). This prevents rules from
			// implicitly relying on other rules' evidence.
			tracked := data.NewTrackingEvidenceContext(ev)
			issue, err := rule.Evaluate(ctx, pp.Pkg, tracked)
			undeclared := undeclaredEvidenceAccesses(tracked.AccessedKeys(), deps)
			if len(undeclared) > 0 {
				msg := fmt.Sprintf("rule accessed undeclared evidence: %s. Declare it in Dependencies().", strings.Join(undeclared, ", "))
				if err != nil {
					msg = fmt.Sprintf("%s (evaluation error: %v)", msg, err)
				}
				_ = outMgr.Write(rules.CriticalIssue(pp.Pkg, rule.ID(), rule.Title(), msg, ""))
				hasErrors = true
				stopGroup()
				continue
			}
			if err != nil {
				_ = outMgr.Write(rules.CriticalIssue(pp.Pkg, rule.ID(), rule.Title(),
					fmt.Sprintf("evaluation failed: %v", err), ""))
				hasErrors = true
				stopGroup()
				continue
			}

			// Backfill identifiers so output stays consistent and well-formed.
			// Rules usually care about severity + description/solution; the
			// engine already knows the package and rule ID, so we stamp them
			// here to keep sinks (ndjson/report/etc) happy.
			if issue.Package == "" {
				issue.Package = pkgName
			}
			if issue.RuleID == "" {
				issue.RuleID = rule.ID()
			}
			if issue.Name == "" {
				issue.Name = rule.Title()
			}

			if issue.Severity == rules.SeverityCritical {
				hasFindings = true
			}
			if !issue.Passed() {
				stopGroup()
			}

			_ = outMgr.Write(issue)
		}

		_ = outMgr.Write(output.Event{Type: "package.finished", Package: pkgName})
	}

	return hasErrors, hasFindings
}

func undeclaredEvidenceAccesses(accessed []data.EvidenceKey, declared []data.EvidenceKey) []string {
	if len(accessed) == 0 {
		return nil
	}
	decl := make(map[data.EvidenceKey]struct{}, len(declared))
	for _, d := range declared {
		decl[d] = struct{}{}
	}

	var out []string
	for _, k := range accessed {
		if _, ok := decl[k]; ok {
			continue
		}
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

func discoverPackages(cfg *config.Config) ([]*pypkg.Package, bool) {
	if !cfg.Output.NoConsole {
		fmt.Fprintln(os.Stderr, "Resolving packages...")
	}
	pkgs := make([]*pypkg.Package, 0, len(cfg.Targeting.Paths))
	for _, path := range cfg.Targeting.Paths {
		pkg, err := pypkg.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving package at %s: %v\n", path, err)
			return nil, false
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, true
}

func maybeDryRun(cfg *config.Config, pkgs []*pypkg.Package, selectedRules []rules.Rule) (int, bool) {
	if !cfg.Targeting.DryRun {
		return 0, false
	}

	fmt.Println("Resolved packages:")
	for _, pkg := range pkgs {
		fmt.Printf("%s (%s)\n", pkg.Name, pkg.Path)
	}
	fmt.Println("Selected rules:")
	for _, r := range selectedRules {
		fmt.Printf("%s [%s]\n", r.ID(), r.Group())
	}
	return 0, true
}

func resolveAndConfigureRules(cfg *config.Config) ([]rules.Rule, bool) {
	if !cfg.Output.NoConsole {
		fmt.Fprintln(os.Stderr, "Resolving rules...")
	}
	selectedRules, err := rules.Resolve(cfg.Rules.Selector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving rules: %v\n", err)
		return nil, false
	}

	if err := applyRuleOptionsIfAny(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring rules: %v\n", err)
		return nil, false
	}

	if !cfg.Output.NoConsole {
		fmt.Fprintf(os.Stderr, "Selected %d rules.\n", len(selectedRules))
	}
	return selectedRules, true
}

func buildPlanForPackages(ctx context.Context, cfg *config.Config, pkgs []*pypkg.Package, selectedRules []rules.Rule) (*ValidationPlan, bool) {
	if !cfg.Output.NoConsole {
		fmt.Fprintln(os.Stderr, "Planning validation...")
	}
	plan := NewValidationPlan()
	for i, pkg := range pkgs {
		if err := plan.AddPackage(ctx, i, pkg, selectedRules); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding package %s to plan: %v\n", pkg.Name, err)
			return nil, false
		}
	}
	return plan, true
}

func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	if cfg.Runtime.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Runtime.Timeout)
		defer cancel()
	}

	pkgs, ok := discoverPackages(cfg)
	if !ok {
		return exitCodeForRun(true, false, false)
	}
	if !cfg.Output.NoConsole {
		fmt.Fprintf(os.Stderr, "Found %d packages.\n", len(pkgs))
	}

	selectedRules, ok := resolveAndConfigureRules(cfg)
	if !ok {
		return exitCodeForRun(true, false, false)
	}

	if code, ok := maybeDryRun(cfg, pkgs, selectedRules); ok {
		return code
	}

	plan, ok := buildPlanForPackages(ctx, cfg, pkgs, selectedRules)
	if !ok {
		return exitCodeForRun(true, false, false)
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output sinks: %v\n", err)
		return exitCodeForRun(true, false, false)
	}
	defer outMgr.Close()

	_ = outMgr.Write(output.Event{Type: "run.started", Packages: len(plan.PackagePlans), Rules: len(selectedRules)})

	resCh, errCh := e.executePlanStream(ctx, cfg, plan)

	hasErrors, hasFindings := e.evaluateStreamingResults(ctx, cfg, plan, resCh, outMgr)

	var schedErr error
	// Drain scheduler errors; we only need to know whether any fatal error occurred (keep one non-nil error).
	for err := range errCh {
		if err != nil {
			schedErr = err
		}
	}
	if schedErr != nil {
		fmt.Fprintf(os.Stderr, "Error during evidence gathering: %v\n", schedErr)
	}

	fatal := schedErr != nil
	code := exitCodeForRun(fatal, hasErrors, hasFindings)
	_ = outMgr.Write(output.Event{Type: "run.finished", ExitCode: code})
	return code
}
