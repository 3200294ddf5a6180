package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pkgmedic/internal/config"
	"pkgmedic/internal/engine"
	"pkgmedic/internal/execx"
	"pkgmedic/internal/flags"
	"pkgmedic/internal/logging"
)

var cfg = config.New()

const validateHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
	Environment-dependent checks (installed runtime version, selftest, tox)
	inspect the Python environment PkgMedic runs in. Activate the virtual
	environment the app is installed into before validating, or point
	--python at its interpreter.

	An explicit app.config for selftest runs can be provided via --app-config;
	it is passed to the subprocess as $APP_CONFIG_FILE.

  Examples:
    # macOS/Linux
    source ./venv/bin/activate
    pkgmedic validate --path ./fn_my_app

    # Explicit interpreter
    pkgmedic validate --path ./fn_my_app --python ./venv/bin/python

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasHelpSubCommands}}Additional help topics:
{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a set of app packages",
	Long: `Validate a set of app packages and report packaging defects.

PkgMedic is validate-only: it reads package files, inspects the Python
environment, and runs the package's own selftest and tests, but never mutates
the package.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --report: write a Markdown report to a file
	- --no-console: suppress the console sink (use with --emit/--out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, package.started, rule.issue, package.finished,
	run.finished).

Exit codes:
	0 = clean run, no critical findings
	1 = critical findings detected
	2 = partial failure (some evidence or rules errored)
	3 = fatal error (validation did not run)

Examples:
  # Validate one package with all rules
  pkgmedic validate --path ./fn_my_app

  # Only the static checks (no subprocesses)
  pkgmedic validate --path ./fn_my_app --rules setup,package-files

  # Selftest with an explicit app.config
  pkgmedic validate --path ./fn_my_app --app-config ./app.config

	# AI Agent: stream machine-readable events to stdout
	pkgmedic validate --path ./fn_my_app --no-console --emit ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			_ = cmd.Help()
			return
		}

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		log, err := logging.New(cfg.Runtime.Verbose)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
			os.Exit(3)
		}
		defer log.Sync() //nolint:errcheck

		runner := execx.NewRunner(log)
		eng := engine.NewEngine(runner, log)
		os.Exit(eng.Run(context.Background(), cfg))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.SetHelpTemplate(validateHelpTemplate)

	// Targeting
	validateCmd.Flags().StringSliceVar(&cfg.Targeting.Paths, flags.FlagPaths, nil, "Package root directory to validate (repeatable; comma-separated accepted)")
	validateCmd.Flags().StringVar(&cfg.Targeting.AppConfig, flags.FlagAppConfig, "", "Explicit app.config file passed to selftest runs via $APP_CONFIG_FILE")
	validateCmd.Flags().BoolVar(&cfg.Targeting.DryRun, flags.FlagDryRun, false, "Resolve packages and print the plan without validating")

	// Rules
	validateCmd.Flags().StringVar(&cfg.Rules.Selector, flags.FlagRules, "", "Rule selector expression: rule IDs and/or group names (empty = all rules)")
	validateCmd.Flags().StringSliceVar(&cfg.Rules.Set, flags.FlagSet, nil, "Per-rule options as ruleID.option=value (repeatable; comma-separated accepted)")

	// Output
	validateCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson (default: text)")
	validateCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterSeverity, flags.FlagConsoleFilterSeverity, nil, "Filter console output by severity (PASS, INFO, WARNING, CRITICAL). Comma-separated.")
	validateCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	validateCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	validateCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	validateCmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	validateCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out/--report)")

	// Runtime
	validateCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Concurrent packages during evidence gathering (default: 3)")
	validateCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout (default: 30m)")
	validateCmd.Flags().DurationVar(&cfg.Runtime.SelftestTimeout, flags.FlagSelftestTimeout, cfg.Runtime.SelftestTimeout, "Timeout for a single selftest subprocess (default: 2m)")
	validateCmd.Flags().DurationVar(&cfg.Runtime.ToxTimeout, flags.FlagToxTimeout, cfg.Runtime.ToxTimeout, "Timeout for a single tox subprocess (default: 10m)")
	validateCmd.Flags().StringVar(&cfg.Runtime.Python, flags.FlagPython, cfg.Runtime.Python, "Python interpreter used to inspect the environment (default: python)")
}
