package commands

import (
	"fmt"
	"io"
	"maps"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapgate/internal/cli/config"
	"github.com/leapstack-labs/leapgate/internal/state"
	"github.com/leapstack-labs/leapgate/pkg/discovery"
	"github.com/leapstack-labs/leapgate/pkg/lint"
	"github.com/leapstack-labs/leapgate/pkg/lint/rules"
	"github.com/leapstack-labs/leapgate/pkg/report"
	"github.com/leapstack-labs/leapgate/pkg/syntax/treesitter"
)

// CheckOptions holds options for the check command that have no config key.
type CheckOptions struct {
	RuleSeverity []string // name=level pairs
	SkipSymlinks bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Analyze a source tree and enforce the quality gate",
		Long: `Recursively analyze every source file under path (default: the configured
root) with the active rule set, then hand the violations to each reporter.

The command exits with status 0 when no violations were found, 1 when the
quality gate failed, and 2 on configuration or runtime errors. Files that
cannot be read or parsed are logged and skipped; with --strict they also fail
the gate.`,
		Example: `  # Check the current directory with every rule
  leapgate check

  # Check src/ with two rules and write a JSON report
  leapgate check src --rules noAny,noEval --reporters console,json

  # Downgrade a rule and record the run in the history database
  leapgate check --rule-severity noAny=warning --reporters console,history

  # Analyze TSX files with a progress bar
  leapgate check --extension .tsx --progress`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *config.FromContext(cmd.Context())
			if len(args) > 0 {
				cfg.Root = args[0]
			}
			return runCheck(cmd, &cfg, opts)
		},
	}

	cmd.Flags().String("extension", config.DefaultExtension, "File extension to analyze")
	cmd.Flags().StringSlice("rules", nil, "Rules to run, in order (default: all)")
	cmd.Flags().StringSlice("disable", nil, "Rules to skip")
	cmd.Flags().StringSliceVar(&opts.RuleSeverity, "rule-severity", nil, "Severity overrides as name=level (error|warning)")
	cmd.Flags().StringSlice("reporters", nil, "Reporters to use: console, json, table, history")
	cmd.Flags().String("output-file", config.DefaultOutputFile, "Output path of the json reporter")
	cmd.Flags().StringSlice("ignore", nil, "Glob patterns of paths to skip, relative to the root")
	cmd.Flags().Int("workers", 0, "Files analyzed concurrently (0 = number of CPUs)")
	cmd.Flags().Int("max-depth", config.DefaultMaxDepth, "Maximum directory depth below the root")
	cmd.Flags().String("history-db", config.DefaultHistoryDB, "SQLite database of the history reporter")
	cmd.Flags().Bool("strict", false, "Fail the gate when any file could not be analyzed")
	cmd.Flags().Bool("progress", false, "Show a progress bar on stderr")
	cmd.Flags().BoolVar(&opts.SkipSymlinks, "skip-symlinks", false, "Do not follow symbolic links")

	_ = cmd.RegisterFlagCompletionFunc("reporters", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return report.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// parseRuleSeverity merges name=level pairs over base.
func parseRuleSeverity(base map[string]string, pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(base)+len(pairs))
	maps.Copy(out, base)
	for _, pair := range pairs {
		name, level, ok := strings.Cut(pair, "=")
		name, level = strings.TrimSpace(name), strings.TrimSpace(level)
		if !ok || name == "" {
			return nil, lint.ConfigErrorf("invalid --rule-severity %q (expected name=level)", pair)
		}
		if _, valid := lint.ParseSeverity(level); !valid {
			return nil, lint.ConfigErrorf("invalid severity %q for rule %s (expected error or warning)", level, name)
		}
		out[name] = level
	}
	return out, nil
}

func runCheck(cmd *cobra.Command, cfg *config.Config, opts *CheckOptions) error {
	ctx := cmd.Context()
	logger := config.GetLogger(ctx)
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	severity, err := parseRuleSeverity(cfg.Severity, opts.RuleSeverity)
	if err != nil {
		return err
	}
	cfg.Severity = severity

	// Resolve everything that can fail on configuration before any file is read.
	provider := treesitter.New()
	if !provider.SupportsExtension(cfg.Extension) {
		logger.Warn("extension is parsed with the TypeScript grammar", "extension", cfg.Extension)
	}
	registry, err := rules.NewRegistry(provider)
	if err != nil {
		return err
	}
	active, err := registry.Build(cfg.LintConfig())
	if err != nil {
		return err
	}
	if err := report.ValidateNames(cfg.Reporters); err != nil {
		return err
	}

	errStyles := report.StylesFor(stderr)
	reportOpts := report.Options{
		Stdout:     stdout,
		Stderr:     stderr,
		Styles:     report.StylesFor(stdout),
		ErrStyles:  &errStyles,
		OutputFile: cfg.OutputFile,
	}
	if cfg.HasReporter("history") {
		store := state.NewSQLiteStore(logger)
		if err := store.Open(cfg.HistoryDB); err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer func() { _ = store.Close() }()
		reportOpts.Store = store
	}
	reporters, err := report.NewAll(cfg.Reporters, reportOpts)
	if err != nil {
		return err
	}

	walker := discovery.New(cfg.Extension)
	walker.Ignore = cfg.Ignore
	walker.MaxDepth = cfg.MaxDepth
	walker.SkipSymlinks = opts.SkipSymlinks
	walker.Logger = logger

	runner := &lint.Runner{
		Walker:   walker,
		Analyzer: lint.NewAnalyzer(active...),
		Workers:  cfg.Workers,
		Logger:   logger,
	}
	var bar *progressbar.ProgressBar
	if cfg.Progress {
		runner.OnStart = func(total int) { bar = newProgressBar(stderr, total) }
		runner.OnFileDone = func(string) { _ = bar.Add(1) }
	}

	ruleNames := make([]string, len(active))
	for i, r := range active {
		ruleNames[i] = r.Name()
	}
	logger.Debug("starting analysis", "root", cfg.Root, "rules", ruleNames, "reporters", cfg.Reporters)

	startedAt := time.Now()
	result, err := runner.Run(ctx, cfg.Root)
	if err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	info := report.RunInfo{
		Root:        cfg.Root,
		Rules:       ruleNames,
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
		Files:       len(result.Files),
		Diagnostics: len(result.Diagnostics),
	}
	for _, r := range reporters {
		if d, ok := r.(report.RunDescriber); ok {
			d.Describe(info)
		}
		if err := r.Report(ctx, result.Violations); err != nil {
			return fmt.Errorf("reporter %s failed: %w", r.Name(), err)
		}
	}

	if n := len(result.DiagnosticPaths()); n > 0 {
		unparseable := len(result.DiagnosticPaths(lint.DiagnosticParse))
		_, _ = fmt.Fprintf(stderr, "%d %s not fully analyzed (%d unparseable)\n", n, plural(n, "path"), unparseable)
	}

	if !result.Passed() {
		return &ExitError{Code: ExitViolations}
	}
	if cfg.Strict && len(result.Diagnostics) > 0 {
		return &ExitError{Code: ExitViolations, Err: fmt.Errorf("quality gate failed: analysis incomplete (--strict)")}
	}
	return nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}
