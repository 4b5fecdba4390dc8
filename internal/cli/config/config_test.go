package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapgate/pkg/lint"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func checkFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("extension", DefaultExtension, "")
	fs.StringSlice("rules", nil, "")
	fs.StringSlice("reporters", nil, "")
	fs.String("output-file", "", "")
	fs.Int("workers", 0, "")
	fs.String("root", "", "")
	fs.Bool("strict", false, "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, ".ts", cfg.Extension)
	assert.Equal(t, []string{"console"}, cfg.Reporters)
	assert.Equal(t, "violations.json", cfg.OutputFile)
	assert.Equal(t, []string{"**/node_modules/**"}, cfg.Ignore)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, ".leapgate/history.db", cfg.HistoryDB)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.Rules)
	assert.Empty(t, GetConfigFileUsed())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".leapgate.yaml"), `
extension: .tsx
rules: [noEval, noAny]
reporters: [console, json]
severity:
  noDebugger: error
workers: 4
`)
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, ".tsx", cfg.Extension)
	assert.Equal(t, []string{"noEval", "noAny"}, cfg.Rules)
	assert.Equal(t, []string{"console", "json"}, cfg.Reporters)
	assert.Equal(t, map[string]string{"noDebugger": "error"}, cfg.Severity)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, filepath.Join(dir, ".leapgate.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_LegacyAnalyzerrc(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".analyzerrc"), `{
  "rules": ["noAny"],
  "reporters": ["json"],
  "outputFile": "out/report.json"
}`)
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"noAny"}, cfg.Rules)
	assert.Equal(t, []string{"json"}, cfg.Reporters)
	assert.Equal(t, "out/report.json", cfg.OutputFile)
}

func TestLoadConfig_PrefersLeapgateYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".analyzerrc"), `{"extension": ".js"}`)
	writeFile(t, filepath.Join(dir, ".leapgate.yml"), "extension: .tsx\n")
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, ".tsx", cfg.Extension)
}

func TestLoadConfig_UpwardSearchAnchorsPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".leapgate.yaml"), "root: src\noutput_file: reports/v.json\n")
	sub := filepath.Join(dir, "packages", "app")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	t.Chdir(sub)
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("..", "..", "src"), cfg.Root)
	assert.Equal(t, filepath.Join("..", "..", "reports", "v.json"), cfg.OutputFile)
	assert.Equal(t, filepath.Join("..", "..", ".leapgate", "history.db"), cfg.HistoryDB)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "strict: true\n")
	ResetConfig()

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	_, err := LoadConfig("nope.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file nope.yaml")
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".leapgate.yaml"), "extension: .mts\nworkers: 2\nrules: [noAny]\n")
	t.Setenv("LEAPGATE_WORKERS", "6")
	t.Setenv("LEAPGATE_RULES", "noEval,noDebugger")
	ResetConfig()

	flags := checkFlags()
	require.NoError(t, flags.Parse([]string{"--extension", ".cts"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, ".cts", cfg.Extension, "flag beats file")
	assert.Equal(t, 6, cfg.Workers, "env beats file")
	assert.Equal(t, []string{"noEval", "noDebugger"}, cfg.Rules, "env list is split on commas")
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".leapgate.yaml"), "extension: .tsx\n")
	ResetConfig()

	flags := checkFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, ".tsx", cfg.Extension)
}

func TestLoadConfig_FlagPathsStayRelativeToWorkDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".leapgate.yaml"), "root: src\n")
	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	t.Chdir(sub)
	ResetConfig()

	flags := checkFlags()
	require.NoError(t, flags.Parse([]string{"--root", "lib", "--output-file", "v.json"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "lib", cfg.Root)
	assert.Equal(t, "v.json", cfg.OutputFile)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"empty extension", func(c *Config) { c.Extension = " " }, "extension is required"},
		{"empty root", func(c *Config) { c.Root = "" }, "root is required"},
		{"no reporters", func(c *Config) { c.Reporters = nil }, "at least one reporter"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers must not be negative"},
		{"negative depth", func(c *Config) { c.MaxDepth = -3 }, "max_depth must not be negative"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log_format must be text or json"},
		{"bad severity", func(c *Config) { c.Severity = map[string]string{"noAny": "fatal"} }, `invalid severity "fatal" for rule noAny`},
		{"warn severity", func(c *Config) { c.Severity = map[string]string{"noAny": "warn"} }, ""},
		{"bad ignore pattern", func(c *Config) { c.Ignore = []string{"src/[a-"} }, "invalid ignore pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, lint.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_LintConfig(t *testing.T) {
	cfg := Default()
	cfg.Rules = []string{"noAny", "noEval"}
	cfg.Disable = []string{"noEval"}
	cfg.Severity = map[string]string{"noAny": "warning"}

	lc := cfg.LintConfig()
	assert.Equal(t, []string{"noAny", "noEval"}, lc.Rules)
	assert.True(t, lc.IsDisabled("noEval"))
	assert.Equal(t, lint.SeverityWarning, lc.GetSeverity("noAny", lint.SeverityError))
}

func TestConfig_HasReporter(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.HasReporter("console"))
	assert.False(t, cfg.HasReporter("history"))
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Default(), FromContext(ctx))
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{Extension: ".tsx"}
	assert.Same(t, cfg, FromContext(WithConfig(ctx, cfg)))
}
