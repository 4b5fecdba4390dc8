package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapgate/internal/cli/config"
	"github.com/leapstack-labs/leapgate/pkg/lint/rules"
)

// InitFileName is the file written by the init command.
const InitFileName = ".leapgate.yaml"

// initFile is the on-disk layout of a generated config file.
type initFile struct {
	Root       string            `yaml:"root"`
	Extension  string            `yaml:"extension"`
	Rules      []string          `yaml:"rules"`
	Severity   map[string]string `yaml:"severity,omitempty"`
	Reporters  []string          `yaml:"reporters"`
	OutputFile string            `yaml:"output_file"`
	Ignore     []string          `yaml:"ignore"`
	Workers    int               `yaml:"workers"`
	MaxDepth   int               `yaml:"max_depth"`
	HistoryDB  string            `yaml:"history_db"`
	Strict     bool              `yaml:"strict"`
}

const initHeader = `# leapgate configuration.
# Values here are overridden by LEAPGATE_* environment variables and by flags.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a leapgate config file",
		Long: `Write a .leapgate.yaml with the default settings and every built-in rule
enabled, ready to be edited.`,
		Example: `  # Initialize in current directory
  leapgate init

  # Initialize in another directory
  leapgate init web/

  # Force overwrite existing config
  leapgate init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path, err := runInit(dir, force)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, InitFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to check %s: %w", path, err)
	}

	f, err := os.Create(path) //nolint:gosec // path is built from a user-chosen directory
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := writeDefaultConfig(f); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}

// writeDefaultConfig encodes the default settings as YAML.
func writeDefaultConfig(w io.Writer) error {
	d := config.Default()
	var names []string
	for _, def := range rules.Defs() {
		names = append(names, def.Name)
	}

	if _, err := io.WriteString(w, initHeader); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(initFile{
		Root:       d.Root,
		Extension:  d.Extension,
		Rules:      names,
		Reporters:  d.Reporters,
		OutputFile: d.OutputFile,
		Ignore:     d.Ignore,
		Workers:    d.Workers,
		MaxDepth:   d.MaxDepth,
		HistoryDB:  d.HistoryDB,
		Strict:     d.Strict,
	}); err != nil {
		return err
	}
	return enc.Close()
}
