package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapgate/pkg/lint"
	"github.com/leapstack-labs/leapgate/pkg/lint/rules"
	"github.com/leapstack-labs/leapgate/pkg/syntax/treesitter"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format string // Output format: text, json
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available rules",
		Long: `List every registered rule with its default severity and description.

Pass a rule name to show its full documentation, including rationale and
examples.`,
		Example: `  # List all rules
  leapgate rules

  # Show details for a specific rule
  leapgate rules noEval

  # Output as JSON
  leapgate rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := rules.NewRegistry(treesitter.New())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				return showRule(cmd.OutOrStdout(), registry, args[0], opts)
			}
			return listRules(cmd.OutOrStdout(), registry, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func listRules(w io.Writer, registry *lint.Registry, opts *RulesOptions) error {
	infos := registry.Infos()
	switch opts.Format {
	case "json":
		return writeJSON(w, infos)
	case "text", "":
	default:
		return lint.ConfigErrorf("unknown format %q (expected text or json)", opts.Format)
	}

	titleCaser := cases.Title(language.English)
	t := newTable(w)
	t.AppendHeader(table.Row{"Rule", "Severity", "Description"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, titleCaser.String(info.DefaultSeverity.String()), info.Description})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d %s", len(infos), plural(len(infos), "rule"))})
	t.Render()
	return nil
}

func showRule(w io.Writer, registry *lint.Registry, name string, opts *RulesOptions) error {
	rule, err := registry.Lookup(name)
	if err != nil {
		return err
	}
	info := lint.GetRuleInfo(rule)

	switch opts.Format {
	case "json":
		return writeJSON(w, info)
	case "text", "":
	default:
		return lint.ConfigErrorf("unknown format %q (expected text or json)", opts.Format)
	}

	titleCaser := cases.Title(language.English)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", info.Name)
	fmt.Fprintf(&b, "Severity:    %s\n", titleCaser.String(info.DefaultSeverity.String()))
	fmt.Fprintf(&b, "Description: %s\n", info.Description)
	if info.Rationale != "" {
		fmt.Fprintf(&b, "\nRationale:\n  %s\n", info.Rationale)
	}
	if info.BadExample != "" {
		fmt.Fprintf(&b, "\nBad:\n%s\n", indent(info.BadExample))
	}
	if info.GoodExample != "" {
		fmt.Fprintf(&b, "\nGood:\n%s\n", indent(info.GoodExample))
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
