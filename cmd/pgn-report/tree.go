package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lgbarn/pgn-report-go/internal/grammar"
	"github.com/lgbarn/pgn-report-go/internal/input"
)

func newTreeCmd(a *app) *cobra.Command {
	var ruleName string

	cmd := &cobra.Command{
		Use:   "tree [FILE]",
		Short: "Print the parse tree of an input",
		Long: `Match an input against one grammar rule and print the resulting parse
tree, one node per line with its byte span and value.

Rules: ` + strings.Join(grammar.RuleNames(), ", "),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, ok := grammar.RuleByName(ruleName)
			if !ok {
				return fmt.Errorf("unknown rule %q", ruleName)
			}
			name := input.StdinName
			if len(args) == 1 {
				name = args[0]
			}

			text, err := input.ReadAll(name)
			if err != nil {
				return err
			}
			tree, err := grammar.Parse(rule, text)
			if err != nil {
				return err
			}
			a.logger.Debug("parse tree built", zap.String("input", name), zap.Stringer("rule", rule))
			return tree.Format(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&ruleName, "rule", "r", grammar.RuleGame.String(), "grammar rule to match")
	return cmd
}
