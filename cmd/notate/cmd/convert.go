package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	convertFrom string
	convertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert [expression]...",
	Short: "Converts expressions",
	Long: `Converts expressions given as arguments, or read from stdin line by line.
Use "ast" as a language name to read or write JSON trees.

Examples:
  notate convert "2+3"                     # infix to putdown
  notate convert --to prefix "10+20x40"
  notate convert --from latex --to ast '\frac{1}{2}'`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertFrom, "from", "f", "", "source language (default from config)")
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "", "target language (default from config)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	c, err := newConverter()
	if err != nil {
		return err
	}

	from, to := convertFrom, convertTo
	if from == "" {
		from = cfg.Tables.DefaultFrom
	}
	if to == "" {
		to = cfg.Tables.DefaultTo
	}

	lines := args
	if len(lines) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				lines = append(lines, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("cannot read input: %w", err)
		}
	}

	failed := 0
	for _, line := range lines {
		res, ok, err := c.Convert(from, to, line)
		if err != nil {
			return err
		}

		if !ok {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "cannot parse %q as %s\n", line, from)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)
	}

	if failed > 0 {
		return errors.New("some expressions could not be parsed")
	}
	return nil
}
