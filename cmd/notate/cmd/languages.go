package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Lists languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newConverter()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tGROUPERS\tFLAT")
		for _, name := range c.Languages() {
			l, err := c.Language(name)
			if err != nil {
				return err
			}
			groupers := strings.Join(l.Groupers, " ")
			if groupers == "" {
				groupers = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%v\n", name, groupers, l.FlatPrecedence)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
