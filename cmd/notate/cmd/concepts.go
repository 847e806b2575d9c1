package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var conceptsAll bool

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "Lists concepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newConverter()
		if err != nil {
			return err
		}

		reg := c.Registry()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPARENT\tPATTERN")
		for _, cn := range reg.Concepts() {
			if cn.Grouping && !conceptsAll {
				continue
			}

			pattern := cn.Pattern.Text
			if cn.IsTerminal() {
				pattern = "/" + pattern + "/"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", cn.Name, cn.Parent, pattern)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(conceptsCmd)
	conceptsCmd.Flags().BoolVarP(&conceptsAll, "all", "a", false, "include grouping concepts")
}
