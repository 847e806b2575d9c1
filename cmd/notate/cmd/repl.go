package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/ava12/notation/config"
	"github.com/ava12/notation/converter"
)

var replWatch bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Converts expressions interactively",
	Long: `Reads expressions line by line and prints conversions.

Commands:
  :from <language>   set source language
  :to <language>     set target language
  :languages         list languages
  :quit              exit

With --watch the converter is rebuilt whenever table files change.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVarP(&replWatch, "watch", "w", false, "reload table files on change")
}

type repl struct {
	conv     atomic.Pointer[converter.Converter]
	from, to string
	out      io.Writer
}

func runRepl(cmd *cobra.Command, args []string) error {
	c, err := newConverter()
	if err != nil {
		return err
	}

	r := &repl{from: cfg.Tables.DefaultFrom, to: cfg.Tables.DefaultTo, out: cmd.OutOrStdout()}
	r.conv.Store(c)

	if replWatch || cfg.Tables.Watch {
		w := config.NewWatcher(cfg.Tables.Files, cfg.Tables.Debounce.Duration, logger, r.reload)
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	return r.run(cmd.InOrStdin())
}

func (r *repl) reload() error {
	c, err := newConverter()
	if err != nil {
		return err
	}
	r.conv.Store(c)
	return nil
}

func (r *repl) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(r.out, "%s> ", r.from)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if r.command(line) {
				return nil
			}
			continue
		}

		res, ok, err := r.conv.Load().Convert(r.from, r.to, line)
		switch {
		case err != nil:
			fmt.Fprintln(r.out, "error:", err)
		case !ok:
			fmt.Fprintf(r.out, "cannot parse as %s\n", r.from)
		default:
			fmt.Fprintln(r.out, res)
		}
	}
}

// command executes a repl command and reports whether repl must exit.
func (r *repl) command(line string) bool {
	fields := strings.Fields(line)
	c := r.conv.Load()
	switch fields[0] {
	case ":quit", ":q":
		return true

	case ":languages":
		fmt.Fprintln(r.out, strings.Join(append(c.Languages(), converter.AST), " "))

	case ":from", ":to":
		if len(fields) != 2 {
			fmt.Fprintf(r.out, "usage: %s <language>\n", fields[0])
			break
		}
		if _, err := c.Language(fields[1]); err != nil && fields[1] != converter.AST {
			fmt.Fprintln(r.out, "error:", err)
			break
		}
		if fields[0] == ":from" {
			r.from = fields[1]
		} else {
			r.to = fields[1]
		}

	default:
		fmt.Fprintf(r.out, "unknown command %s\n", fields[0])
	}
	return false
}
