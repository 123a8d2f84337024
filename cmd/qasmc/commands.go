package main

import (
	"bufio"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/qasm/internal/check"
	"github.com/you-not-fish/qasm/internal/config"
	"github.com/you-not-fish/qasm/internal/frontend"
	"github.com/you-not-fish/qasm/internal/syntax"
)

// Version is the qasmc release.
const Version = "0.1.0-dev"

func (c *rootCommand) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file after include expansion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.loader().Expand(args[0])
			if err != nil {
				return c.report(err)
			}
			toks, err := syntax.Tokenize(filepath.ToSlash(args[0]), src)
			if err != nil {
				return c.report(err)
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, tok := range toks {
				fmt.Fprintln(w, tok)
			}
			return w.Flush()
		},
	}
}

func (c *rootCommand) expandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <file>",
		Short: "Print a file with comments removed and includes expanded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.loader().Expand(args[0])
			if err != nil {
				return c.report(err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), src)
			return err
		},
	}
}

func (c *rootCommand) astCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>...",
		Short: "Print the syntax tree of each file",
		Long:  "Print the syntax tree of each file as an indented dump, JSON or YAML, per --format.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.loadAll(cmd, args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, res := range results {
				switch c.conf.Format {
				case config.FormatJSON:
					err = syntax.FprintJSON(w, res.Program)
				case config.FormatYAML:
					err = syntax.FprintYAML(w, res.Program)
				default:
					syntax.Fprint(w, res.Program)
				}
				if err != nil {
					return exitCodeError{err, exitIO}
				}
			}
			return nil
		},
	}
}

func (c *rootCommand) fmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Print each file in canonical form, includes expanded",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.loadAll(cmd, args)
			if err != nil {
				return err
			}
			for _, res := range results {
				if err := syntax.Format(cmd.OutOrStdout(), res.Program); err != nil {
					return exitCodeError{err, exitIO}
				}
			}
			return nil
		},
	}
}

func (c *rootCommand) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse each file and check declarations, arities and register bounds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.loadAll(cmd, args)
			if err != nil {
				return err
			}

			errs := 0
			conf := &check.Config{
				Error: func(pos syntax.Pos, msg string) {
					errs++
					c.diag(pos, msg)
				},
			}
			for _, res := range results {
				info, err := check.Check(res.Program, conf)
				if err != nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d qubits, %d clbits, %d gates)\n",
					res.Path, info.NumQubits(), info.NumClbits(), len(info.Gates))
			}
			if errs > 0 {
				return exitCodeError{fmt.Errorf("%d errors", errs), exitDiagnostics}
			}
			return nil
		},
	}
}

func (c *rootCommand) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the qasmc version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "qasmc version %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "go version %s\n", runtime.Version())
			return nil
		},
	}
}

// loadAll loads args concurrently and reports the first failure.
func (c *rootCommand) loadAll(cmd *cobra.Command, args []string) ([]*frontend.Result, error) {
	l := c.loader()
	l.Concurrency = runtime.GOMAXPROCS(0)
	results, err := l.LoadAll(cmd.Context(), args)
	if err != nil {
		return nil, c.report(err)
	}
	return results, nil
}
