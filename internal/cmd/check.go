package cmd

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/benbjohnson/css3/parser"
)

type checkCmd struct {
	gs *globalState
}

func (c *checkCmd) run(_ *cobra.Command, args []string) error {
	var (
		size   uint64
		failed int
	)
	loc := c.gs.color(color.Bold)
	bad := c.gs.color(color.FgRed)

	for _, name := range args {
		b, err := c.gs.readFile(name)
		if err != nil {
			return err
		}
		size += uint64(len(b))

		entry := c.gs.logger.WithField("file", name).WithField("size", humanize.Bytes(uint64(len(b))))
		entry.Debug("checking")

		_, err = parser.ParseStyleSheet(bytes.NewReader(b), parser.WithLogger(c.gs.logger))
		if err == nil {
			continue
		}

		var perr *parser.Error
		if !errors.As(err, &perr) {
			return locate(name, err)
		}
		failed++
		entry.WithField("pos", perr.Pos.String()).Debug("syntax error")

		msg := loc.Sprintf("%s:%s:", name, perr.Pos) + " " + bad.Sprint(perr.Message)
		if _, err := fmt.Fprintln(c.gs.stdout, msg); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(c.gs.stdout, "checked %s (%s), %s\n",
		plural(len(args), "file"), humanize.Bytes(size), plural(failed, "error")); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Errorf("syntax errors in %d of %d files", failed, len(args))
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

func newCheckCommand(gs *globalState) *cobra.Command {
	c := &checkCmd{gs: gs}

	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Report the first syntax error of each style sheet",
		Long: `Parse each file as a style sheet and print the first syntax error found
in it as file:line:column: message, followed by a summary. The command fails
if any file has a syntax error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}
}
