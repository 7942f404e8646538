package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	css "github.com/benbjohnson/css3"
	"github.com/benbjohnson/css3/token"
)

type tokensCmd struct {
	gs *globalState
}

func (c *tokensCmd) run(_ *cobra.Command, args []string) error {
	skip := c.gs.conf.GetBool("skip_whitespace")
	for _, name := range args {
		b, err := c.gs.readFile(name)
		if err != nil {
			return err
		}
		c.gs.logger.WithField("file", name).Debug("tokenizing")

		for _, tok := range css.Tokenize(string(b)) {
			if tok.Kind == token.EOF || (skip && tok.IsWhitespaceOrComment()) {
				continue
			}
			if _, err := fmt.Fprintf(c.gs.stdout, "%s:%s\t%s\t%q\n", name, tok.Pos, tok.Kind, tok.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

func newTokensCommand(gs *globalState) *cobra.Command {
	c := &tokensCmd{gs: gs}

	cmd := &cobra.Command{
		Use:   "tokens [file...]",
		Short: "Print the tokens of each file",
		Long: `Print one line per token: its location, its kind and its CSS text.
A file named "-" is read from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}
	cmd.Flags().Bool("skip_whitespace", false, "omit whitespace and comment tokens")
	mustBind(gs, cmd.Flags())
	return cmd
}
