package cmd

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/benbjohnson/css3/ast"
	"github.com/benbjohnson/css3/parser"
)

// production parses a whole reader with one entry point of the parser.
type production func(r io.Reader, opts ...parser.Option) (ast.Node, error)

var productions = map[string]production{
	"stylesheet": func(r io.Reader, opts ...parser.Option) (ast.Node, error) {
		return parser.ParseStyleSheet(r, opts...)
	},
	"rules": func(r io.Reader, opts ...parser.Option) (ast.Node, error) {
		return parser.ParseRules(r, opts...)
	},
	"rule": func(r io.Reader, opts ...parser.Option) (ast.Node, error) {
		return parser.ParseRule(r, opts...)
	},
	"declarations": func(r io.Reader, opts ...parser.Option) (ast.Node, error) {
		return parser.ParseDeclarations(r, opts...)
	},
	"declaration": func(r io.Reader, opts ...parser.Option) (ast.Node, error) {
		return parser.ParseDeclaration(r, opts...)
	},
	"value": func(r io.Reader, opts ...parser.Option) (ast.Node, error) {
		return parser.ParseComponentValue(r, opts...)
	},
	"values": func(r io.Reader, opts ...parser.Option) (ast.Node, error) {
		return parser.ParseComponentValues(r, opts...)
	},
	"selectors": func(r io.Reader, opts ...parser.Option) (ast.Node, error) {
		return parser.ParseSelectorList(r, opts...)
	},
	"selector": func(r io.Reader, opts ...parser.Option) (ast.Node, error) {
		return parser.ParseSelector(r, opts...)
	},
}

func productionNames() string {
	names := make([]string, 0, len(productions))
	for name := range productions {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// fileError is a syntax error located in a named file.
type fileError struct {
	name string
	err  *parser.Error
}

func (e *fileError) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.name, e.err.Pos, e.err.Message)
}

// locate attaches the file name to a syntax error. Other errors are wrapped.
func locate(name string, err error) error {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return &fileError{name: name, err: perr}
	}
	return errors.Wrapf(err, "parsing %s", name)
}

type parseCmd struct {
	gs *globalState
}

func (c *parseCmd) run(_ *cobra.Command, args []string) error {
	name := c.gs.conf.GetString("production")
	fn, ok := productions[name]
	if !ok {
		return errors.Errorf("unknown production %q, expected one of %s", name, productionNames())
	}

	var p ast.Printer
	for _, filename := range args {
		b, err := c.gs.readFile(filename)
		if err != nil {
			return err
		}
		c.gs.logger.WithField("file", filename).WithField("production", name).Debug("parsing")

		n, err := fn(bytes.NewReader(b), parser.WithLogger(c.gs.logger))
		if err != nil {
			return locate(filename, err)
		}
		if err := p.Fprint(c.gs.stdout, n); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(c.gs.stdout); err != nil {
			return err
		}
	}
	return nil
}

func newParseCommand(gs *globalState) *cobra.Command {
	c := &parseCmd{gs: gs}

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Print each file in canonical form",
		Long: `Parse each file with the selected production and print the result in
canonical form. Parsing stops at the first syntax error, which is reported
as file:line:column: message.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}
	cmd.Flags().StringP("production", "p", "stylesheet", "production to parse with: "+productionNames())
	mustBind(gs, cmd.Flags())
	return cmd
}
