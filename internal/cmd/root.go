// Package cmd implements the cssparse command line tool.
package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCommand(gs *globalState) *cobra.Command {
	root := &cobra.Command{
		Use:   "cssparse",
		Short: "Tokenize, parse and check CSS3 style sheets",
		Long: `cssparse reads CSS3 style sheets and prints their tokens, their canonical
form or the first syntax error in each of them.

Every flag can also be set in a config file (--config) or through an
environment variable named after the flag with a CSSPARSE_ prefix, e.g.
CSSPARSE_LOG_LEVEL=debug.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return gs.setup()
		},
	}

	root.PersistentFlags().AddFlagSet(rootPersistentFlagSet())
	mustBind(gs, root.PersistentFlags())
	gs.conf.SetEnvPrefix(envPrefix)
	gs.conf.AutomaticEnv()

	root.AddCommand(
		newTokensCommand(gs),
		newParseCommand(gs),
		newCheckCommand(gs),
		newVersionCommand(gs),
	)
	return root
}

func rootPersistentFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.String("config", "", "config file, in any format viper understands")
	flags.String("log_level", "info", "log level: panic, fatal, error, warn, info, debug or trace")
	flags.String("log_format", "text", "log format: text or json")
	flags.Bool("no_color", false, "disable colored output")
	return flags
}

// mustBind binds flags to their configuration keys. Binding only fails on a
// nil flag set.
func mustBind(gs *globalState, flags *pflag.FlagSet) {
	if err := gs.conf.BindPFlags(flags); err != nil {
		panic(errors.Wrap(err, "binding flags"))
	}
}

// Execute runs the command line and exits the process on error.
func Execute() {
	gs := newGlobalState()
	if err := newRootCommand(gs).Execute(); err != nil {
		gs.logger.Error(err)
		os.Exit(1)
	}
}
