package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=v1.2.3".
var Version = "dev"

type versionCmd struct {
	gs     *globalState
	isJSON bool
}

func (c *versionCmd) run(*cobra.Command, []string) error {
	if !c.isJSON {
		_, err := fmt.Fprintf(c.gs.stdout, "cssparse %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return err
	}

	details, err := json.Marshal(map[string]string{
		"version":   Version,
		"goVersion": runtime.Version(),
		"goOs":      runtime.GOOS,
		"goArch":    runtime.GOARCH,
	})
	if err != nil {
		return errors.Wrap(err, "marshaling version details")
	}
	_, err = fmt.Fprintln(c.gs.stdout, string(details))
	return err
}

func newVersionCommand(gs *globalState) *cobra.Command {
	c := &versionCmd{gs: gs}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show application version",
		Long:  `Show the application version and exit.`,
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	cmd.Flags().BoolVar(&c.isJSON, "json", false, "if set, output version information will be in JSON format")
	return cmd
}
