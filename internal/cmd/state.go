package cmd

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every configuration key to form the name of the
// environment variable that overrides it.
const envPrefix = "CSSPARSE"

// globalState holds everything the commands touch outside of their own
// flags. Tests replace the file system, the streams and the environment.
type globalState struct {
	fs        afero.Fs
	stdout    *consoleWriter
	stderr    *consoleWriter
	stdin     io.Reader
	logger    *logrus.Logger
	conf      *viper.Viper
	lookupEnv func(string) (string, bool)

	noColor bool
}

func newGlobalState() *globalState {
	mu := &sync.Mutex{}
	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	stderrTTY := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	stdout := &consoleWriter{Writer: colorable.NewColorableStdout(), isTTY: stdoutTTY, mu: mu}
	stderr := &consoleWriter{Writer: colorable.NewColorableStderr(), isTTY: stderrTTY, mu: mu}

	return &globalState{
		fs:     afero.NewOsFs(),
		stdout: stdout,
		stderr: stderr,
		stdin:  os.Stdin,
		logger: &logrus.Logger{
			Out:       stderr,
			Formatter: new(logrus.TextFormatter),
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		},
		conf:      viper.New(),
		lookupEnv: os.LookupEnv,
	}
}

// setup reads the optional config file and applies the logging and color
// settings. It runs before every command.
func (gs *globalState) setup() error {
	gs.conf.SetFs(gs.fs)
	if cfg := gs.conf.GetString("config"); cfg != "" {
		gs.conf.SetConfigFile(cfg)
		if err := gs.conf.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", cfg)
		}
	}

	_, envNoColor := gs.lookupEnv("NO_COLOR")
	gs.noColor = envNoColor || gs.conf.GetBool("no_color")
	if gs.noColor {
		gs.stdout.Writer = colorable.NewNonColorable(gs.stdout.Writer)
		gs.stderr.Writer = colorable.NewNonColorable(gs.stderr.Writer)
	}

	level, err := logrus.ParseLevel(gs.conf.GetString("log_level"))
	if err != nil {
		return errors.Wrap(err, "log_level")
	}
	gs.logger.SetLevel(level)

	switch f := gs.conf.GetString("log_format"); f {
	case "json":
		gs.logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		gs.logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   gs.stderr.isTTY && !gs.noColor,
			DisableColors: !gs.stderr.isTTY || gs.noColor,
		})
	default:
		return errors.Errorf("unsupported log format %q", f)
	}
	return nil
}

// color returns a color for stdout. It is a no-op when stdout is not a
// terminal or colors are turned off.
func (gs *globalState) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if gs.stdout.isTTY && !gs.noColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// readFile returns the contents of the named file, or of stdin for "-".
func (gs *globalState) readFile(name string) ([]byte, error) {
	if name == "-" {
		b, err := io.ReadAll(gs.stdin)
		return b, errors.Wrap(err, "reading stdin")
	}
	b, err := afero.ReadFile(gs.fs, name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return b, nil
}

// consoleWriter serializes writes to stdout and stderr, which share a mutex,
// so a log line on stderr never lands in the middle of a line of output.
type consoleWriter struct {
	io.Writer
	isTTY bool
	mu    *sync.Mutex
}

func (w *consoleWriter) Write(p []byte) (n int, err error) {
	origLen := len(p)
	if w.isTTY {
		// Erase till the end of line with each new line.
		p = bytes.ReplaceAll(p, []byte{'\n'}, []byte{'\x1b', '[', '0', 'K', '\n'})
	}

	w.mu.Lock()
	n, err = w.Writer.Write(p)
	w.mu.Unlock()

	if err != nil && n < origLen {
		return n, err
	}
	return origLen, err
}
