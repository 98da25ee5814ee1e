package commands

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/deathlesz/md5/src/internal/api"
	"github.com/deathlesz/md5/src/internal/config"
	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/format"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

// AppContext carries global flags and the process streams. Nil streams fall
// back to os.Stdin, os.Stdout and os.Stderr.
type AppContext struct {
	ConfigPath string
	Verbose    bool
	Version    api.VersionInfo

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (ctx *AppContext) stdin() io.Reader {
	if ctx.Stdin == nil {
		return os.Stdin
	}
	return ctx.Stdin
}

func (ctx *AppContext) stdout() io.Writer {
	if ctx.Stdout == nil {
		return os.Stdout
	}
	return ctx.Stdout
}

func (ctx *AppContext) stderr() io.Writer {
	if ctx.Stderr == nil {
		return os.Stderr
	}
	return ctx.Stderr
}

func newFlagSet(name string, ctx *AppContext) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(ctx.stderr())
	return fs
}

// parseFlags parses args and reports malformed command lines as usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return apperrors.NewUsageError("help requested", err)
		}
		return apperrors.NewUsageError("invalid arguments for "+fs.Name(), err)
	}
	return nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// loadConfigOrFail loads the optional configuration file and validates it.
func loadConfigOrFail(configPath string) (*config.Config, error) {
	return config.LoadAndValidate(configPath)
}

// outputFlags are shared by every command that prints digest lines.
type outputFlags struct {
	template  string
	coreutils bool
}

func (o *outputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&o.template, "format", format.DefaultTemplate, "Output template, tags: {{digest}}, {{name}}, {{size}}")
	fs.BoolVar(&o.coreutils, "coreutils", false, "Print md5sum compatible lines (digest, two spaces, name)")
}

// renderer builds the output renderer. An explicit -format wins over
// -coreutils, which wins over the configuration.
func (o *outputFlags) renderer(fs *flag.FlagSet, cfg *config.Config) (*format.Renderer, error) {
	tmpl := cfg.General.OutputTemplate
	switch {
	case isFlagSet(fs, "format"):
		tmpl = o.template
	case o.coreutils:
		tmpl = format.CoreutilsTemplate
	}
	return format.NewRenderer(tmpl)
}

// newEngine accepts every message the input limit lets through.
func newEngine(cfg *config.Config) *digest.Engine {
	return digest.NewMessageEngine(cfg.General.MaxInputBytes)
}
