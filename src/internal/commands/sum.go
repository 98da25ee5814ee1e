package commands

import (
	"flag"

	"github.com/deathlesz/md5/src/internal/config"
	"github.com/deathlesz/md5/src/internal/digest"
	"github.com/deathlesz/md5/src/internal/format"
	"github.com/deathlesz/md5/src/internal/input"
	"github.com/deathlesz/md5/src/internal/log"
)

// stdinName is the name rendered for a message read from standard input.
const stdinName = "-"

// SumCommand hashes standard input and prints a single digest line.
type SumCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	stopAtNUL bool
	output    outputFlags

	engine   *digest.Engine
	renderer *format.Renderer
}

func CreateSumCommand() Runner {
	return &SumCommand{}
}

func (c *SumCommand) Name() string {
	return "sum"
}

func (c *SumCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = newFlagSet(c.Name(), ctx)
	c.fs.BoolVar(&c.stopAtNUL, "nul", true, "Stop reading input at the first NUL byte")
	c.output.register(c.fs)

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if !isFlagSet(c.fs, "nul") {
		c.stopAtNUL = cfg.General.StopAtNUL
	}

	if c.renderer, err = c.output.renderer(c.fs, cfg); err != nil {
		return err
	}
	c.engine = newEngine(cfg)

	return nil
}

// Run reads the whole message before hashing, so nothing is printed unless
// every step succeeded.
func (c *SumCommand) Run() error {
	message, err := input.ReadMessage(c.ctx.stdin(), input.Options{
		StopAtNUL: c.stopAtNUL,
		MaxBytes:  c.cfg.General.MaxInputBytes,
	})
	if err != nil {
		return err
	}
	log.Debugf("Read %d bytes from stdin", len(message))

	d, err := c.engine.Sum(message)
	if err != nil {
		return err
	}

	return c.renderer.WriteLine(c.ctx.stdout(), format.Entry{
		Digest: d,
		Name:   stdinName,
		Size:   len(message),
	})
}
