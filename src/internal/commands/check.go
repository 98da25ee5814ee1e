package commands

import (
	"flag"
	"fmt"

	"github.com/deathlesz/md5/src/internal/config"
	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/log"
	"github.com/deathlesz/md5/src/internal/sidecar"
	"github.com/deathlesz/md5/src/internal/utils"
)

// CheckCommand verifies files against their .md5 sidecars.
type CheckCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	quiet   bool
	baseDir string

	paths  []string
	engine *digest.Engine
}

func CreateCheckCommand() Runner {
	return &CheckCommand{}
}

func (c *CheckCommand) Name() string {
	return "check"
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = newFlagSet(c.Name(), ctx)
	c.fs.BoolVar(&c.quiet, "quiet", false, "Print failures only")
	c.fs.StringVar(&c.baseDir, "dir", "", "Directory relative paths are resolved against")

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}
	if c.fs.NArg() == 0 {
		return apperrors.NewUsageError("check: at least one path is required", nil)
	}

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.engine = newEngine(cfg)
	c.paths = c.fs.Args()

	return nil
}

func (c *CheckCommand) Run() error {
	out := c.ctx.stdout()
	mismatched, unreadable := 0, 0

	for i, path := range utils.ResolvePaths(c.paths, c.baseDir) {
		name := c.paths[i]

		result, err := sidecar.Verify(path, c.engine)
		if err != nil {
			log.Errorf("%s: %v", name, err)
			fmt.Fprintf(out, "%s: FAILED open or read\n", name)
			unreadable++
			continue
		}

		if !result.Match {
			log.Debugf("%s: expected %s, got %s", name, result.Expected, result.Actual)
			fmt.Fprintf(out, "%s: FAILED\n", name)
			mismatched++
			continue
		}

		if !c.quiet {
			fmt.Fprintf(out, "%s: OK\n", name)
		}
	}

	if unreadable > 0 {
		log.Warnf("%d listed file(s) could not be read", unreadable)
	}
	if mismatched > 0 {
		log.Warnf("%d computed checksum(s) did NOT match", mismatched)
	}
	if mismatched+unreadable > 0 {
		return apperrors.NewChecksumMismatchError(
			fmt.Sprintf("%d of %d files failed verification", mismatched+unreadable, len(c.paths)), nil)
	}
	return nil
}
