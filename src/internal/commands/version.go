package commands

import (
	"flag"
	"fmt"
)

// VersionCommand prints build information.
type VersionCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
}

func CreateVersionCommand() Runner {
	return &VersionCommand{}
}

func (c *VersionCommand) Name() string {
	return "version"
}

func (c *VersionCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = newFlagSet(c.Name(), ctx)
	return parseFlags(c.fs, args)
}

func (c *VersionCommand) Run() error {
	v := c.ctx.Version
	_, err := fmt.Fprintf(c.ctx.stdout(), "md5 %s (commit: %s, date: %s)\n", v.Version, v.Commit, v.Date)
	return err
}
