package commands

import (
	"flag"

	"github.com/deathlesz/md5/src/internal/config"
	"github.com/deathlesz/md5/src/internal/log"
)

// ConfigCommand prints the effective configuration, or writes it to a file.
type ConfigCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	writePath string
}

func CreateConfigCommand() Runner {
	return &ConfigCommand{}
}

func (c *ConfigCommand) Name() string {
	return "config"
}

func (c *ConfigCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = newFlagSet(c.Name(), ctx)
	c.fs.StringVar(&c.writePath, "write", "", "Write the configuration to this file instead of stdout")

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	return nil
}

func (c *ConfigCommand) Run() error {
	if c.writePath != "" {
		if err := c.cfg.WriteConfig(c.writePath); err != nil {
			return err
		}
		log.Infof("Configuration written to %s", c.writePath)
		return nil
	}

	buf, err := c.cfg.SerializeConfig()
	if err != nil {
		return err
	}
	_, err = c.ctx.stdout().Write(buf.Bytes())
	return err
}
