package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/deathlesz/md5/src/internal/config"
	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/fetch"
	"github.com/deathlesz/md5/src/internal/format"
)

// FetchCommand downloads a URL and prints its digest.
type FetchCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	outputPath string
	expect     string
	timeout    time.Duration
	output     outputFlags

	url      string
	expected *digest.Digest
	engine   *digest.Engine
	renderer *format.Renderer
}

func CreateFetchCommand() Runner {
	return &FetchCommand{}
}

func (c *FetchCommand) Name() string {
	return "fetch"
}

func (c *FetchCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = newFlagSet(c.Name(), ctx)
	c.fs.StringVar(&c.outputPath, "o", "", "Save the body to this file and keep a .md5 sidecar next to it")
	c.fs.StringVar(&c.expect, "expect", "", "Fail unless the body has this digest")
	c.fs.DurationVar(&c.timeout, "timeout", 30*time.Second, "Request timeout")
	c.output.register(c.fs)

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}
	if c.fs.NArg() != 1 {
		return apperrors.NewUsageError("fetch: exactly one URL is required", nil)
	}
	c.url = c.fs.Arg(0)

	if c.expect != "" {
		d, err := digest.ParseHex(c.expect)
		if err != nil {
			return err
		}
		c.expected = &d
	}

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.renderer, err = c.output.renderer(c.fs, cfg); err != nil {
		return err
	}
	c.engine = newEngine(cfg)

	return nil
}

func (c *FetchCommand) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	result, err := fetch.Download(ctx, c.url, c.engine, fetch.Options{
		Destination: c.outputPath,
		MaxBytes:    int64(min(c.cfg.General.MaxInputBytes, uint64(1<<63-1))),
		Client:      &http.Client{Timeout: c.timeout},
	})
	if err != nil {
		return err
	}

	if c.expected != nil && *c.expected != result.Digest {
		return apperrors.NewChecksumMismatchError(
			fmt.Sprintf("%s: expected %s, got %s", c.url, c.expected, result.Digest), nil)
	}

	return c.renderer.WriteLine(c.ctx.stdout(), format.Entry{
		Digest: result.Digest,
		Name:   c.url,
		Size:   result.Size,
	})
}
