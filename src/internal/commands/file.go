package commands

import (
	"flag"
	"fmt"

	"github.com/deathlesz/md5/src/internal/config"
	"github.com/deathlesz/md5/src/internal/digest"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/format"
	"github.com/deathlesz/md5/src/internal/log"
	"github.com/deathlesz/md5/src/internal/sidecar"
	"github.com/deathlesz/md5/src/internal/utils"
)

// storedChecksum adapts an already computed digest to hashing.ChecksumProvider.
type storedChecksum digest.Digest

func (s storedChecksum) GetChecksum() (string, error) {
	return digest.Digest(s).String(), nil
}

// FileCommand hashes files given on the command line.
type FileCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	write   bool
	baseDir string
	output  outputFlags

	paths    []string
	engine   *digest.Engine
	renderer *format.Renderer
}

func CreateFileCommand() Runner {
	return &FileCommand{}
}

func (c *FileCommand) Name() string {
	return "file"
}

func (c *FileCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = newFlagSet(c.Name(), ctx)
	c.fs.BoolVar(&c.write, "write", false, "Write a .md5 sidecar next to every file whose checksum changed")
	c.fs.StringVar(&c.baseDir, "dir", "", "Directory relative paths are resolved against")
	c.output.register(c.fs)

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}
	if c.fs.NArg() == 0 {
		return apperrors.NewUsageError("file: at least one path is required", nil)
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
	c.paths = c.fs.Args()

	return nil
}

// Run hashes every file. A file that cannot be hashed is reported and skipped;
// the command fails once all files were processed.
func (c *FileCommand) Run() error {
	resolved := utils.ResolvePaths(c.paths, c.baseDir)
	failed := 0

	for i, path := range resolved {
		d, size, err := sidecar.HashFile(path, c.engine)
		if err != nil {
			log.Errorf("%s: %v", c.paths[i], err)
			failed++
			continue
		}

		if err := c.renderer.WriteLine(c.ctx.stdout(), format.Entry{Digest: d, Name: c.paths[i], Size: size}); err != nil {
			return err
		}

		if c.write {
			if err := c.writeSidecar(path, d); err != nil {
				log.Errorf("%s: failed to write checksum: %v", c.paths[i], err)
				failed++
			}
		}
	}

	if failed > 0 {
		return apperrors.NewInputError(fmt.Sprintf("%d of %d files failed", failed, len(resolved)), nil)
	}
	return nil
}

func (c *FileCommand) writeSidecar(path string, d digest.Digest) error {
	provider := storedChecksum(d)

	changed, err := sidecar.IsFileChanged(provider, path)
	if err != nil {
		return err
	}
	if !changed {
		log.Debugf("Checksum of '%s' is up to date", path)
		return nil
	}

	if err := sidecar.WriteChecksum(provider, path); err != nil {
		return err
	}
	log.Infof("Wrote %s", sidecar.Path(path))
	return nil
}
