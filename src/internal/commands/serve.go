package commands

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/deathlesz/md5/src/internal/api"
	"github.com/deathlesz/md5/src/internal/config"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/log"
)

const shutdownTimeout = 10 * time.Second

// ServeCommand runs the HTTP API until interrupted.
type ServeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	listen         string
	maxRestarts    int
	restartBackoff time.Duration
}

func CreateServeCommand() Runner {
	return &ServeCommand{}
}

func (c *ServeCommand) Name() string {
	return "serve"
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = newFlagSet(c.Name(), ctx)
	c.fs.StringVar(&c.listen, "listen", "", "Listen address host:port, overrides [server] listen_addr and listen_port")
	c.fs.IntVar(&c.maxRestarts, "max-restarts", 5, "Give up after this many consecutive server failures (0 = never)")
	c.fs.DurationVar(&c.restartBackoff, "restart-backoff", time.Second, "Initial delay before restarting a failed server")

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.listen != "" {
		if err := applyListenAddress(&cfg.Server, c.listen); err != nil {
			return err
		}
	}

	return nil
}

func applyListenAddress(server *config.ServerConfig, listen string) error {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return apperrors.NewUsageError(fmt.Sprintf("invalid -listen address %q", listen), err)
	}
	p, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return apperrors.NewUsageError(fmt.Sprintf("invalid -listen port %q", port), err)
	}
	server.ListenAddr = host
	server.ListenPort = uint16(p)
	return nil
}

// Run serves until SIGINT or SIGTERM.
func (c *ServeCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.RunContext(ctx)
}

// RunContext serves until ctx is cancelled or the server keeps failing.
func (c *ServeCommand) RunContext(ctx context.Context) error {
	if path := c.cfg.GetAbsConfigFilePath(); path != "" {
		log.Infof("Configuration loaded from: %s", path)
	}

	runner := NewRestartableRunner(RunnerConfig{
		Name:           "API server",
		MaxRestarts:    c.maxRestarts,
		RestartBackoff: c.restartBackoff,
	}, c.serve)

	if err := runner.Start(ctx); err != nil {
		return err
	}

	select {
	case <-runner.Done():
		if ctx.Err() != nil {
			return nil
		}
		log.Errorf("API server gave up after %d restarts", runner.RestartCount())
		return runner.LastError()
	case <-ctx.Done():
		log.Infof("Shutting down...")
		if !runner.IsRunning() {
			return nil
		}
		return runner.Stop(2 * shutdownTimeout)
	}
}

// serve runs one server instance. A fresh server is built for every attempt
// because a shut down http.Server cannot be reused.
func (c *ServeCommand) serve(ctx context.Context) error {
	server := api.NewServer(c.cfg, c.ctx.Version)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	select {
	case err := <-serverErrors:
		if err == nil {
			return apperrors.NewInternalError("server exited unexpectedly", nil)
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Stop(shutdownCtx); err != nil {
			log.Errorf("Error during server shutdown: %v", err)
		}
		<-serverErrors
		log.Infof("Server stopped gracefully")
		return nil
	}
}
