package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/deathlesz/md5/src/internal/api"
	"github.com/deathlesz/md5/src/internal/commands"
	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

const defaultCommand = "sum"

func main() {
	ctx := &commands.AppContext{
		Version: api.VersionInfo{Version: version, Commit: commit, Date: date},
	}

	flag.StringVar(&ctx.ConfigPath, "config", "", "Path to configuration file (optional)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "MD5 message digest calculator\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [command] [command options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  sum                     Print the digest of standard input (default)\n")
		fmt.Fprintf(os.Stderr, "  file <paths...>         Print the digest of each file\n")
		fmt.Fprintf(os.Stderr, "  check <paths...>        Verify files against their .md5 checksum files\n")
		fmt.Fprintf(os.Stderr, "  fetch <url>             Download a URL and print its digest\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the HTTP API\n")
		fmt.Fprintf(os.Stderr, "  config                  Print the effective configuration\n")
		fmt.Fprintf(os.Stderr, "  version                 Print version information\n")
		fmt.Fprintf(os.Stderr, "Options the program does not know are passed to sum, so 'md5 -nul=false' works.\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	global, rest := splitGlobalArgs(flag.CommandLine, os.Args[1:])
	// CommandLine exits on parse errors and prints usage for -help
	_ = flag.CommandLine.Parse(global)

	// stdout carries digests, so logs never go there
	log.SetForceStdErr(true)
	if ctx.Verbose {
		log.SetVerbose(true)
	}

	os.Exit(run(ctx, append(flag.Args(), rest...)))
}

// splitGlobalArgs returns the leading arguments that belong to fs and the
// remainder. It stops at the first positional argument or unknown flag, so
// command options given without a command name reach the default command.
func splitGlobalArgs(fs *flag.FlagSet, args []string) (global, rest []string) {
	i := 0
	for i < len(args) {
		arg := args[i]
		if arg == "--" {
			return args[:i+1], args[i+1:]
		}
		if len(arg) < 2 || arg[0] != '-' {
			break
		}

		name := strings.TrimLeft(arg, "-")
		name, _, hasValue := strings.Cut(name, "=")
		if name == "h" || name == "help" {
			i++
			continue
		}

		f := fs.Lookup(name)
		if f == nil {
			break
		}
		i++
		if !hasValue && !isBoolFlag(f) && i < len(args) {
			i++
		}
	}
	return args[:i], args[i:]
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// selectCommand picks the command named by args[0], falling back to the
// default command when no name is given.
func selectCommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return defaultCommand, args
	}
	return args[0], args[1:]
}

func run(ctx *commands.AppContext, args []string) int {
	cmds := []commands.Runner{
		commands.CreateSumCommand(),
		commands.CreateFileCommand(),
		commands.CreateCheckCommand(),
		commands.CreateFetchCommand(),
		commands.CreateServeCommand(),
		commands.CreateConfigCommand(),
		commands.CreateVersionCommand(),
	}

	subcommand, args := selectCommand(args)

	for _, cmd := range cmds {
		if cmd.Name() != subcommand {
			continue
		}

		if err := cmd.Init(args, ctx); err != nil {
			return fail("Failed to initialize command", err)
		}
		if err := cmd.Run(); err != nil {
			return fail("Failed to run command", err)
		}
		return 0
	}

	log.Errorf("Unknown subcommand: %s", subcommand)
	flag.Usage()
	return apperrors.ExitCode(apperrors.ErrUsage)
}

func fail(message string, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	log.Errorf("%s: %v", message, err)
	return apperrors.ExitCode(err)
}
