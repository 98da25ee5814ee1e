// Package commands implements the md5 command-line subcommands.
//
// Every subcommand implements Runner:
//   - Init(): parse its flags and load the optional configuration
//   - Run(): do the work, writing results to AppContext.Stdout
//   - Name(): return the name used on the command line
//
// # Available Commands
//
//   - sum: digest standard input (the default when no command is given)
//   - file: digest files, optionally writing .md5 sidecars
//   - check: verify files against their .md5 sidecars
//   - serve: run the HTTP API until SIGINT or SIGTERM
//   - config: print or write the effective configuration
//   - version: print build information
//
// # Example Usage
//
//	cmd := commands.CreateSumCommand()
//	ctx := &commands.AppContext{Stdin: strings.NewReader("abc")}
//	if err := cmd.Init(nil, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//
// Commands print digests only after the whole message was read and hashed,
// so a failed run leaves standard output empty.
package commands
