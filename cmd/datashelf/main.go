package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crmarques/datashelf/core"
	"github.com/crmarques/datashelf/internal/cli"
	"github.com/spf13/pflag"
)

type bootstrapFlags struct {
	configPath string
	dataDir    string
	debug      bool
}

func main() {
	args := os.Args[1:]
	deps := cli.Dependencies{}
	if !shouldSkipContextBootstrap(args) {
		flags := bootstrapFlagsFromArgs(args)
		datashelfContext, err := core.NewDatashelfContext(context.Background(), core.BootstrapConfig{
			ConfigPath: flags.configPath,
			Overrides:  flags.overrides(),
			Debug:      flags.debug,
		})
		if err != nil {
			if !isShellCompletionInvocation(args) {
				_, _ = fmt.Fprintln(os.Stderr, err)
				os.Exit(exitCodeForError(err))
			}
		} else {
			deps = cli.Dependencies{
				Kinds:          datashelfContext.Kinds,
				RepositorySync: datashelfContext.RepositorySync,
				History:        datashelfContext.History,
				Config:         &datashelfContext.Config,
				Logger:         datashelfContext.Logger,
			}
		}
	}

	if err := cli.Execute(deps); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func exitCodeForError(err error) int {
	return cli.ExitCodeForError(err)
}

// bootstrapFlagsFromArgs reads the global flags that shape bootstrap before
// the command tree parses them.
func bootstrapFlagsFromArgs(args []string) bootstrapFlags {
	var flags bootstrapFlags

	flagSet := pflag.NewFlagSet("bootstrap", pflag.ContinueOnError)
	flagSet.ParseErrorsWhitelist.UnknownFlags = true
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&flags.configPath, "config", "", "")
	flagSet.StringVar(&flags.dataDir, "data-dir", "", "")
	flagSet.BoolVarP(&flags.debug, "debug", "d", false, "")
	flagSet.BoolP("help", "h", false, "")
	_ = flagSet.Parse(args)

	return flags
}

func (f bootstrapFlags) overrides() map[string]string {
	if strings.TrimSpace(f.dataDir) == "" {
		return nil
	}
	return map[string]string{"data_dir": f.dataDir}
}

func isHelpInvocation(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}

	for _, current := range args {
		if current == "--" {
			break
		}
		if current == "--help" || current == "-h" {
			return true
		}
	}

	return false
}

func isCompletionInvocation(args []string) bool {
	return isCompletionScriptInvocation(args) || isShellCompletionInvocation(args)
}

func isCompletionScriptInvocation(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return args[0] == "completion"
}

func isShellCompletionInvocation(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return args[0] == "__complete" || args[0] == "__completeNoDesc"
}

func shouldSkipContextBootstrap(args []string) bool {
	if isHelpInvocation(args) || isCompletionInvocation(args) {
		return true
	}

	commandPath, ok := resolveRunnableCommandPath(args)
	if !ok {
		return true
	}

	return !cli.RequiresContextBootstrapPath(commandPath)
}

func resolveRunnableCommandPath(args []string) (string, bool) {
	lookup := cli.NewRootCommand(cli.Dependencies{})
	command, remainingArgs, err := lookup.Find(args)
	if err != nil || command == nil || !command.Runnable() {
		return "", false
	}

	if err := command.ParseFlags(remainingArgs); err != nil {
		return "", false
	}
	if err := command.ValidateArgs(command.Flags().Args()); err != nil {
		return "", false
	}

	return strings.TrimSpace(command.CommandPath()), true
}
