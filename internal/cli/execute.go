package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crmarques/datashelf/config"
	"github.com/crmarques/datashelf/faults"
	"github.com/crmarques/datashelf/internal/app/kinds"
	"github.com/crmarques/datashelf/internal/cli/commandmeta"
	"github.com/crmarques/datashelf/internal/cli/common"
	"github.com/crmarques/datashelf/repository"
	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

type Dependencies struct {
	Kinds          *kinds.Service
	RepositorySync repository.RepositorySync
	History        repository.RepositoryHistoryReader
	Config         *config.Config
	Logger         logr.Logger
}

func (d Dependencies) commandDependencies() common.CommandDependencies {
	return common.CommandDependencies{
		Kinds:          d.Kinds,
		RepositorySync: d.RepositorySync,
		History:        d.History,
		Config:         d.Config,
	}
}

// RequiresContextBootstrapPath reports whether the command at path needs the
// configuration and store loaded before it runs.
func RequiresContextBootstrapPath(path string) bool {
	return commandmeta.RequiresContextBootstrapPath(path)
}

func Execute(deps Dependencies) error {
	root := NewRootCommand(deps)
	command, err := root.ExecuteC()
	emitStatus := shouldEmitExecutionStatus(os.Args[1:], command)

	if err != nil {
		if emitStatus {
			writeExecutionErrorStatus(root.ErrOrStderr(), err)
		} else {
			_, _ = fmt.Fprintln(root.ErrOrStderr(), strings.TrimSpace(err.Error()))
		}
		return err
	}
	if emitStatus {
		writeExecutionOKStatus(root.ErrOrStderr())
	}
	return nil
}

func ExitCodeForError(err error) int {
	if err == nil {
		return 0
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		return 1
	}

	switch typedErr.Category {
	case faults.ValidationError, faults.PatternError:
		return 2
	case faults.NotFoundError:
		return 3
	case faults.ConflictError:
		return 5
	case faults.MalformedStateError:
		return 6
	case faults.IOError:
		return 7
	default:
		return 1
	}
}

func writeExecutionOKStatus(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s command executed successfully.\n", formatStatusLabel(w, "OK"))
}

func writeExecutionErrorStatus(w io.Writer, err error) {
	description := "command execution failed"
	if err != nil {
		description = fmt.Sprintf("%s: %s", description, strings.TrimSpace(err.Error()))
	}
	_, _ = fmt.Fprintf(w, "%s %s.\n", formatStatusLabel(w, "ERROR"), description)
}

func formatStatusLabel(w io.Writer, status string) string {
	status = strings.TrimSpace(status)
	label := fmt.Sprintf("[%s]", status)

	var painter *color.Color
	switch status {
	case "OK":
		painter = color.New(color.FgGreen, color.Bold)
	case "ERROR":
		painter = color.New(color.FgRed, color.Bold)
	default:
		return label
	}

	if supportsANSIStatus(w) {
		painter.EnableColor()
	} else {
		painter.DisableColor()
	}
	return painter.Sprint(label)
}

func supportsANSIStatus(w io.Writer) bool {
	if shouldSuppressColor(os.Args[1:]) {
		return false
	}

	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return false
	}

	termName := strings.TrimSpace(strings.ToLower(os.Getenv("TERM")))
	return termName != "" && termName != "dumb"
}

func shouldSuppressColor(args []string) bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return true
	}
	return hasNoColorArgToken(args)
}

func shouldEmitExecutionStatus(args []string, command *cobra.Command) bool {
	if shouldSuppressStatusMessage(args) {
		return false
	}
	if isHelpOrCompletionInvocation(args) {
		return false
	}
	return commandmeta.EmitsExecutionStatusPath(commandPath(command))
}

func commandPath(command *cobra.Command) string {
	if command == nil {
		return ""
	}
	return strings.TrimSpace(command.CommandPath())
}

func shouldSuppressStatusMessage(args []string) bool {
	flags := pflag.NewFlagSet("status", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.SetOutput(io.Discard)

	var noStatus bool
	flags.BoolVarP(&noStatus, "no-status", "n", false, "hide status output")
	if err := flags.Parse(args); err != nil {
		return hasNoStatusArgToken(args)
	}
	return noStatus
}

func isHelpOrCompletionInvocation(args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "help", "completion", "__complete", "__completeNoDesc":
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

func hasNoStatusArgToken(args []string) bool {
	for _, current := range args {
		if current == "--no-status" || current == "-n" {
			return true
		}
		if strings.HasPrefix(current, "--no-status=") {
			return strings.TrimSpace(strings.TrimPrefix(current, "--no-status=")) != "false"
		}
	}
	return false
}

func hasNoColorArgToken(args []string) bool {
	for _, current := range args {
		if current == "--no-color" {
			return true
		}
		if strings.HasPrefix(current, "--no-color=") {
			return strings.TrimSpace(strings.TrimPrefix(current, "--no-color=")) != "false"
		}
	}
	return false
}
