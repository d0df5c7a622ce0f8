package common

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func IsInteractiveTerminal(command *cobra.Command) bool {
	in, ok := command.InOrStdin().(*os.File)
	if !ok || in == nil {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && IsTerminalWriter(command.OutOrStdout())
}

func IsTerminalWriter(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok || file == nil {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func HasPipedInput(command *cobra.Command) bool {
	in, ok := command.InOrStdin().(*os.File)
	if !ok || in == nil {
		return false
	}
	return !term.IsTerminal(int(in.Fd()))
}
