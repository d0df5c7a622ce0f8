package common

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	outputCompletionValues      = []string{OutputAuto, OutputText, OutputJSON, OutputYAML}
	inputFormatCompletionValues = []string{OutputJSON, OutputYAML}
)

func RegisterOutputFlagCompletion(command *cobra.Command) {
	RegisterFlagValueCompletions(command, "output", outputCompletionValues)
}

func RegisterInputFormatFlagCompletion(command *cobra.Command) {
	RegisterFlagValueCompletions(command, "format", inputFormatCompletionValues)
}

func RegisterFlagValueCompletions(command *cobra.Command, flagName string, values []string) {
	_ = command.RegisterFlagCompletionFunc(flagName, func(
		_ *cobra.Command,
		_ []string,
		toComplete string,
	) ([]string, cobra.ShellCompDirective) {
		return CompleteValues(values, toComplete)
	})
}

func CompleteValues(values []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := strings.TrimSpace(toComplete)
	matches := make([]string, 0, len(values))
	for _, value := range values {
		if strings.HasPrefix(value, prefix) {
			matches = append(matches, value)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
