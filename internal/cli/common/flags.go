package common

import (
	"strings"

	"github.com/spf13/cobra"
)

type GlobalFlags struct {
	ConfigPath string
	DataDir    string
	Debug      bool
	NoStatus   bool
	NoColor    bool
	Output     string
}

type InputFlags struct {
	Payload string
	Format  string
}

type CreateFlags struct {
	Name        string
	Interactive bool
	Input       InputFlags
}

func BindGlobalFlags(command *cobra.Command, flags *GlobalFlags) {
	command.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "config file path (default ~/.datashelf/config.yaml)")
	command.PersistentFlags().StringVar(&flags.DataDir, "data-dir", "", "data directory, overrides configuration")
	command.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "enable debug logging")
	command.PersistentFlags().BoolVarP(&flags.NoStatus, "no-status", "n", false, "hide status output")
	command.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "disable color output")
	command.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputAuto, "output format: auto|text|json|yaml")
	RegisterOutputFlagCompletion(command)
}

func BindInputFlags(command *cobra.Command, flags *InputFlags) {
	command.Flags().StringVarP(&flags.Payload, "payload", "f", "", "metadata file path (use '-' to read object from stdin)")
	command.Flags().StringVarP(&flags.Format, "format", "i", OutputJSON, "input format: json|yaml")
	RegisterInputFormatFlagCompletion(command)
}

func BindCreateFlags(command *cobra.Command, flags *CreateFlags) {
	command.Flags().StringVar(&flags.Name, "name", "", "resource name")
	command.Flags().BoolVar(&flags.Interactive, "interactive", false, "prompt for the resource name")
	BindInputFlags(command, &flags.Input)
}

// BindParentFlag binds a required parent identifier flag such as --user.
func BindParentFlag(command *cobra.Command, target *string, name string, shorthand string, usage string) {
	command.Flags().StringVarP(target, name, shorthand, "", usage)
}

func RequireFlagValue(name string, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ValidationError("flag --"+name+" is required", nil)
	}
	return trimmed, nil
}
