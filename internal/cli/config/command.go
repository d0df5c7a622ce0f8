package config

import (
	"fmt"
	"io"

	configdomain "github.com/crmarques/datashelf/config"
	"github.com/crmarques/datashelf/internal/cli/common"
	"github.com/spf13/cobra"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(newShowCommand(deps, globalFlags))
	return command
}

func newShowCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			cfg, err := common.RequireConfig(deps)
			if err != nil {
				return err
			}

			format, err := common.ResolveOutputFormat(command.CommandPath(), globalFlags.Output)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, format, cfg, renderConfigText)
		},
	}
}

func renderConfigText(w io.Writer, cfg configdomain.Config) error {
	git := cfg.Repository.GitSettings()
	_, err := fmt.Fprintf(
		w,
		"data-dir: %s\nrepository.backend: %s\nrepository.git.author: %s <%s>\nlog.level: %s\nlog.format: %s\n",
		cfg.DataDir,
		cfg.Repository.Backend,
		git.AuthorName,
		git.AuthorEmail,
		cfg.Log.Level,
		cfg.Log.Format,
	)
	return err
}
