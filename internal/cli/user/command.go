package user

import (
	"github.com/crmarques/datashelf/internal/cli/common"
	"github.com/spf13/cobra"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newGetCommand(deps, globalFlags),
		newListCommand(deps, globalFlags),
		newCreateCommand(deps, globalFlags),
	)

	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			service, err := common.RequireKinds(deps)
			if err != nil {
				return err
			}
			userID, err := common.RequireResourceID("user", args[0])
			if err != nil {
				return err
			}
			return common.WriteEnvelope(command, globalFlags, service.GetUser(command.Context(), userID))
		},
	}
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			service, err := common.RequireKinds(deps)
			if err != nil {
				return err
			}
			return common.WriteEnvelope(command, globalFlags, service.ListUsers(command.Context()))
		},
	}
}

func newCreateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var flags common.CreateFlags

	command := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Example: `  datashelf user create --name Ada
  echo '{"name":"Ada","team":"analytics"}' | datashelf user create
  datashelf user create --payload user.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			service, err := common.RequireKinds(deps)
			if err != nil {
				return err
			}
			metadata, err := common.ReadMetadata(command, flags)
			if err != nil {
				return err
			}
			return common.WriteEnvelope(command, globalFlags, service.CreateUser(command.Context(), metadata))
		},
	}

	common.BindCreateFlags(command, &flags)
	return command
}
