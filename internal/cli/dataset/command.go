package dataset

import (
	"github.com/crmarques/datashelf/internal/cli/common"
	"github.com/spf13/cobra"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "dataset",
		Short: "Manage datasets of a user",
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
	var userID string

	command := &cobra.Command{
		Use:   "get <dataset-id>",
		Short: "Show a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			service, err := common.RequireKinds(deps)
			if err != nil {
				return err
			}
			owner, err := common.RequireFlagValue("user", userID)
			if err != nil {
				return err
			}
			datasetID, err := common.RequireResourceID("dataset", args[0])
			if err != nil {
				return err
			}
			return common.WriteEnvelope(command, globalFlags, service.GetDataset(command.Context(), owner, datasetID))
		},
	}

	bindUserFlag(command, &userID)
	return command
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "list",
		Short: "List datasets of a user",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			service, err := common.RequireKinds(deps)
			if err != nil {
				return err
			}
			owner, err := common.RequireFlagValue("user", userID)
			if err != nil {
				return err
			}
			return common.WriteEnvelope(command, globalFlags, service.ListDatasets(command.Context(), owner))
		},
	}

	bindUserFlag(command, &userID)
	return command
}

func newCreateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var userID string
	var flags common.CreateFlags

	command := &cobra.Command{
		Use:     "create",
		Short:   "Create a dataset for a user",
		Example: "  datashelf dataset create --user <user-id> --name experiments",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			service, err := common.RequireKinds(deps)
			if err != nil {
				return err
			}
			owner, err := common.RequireFlagValue("user", userID)
			if err != nil {
				return err
			}
			metadata, err := common.ReadMetadata(command, flags)
			if err != nil {
				return err
			}
			return common.WriteEnvelope(command, globalFlags, service.CreateDataset(command.Context(), owner, metadata))
		},
	}

	bindUserFlag(command, &userID)
	common.BindCreateFlags(command, &flags)
	return command
}

func bindUserFlag(command *cobra.Command, userID *string) {
	common.BindParentFlag(command, userID, "user", "u", "owning user id")
}
