package collection

import (
	"github.com/crmarques/datashelf/internal/cli/common"
	"github.com/spf13/cobra"
)

type parentFlags struct {
	userID    string
	datasetID string
}

func (p parentFlags) resolve() (string, string, error) {
	userID, err := common.RequireFlagValue("user", p.userID)
	if err != nil {
		return "", "", err
	}
	datasetID, err := common.RequireFlagValue("dataset", p.datasetID)
	if err != nil {
		return "", "", err
	}
	return userID, datasetID, nil
}

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "collection",
		Short: "Manage collections of a dataset",
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
	var parents parentFlags

	command := &cobra.Command{
		Use:   "get <collection-id>",
		Short: "Show a collection with its data and schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			service, err := common.RequireKinds(deps)
			if err != nil {
				return err
			}
			userID, datasetID, err := parents.resolve()
			if err != nil {
				return err
			}
			collectionID, err := common.RequireResourceID("collection", args[0])
			if err != nil {
				return err
			}
			return common.WriteEnvelope(
				command,
				globalFlags,
				service.GetCollection(command.Context(), userID, datasetID, collectionID),
			)
		},
	}

	bindParentFlags(command, &parents)
	return command
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var parents parentFlags

	command := &cobra.Command{
		Use:   "list",
		Short: "List collections of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			service, err := common.RequireKinds(deps)
			if err != nil {
				return err
			}
			userID, datasetID, err := parents.resolve()
			if err != nil {
				return err
			}
			return common.WriteEnvelope(command, globalFlags, service.ListCollections(command.Context(), userID, datasetID))
		},
	}

	bindParentFlags(command, &parents)
	return command
}

func newCreateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var parents parentFlags
	var flags common.CreateFlags

	command := &cobra.Command{
		Use:     "create",
		Short:   "Create a collection in a dataset",
		Example: "  datashelf collection create --user <user-id> --dataset <dataset-id> --name sales",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			service, err := common.RequireKinds(deps)
			if err != nil {
				return err
			}
			userID, datasetID, err := parents.resolve()
			if err != nil {
				return err
			}
			metadata, err := common.ReadMetadata(command, flags)
			if err != nil {
				return err
			}
			return common.WriteEnvelope(
				command,
				globalFlags,
				service.CreateCollection(command.Context(), userID, datasetID, metadata),
			)
		},
	}

	bindParentFlags(command, &parents)
	common.BindCreateFlags(command, &flags)
	return command
}

func bindParentFlags(command *cobra.Command, parents *parentFlags) {
	common.BindParentFlag(command, &parents.userID, "user", "u", "owning user id")
	common.BindParentFlag(command, &parents.datasetID, "dataset", "s", "owning dataset id")
}
