package repo

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/crmarques/datashelf/internal/cli/common"
	"github.com/crmarques/datashelf/repository"
	"github.com/spf13/cobra"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "repo",
		Short: "Manage the data directory",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newInitCommand(deps),
		newCheckCommand(deps),
		newHistoryCommand(deps, globalFlags),
	)

	return command
}

func newInitCommand(deps common.CommandDependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the data directory (and git repository for the git backend)",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			repositoryService, err := common.RequireRepositorySync(deps)
			if err != nil {
				return err
			}
			return repositoryService.Init(command.Context())
		},
	}
}

func newCheckCommand(deps common.CommandDependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the data directory",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			repositoryService, err := common.RequireRepositorySync(deps)
			if err != nil {
				return err
			}
			return repositoryService.Check(command.Context())
		},
	}
}

func newHistoryCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var maxCount int
	var oneline bool

	command := &cobra.Command{
		Use:   "history",
		Short: "Show resource creation history (git backend only)",
		Example: strings.Join([]string{
			"  datashelf repo history",
			"  datashelf repo history --max-count 10 --oneline",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			if maxCount < 0 {
				return common.ValidationError("flag --max-count must not be negative", nil)
			}
			historyReader, err := common.RequireRepositoryHistoryReader(deps)
			if err != nil {
				return err
			}

			entries, err := historyReader.History(command.Context(), repository.HistoryFilter{MaxCount: maxCount})
			if err != nil {
				return err
			}

			format, err := common.ResolveOutputFormat(command.CommandPath(), globalFlags.Output)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, format, entries, func(w io.Writer, value []repository.HistoryEntry) error {
				return renderHistoryText(w, value, oneline)
			})
		},
	}

	command.Flags().IntVar(&maxCount, "max-count", 0, "limit the number of commits")
	command.Flags().BoolVar(&oneline, "oneline", false, "compact one-line output")

	return command
}

func renderHistoryText(w io.Writer, entries []repository.HistoryEntry, oneline bool) error {
	for idx, entry := range entries {
		if oneline {
			shortHash := entry.Hash
			if len(shortHash) > 12 {
				shortHash = shortHash[:12]
			}
			if _, err := fmt.Fprintf(w, "%s %s\n", shortHash, entry.Subject); err != nil {
				return err
			}
			continue
		}

		if idx > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "commit %s\nAuthor: %s <%s>\nDate:   %s\n\n    %s\n",
			entry.Hash,
			entry.Author,
			entry.Email,
			entry.Date.Format(time.RFC3339),
			entry.Subject,
		); err != nil {
			return err
		}
	}
	return nil
}
