package cli

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/crmarques/datashelf/config"
	"github.com/crmarques/datashelf/faults"
	"github.com/crmarques/datashelf/internal/app/kinds"
	clitestkit "github.com/crmarques/datashelf/internal/cli/testkit"
	"github.com/crmarques/datashelf/internal/providers/repository/fsstore"
	"github.com/crmarques/datashelf/internal/providers/repository/git"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

func executeForTest(deps Dependencies, stdin string, args ...string) (string, error) {
	return clitestkit.ExecuteCommandForTest(NewRootCommand(deps), stdin, args...)
}

func executeForTestWithStreams(deps Dependencies, stdin string, args ...string) (string, string, error) {
	return clitestkit.ExecuteCommandForTestWithStreams(NewRootCommand(deps), stdin, args...)
}

func registeredPaths(command *cobra.Command, prefix []string) [][]string {
	return clitestkit.RegisteredPaths(command, prefix)
}

func joinPath(path []string) string {
	return clitestkit.JoinPath(path)
}

func extractHelpSection(output string, heading string) string {
	lines := strings.Split(output, "\n")
	start := -1
	for index, line := range lines {
		if strings.TrimSpace(line) == heading {
			start = index + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	section := make([]string, 0)
	for index := start; index < len(lines); index++ {
		line := lines[index]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(section) > 0 {
				break
			}
			continue
		}

		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") && strings.HasSuffix(trimmed, ":") {
			break
		}

		section = append(section, line)
	}

	return strings.Join(section, "\n")
}

func trailingBlankLineCount(value string) int {
	lines := strings.Split(value, "\n")
	emptySuffix := 0
	for index := len(lines) - 1; index >= 0; index-- {
		if lines[index] != "" {
			break
		}
		emptySuffix++
	}
	// Help output ends with exactly one newline.
	if emptySuffix <= 1 {
		return 0
	}
	return emptySuffix - 1
}

// testDeps wires the commands to an empty filesystem store that lives only
// for the duration of the test.
func testDeps(t *testing.T) Dependencies {
	t.Helper()

	store := fsstore.NewLocalResourceRepository(t.TempDir())
	cfg := config.Config{
		DataDir:    store.Root(),
		Repository: config.Repository{Backend: config.BackendFilesystem},
		Log:        config.Log{Level: config.LogLevelInfo, Format: config.LogFormatConsole},
	}
	return Dependencies{
		Kinds:          kinds.NewService(store, logr.Discard()),
		RepositorySync: store,
		Config:         &cfg,
		Logger:         logr.Discard(),
	}
}

func gitTestDeps(t *testing.T) Dependencies {
	t.Helper()

	store := git.NewGitResourceRepository(t.TempDir(), config.GitRepository{
		AuthorName:  "Test Author",
		AuthorEmail: "author@example.com",
	})
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	cfg := config.Config{
		DataDir:    store.Root(),
		Repository: config.Repository{Backend: config.BackendGit},
		Log:        config.Log{Level: config.LogLevelInfo, Format: config.LogFormatConsole},
	}
	return Dependencies{
		Kinds:          kinds.NewService(store, logr.Discard()),
		RepositorySync: store,
		History:        store,
		Config:         &cfg,
		Logger:         logr.Discard(),
	}
}

type envelopeForTest struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, output string) envelopeForTest {
	t.Helper()

	var envelope envelopeForTest
	if err := json.Unmarshal([]byte(output), &envelope); err != nil {
		t.Fatalf("expected json envelope, got %q: %v", output, err)
	}
	return envelope
}

// createForTest runs a create command and returns the new resource id.
func createForTest(t *testing.T, deps Dependencies, args ...string) string {
	t.Helper()

	output, err := executeForTest(deps, "", args...)
	if err != nil {
		t.Fatalf("%s returned error: %v", strings.Join(args, " "), err)
	}
	envelope := decodeEnvelope(t, output)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(envelope.Data, &created); err != nil {
		t.Fatalf("expected created resource data, got %q: %v", output, err)
	}
	if created.ID == "" {
		t.Fatalf("expected created id in %q", output)
	}
	return created.ID
}

func assertTypedCategory(t *testing.T, err error, category faults.ErrorCategory) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %q error, got nil", category)
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		t.Fatalf("expected typed error, got %T", err)
	}
	if typedErr.Category != category {
		t.Fatalf("expected %q category, got %q", category, typedErr.Category)
	}
}
