// Package testkit drives cobra command trees from tests.
package testkit

import (
	"bytes"
	"strings"
	"sync"

	"github.com/spf13/cobra"
)

// Cobra writes flag annotations while it renders help and completions, so
// parallel tests take turns.
var executeMu sync.Mutex

// Streams captures what a command wrote.
type Streams struct {
	Stdout string
	Stderr string
}

func ExecuteCommandForTest(command *cobra.Command, stdin string, args ...string) (string, error) {
	streams, err := Run(command, stdin, args...)
	return streams.Stdout, err
}

func ExecuteCommandForTestWithStreams(command *cobra.Command, stdin string, args ...string) (string, string, error) {
	streams, err := Run(command, stdin, args...)
	return streams.Stdout, streams.Stderr, err
}

// Run executes command with args, feeding stdin and capturing both streams.
func Run(command *cobra.Command, stdin string, args ...string) (Streams, error) {
	executeMu.Lock()
	defer executeMu.Unlock()

	var stdout, stderr bytes.Buffer
	command.SetOut(&stdout)
	command.SetErr(&stderr)
	command.SetIn(strings.NewReader(stdin))
	command.SetArgs(args)

	err := command.Execute()
	return Streams{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// RegisteredPaths lists every user-facing command below command, depth
// first, as name slices relative to the root.
func RegisteredPaths(command *cobra.Command, prefix []string) [][]string {
	var paths [][]string
	for _, child := range command.Commands() {
		name := child.Name()
		if name == "help" || strings.HasPrefix(name, "__") {
			continue
		}
		current := append(append([]string(nil), prefix...), name)
		paths = append(paths, current)
		paths = append(paths, RegisteredPaths(child, current)...)
	}
	return paths
}

func JoinPath(path []string) string {
	if len(path) == 0 {
		return "root"
	}
	return strings.Join(path, " ")
}
