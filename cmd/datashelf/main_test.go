package main

import (
	"reflect"
	"testing"
)

func TestBootstrapFlagsFromArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
		want bootstrapFlags
	}{
		{
			name: "no flags",
			args: []string{"user", "list"},
			want: bootstrapFlags{},
		},
		{
			name: "separated values",
			args: []string{"--config", "/etc/datashelf.yaml", "user", "list", "--data-dir", "/srv/data"},
			want: bootstrapFlags{configPath: "/etc/datashelf.yaml", dataDir: "/srv/data"},
		},
		{
			name: "equals values and short debug",
			args: []string{"--config=/tmp/c.yaml", "-d", "dataset", "list", "-u", "abc"},
			want: bootstrapFlags{configPath: "/tmp/c.yaml", debug: true},
		},
		{
			name: "unknown flags ignored",
			args: []string{"collection", "get", "xyz", "--user", "u", "--dataset", "d", "--data-dir=/data"},
			want: bootstrapFlags{dataDir: "/data"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := bootstrapFlagsFromArgs(testCase.args)
			if got != testCase.want {
				t.Fatalf("bootstrapFlagsFromArgs() = %#v, want %#v", got, testCase.want)
			}
		})
	}
}

func TestBootstrapOverrides(t *testing.T) {
	t.Parallel()

	if got := (bootstrapFlags{}).overrides(); got != nil {
		t.Fatalf("expected no overrides, got %#v", got)
	}

	got := bootstrapFlags{dataDir: "/srv/data"}.overrides()
	want := map[string]string{"data_dir": "/srv/data"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("overrides() = %#v, want %#v", got, want)
	}
}

func TestIsHelpInvocation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no args defaults to help", args: nil, want: true},
		{name: "short help flag", args: []string{"-h"}, want: true},
		{name: "help command", args: []string{"help", "user"}, want: true},
		{name: "nested command help flag", args: []string{"user", "create", "--help"}, want: true},
		{name: "help token after double dash ignored", args: []string{"user", "create", "--", "--help"}, want: false},
		{name: "regular command invocation", args: []string{"user", "list"}, want: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := isHelpInvocation(testCase.args)
			if got != testCase.want {
				t.Fatalf("isHelpInvocation() = %t, want %t", got, testCase.want)
			}
		})
	}
}

func TestIsCompletionInvocation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
		want bool
	}{
		{name: "empty args", args: nil, want: false},
		{name: "completion subcommand", args: []string{"completion", "bash"}, want: true},
		{name: "hidden complete command", args: []string{"__complete", "user", "g"}, want: true},
		{name: "hidden complete no desc command", args: []string{"__completeNoDesc", "user", "g"}, want: true},
		{name: "completion token as positional argument", args: []string{"user", "get", "completion"}, want: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := isCompletionInvocation(testCase.args)
			if got != testCase.want {
				t.Fatalf("isCompletionInvocation() = %t, want %t", got, testCase.want)
			}
		})
	}
}

func TestShouldSkipContextBootstrap(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
		want bool
	}{
		{name: "help path", args: []string{"user", "create", "--help"}, want: true},
		{name: "completion path", args: []string{"completion", "bash"}, want: true},
		{name: "partial command path", args: []string{"user"}, want: true},
		{name: "missing positional", args: []string{"user", "get"}, want: true},
		{name: "user list", args: []string{"user", "list"}, want: false},
		{name: "dataset create", args: []string{"dataset", "create", "-u", "abc", "--name", "x"}, want: false},
		{name: "repo history", args: []string{"repo", "history"}, want: false},
		{name: "config show", args: []string{"config", "show"}, want: false},
		{name: "version", args: []string{"version"}, want: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got := shouldSkipContextBootstrap(testCase.args)
			if got != testCase.want {
				t.Fatalf("shouldSkipContextBootstrap(%v) = %t, want %t", testCase.args, got, testCase.want)
			}
		})
	}
}
