package main

import (
	"os"
	"reflect"
	"testing"

	"github.com/hpungsan/promptbin/internal/logger"
)

func withArgs(t *testing.T, args []string) {
	t.Helper()
	orig := os.Args
	os.Args = args
	t.Cleanup(func() { os.Args = orig })
}

func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", []string{"promptbin"}, false},
		{"known command", []string{"promptbin", "list"}, true},
		{"serve", []string{"promptbin", "serve"}, true},
		{"help flag", []string{"promptbin", "--help"}, true},
		{"version flag", []string{"promptbin", "-v"}, true},
		{"unknown arg", []string{"promptbin", "bogus"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args)
			if got := isCLIMode(); got != tt.want {
				t.Errorf("isCLIMode() = %v with args %v", got, tt.args)
			}
		})
	}
}

func TestIsHelpOrVersion(t *testing.T) {
	withArgs(t, []string{"promptbin", "--help"})
	if !isHelpOrVersion() {
		t.Error("--help should be detected")
	}

	withArgs(t, []string{"promptbin", "list"})
	if isHelpOrVersion() {
		t.Error("list is not a help request")
	}
}

func TestCLICommandsCoverApp(t *testing.T) {
	app := newCLIApp(nil, nil, logger.NewNop())
	for _, cmd := range app.Commands {
		if !cliCommands[cmd.Name] {
			t.Errorf("command %q missing from the mode dispatch table", cmd.Name)
		}
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a,b", []string{"a", "b"}},
		{" a , , b ", []string{"a", "b"}},
	}
	for _, tt := range tests {
		if got := parseTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
