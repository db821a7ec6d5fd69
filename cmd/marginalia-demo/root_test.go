package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iw2rmb/marginalia"
)

func TestRootVersionFlagPrintsTag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got, want := out.String(), marginalia.VersionTag(); !strings.Contains(got, want) {
		t.Fatalf("version output: got %q, want it to contain %q", got, want)
	}
}
