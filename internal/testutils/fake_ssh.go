package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kballard/go-shellquote"
)

const (
	argsWaitTimeout  = 5 * time.Second
	argsWaitInterval = 20 * time.Millisecond
)

// FakeSSH is a stand-in ssh client script that records its arguments.
type FakeSSH struct {
	Path     string
	ArgsPath string
}

// WriteFakeSSH writes an executable script that records its arguments one per
// line, then runs body. The record appears atomically once all args are written.
func WriteFakeSSH(t *testing.T, body string) *FakeSSH {
	t.Helper()

	dir := t.TempDir()
	argsPath := filepath.Join(dir, "args")
	script := fmt.Sprintf(`#!/bin/sh
tmp=%[1]s.tmp
: > "$tmp"
for arg in "$@"; do
	printf '%%s\n' "$arg" >> "$tmp"
done
mv "$tmp" %[1]s
%[2]s
`, shellquote.Join(argsPath), body)

	path := filepath.Join(dir, "ssh")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake ssh: %v", err)
	}
	return &FakeSSH{Path: path, ArgsPath: argsPath}
}

// WaitForArgs polls until the fake ssh has recorded its arguments.
func (f *FakeSSH) WaitForArgs(t *testing.T) []string {
	t.Helper()

	deadline := time.Now().Add(argsWaitTimeout)
	for {
		data, err := os.ReadFile(f.ArgsPath)
		if err == nil {
			return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		}
		if time.Now().After(deadline) {
			t.Fatalf("fake ssh did not record its arguments: %v", err)
		}
		time.Sleep(argsWaitInterval)
	}
}
