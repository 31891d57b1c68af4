// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pager renders the catalog listing and shows it through an
// external pager program.
package pager

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultCommand is used when neither configuration nor $STUDY_PAGER name one.
const DefaultCommand = "less -R"

// EnvVar names the environment variable that overrides the pager command.
const EnvVar = "STUDY_PAGER"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

var defaultExec executor = osExecutor{}

// Command returns the pager command to use: configured if non-empty, else
// $STUDY_PAGER, else DefaultCommand.
func Command(configured string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	if v := strings.TrimSpace(os.Getenv(EnvVar)); v != "" {
		return v
	}
	return DefaultCommand
}

// Page pipes content through command, whose output goes to out. When the
// pager program is not installed the content is copied to out unchanged.
func Page(command string, content io.Reader, out io.Writer) error {
	return page(defaultExec, command, content, out)
}

func page(ex executor, command string, content io.Reader, out io.Writer) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		_, err := io.Copy(out, content)
		return err
	}
	if _, err := ex.LookPath(fields[0]); err != nil {
		_, err := io.Copy(out, content)
		return err
	}
	if err := ex.RunPiped(fields[0], fields[1:], content, out); err != nil {
		return fmt.Errorf("running pager %q: %w", command, err)
	}
	return nil
}
