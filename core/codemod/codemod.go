package codemod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/tristendillon/relocate/core/logger"
)

// Invocation is one run of a transform over a set of files.
type Invocation struct {
	Transform    string
	Files        []string
	PrevFilePath string
	NextFilePath string
	PrintOptions map[string]any
}

// Args builds the jscodeshift argument list for inv.
func (inv Invocation) Args() ([]string, error) {
	args := make([]string, 0, len(inv.Files)+8)
	args = append(args, "-t", inv.Transform)
	args = append(args, inv.Files...)
	args = append(args,
		"--prevFilePath", inv.PrevFilePath,
		"--nextFilePath", inv.NextFilePath,
	)
	if len(inv.PrintOptions) > 0 {
		opts, err := json.Marshal(inv.PrintOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode print options: %w", err)
		}
		args = append(args, "--printOptions="+string(opts))
	}
	return args, nil
}

type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// ExecRunner runs the codemod as a blocking subprocess sharing this
// process's stdio.
type ExecRunner struct {
	Command []string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
}

func NewExecRunner(command []string, dir string) *ExecRunner {
	return &ExecRunner{
		Command: command,
		Dir:     dir,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	if len(r.Command) == 0 {
		return fmt.Errorf("no codemod command configured")
	}
	args, err := inv.Args()
	if err != nil {
		return err
	}

	bin, err := exec.LookPath(r.Command[0])
	if err != nil {
		return fmt.Errorf("codemod executable %q not found: %w", r.Command[0], err)
	}

	full := append(append([]string{}, r.Command[1:]...), args...)
	cmd := exec.CommandContext(ctx, bin, full...)
	cmd.Dir = r.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	logger.Debug("Running %s %s (%d files)", strings.Join(r.Command, " "), inv.Transform, len(inv.Files))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("codemod %s failed: %w", inv.Transform, err)
	}
	return nil
}
