package gateways

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	ifgateways "github.com/ochairo/relgate/internal/domain/interfaces/gateways"
)

// GitInspector checks the local repository for uncommitted work by running
// the git CLI, read-only
type GitInspector struct {
	workDir string
}

var _ ifgateways.WorkingTreeInspector = (*GitInspector)(nil)

// NewGitInspector creates an inspector rooted at the given directory
func NewGitInspector(workDir string) *GitInspector {
	return &GitInspector{workDir: workDir}
}

// HasUncommittedChanges returns true when the index differs from the working
// directory (unstaged changes) or from HEAD (staged changes)
func (g *GitInspector) HasUncommittedChanges(ctx context.Context) (bool, error) {
	unstaged, err := g.changedFiles(ctx, "diff", "--name-only")
	if err != nil {
		return false, err
	}

	staged, err := g.changedFiles(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}

	return len(unstaged) > 0 || len(staged) > 0, nil
}

// changedFiles runs one git diff variant and returns the listed paths
func (g *GitInspector) changedFiles(ctx context.Context, args ...string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s failed: %w: %s",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	var files []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			files = append(files, trimmed)
		}
	}

	return files, nil
}
