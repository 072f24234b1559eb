package scanner

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	apperrors "aidetect/internal/errors"
)

const cloneTimeout = 5 * time.Minute

var repoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^https?://github\.com/[\w.-]+/[\w.-]+$`),
	regexp.MustCompile(`(?i)^git@github\.com:[\w.-]+/[\w.-]+$`),
	regexp.MustCompile(`(?i)^gh:[\w.-]+/[\w.-]+$`),
}

// ValidateRepoURL checks a repository URL and returns its normalized clone
// form. The gh:owner/repo short form expands to an https URL.
func ValidateRepoURL(url string) (string, error) {
	normalized := strings.TrimRight(strings.TrimSpace(url), "/")
	bare := strings.TrimSuffix(normalized, ".git")

	for _, p := range repoURLPatterns {
		if p.MatchString(bare) {
			if strings.HasPrefix(strings.ToLower(bare), "gh:") {
				return "https://github.com/" + bare[3:] + ".git", nil
			}
			if strings.Contains(strings.ToLower(bare), "github.com") && !strings.HasSuffix(normalized, ".git") {
				return normalized + ".git", nil
			}
			return normalized, nil
		}
	}

	return "", apperrors.NewValidationError("invalid repository URL", url)
}

// Clone performs a shallow clone into a fresh temp directory and returns the
// directory plus a cleanup function. Cleanup is safe to call on every path.
func Clone(ctx context.Context, url, branch string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "aidetect_scan_")
	if err != nil {
		return "", func() {}, apperrors.NewInternalError("failed to create temp directory", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	ctx, cancel := context.WithTimeout(ctx, cloneTimeout)
	defer cancel()

	args := []string{"clone", "--depth", "1"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, dir)

	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cleanup()

		if ctx.Err() == context.DeadlineExceeded {
			return "", func() {}, apperrors.NewTimeoutError("clone timed out", err)
		}

		msg := strings.ToLower(stderr.String())
		switch {
		case strings.Contains(msg, "not found"):
			return "", func() {}, apperrors.NewValidationError("repository not found", url)
		case strings.Contains(msg, "could not find remote branch"):
			return "", func() {}, apperrors.NewValidationError("branch not found", branch)
		default:
			return "", func() {}, apperrors.NewNetworkError("git clone failed: "+strings.TrimSpace(stderr.String()), err)
		}
	}

	return dir, cleanup, nil
}

// DefaultBranch returns the checked-out branch of a cloned repository,
// falling back to "main" when git is not cooperative.
func DefaultBranch(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "main"
	}

	branch := strings.TrimSpace(out.String())
	if branch == "" {
		return "main"
	}
	return branch
}
