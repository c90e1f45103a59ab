package gateways

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ochairo/relgate/internal/domain/entities"
)

// VersionCollector reads the version each project metadata file declares.
// Each file has its own narrow, hand-authored convention; the grammars below
// make the tolerated shapes explicit instead of relying on string positions.
type VersionCollector struct{}

// NewVersionCollector creates a new version collector
func NewVersionCollector() *VersionCollector {
	return &VersionCollector{}
}

var (
	// changelogHeading matches the first release heading, e.g. "## [1.2.0] - 2026-01-15"
	changelogHeading = regexp.MustCompile(`##[^\[\]]*\[([^\]]+)\]`)

	// doubleQuoted captures the first double-quoted value on a line, e.g. version="1.2.0",
	doubleQuoted = regexp.MustCompile(`"([^"]*)"`)

	// singleQuoted captures the first single-quoted value on a line, e.g. release = '1.2.0'
	singleQuoted = regexp.MustCompile(`'([^']*)'`)
)

// ReadChangelogVersion returns the version in the first changelog section
// heading: the first line matching `##[^\[\]]*\[(...)\]`
func (c *VersionCollector) ReadChangelogVersion(path string) (entities.OptionalVersion, error) {
	return scanFirstMatch(path, func(line string) (string, bool) {
		matches := changelogHeading.FindStringSubmatch(line)
		if matches == nil {
			return "", false
		}
		return matches[1], true
	})
}

// ReadPackagingVersion returns the double-quoted value on the first line of
// the packaging descriptor that mentions "version"
func (c *VersionCollector) ReadPackagingVersion(path string) (entities.OptionalVersion, error) {
	return scanFirstMatch(path, func(line string) (string, bool) {
		if !strings.Contains(line, "version") {
			return "", false
		}
		matches := doubleQuoted.FindStringSubmatch(line)
		if matches == nil {
			return "", false
		}
		return matches[1], true
	})
}

// ReadDocsVersion returns the single-quoted value on the first line of the
// documentation descriptor that mentions "release"
func (c *VersionCollector) ReadDocsVersion(path string) (entities.OptionalVersion, error) {
	return scanFirstMatch(path, func(line string) (string, bool) {
		if !strings.Contains(line, "release") {
			return "", false
		}
		matches := singleQuoted.FindStringSubmatch(line)
		if matches == nil {
			return "", false
		}
		return matches[1], true
	})
}

// scanFirstMatch scans the file line by line and returns the first extracted
// value, trimmed. A file with no matching line yields NotFound, not an error;
// an unreadable file is an error.
func scanFirstMatch(path string, extract func(line string) (string, bool)) (entities.OptionalVersion, error) {
	//nolint:gosec // G304: path comes from the gate configuration
	f, err := os.Open(path)
	if err != nil {
		return entities.NoVersion(), fmt.Errorf("failed to read version file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if value, ok := extract(scanner.Text()); ok {
			return entities.FoundVersion(strings.TrimSpace(value)), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return entities.NoVersion(), fmt.Errorf("failed to scan %s: %w", path, err)
	}

	return entities.NoVersion(), nil
}
