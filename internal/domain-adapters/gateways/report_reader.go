// Package gateways implements the adapters that collect gate inputs from the
// filesystem, the package index, and the local repository.
package gateways

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ReportReader extracts normalized scores from pre-generated report artifacts.
// The reports are prerequisites produced by earlier pipeline steps; a missing
// or malformed report is an error, not a gate violation.
type ReportReader struct{}

// NewReportReader creates a new report reader
func NewReportReader() *ReportReader {
	return &ReportReader{}
}

// coverageReport mirrors the one field we need from the coverage JSON.
// A pointer distinguishes a missing field from a genuine zero.
type coverageReport struct {
	Totals struct {
		PercentCovered *float64 `json:"percent_covered"`
	} `json:"totals"`
}

// ReadCoverageScore reads the coverage report and returns the covered
// fraction in [0,1], taken from the totals.percent_covered field
func (r *ReportReader) ReadCoverageScore(path string) (float64, error) {
	//nolint:gosec // G304: path comes from the gate configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read coverage report: %w", err)
	}

	var report coverageReport
	if err := json.Unmarshal(data, &report); err != nil {
		return 0, fmt.Errorf("failed to parse coverage report %s: %w", path, err)
	}

	if report.Totals.PercentCovered == nil {
		return 0, fmt.Errorf("coverage report %s is missing totals.percent_covered", path)
	}

	return *report.Totals.PercentCovered / 100, nil
}

// lintScoreLine matches the trailing pylint summary, e.g.
// "Your code has been rated at 9.15/10 (previous run: 9.00/10, +0.15)"
var lintScoreLine = regexp.MustCompile(`^Your code has been rated at (-?[0-9]+(?:\.[0-9]+)?)/10`)

// ReadLintScore reads the lint report and returns the rating as a fraction
// in [0,1]. The last non-blank line of the report must be the rating line.
func (r *ReportReader) ReadLintScore(path string) (float64, error) {
	//nolint:gosec // G304: path comes from the gate configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read lint report: %w", err)
	}

	var last string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			last = strings.TrimSpace(line)
		}
	}
	if last == "" {
		return 0, fmt.Errorf("lint report %s is empty", path)
	}

	matches := lintScoreLine.FindStringSubmatch(last)
	if matches == nil {
		return 0, fmt.Errorf("lint report %s does not end with a rating line: %q", path, last)
	}

	rating, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid lint rating in %s: %w", path, err)
	}

	return rating / 10, nil
}
