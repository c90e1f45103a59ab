package services

import (
	"fmt"
	"math"

	"github.com/ochairo/relgate/internal/domain/entities"
)

// Evaluation contains the outcome of one gate run
type Evaluation struct {
	// Violations holds one human-readable message per failed check.
	// Empty means the run passed.
	Violations []string

	// Summary holds the confirmation lines printed on a passing run
	Summary []string
}

// Passed returns true if no check produced a violation
func (e *Evaluation) Passed() bool {
	return len(e.Violations) == 0
}

// ExitCode returns the process exit status for this evaluation
func (e *Evaluation) ExitCode() int {
	if e.Passed() {
		return 0
	}
	return 1
}

// GateService holds the pure gate decision logic. It touches no file, network,
// or repository state: everything it needs arrives in GateInput.
type GateService struct{}

// NewGateService creates a new gate service
func NewGateService() *GateService {
	return &GateService{}
}

// Evaluate applies every gate to the collected inputs and returns the
// accumulated violations plus the confirmation lines for the passing path.
// All checks run; a run reports every violation it finds, not just the first.
func (s *GateService) Evaluate(cfg entities.GateConfig, in entities.GateInput) *Evaluation {
	eval := &Evaluation{}

	if in.Scores.Coverage >= cfg.Thresholds.Coverage {
		eval.Summary = append(eval.Summary,
			fmt.Sprintf("Coverage score meets the threshold of %v%% at %v%%.",
				roundPercent(cfg.Thresholds.Coverage), roundPercent(in.Scores.Coverage)))
	} else {
		eval.Violations = append(eval.Violations,
			fmt.Sprintf("The coverage score %v does not meet the coverage threshold %v.",
				in.Scores.Coverage, cfg.Thresholds.Coverage))
	}

	if in.Scores.Lint >= cfg.Thresholds.Lint {
		eval.Summary = append(eval.Summary,
			fmt.Sprintf("Lint score meets the threshold of %v%% at %v%%.",
				roundPercent(cfg.Thresholds.Lint), roundPercent(in.Scores.Lint)))
	} else {
		eval.Violations = append(eval.Violations,
			fmt.Sprintf("The lint score %v does not meet the lint threshold %v.",
				in.Scores.Lint, cfg.Thresholds.Lint))
	}

	eval.Summary = append(eval.Summary,
		fmt.Sprintf("All of the versions match in the important files (%s, %s, %s).",
			cfg.Versions.Changelog, cfg.Versions.Packaging, cfg.Versions.Docs))

	if in.ReleaseCheck {
		s.evaluateRelease(cfg, in, eval)
	}

	return eval
}

// evaluateRelease applies the checks that only gate releases
func (s *GateService) evaluateRelease(cfg entities.GateConfig, in entities.GateInput, eval *Evaluation) {
	if !in.Versions.Consistent() {
		eval.Violations = append(eval.Violations,
			fmt.Sprintf("The versions do not match across the important files (%s, %s, %s).",
				cfg.Versions.Changelog, cfg.Versions.Packaging, cfg.Versions.Docs))
	}

	// A failed fetch means the published version is unknown; the checks that
	// depend on it are skipped rather than failed.
	if in.Published.Found {
		locals := []struct {
			path    string
			version entities.OptionalVersion
		}{
			{cfg.Versions.Changelog, in.Versions.Changelog},
			{cfg.Versions.Packaging, in.Versions.Packaging},
			{cfg.Versions.Docs, in.Versions.Docs},
		}

		for _, local := range locals {
			if !local.version.Found {
				continue
			}
			if in.Published.Value >= local.version.Value {
				eval.Violations = append(eval.Violations,
					fmt.Sprintf("The version %s in %s is already published or stale (latest published: %s), do not release.",
						local.version.Value, local.path, in.Published.Value))
			}
		}
	}

	if in.DirtyTree {
		eval.Violations = append(eval.Violations,
			"Not releasing the project with staged or modified files in the working tree.")
	}

	if in.Signature == entities.SignatureFailed {
		eval.Violations = append(eval.Violations,
			fmt.Sprintf("The release artifact signature could not be verified: %s.", in.SignatureDetail))
	} else if in.Signature == entities.SignatureOK {
		eval.Summary = append(eval.Summary, "Release artifact signature verified.")
	}

	if s.readyToRelease(in) {
		eval.Summary = append(eval.Summary,
			"All versions locally are greater than the latest published release, good to release.")
	}
}

// readyToRelease reports whether the release-readiness line should be printed:
// the published version is known and strictly behind every local version.
// Equality deliberately prints nothing.
func (s *GateService) readyToRelease(in entities.GateInput) bool {
	return in.Published.Found &&
		in.Versions.AllFound() &&
		in.Published.Value < in.Versions.Changelog.Value &&
		in.Published.Value < in.Versions.Packaging.Value &&
		in.Published.Value < in.Versions.Docs.Value
}

// roundPercent converts a fraction to a percentage rounded to two decimals
func roundPercent(fraction float64) float64 {
	return math.Round(fraction*10000) / 100
}
