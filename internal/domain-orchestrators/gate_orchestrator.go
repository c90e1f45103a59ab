// Package orchestrators coordinates the collection of gate inputs and the
// final evaluation.
package orchestrators

import (
	"context"

	"github.com/ochairo/relgate/internal/domain/entities"
	ifgateways "github.com/ochairo/relgate/internal/domain/interfaces/gateways"
	"github.com/ochairo/relgate/internal/domain/services"
)

// ReportSource extracts normalized scores from report artifacts
type ReportSource interface {
	ReadCoverageScore(path string) (float64, error)
	ReadLintScore(path string) (float64, error)
}

// VersionSource extracts declared versions from project metadata files
type VersionSource interface {
	ReadChangelogVersion(path string) (entities.OptionalVersion, error)
	ReadPackagingVersion(path string) (entities.OptionalVersion, error)
	ReadDocsVersion(path string) (entities.OptionalVersion, error)
}

// GateOrchestrator runs one complete gate check: it gathers every input the
// evaluator needs, sequentially, then hands the decision to the gate service
type GateOrchestrator struct {
	reports   ReportSource
	versions  VersionSource
	published ifgateways.PublishedVersionSource
	tree      ifgateways.WorkingTreeInspector
	signer    ifgateways.ReleaseSigner
	service   *services.GateService
}

// NewGateOrchestrator creates a new gate orchestrator
func NewGateOrchestrator(
	reports ReportSource,
	versions VersionSource,
	published ifgateways.PublishedVersionSource,
	tree ifgateways.WorkingTreeInspector,
	signer ifgateways.ReleaseSigner,
) *GateOrchestrator {
	return &GateOrchestrator{
		reports:   reports,
		versions:  versions,
		published: published,
		tree:      tree,
		signer:    signer,
		service:   services.NewGateService(),
	}
}

// Run collects the gate inputs and evaluates them. Missing or malformed
// report and metadata files are errors: those artifacts are produced by
// earlier pipeline steps, so their absence means the pipeline is
// misconfigured, not that the gate failed.
func (o *GateOrchestrator) Run(ctx context.Context, cfg entities.GateConfig, releaseCheck bool) (*services.Evaluation, error) {
	input := entities.GateInput{ReleaseCheck: releaseCheck}

	coverage, err := o.reports.ReadCoverageScore(cfg.Reports.Coverage)
	if err != nil {
		return nil, err
	}
	lint, err := o.reports.ReadLintScore(cfg.Reports.Lint)
	if err != nil {
		return nil, err
	}
	input.Scores = entities.Scores{Coverage: coverage, Lint: lint}

	input.Versions.Changelog, err = o.versions.ReadChangelogVersion(cfg.Versions.Changelog)
	if err != nil {
		return nil, err
	}
	input.Versions.Packaging, err = o.versions.ReadPackagingVersion(cfg.Versions.Packaging)
	if err != nil {
		return nil, err
	}
	input.Versions.Docs, err = o.versions.ReadDocsVersion(cfg.Versions.Docs)
	if err != nil {
		return nil, err
	}

	if releaseCheck {
		input.Published = o.published.LatestPublishedVersion(ctx)

		input.DirtyTree, err = o.tree.HasUncommittedChanges(ctx)
		if err != nil {
			return nil, err
		}

		if cfg.Signing.Enabled() {
			if sigErr := o.signer.VerifyArtifact(cfg.Signing.Key, cfg.Signing.Artifact, cfg.Signing.Signature); sigErr != nil {
				input.Signature = entities.SignatureFailed
				input.SignatureDetail = sigErr.Error()
			} else {
				input.Signature = entities.SignatureOK
			}
		}
	}

	return o.service.Evaluate(cfg, input), nil
}
