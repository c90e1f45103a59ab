package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ochairo/relgate/internal/domain/entities"
)

type fakeReports struct {
	coverage    float64
	lint        float64
	coverageErr error
	lintErr     error
}

func (f *fakeReports) ReadCoverageScore(string) (float64, error) { return f.coverage, f.coverageErr }
func (f *fakeReports) ReadLintScore(string) (float64, error)     { return f.lint, f.lintErr }

type fakeVersions struct {
	set entities.VersionSet
	err error
}

func (f *fakeVersions) ReadChangelogVersion(string) (entities.OptionalVersion, error) {
	return f.set.Changelog, f.err
}
func (f *fakeVersions) ReadPackagingVersion(string) (entities.OptionalVersion, error) {
	return f.set.Packaging, f.err
}
func (f *fakeVersions) ReadDocsVersion(string) (entities.OptionalVersion, error) {
	return f.set.Docs, f.err
}

type fakePublished struct {
	version entities.OptionalVersion
	calls   int
}

func (f *fakePublished) LatestPublishedVersion(context.Context) entities.OptionalVersion {
	f.calls++
	return f.version
}

type fakeTree struct {
	dirty bool
	err   error
	calls int
}

func (f *fakeTree) HasUncommittedChanges(context.Context) (bool, error) {
	f.calls++
	return f.dirty, f.err
}

type fakeSigner struct {
	err   error
	calls int
}

func (f *fakeSigner) VerifyArtifact(_, _, _ string) error {
	f.calls++
	return f.err
}

func allVersions(v string) entities.VersionSet {
	return entities.VersionSet{
		Changelog: entities.FoundVersion(v),
		Packaging: entities.FoundVersion(v),
		Docs:      entities.FoundVersion(v),
	}
}

func TestRun_WithoutReleaseCheckSkipsReleaseSources(t *testing.T) {
	published := &fakePublished{version: entities.FoundVersion("1.3.0")}
	tree := &fakeTree{dirty: true}
	signer := &fakeSigner{}

	orchestrator := NewGateOrchestrator(
		&fakeReports{coverage: 0.95, lint: 0.95},
		&fakeVersions{set: allVersions("1.3.0")},
		published, tree, signer,
	)

	evaluation, err := orchestrator.Run(context.Background(), entities.DefaultGateConfig(), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !evaluation.Passed() {
		t.Errorf("expected pass, got violations: %v", evaluation.Violations)
	}
	if published.calls != 0 || tree.calls != 0 || signer.calls != 0 {
		t.Errorf("release sources consulted without release check: feed=%d tree=%d signer=%d",
			published.calls, tree.calls, signer.calls)
	}
}

func TestRun_ReleaseCheckCollectsEverything(t *testing.T) {
	cfg := entities.DefaultGateConfig()
	cfg.Signing = entities.SigningConfig{
		Key:       "key.asc",
		Artifact:  "pkg.tar.gz",
		Signature: "pkg.tar.gz.asc",
	}

	published := &fakePublished{version: entities.FoundVersion("1.2.9")}
	tree := &fakeTree{}
	signer := &fakeSigner{}

	orchestrator := NewGateOrchestrator(
		&fakeReports{coverage: 0.95, lint: 0.95},
		&fakeVersions{set: allVersions("1.3.0")},
		published, tree, signer,
	)

	evaluation, err := orchestrator.Run(context.Background(), cfg, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !evaluation.Passed() {
		t.Errorf("expected pass, got violations: %v", evaluation.Violations)
	}
	if published.calls != 1 || tree.calls != 1 || signer.calls != 1 {
		t.Errorf("sources not consulted exactly once: feed=%d tree=%d signer=%d",
			published.calls, tree.calls, signer.calls)
	}

	summary := strings.Join(evaluation.Summary, "\n")
	if !strings.Contains(summary, "good to release") {
		t.Errorf("Summary missing readiness line:\n%s", summary)
	}
	if !strings.Contains(summary, "signature verified") {
		t.Errorf("Summary missing signature line:\n%s", summary)
	}
}

// A feed that cannot be reached must not fail the run; the other checks
// still report.
func TestRun_FeedFailureStillReportsOtherChecks(t *testing.T) {
	orchestrator := NewGateOrchestrator(
		&fakeReports{coverage: 0.5, lint: 0.95},
		&fakeVersions{set: allVersions("1.3.0")},
		&fakePublished{version: entities.NoVersion()},
		&fakeTree{dirty: true},
		&fakeSigner{},
	)

	evaluation, err := orchestrator.Run(context.Background(), entities.DefaultGateConfig(), true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	joined := strings.Join(evaluation.Violations, "\n")
	if !strings.Contains(joined, "coverage") {
		t.Errorf("coverage violation missing:\n%s", joined)
	}
	if !strings.Contains(joined, "staged or modified") {
		t.Errorf("dirty tree violation missing:\n%s", joined)
	}
	if strings.Contains(joined, "already published") {
		t.Errorf("published-version checks should be skipped when the fetch fails:\n%s", joined)
	}
}

func TestRun_SignerSkippedWhenUnconfigured(t *testing.T) {
	signer := &fakeSigner{err: errors.New("should not be called")}

	orchestrator := NewGateOrchestrator(
		&fakeReports{coverage: 0.95, lint: 0.95},
		&fakeVersions{set: allVersions("1.3.0")},
		&fakePublished{version: entities.NoVersion()},
		&fakeTree{},
		signer,
	)

	evaluation, err := orchestrator.Run(context.Background(), entities.DefaultGateConfig(), true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if signer.calls != 0 {
		t.Errorf("signer called %d times with signing unconfigured", signer.calls)
	}
	if !evaluation.Passed() {
		t.Errorf("expected pass, got violations: %v", evaluation.Violations)
	}
}

func TestRun_SignatureFailureBecomesViolation(t *testing.T) {
	cfg := entities.DefaultGateConfig()
	cfg.Signing = entities.SigningConfig{
		Key:       "key.asc",
		Artifact:  "pkg.tar.gz",
		Signature: "pkg.tar.gz.asc",
	}

	orchestrator := NewGateOrchestrator(
		&fakeReports{coverage: 0.95, lint: 0.95},
		&fakeVersions{set: allVersions("1.3.0")},
		&fakePublished{version: entities.NoVersion()},
		&fakeTree{},
		&fakeSigner{err: errors.New("openpgp: invalid signature")},
	)

	evaluation, err := orchestrator.Run(context.Background(), cfg, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	joined := strings.Join(evaluation.Violations, "\n")
	if !strings.Contains(joined, "openpgp: invalid signature") {
		t.Errorf("signature violation missing:\n%s", joined)
	}
}

func TestRun_FatalReadErrorsPropagate(t *testing.T) {
	readErr := errors.New("failed to read coverage report")

	orchestrator := NewGateOrchestrator(
		&fakeReports{coverageErr: readErr},
		&fakeVersions{set: allVersions("1.3.0")},
		&fakePublished{},
		&fakeTree{},
		&fakeSigner{},
	)

	if _, err := orchestrator.Run(context.Background(), entities.DefaultGateConfig(), false); !errors.Is(err, readErr) {
		t.Errorf("expected read error to propagate, got %v", err)
	}
}

func TestRun_TreeInspectionErrorPropagates(t *testing.T) {
	treeErr := errors.New("git diff failed")

	orchestrator := NewGateOrchestrator(
		&fakeReports{coverage: 0.95, lint: 0.95},
		&fakeVersions{set: allVersions("1.3.0")},
		&fakePublished{},
		&fakeTree{err: treeErr},
		&fakeSigner{},
	)

	if _, err := orchestrator.Run(context.Background(), entities.DefaultGateConfig(), true); !errors.Is(err, treeErr) {
		t.Errorf("expected tree error to propagate, got %v", err)
	}
}
