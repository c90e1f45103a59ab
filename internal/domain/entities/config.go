package entities

// GateConfig carries every tunable the gate run depends on, so tests can
// substitute paths and thresholds without touching global state
type GateConfig struct {
	Thresholds ThresholdConfig
	Reports    ReportPaths
	Versions   VersionFilePaths
	Feed       FeedConfig
	Signing    SigningConfig
}

// ThresholdConfig holds the minimum acceptable scores, as fractions in [0,1]
type ThresholdConfig struct {
	Coverage float64
	Lint     float64
}

// ReportPaths locates the pre-generated report artifacts
type ReportPaths struct {
	Coverage string
	Lint     string
}

// VersionFilePaths locates the metadata files that declare the project version
type VersionFilePaths struct {
	Changelog string
	Packaging string
	Docs      string
}

// FeedConfig describes the package-index release feed
type FeedConfig struct {
	URL string
	// TitleIndex selects which <title> element holds the latest release.
	// RSS feeds put the channel's own title first, so the default is 1.
	TitleIndex int
}

// SigningConfig locates the release signing key, artifact, and detached
// signature. The signature gate only runs when all three are set.
type SigningConfig struct {
	Key       string
	Artifact  string
	Signature string
}

// Enabled returns true when the signature gate is fully configured
func (s SigningConfig) Enabled() bool {
	return s.Key != "" && s.Artifact != "" && s.Signature != ""
}

// DefaultGateConfig returns the built-in configuration used when no config
// file is present
func DefaultGateConfig() GateConfig {
	return GateConfig{
		Thresholds: ThresholdConfig{
			Coverage: 0.8,
			Lint:     0.9,
		},
		Reports: ReportPaths{
			Coverage: "coverage.tfc.json",
			Lint:     "lint_output.txt",
		},
		Versions: VersionFilePaths{
			Changelog: "CHANGELOG.md",
			Packaging: "setup.py",
			Docs:      "docs/conf.py",
		},
		Feed: FeedConfig{
			URL:        "https://pypi.org/rss/project/terrasnek/releases.xml",
			TitleIndex: 1,
		},
	}
}
