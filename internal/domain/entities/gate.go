package entities

// Scores holds the normalized report scores, each a fraction in [0,1].
type Scores struct {
	Coverage float64
	Lint     float64
}

// OptionalVersion is the explicit result of a version lookup: either a value
// was found or it was not. The zero value means NotFound.
type OptionalVersion struct {
	Value string
	Found bool
}

// FoundVersion wraps a value in a found OptionalVersion
func FoundVersion(value string) OptionalVersion {
	return OptionalVersion{Value: value, Found: true}
}

// NoVersion returns the NotFound result
func NoVersion() OptionalVersion {
	return OptionalVersion{}
}

// VersionSet groups the versions declared across the project metadata files
type VersionSet struct {
	Changelog OptionalVersion
	Packaging OptionalVersion
	Docs      OptionalVersion
}

// AllFound returns true if every metadata file declared a version
func (vs VersionSet) AllFound() bool {
	return vs.Changelog.Found && vs.Packaging.Found && vs.Docs.Found
}

// Consistent returns true if all three lookup results are identical,
// including their found/not-found state
func (vs VersionSet) Consistent() bool {
	return vs.Changelog == vs.Packaging && vs.Packaging == vs.Docs
}

// SignatureStatus represents the outcome of the release-artifact signature check
type SignatureStatus int

// Signature check outcomes
const (
	SignatureUnchecked SignatureStatus = iota
	SignatureOK
	SignatureFailed
)

// GateInput is everything the gate evaluator consumes for one run
type GateInput struct {
	Scores       Scores
	Versions     VersionSet
	ReleaseCheck bool

	// Published is the latest version on the package index. NotFound means
	// the fetch failed and the dependent checks are skipped.
	Published OptionalVersion

	// DirtyTree is true when the working tree has staged or unstaged changes
	DirtyTree bool

	Signature       SignatureStatus
	SignatureDetail string
}
