// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/relgate/internal/domain/entities"
)

// PublishedVersionSource provides the most recently published version of the
// project from a package index. Implementations must never fail: any fetch or
// parse problem collapses to NotFound so the rest of the gate run proceeds.
type PublishedVersionSource interface {
	LatestPublishedVersion(ctx context.Context) entities.OptionalVersion
}

// WorkingTreeInspector reports local version-control state
type WorkingTreeInspector interface {
	// HasUncommittedChanges returns true when the working tree has staged
	// or unstaged modifications relative to the last commit
	HasUncommittedChanges(ctx context.Context) (bool, error)
}

// ReleaseSigner verifies the detached signature published alongside a release
// artifact
type ReleaseSigner interface {
	VerifyArtifact(keyPath, artifactPath, sigPath string) error
}
