// Package gpg verifies detached GPG signatures on release artifacts.
package gpg

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"

	ifgateways "github.com/ochairo/relgate/internal/domain/interfaces/gateways"
)

const armorHeader = "-----BEGIN PGP SIGNATURE---"

// Verifier checks detached signatures against a local public key using
// ProtonMail's go-crypto, the maintained fork of golang.org/x/crypto/openpgp.
// It lives in external-adapters to isolate the dependency.
type Verifier struct{}

var _ ifgateways.ReleaseSigner = (*Verifier)(nil)

// NewVerifier creates a new GPG verifier
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyArtifact verifies the detached signature at sigPath over the artifact
// at artifactPath, using the public key at keyPath. Both the key and the
// signature may be armored or binary.
func (v *Verifier) VerifyArtifact(keyPath, artifactPath, sigPath string) error {
	//nolint:gosec // G304: sigPath comes from the gate configuration
	sigData, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("failed to read signature file: %w", err)
	}
	if len(sigData) < 10 {
		return fmt.Errorf("signature file %s too small to be a GPG signature", sigPath)
	}

	keyring, err := loadKeyring(keyPath)
	if err != nil {
		return err
	}

	//nolint:gosec // G304: artifactPath comes from the gate configuration
	artifact, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	//nolint:errcheck // Defer close
	defer artifact.Close()

	sig := bytes.NewReader(sigData)
	if isArmored(sigData) {
		_, err = openpgp.CheckArmoredDetachedSignature(keyring, artifact, sig, nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(keyring, artifact, sig, nil)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}

// loadKeyring reads a public key file, trying armored format first and
// falling back to binary
func loadKeyring(keyPath string) (openpgp.EntityList, error) {
	//nolint:gosec // G304: keyPath comes from the gate configuration
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read key %s: %w", keyPath, err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("no keys found in %s", keyPath)
	}

	return keyring, nil
}

// isArmored reports whether the signature data starts with a PGP armor header
func isArmored(sigData []byte) bool {
	return len(sigData) >= len(armorHeader) && string(sigData[:len(armorHeader)]) == armorHeader
}
