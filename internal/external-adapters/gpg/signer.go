// Package gpg signs published firmware images and verifies their detached
// signatures.
package gpg

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer writes armored detached signatures using ProtonMail's go-crypto
// A maintained, modern fork of golang.org/x/crypto/openpgp
// This is in external-adapters to isolate the external dependency
type Signer struct {
	entity *openpgp.Entity
}

// NewSigner wraps an in-memory entity holding a decrypted private key
func NewSigner(entity *openpgp.Entity) *Signer {
	return &Signer{entity: entity}
}

// NewSignerFromFile loads a signing key (armored or binary) from keyPath
func NewSignerFromFile(keyPath string) (*Signer, error) {
	entities, err := readKeyRingFile(keyPath)
	if err != nil {
		return nil, err
	}

	for _, entity := range entities {
		if entity.PrivateKey == nil {
			continue
		}
		if entity.PrivateKey.Encrypted {
			return nil, fmt.Errorf("signing key in %s is passphrase-protected", keyPath)
		}
		return &Signer{entity: entity}, nil
	}

	return nil, fmt.Errorf("no usable private key found in %s", keyPath)
}

// SignFile writes an armored detached signature next to path and returns
// the signature's path
func (s *Signer) SignFile(path string) (string, error) {
	//nolint:gosec // G304: path is the file just published
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for signing: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	sigPath := path + ".asc"
	out, err := os.Create(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to create signature file: %w", err)
	}

	if err := openpgp.ArmoredDetachSign(out, s.entity, f, nil); err != nil {
		//nolint:errcheck,gosec // Best effort close on signing error
		out.Close()
		return "", fmt.Errorf("failed to sign %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write signature file: %w", err)
	}

	return sigPath, nil
}

// Verifier checks armored detached signatures against an imported keyring
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a verifier over the given entities
func NewVerifier(entities ...*openpgp.Entity) *Verifier {
	return &Verifier{keyring: entities}
}

// NewVerifierFromFile imports the keyring (armored or binary) from keyPath
func NewVerifierFromFile(keyPath string) (*Verifier, error) {
	entities, err := readKeyRingFile(keyPath)
	if err != nil {
		return nil, err
	}
	return &Verifier{keyring: entities}, nil
}

// VerifyFile checks the armored detached signature at sigPath against the
// file at path
func (v *Verifier) VerifyFile(path, sigPath string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no keys imported")
	}

	//nolint:gosec // G304: sigPath is user-provided for verification
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sigFile.Close()

	//nolint:gosec // G304: path is user-provided for verification
	dataFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	if _, err := openpgp.CheckArmoredDetachedSignature(v.keyring, dataFile, sigFile, nil); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}

// readKeyRingFile reads a keyring from a file, trying armored first and
// falling back to binary
func readKeyRingFile(keyPath string) (openpgp.EntityList, error) {
	//nolint:gosec // G304: keyPath is user-provided for key import
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		// Try reading as binary
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return nil, fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return nil, fmt.Errorf("no keys found in file")
	}

	return entities, nil
}
