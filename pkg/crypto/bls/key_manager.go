// Copyright 2025 Certen Protocol
//
// KeyStore persists a single BLS key pair to disk, hex-encoded, so a
// trusted-contact factor source's recovery key survives process restarts
// without being regenerated (which would invalidate every attestation a
// recovering party already holds).

package bls

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// KeyStore loads or generates a BLS key pair at a fixed path.
type KeyStore struct {
	path       string
	privateKey *PrivateKey
	publicKey  *PublicKey
}

// NewKeyStore creates a KeyStore rooted at path. An empty path means keys
// are never persisted; LoadOrGenerate then always generates fresh from
// seed.
func NewKeyStore(path string) *KeyStore {
	return &KeyStore{path: path}
}

// LoadOrGenerate loads the key at ks.path if present, otherwise derives
// one deterministically from seed and, if ks.path is non-empty, persists
// it for next time.
func (ks *KeyStore) LoadOrGenerate(seed []byte) error {
	if err := Initialize(); err != nil {
		return fmt.Errorf("initialize BLS: %w", err)
	}

	if ks.path != "" {
		if _, err := os.Stat(ks.path); err == nil {
			return ks.Load()
		}
	}

	// GenerateKeyPairFromSeed needs at least 32 bytes, so a seed of any
	// length is first hashed down to exactly 32.
	digest := sha256.Sum256(seed)
	var err error
	ks.privateKey, ks.publicKey, err = GenerateKeyPairFromSeed(digest[:])
	if err != nil {
		return fmt.Errorf("generate key pair from seed: %w", err)
	}
	if ks.path != "" {
		return ks.Save()
	}
	return nil
}

// Load reads the hex-encoded private key at ks.path.
func (ks *KeyStore) Load() error {
	if ks.path == "" {
		return fmt.Errorf("no key path specified")
	}
	data, err := os.ReadFile(ks.path)
	if err != nil {
		return fmt.Errorf("read key file: %w", err)
	}
	keyBytes, err := hex.DecodeString(string(data))
	if err != nil {
		return fmt.Errorf("decode key hex: %w", err)
	}
	ks.privateKey, err = PrivateKeyFromBytes(keyBytes)
	if err != nil {
		return fmt.Errorf("parse private key: %w", err)
	}
	ks.publicKey = ks.privateKey.PublicKey()
	return nil
}

// Save writes the current private key to ks.path, hex-encoded with
// owner-only permissions.
func (ks *KeyStore) Save() error {
	if ks.path == "" {
		return fmt.Errorf("no key path specified")
	}
	if ks.privateKey == nil {
		return fmt.Errorf("no private key to save")
	}
	if dir := filepath.Dir(ks.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
	}
	keyHex := hex.EncodeToString(ks.privateKey.Bytes())
	if err := os.WriteFile(ks.path, []byte(keyHex), 0600); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}
	return nil
}

// PrivateKey returns the loaded or generated private key, nil before a
// successful Load/LoadOrGenerate.
func (ks *KeyStore) PrivateKey() *PrivateKey { return ks.privateKey }

// PublicKey returns the loaded or generated public key, nil before a
// successful Load/LoadOrGenerate.
func (ks *KeyStore) PublicKey() *PublicKey { return ks.publicKey }
