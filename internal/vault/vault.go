package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Sealer encrypts opaque identifiers so they can be stored at rest and handed
// to clients inside URLs.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// Config holds vault configuration
type Config struct {
	MasterKey   string
	Salt        []byte // Must stay fixed across restarts or sealed values stop opening
	AuditLogger AuditLogger
}

// AuditLogger receives key usage failures.
type AuditLogger interface {
	LogError(operation, subject string, err error)
}

// Vault implements Sealer with AES-256-GCM under an argon2id-derived key.
type Vault struct {
	aead        cipher.AEAD
	auditLogger AuditLogger
}

var (
	ErrMalformed = errors.New("sealed value is malformed")
	ErrTampered  = errors.New("sealed value failed authentication")
)

// New initializes the vault
func New(config Config) (*Vault, error) {
	if config.MasterKey == "" {
		return nil, errors.New("Master Key Required")
	}

	if len(config.Salt) == 0 {
		return nil, errors.New("Salt Required")
	}

	block, err := aes.NewCipher(deriveKey(config.MasterKey, string(config.Salt), 32))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Vault{aead: gcm, auditLogger: config.AuditLogger}, nil
}

// Seal encrypts plaintext and returns nonce+ciphertext as unpadded base64url.
func (v *Vault) Seal(plaintext string) (string, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := v.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func (v *Vault) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	nonceSize := v.aead.NonceSize()
	if len(raw) < nonceSize+v.aead.Overhead() {
		return "", ErrMalformed
	}

	plaintext, err := v.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		if v.auditLogger != nil {
			v.auditLogger.LogError("VAULT_OPEN", "", err)
		}
		return "", ErrTampered
	}

	return string(plaintext), nil
}

func deriveKey(password, salt string, keyLen uint32) []byte {
	return argon2.IDKey([]byte(password), []byte(salt), 3, 32*1024, 4, keyLen)
}
