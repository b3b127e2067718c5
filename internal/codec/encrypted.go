// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// encrypted.go — AES-256-GCM sealing around any Codec so that values are
// encrypted before they reach Redis and authenticated when read back.

package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ErrCiphertextTooShort is returned when a payload is shorter than the nonce.
var ErrCiphertextTooShort = errors.New("codec: ciphertext too short")

// Encryptor encrypts and decrypts encoded payloads.
type Encryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// AES256GCM implements AES-256-GCM authenticated encryption.
type AES256GCM struct {
	aead cipher.AEAD
}

// NewAES256GCM creates an AES-256-GCM encryptor from a 32-byte key.
func NewAES256GCM(key []byte) (*AES256GCM, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("codec: encryption key must be exactly 32 bytes (got %d)", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AES256GCM{aead: aead}, nil
}

// Encrypt seals plaintext with a random nonce.
// Output: nonce (12 bytes) || ciphertext.
func (e *AES256GCM) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return e.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext produced by Encrypt.
func (e *AES256GCM) Decrypt(ciphertext []byte) ([]byte, error) {
	nsize := e.aead.NonceSize()
	if len(ciphertext) < nsize {
		return nil, ErrCiphertextTooShort
	}
	return e.aead.Open(nil, ciphertext[:nsize], ciphertext[nsize:], nil)
}

// Encrypted wraps Inner so every payload is sealed by Enc.
type Encrypted struct {
	Inner Codec
	Enc   Encryptor
}

// NewEncrypted returns inner sealed with AES-256-GCM under key.
func NewEncrypted(inner Codec, key []byte) (*Encrypted, error) {
	enc, err := NewAES256GCM(key)
	if err != nil {
		return nil, err
	}
	return &Encrypted{Inner: inner, Enc: enc}, nil
}

// Marshal encodes v with Inner and encrypts the result.
func (c *Encrypted) Marshal(v any) ([]byte, error) {
	b, err := c.Inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.Enc.Encrypt(b)
}

// Unmarshal authenticates and decrypts data, then decodes it with Inner.
func (c *Encrypted) Unmarshal(data []byte, v any) error {
	plain, err := c.Enc.Decrypt(data)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	return c.Inner.Unmarshal(plain, v)
}

// Name returns the inner codec name prefixed with the cipher.
func (c *Encrypted) Name() string { return "aes256gcm+" + c.Inner.Name() }
