// Package storage implements the client's encrypted local key-value store:
// a JSON file of AES-GCM encrypted values, one entry per key.
package storage

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Store is an encrypted key-value store persisted to a single file. Every
// value is stored as base64(nonce || ciphertext); the file itself holds no
// plaintext. All operations are safe for concurrent use.
type Store struct {
	path    string
	aead    cipher.AEAD
	mu      sync.Mutex
	entries map[string]string
}

// Open loads the store at path, decrypting with key. A missing file yields
// an empty store; a present but unreadable file is an error.
func Open(path string, key []byte) (*Store, error) {
	aead, err := NewAEAD(key)
	if err != nil {
		return nil, err
	}

	s := &Store{path: path, aead: aead, entries: make(map[string]string)}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s.entries); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}
	return s, nil
}

// Get returns the decrypted value for key. ok is false when the key is
// absent; a value that cannot be decoded or decrypted is an error.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}

	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", false, fmt.Errorf("decode value for %q: %w", key, err)
	}
	if len(raw) < s.aead.NonceSize() {
		return "", false, fmt.Errorf("value for %q is truncated", key)
	}
	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", false, fmt.Errorf("decrypt value for %q: %w", key, err)
	}
	return string(plain), true, nil
}

// Set encrypts value under key and writes the store file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	ciphertext := s.aead.Seal(nonce, nonce, []byte(value), nil)
	s.entries[key] = base64.StdEncoding.EncodeToString(ciphertext)

	return s.flush()
}

// Delete removes key and writes the store file. Deleting an absent key is
// a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.flush()
}

// flush writes all entries to the store file. Callers must hold mu.
func (s *Store) flush() error {
	buf, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.WriteFile(s.path, buf, 0600); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}
