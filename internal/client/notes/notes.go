// Package notes manages the per-user note collection: sanitized appends in
// memory, whole-collection load/save against the encrypted local store.
package notes

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/atinyakov/MathNotes/internal/client/storage"
	"github.com/atinyakov/MathNotes/internal/models"
)

// ErrValidation is returned when a note's fields are empty after
// sanitization. The message is shown to the user as-is.
var ErrValidation = errors.New("the title and equation fields cannot be empty or contain invalid characters")

var (
	// Titles keep letters, digits and whitespace.
	titleStrip = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	// Equations additionally keep the basic math symbols.
	textStrip = regexp.MustCompile(`[^a-zA-Z0-9\s+\-*/().^%]`)
)

// StorageKey derives the stable per-user store key for the note collection.
// Keying by username hash instead of session token keeps notes reachable
// across logins; token-keyed collections were orphaned every time a fresh
// token was issued.
func StorageKey(username string) string {
	sum := sha256.Sum256([]byte(username))
	return "notes-" + hex.EncodeToString(sum[:])[:16]
}

// Load reads the user's note collection from the store. An absent entry is
// an empty collection. Corrupt or undecryptable data is logged and treated
// as empty rather than failing: the notes screen must still come up.
func Load(store *storage.Store, username string) []models.Note {
	value, ok, err := store.Get(StorageKey(username))
	if err != nil {
		log.Printf("error fetching stored notes: %v", err)
		return []models.Note{}
	}
	if !ok {
		return []models.Note{}
	}

	var collection []models.Note
	if err := json.Unmarshal([]byte(value), &collection); err != nil {
		log.Printf("error parsing stored notes: %v", err)
		return []models.Note{}
	}
	return collection
}

// Save serializes the whole ordered collection and writes it to the store,
// overwriting any prior value.
func Save(store *storage.Store, username string, collection []models.Note) error {
	buf, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	return store.Set(StorageKey(username), string(buf))
}

// Add sanitizes the candidate fields and appends the resulting note. When
// either field is empty after sanitization, the original collection is
// returned untouched along with ErrValidation. Appends are never
// de-duplicated; insertion order is kept.
func Add(collection []models.Note, title, text string) ([]models.Note, error) {
	sanitizedTitle := strings.TrimSpace(titleStrip.ReplaceAllString(title, ""))
	sanitizedText := strings.TrimSpace(textStrip.ReplaceAllString(text, ""))

	if sanitizedTitle == "" || sanitizedText == "" {
		return collection, ErrValidation
	}

	return append(collection, models.Note{Title: sanitizedTitle, Text: sanitizedText}), nil
}
