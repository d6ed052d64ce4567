package catalog

import (
	"strings"
	"time"
)

// Format describes one stored copy of a book with a content fingerprint for
// binary comparison.
type Format struct {
	// Name is the format descriptor, e.g. "epub" or "pdf".
	Name string `json:"name"`
	// Fingerprint is a stable digest of the format's bytes (hex SHA-256).
	Fingerprint string `json:"fingerprint,omitempty"`
	// Size is the byte size of the copy, used as an auto-removal tie-break.
	Size int64 `json:"size,omitempty"`
	// ModifiedAt is the copy's modification marker.
	ModifiedAt time.Time `json:"modified_at,omitempty"`
}

// Book is one catalog record. Snapshots expose books read-only; the matching
// engine never mutates them.
type Book struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Authors     []string          `json:"authors,omitempty"`
	Identifiers map[string]string `json:"identifiers,omitempty"`
	Language    string            `json:"language,omitempty"`
	Series      string            `json:"series,omitempty"`
	Publisher   string            `json:"publisher,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Formats     []Format          `json:"formats,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Identifier returns the value stored under the given identifier type,
// matching the type case-insensitively.
func (b *Book) Identifier(idType string) string {
	idType = strings.ToLower(strings.TrimSpace(idType))
	for key, value := range b.Identifiers {
		if strings.ToLower(strings.TrimSpace(key)) == idType {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Fingerprints returns the non-empty format fingerprints on the record.
func (b *Book) Fingerprints() []string {
	if len(b.Formats) == 0 {
		return nil
	}
	prints := make([]string, 0, len(b.Formats))
	for _, f := range b.Formats {
		if fp := strings.TrimSpace(f.Fingerprint); fp != "" {
			prints = append(prints, fp)
		}
	}
	return prints
}

// FieldValue is one distinct raw value of a field plus how many records
// carry it.
type FieldValue struct {
	Raw   string
	Count int
}
