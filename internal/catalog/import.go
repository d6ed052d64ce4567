package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// importFormat mirrors Format in catalog dumps, with an optional file path
// used to compute a missing fingerprint.
type importFormat struct {
	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	Path        string    `json:"path,omitempty"`
	Size        int64     `json:"size,omitempty"`
	ModifiedAt  time.Time `json:"modified_at,omitempty"`
}

// importBook is one record in a catalog dump.
type importBook struct {
	Title       string            `json:"title"`
	Authors     []string          `json:"authors,omitempty"`
	Identifiers map[string]string `json:"identifiers,omitempty"`
	Language    string            `json:"language,omitempty"`
	Series      string            `json:"series,omitempty"`
	Publisher   string            `json:"publisher,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Formats     []importFormat    `json:"formats,omitempty"`
}

// ImportJSON loads a catalog dump (a JSON array of records) into the store.
// Formats that name a file path but carry no fingerprint are hashed on the
// way in. Returns the number of records imported.
func (s *Store) ImportJSON(ctx context.Context, r io.Reader) (int, error) {
	var records []importBook
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&records); err != nil {
		return 0, fmt.Errorf("decode catalog dump: %w", err)
	}

	imported := 0
	for i := range records {
		book, err := records[i].toBook()
		if err != nil {
			return imported, fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := s.Add(ctx, book); err != nil {
			return imported, fmt.Errorf("record %d: %w", i+1, err)
		}
		imported++
	}
	return imported, nil
}

func (ib *importBook) toBook() (*Book, error) {
	book := &Book{
		Title:       strings.TrimSpace(ib.Title),
		Authors:     trimAll(ib.Authors),
		Identifiers: ib.Identifiers,
		Language:    strings.TrimSpace(ib.Language),
		Series:      strings.TrimSpace(ib.Series),
		Publisher:   strings.TrimSpace(ib.Publisher),
		Tags:        trimAll(ib.Tags),
	}
	for _, f := range ib.Formats {
		format := Format{
			Name:        strings.ToLower(strings.TrimSpace(f.Name)),
			Fingerprint: strings.TrimSpace(f.Fingerprint),
			Size:        f.Size,
			ModifiedAt:  f.ModifiedAt,
		}
		if format.Fingerprint == "" && f.Path != "" {
			fp, size, modified, err := fingerprintFile(f.Path)
			if err != nil {
				return nil, fmt.Errorf("fingerprint %s: %w", f.Path, err)
			}
			format.Fingerprint = fp
			if format.Size == 0 {
				format.Size = size
			}
			if format.ModifiedAt.IsZero() {
				format.ModifiedAt = modified
			}
		}
		book.Formats = append(book.Formats, format)
	}
	return book, nil
}

func fingerprintFile(path string) (string, int64, time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, time.Time{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", 0, time.Time{}, err
	}

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", 0, time.Time{}, err
	}
	return hex.EncodeToString(hasher.Sum(nil)), info.Size(), info.ModTime().UTC(), nil
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
