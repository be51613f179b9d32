package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Podcast is one record of the remote catalog. Records are never modified after the load.
type Podcast struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image"`
	Genres      []int     `json:"genres"`
	Seasons     int       `json:"seasons"`
	Updated     Timestamp `json:"updated"`
}

// HasGenre reports whether the podcast is tagged with the given genre id.
func (p Podcast) HasGenre(id int) bool {
	for _, g := range p.Genres {
		if g == id {
			return true
		}
	}
	return false
}

// Genre is derived from the genre ids seen across the catalog.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Season is a synthetic, display-only season entry.
type Season struct {
	Title    string `json:"title"`
	Episodes int    `json:"episodes"`
}

// timestampLayouts are tried in order when decoding the "updated" field.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp decodes the catalog's "updated" field, which is mostly RFC 3339
// but occasionally a bare date.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses a catalog timestamp string.
func ParseTimestamp(raw string) (Timestamp, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// MustTimestamp is ParseTimestamp for literals; it panics on bad input.
func MustTimestamp(raw string) Timestamp {
	ts, err := ParseTimestamp(raw)
	if err != nil {
		panic(err)
	}
	return ts
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("updated: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// CatalogResponse is the API response for the catalog endpoint. Phase is one of
// "loading", "error", "empty" or "ready".
type CatalogResponse struct {
	Phase    string    `json:"phase"`
	Message  string    `json:"message,omitempty"`
	Genre    string    `json:"genre"`
	Sort     string    `json:"sort"`
	Genres   []Genre   `json:"genres"`
	Podcasts []Podcast `json:"podcasts"`
	Total    int       `json:"total"`
	LoadedAt string    `json:"loadedAt,omitempty"`
}

// PodcastDetails backs the details modal.
type PodcastDetails struct {
	Podcast Podcast  `json:"podcast"`
	Genres  []Genre  `json:"genres"`
	Seasons []Season `json:"seasons"`
}
