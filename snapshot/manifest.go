package snapshot

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/graphattr/codec"
)

const (
	// ManifestName is the blob name of the manifest inside a snapshot prefix.
	ManifestName = "manifest.json"
	// CurrentVersion is the manifest format version.
	CurrentVersion = 1
)

var (
	// ErrNotFound is returned when a prefix holds no snapshot.
	ErrNotFound = errors.New("snapshot not found")
	// ErrInvalidManifest is returned for manifests that cannot be used.
	ErrInvalidManifest = errors.New("invalid snapshot manifest")
)

// Manifest describes one saved attribute store.
type Manifest struct {
	Version     int       `json:"version"`
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Codec       string    `json:"codec"`
	Compression string    `json:"compression"`
	// NextID is the id counter of the saved store.
	NextID     int     `json:"next_id"`
	Attributes []Entry `json:"attributes"`
}

// Entry describes one saved column.
type Entry struct {
	ID          int    `json:"id"`
	ElementType string `json:"element_type"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	TypeVersion int    `json:"type_version"`
	Blob        string `json:"blob"` // relative to the snapshot prefix
	Size        int64  `json:"size"`
	Length      int    `json:"length"`
}

// TotalSize is the byte size of all column blobs.
func (m *Manifest) TotalSize() int64 {
	var n int64
	for _, e := range m.Attributes {
		n += e.Size
	}
	return n
}

func (m *Manifest) validate() error {
	if m.Version != CurrentVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidManifest, m.Version)
	}
	seenID := make(map[int]bool, len(m.Attributes))
	for _, e := range m.Attributes {
		if e.ID < 0 || e.ID >= m.NextID {
			return fmt.Errorf("%w: attribute id %d outside [0, %d)", ErrInvalidManifest, e.ID, m.NextID)
		}
		if seenID[e.ID] {
			return fmt.Errorf("%w: duplicate attribute id %d", ErrInvalidManifest, e.ID)
		}
		seenID[e.ID] = true
		if e.Blob == "" || path.IsAbs(e.Blob) || strings.Contains(e.Blob, "..") {
			return fmt.Errorf("%w: attribute %d has blob %q", ErrInvalidManifest, e.ID, e.Blob)
		}
	}
	return nil
}

func encodeManifest(c codec.Codec, m *Manifest) ([]byte, error) {
	if ic, ok := c.(interface{ MarshalIndent(any) ([]byte, error) }); ok {
		return ic.MarshalIndent(m)
	}
	return c.Marshal(m)
}

func blobName(id int) string {
	return fmt.Sprintf("attr-%06d.col", id)
}
