package cache

import "fmt"

// ArtifactKeyOpts holds every render option that changes an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	ShowAnchors bool    `json:"show_anchors"`
	Clip        bool    `json:"clip"`
	Padding     float64 `json:"padding"`
	Background  string  `json:"background"`
	Scale       float64 `json:"scale"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a rendered diagram.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string

	// TreeKey returns the key for a rendered component tree.
	TreeKey(diagramHash, format string, detailed bool) string
}

// DefaultKeyer hashes key inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

func (DefaultKeyer) TreeKey(diagramHash, format string, detailed bool) string {
	return hashKey("tree", diagramHash, fmt.Sprintf("%s:%t", format, detailed))
}
