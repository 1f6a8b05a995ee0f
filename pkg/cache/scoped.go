package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The pipeline scopes keys by shape library fingerprint, so the same
// diagram compiled against two libraries is cached separately.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "lib:3fa9c1d2:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}

// TreeKey generates a prefixed key for tree caching.
func (k *ScopedKeyer) TreeKey(diagramHash, format string, detailed bool) string {
	return k.prefix + k.inner.TreeKey(diagramHash, format, detailed)
}
