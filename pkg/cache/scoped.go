package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share one
// Redis instance without clashing.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "shop-service:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(schemaHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(schemaHash, opts)
}
