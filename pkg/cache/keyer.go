package cache

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	ConfigHash string `json:"config_hash"`
	Format     string `json:"format"`
	Layout     string `json:"layout"`
	Header     string `json:"header,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered diagram.
	ArtifactKey(schemaHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every input into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the schema hash and options.
func (DefaultKeyer) ArtifactKey(schemaHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", schemaHash, opts)
}
