package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout result.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the diagram that change a layout.
type LayoutKeyOpts struct {
	Ranker      string `json:"ranker"`
	OptionsHash string `json:"options"`
}

// ArtifactKeyOpts are the inputs besides the layout that change an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Labels bool   `json:"labels"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", diagramHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
