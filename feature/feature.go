package feature

// Feature is a feature model: a self describing unit of deployment built
// from bundles, configuration and arbitrary extension payloads.
//
// The zero value is not usable, a feature needs at least its ID set. New
// returns a feature ready for population.
type Feature struct {
	// ID are the coordinates of the model itself.
	ID ID

	// Title, Description, Vendor and License describe the feature for
	// humans and carry no further semantics.
	Title       string
	Description string
	Vendor      string
	License     string

	// Complete marks a model that declares itself self contained.
	Complete bool

	// Variables holds late binding placeholders used within the model.
	Variables map[string]string

	// Bundles lists the bundle artifacts making up the feature.
	Bundles []Artifact

	// FrameworkProperties are passed to the launcher verbatim.
	FrameworkProperties map[string]string

	// Extensions holds additional named payloads in model order.
	Extensions []*Extension
}

// New returns an empty feature with the given ID.
func New(id ID) *Feature {
	return &Feature{ID: id.Normalize()}
}

// Extension returns the extension with the given name, or nil if the feature
// has no such extension.
func (f *Feature) Extension(name string) *Extension {
	for _, ext := range f.Extensions {
		if ext.Name == name {
			return ext
		}
	}
	return nil
}

// AddExtension appends ext to the feature, replacing any existing extension
// of the same name in place.
func (f *Feature) AddExtension(ext *Extension) {
	for i, existing := range f.Extensions {
		if existing.Name == ext.Name {
			f.Extensions[i] = ext
			return
		}
	}
	f.Extensions = append(f.Extensions, ext)
}

// Artifacts returns every artifact the feature references, in model order.
// Bundles come first, followed by the payloads of all KindArtifacts
// extensions in extension order. The returned slice may contain duplicates
// when the model references the same ID more than once.
func (f *Feature) Artifacts() []Artifact {
	refs := make([]Artifact, 0, len(f.Bundles))
	refs = append(refs, f.Bundles...)
	for _, ext := range f.Extensions {
		if ext.Kind == KindArtifacts {
			refs = append(refs, ext.Artifacts...)
		}
	}
	return refs
}
