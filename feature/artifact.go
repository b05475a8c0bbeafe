package feature

import (
	"encoding/json"
	"fmt"
)

// Artifact is a reference to a binary payload from within a feature model.
// Besides the ID it can carry free form string metadata, for example a start
// order for bundles.
type Artifact struct {
	ID       ID
	Metadata map[string]string
}

// NewArtifact returns an artifact referencing the given ID without metadata.
func NewArtifact(id ID) Artifact {
	return Artifact{ID: id.Normalize()}
}

// Metadatum returns the metadata value stored under key, or the empty string
// if the artifact carries no such metadata.
func (a Artifact) Metadatum(key string) string {
	return a.Metadata[key]
}

// MarshalJSON renders the artifact either as a plain ID string, when there is
// no metadata, or as an object with an "id" member next to the metadata keys.
// Metadata keys are emitted in sorted order.
func (a Artifact) MarshalJSON() ([]byte, error) {
	if err := a.ID.Validate(); err != nil {
		return nil, err
	}
	if len(a.Metadata) == 0 {
		return json.Marshal(a.ID.String())
	}
	obj := make(map[string]string, len(a.Metadata)+1)
	for k, v := range a.Metadata {
		if k == "id" {
			return nil, fmt.Errorf("artifact %s: metadata key %q is reserved", a.ID, k)
		}
		obj[k] = v
	}
	obj["id"] = a.ID.String()
	return json.Marshal(obj)
}

// UnmarshalJSON accepts both serialized forms produced by MarshalJSON. In the
// object form, non string metadata values are preserved as their compact JSON
// text.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	var ref string
	if err := json.Unmarshal(data, &ref); err == nil {
		id, err := ParseID(ref)
		if err != nil {
			return err
		}
		*a = Artifact{ID: id}
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("artifact must be an id string or an object: %w", err)
	}
	raw, ok := obj["id"]
	if !ok {
		return fmt.Errorf("%w: artifact object without id", ErrInvalidID)
	}
	if err := json.Unmarshal(raw, &ref); err != nil {
		return fmt.Errorf("artifact id must be a string: %w", err)
	}
	id, err := ParseID(ref)
	if err != nil {
		return err
	}
	parsed := Artifact{ID: id}
	for k, v := range obj {
		if k == "id" {
			continue
		}
		if parsed.Metadata == nil {
			parsed.Metadata = make(map[string]string, len(obj)-1)
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			s = string(v)
		}
		parsed.Metadata[k] = s
	}
	*a = parsed
	return nil
}
