package feature

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// featureJSON is the wire representation of a Feature.
type featureJSON struct {
	ID                  ID                `json:"id"`
	Title               string            `json:"title,omitempty"`
	Description         string            `json:"description,omitempty"`
	Vendor              string            `json:"vendor,omitempty"`
	License             string            `json:"license,omitempty"`
	Complete            bool              `json:"complete,omitempty"`
	Variables           map[string]string `json:"variables,omitempty"`
	Bundles             []Artifact        `json:"bundles,omitempty"`
	FrameworkProperties map[string]string `json:"framework-properties,omitempty"`
	Extensions          []*Extension      `json:"extensions,omitempty"`
}

// MarshalJSON implements json.Marshaler. The output is deterministic for a
// given model: map members are emitted in sorted key order and slices keep
// their model order.
func (f *Feature) MarshalJSON() ([]byte, error) {
	if err := f.ID.Validate(); err != nil {
		return nil, fmt.Errorf("feature id: %w", err)
	}
	return json.Marshal(featureJSON{
		ID:                  f.ID,
		Title:               f.Title,
		Description:         f.Description,
		Vendor:              f.Vendor,
		License:             f.License,
		Complete:            f.Complete,
		Variables:           f.Variables,
		Bundles:             f.Bundles,
		FrameworkProperties: f.FrameworkProperties,
		Extensions:          f.Extensions,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Unknown members are rejected so
// that typos in hand written models surface early.
func (f *Feature) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	var in featureJSON
	if err := decoder.Decode(&in); err != nil {
		return err
	}
	if err := in.ID.Validate(); err != nil {
		return fmt.Errorf("feature id: %w", err)
	}
	*f = Feature{
		ID:                  in.ID,
		Title:               in.Title,
		Description:         in.Description,
		Vendor:              in.Vendor,
		License:             in.License,
		Complete:            in.Complete,
		Variables:           in.Variables,
		Bundles:             in.Bundles,
		FrameworkProperties: in.FrameworkProperties,
		Extensions:          in.Extensions,
	}
	return nil
}

// WriteJSON writes the canonical JSON form of f to w. The output is indented
// UTF-8 and ends with a newline. Writing the same model twice produces byte
// identical output.
func WriteJSON(w io.Writer, f *Feature) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(f); err != nil {
		return fmt.Errorf("encoding feature model: %w", err)
	}
	return nil
}

// ReadJSON reads a feature model in its canonical JSON form from r.
func ReadJSON(r io.Reader) (*Feature, error) {
	var f Feature
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding feature model: %w", err)
	}
	return &f, nil
}
