package feature

import (
	"encoding/json"
	"fmt"
)

// Kind describes the payload carried by an extension.
type Kind string

const (
	// KindArtifacts marks extensions whose payload is a list of artifact
	// references. Only extensions of this kind take part in archiving.
	KindArtifacts Kind = "artifacts"
	// KindText marks extensions carrying opaque text.
	KindText Kind = "text"
	// KindJSON marks extensions carrying an opaque JSON document.
	KindJSON Kind = "json"
)

// State describes how a launcher should treat an extension it does not know.
type State string

const (
	// StateRequired means the extension must be processed.
	StateRequired State = "required"
	// StateOptional means the extension may be ignored. This is the default
	// for extensions that do not declare a state.
	StateOptional State = "optional"
	// StateTransient means the extension holds transient working data and is
	// never persisted beyond the current processing step.
	StateTransient State = "transient"
)

// Extension is a named payload attached to a feature model. Exactly one of
// Artifacts, Text and JSON is populated, depending on Kind.
type Extension struct {
	Name  string
	Kind  Kind
	State State

	// Artifacts holds the payload for KindArtifacts.
	Artifacts []Artifact
	// Text holds the payload for KindText.
	Text string
	// JSON holds the raw payload for KindJSON.
	JSON json.RawMessage
}

// NewExtension returns an empty extension of the given name and kind in the
// default optional state.
func NewExtension(name string, kind Kind) *Extension {
	return &Extension{Name: name, Kind: kind, State: StateOptional}
}

type extensionJSON struct {
	Name      string          `json:"name"`
	Kind      Kind            `json:"kind"`
	State     State           `json:"state,omitempty"`
	Artifacts []Artifact      `json:"artifacts,omitempty"`
	Text      string          `json:"text,omitempty"`
	JSON      json.RawMessage `json:"json,omitempty"`
}

// MarshalJSON implements json.Marshaler. It refuses extensions whose payload
// does not match their kind so that a model written to disk can always be
// read back.
func (e *Extension) MarshalJSON() ([]byte, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("extension without a name")
	}
	out := extensionJSON{Name: e.Name, Kind: e.Kind, State: e.State}
	switch e.Kind {
	case KindArtifacts:
		out.Artifacts = e.Artifacts
	case KindText:
		out.Text = e.Text
	case KindJSON:
		out.JSON = e.JSON
	default:
		return nil, fmt.Errorf("extension %q: unknown kind %q", e.Name, e.Kind)
	}
	if (e.Text != "" && e.Kind != KindText) ||
		(e.JSON != nil && e.Kind != KindJSON) ||
		(e.Artifacts != nil && e.Kind != KindArtifacts) {
		return nil, fmt.Errorf("extension %q: payload does not match kind %q", e.Name, e.Kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Extension) UnmarshalJSON(data []byte) error {
	var in extensionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Name == "" {
		return fmt.Errorf("extension without a name")
	}
	switch in.Kind {
	case KindArtifacts, KindText, KindJSON:
	default:
		return fmt.Errorf("extension %q: unknown kind %q", in.Name, in.Kind)
	}
	switch in.State {
	case StateRequired, StateOptional, StateTransient:
	case "":
		in.State = StateOptional
	default:
		return fmt.Errorf("extension %q: unknown state %q", in.Name, in.State)
	}
	*e = Extension{
		Name:      in.Name,
		Kind:      in.Kind,
		State:     in.State,
		Artifacts: in.Artifacts,
		Text:      in.Text,
		JSON:      in.JSON,
	}
	return nil
}
