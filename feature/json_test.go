package feature

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testFeature() *Feature {
	f := New(NewID("org.example", "platform", "1.2.0"))
	f.Title = "Example Platform"
	f.Vendor = "Example Org"
	f.Variables = map[string]string{"http.port": "8080"}
	f.Bundles = []Artifact{
		NewArtifact(NewID("org.example", "core", "1.2.0")),
		{
			ID:       NewID("org.example", "web", "1.2.0"),
			Metadata: map[string]string{"start-order": "5"},
		},
	}
	f.FrameworkProperties = map[string]string{"org.osgi.framework.bootdelegation": "sun.*"}
	f.AddExtension(&Extension{
		Name:  "content-packages",
		Kind:  KindArtifacts,
		State: StateRequired,
		Artifacts: []Artifact{
			NewArtifact(ID{Group: "org.example", Name: "content", Version: "1.2.0", Type: "zip"}),
		},
	})
	f.AddExtension(&Extension{
		Name:  "repoinit",
		Kind:  KindText,
		State: StateOptional,
		Text:  "create path /content/example",
	})
	return f
}

func TestFeatureJSONRoundTrip(t *testing.T) {
	r := require.New(t)

	f := testFeature()

	var buf bytes.Buffer
	r.NoError(WriteJSON(&buf, f))

	got, err := ReadJSON(&buf)
	r.NoError(err)
	r.Equal(f, got)
}

func TestWriteJSONDeterministic(t *testing.T) {
	r := require.New(t)

	f := testFeature()

	var first, second bytes.Buffer
	r.NoError(WriteJSON(&first, f))
	r.NoError(WriteJSON(&second, f))
	r.Equal(first.Bytes(), second.Bytes())
	r.True(json.Valid(first.Bytes()))
}

func TestReadJSONAcceptsPlainAndRichArtifacts(t *testing.T) {
	r := require.New(t)

	f, err := ReadJSON(strings.NewReader(`{
		"id": "org.example:app:1.0.0",
		"bundles": [
			"org.example:core:1.0.0",
			{"id": "org.example:web:1.0.0", "start-order": 5}
		]
	}`))
	r.NoError(err)

	r.Len(f.Bundles, 2)
	r.Equal(NewID("org.example", "core", "1.0.0"), f.Bundles[0].ID)
	r.Empty(f.Bundles[0].Metadata)
	r.Equal(NewID("org.example", "web", "1.0.0"), f.Bundles[1].ID)
	r.Equal("5", f.Bundles[1].Metadatum("start-order"))
}

func TestReadJSONRejectsUnknownMembers(t *testing.T) {
	r := require.New(t)

	_, err := ReadJSON(strings.NewReader(`{"id": "g.r:n:1", "bundels": []}`))
	r.Error(err)
}

func TestReadJSONRequiresID(t *testing.T) {
	r := require.New(t)

	_, err := ReadJSON(strings.NewReader(`{"title": "anonymous"}`))
	r.ErrorIs(err, ErrInvalidID)
}

func TestExtensionPayloadMustMatchKind(t *testing.T) {
	r := require.New(t)

	_, err := json.Marshal(&Extension{Name: "broken", Kind: KindText, JSON: json.RawMessage(`{}`)})
	r.Error(err)

	_, err = json.Marshal(&Extension{Name: "broken", Kind: "model"})
	r.Error(err)

	var ext Extension
	r.Error(json.Unmarshal([]byte(`{"name": "x", "kind": "model"}`), &ext))
	r.Error(json.Unmarshal([]byte(`{"kind": "text"}`), &ext))
}

func TestExtensionStateDefaultsToOptional(t *testing.T) {
	r := require.New(t)

	var ext Extension
	r.NoError(json.Unmarshal([]byte(`{"name": "repoinit", "kind": "text", "text": "x"}`), &ext))
	r.Equal(StateOptional, ext.State)
}

func TestFeatureArtifacts(t *testing.T) {
	r := require.New(t)

	f := testFeature()
	refs := f.Artifacts()

	r.Len(refs, 3)
	r.Equal(f.Bundles[0].ID, refs[0].ID)
	r.Equal(f.Bundles[1].ID, refs[1].ID)
	r.Equal(ID{Group: "org.example", Name: "content", Version: "1.2.0", Type: "zip"}, refs[2].ID)
}
