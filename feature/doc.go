// Package feature provides the types for working with feature models.
//
// A feature model is a declarative manifest of a deployable unit. It names the
// bundles the unit is made of and carries additional payloads as extensions.
// When working with feature models through this package, it is important to
// understand the following concepts:
//   - ID: the coordinates (group, name, version, optional classifier and type)
//     that uniquely identify an artifact. Two references denote the same
//     artifact exactly when their IDs are equal.
//   - Artifact: a reference to a binary payload, an ID plus optional metadata.
//   - Extension: a named payload attached to a feature. Extensions of
//     KindArtifacts carry further artifact references and take part in
//     archiving; other kinds carry opaque text or JSON.
//   - Feature: the model itself, with its own ID, descriptive attributes,
//     bundles and extensions.
//
// The package does not judge a model: partial, complete and assembled models
// are all represented by the same types, and no consistency checks are
// performed. Serialization to and from the canonical JSON form is provided by
// WriteJSON and ReadJSON and is deterministic for a given model.
package feature
