// Package far assembles, reads and extracts feature archives.
//
// A feature archive is a zip container that bundles a feature model together
// with the binary artifacts the model references, so that a feature can be
// moved between environments as a single file.
//
// # A feature archive contains
//
//   - META-INF/MANIFEST.MF: The first entry of the archive. A JAR style
//     manifest whose Feature-Archive-Version header declares the format
//     version of the archive.
//
//   - models/feature.json: The feature model serialized as UTF-8 JSON.
//
//   - artifacts/
//
//     One entry per distinct artifact the model references through its
//     bundles and its artifact extensions, stored under the repository
//     path derived from the artifact ID
//     (for example artifacts/org/example/core/1.0.0/core-1.0.0.jar).
//
// Write assembles an archive into any io.Writer and hands back the still
// open Container so callers can append entries of their own before closing.
// Read walks an existing archive and streams the artifacts to a consumer,
// Extract materializes one into a directory. Artifact content is supplied
// by a provider.Provider during assembly, typically backed by a local
// repository directory.
package far
