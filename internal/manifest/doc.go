// Package manifest parses the text artifacts written by the packaging engine.
//
// Two formats are handled. Every compiled bundle has a sidecar
// "{bundle}.manifest" whose "Assets:" section lists the embedded asset paths;
// ParseAssets reads that list with a literal line scanner. The pipeline output
// directory additionally holds one build manifest (YAML) that names every
// bundle the engine produced; ParseBuildManifest reads it in file order.
package manifest
