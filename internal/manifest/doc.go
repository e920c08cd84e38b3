// Package manifest loads implementor catalogs from HCL manifest files.
//
// Manifests are an alternative output of the generation step: instead of a
// JS artifact, each crate's implementors are written as an `implementors`
// block whose `impl` blocks appear in discovery order. The loader decodes
// the block skeleton with gohcl and evaluates attribute values through cty,
// so the manifest stays literal data with no expression context.
package manifest
