// Package schema models the JSON-Schema-shaped output contracts declared by
// workflow steps and compiles them into immutable StructuralType trees.
//
// The document model covers the subset these contracts actually use: scalar
// types, nested objects, homogeneous arrays, required-field lists, and
// per-field description/examples metadata. Compilation is a pure function;
// the resulting tree is safe to share read-only across concurrent
// resolutions.
package schema
