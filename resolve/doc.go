// Package resolve turns untrusted model output into values that satisfy a
// compiled output contract.
//
// Decoding is resilient: a strict JSON parse is tried first, then exactly one
// repair pass, then a classified parsing_error. Validation walks the decoded
// value against the compiled StructuralType and reports the first failure
// with its dot-separated field path.
package resolve
