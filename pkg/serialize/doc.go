// Package serialize implements the pluggable encode/decode pipeline used
// to turn IO, Node, Shelf, and Library values into the canonical JSON
// form and back.
//
// Encoding runs a value through a list of registered Encoders in order;
// the first one that reports Handled wins. Its Done flag is returned to
// the caller as is; Encode itself does not recurse into the value's
// fields. Decoding dispatches on a
// tagged "__type__" field the encoders attach, mirroring the source
// project's encoder/decoder registration pattern and this codebase's own
// tagged-switch JSON decoding (grounded on the teacher's node decoder).
package serialize
