// Package nodemaker turns a plain Go function into a node.Class by
// reflecting over its signature, the same role the source project's
// make_node decorator plays over a Python function's type hints.
//
// Go has no parameter-name reflection, so callers supply input names
// alongside the function; everything else — type inference, default
// values, required-ness, single-vs-multi output shape, reactive sibling
// IO hooks — is derived the way the decorator does it.
package nodemaker
