// Package typesys implements the type-conversion registry that node
// inputs use to coerce an incoming value to the type they declare.
//
// A type is registered once under a name (add_type semantics); handing
// an unknown type name to Convert passes the value through unchanged
// rather than failing, matching the source project's permissive
// any-type fallback. Two converter kinds build on the teacher's
// dependency stack: schema-backed types validate with
// xeipuuv/gojsonschema before accepting a value, and computed types
// run an expr-lang/expr expression against the candidate value.
package typesys
