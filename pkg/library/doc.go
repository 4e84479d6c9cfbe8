// Package library implements the hierarchical node-class registry: a
// tree of named Shelf groupings holding Class descriptors, and a
// top-level Library that indexes them for lookup and serialization.
//
// Shelves hold node classes weakly (via the standard library's weak
// package): a class placed on a shelf with Shelf.AddNode disappears once
// nothing else references it, and Shelves() (and so
// serialize.EncodeLibrary) skips the dead slots. Library.AddNodes also
// records each class in the library's own registry, which holds it
// strongly, so classes added that way are not collected while the
// library is alive.
package library
