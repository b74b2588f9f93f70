// Package incident loads incident documents and selects records from them.
//
// A document is parsed once into a tree of Node values. Records are the
// direct children of the root element that carry the record tag; their
// fields are the descendant elements that carry any text. Nothing in this
// package mutates a tree after Load returns.
package incident
