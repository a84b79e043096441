// Package resolver implements the cross-reference resolution pass.
//
// The pass runs once per document, after parsing, over every pending
// reference tagged with this pipeline's own kind ("link"). Each pending
// node is offered to a fixed-priority sequence of strategies:
//
//  1. section/label lookup (named and anonymous labels)
//  2. direct document-name lookup
//  3. the std registry's object types
//  4. every other registered domain
//
// All matches are collected; more than one produces an ambiguity
// warning and the first wins. No match falls through to the
// missing-reference hooks and finally to a "reference not found"
// warning plus the reference's own caption as literal content. Nothing
// in the pass is ever fatal to the build.
//
// The priority order above decides which registry wins when several
// match; changing it silently changes resolution results, so it is
// fixed.
package resolver
