// Package xmltree is the tree-node contract the pairing core works against.
//
// It reads qualified names, node kinds, attribute sets and merged direct
// text from etree documents. Nothing in this package mutates a node except
// NormalizeWhitespace, which callers apply to their own copies.
//
// # Related Packages
//
//   - github.com/benroe89/xmlunit/selector - pairing rules over these nodes
//   - github.com/benroe89/xmlunit - the diff driver
package xmltree
