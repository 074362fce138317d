// Package xmlunit compares two XML documents structurally. Elements are
// paired by configurable selectors rather than raw position, so reordered
// or keyed content can still line up; everything that does not line up is
// reported as a typed difference with XPath locations on both sides.
//
// The comparison is driven by two pluggable pieces: a selector decides
// whether a control and a test element may be treated as counterparts,
// and a matcher decides which candidates to offer it. See the selector
// and matcher packages for the available strategies and the ruleset
// package for YAML-configured rule tables.
package xmlunit

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/matcher"
	"github.com/benroe89/xmlunit/selector"
)

type Config struct {
	Selector            selector.Selector
	Matcher             selector.NodeMatcher
	IgnoreComments      bool
	NormalizeWhitespace bool
}

type Option func(*Config)

// WithSelector sets the element pairing predicate. Default is
// selector.ByName.
func WithSelector(s selector.Selector) Option {
	return func(c *Config) { c.Selector = s }
}

// WithMatcher sets the pairing strategy. Default is matcher.Greedy.
func WithMatcher(m selector.NodeMatcher) Option {
	return func(c *Config) { c.Matcher = m }
}

// WithIgnoreComments drops comment nodes from the comparison.
func WithIgnoreComments(v bool) Option {
	return func(c *Config) { c.IgnoreComments = v }
}

// WithNormalizeWhitespace collapses runs of whitespace in text content and
// drops whitespace-only text nodes before comparing. The input documents
// are not modified.
func WithNormalizeWhitespace(v bool) Option {
	return func(c *Config) { c.NormalizeWhitespace = v }
}

func newConfig(opts []Option) *Config {
	cfg := &Config{
		Selector: selector.ByName,
		Matcher:  matcher.Greedy{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Parse reads a document from a string.
func Parse(src string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(src); err != nil {
		return nil, err
	}
	return checkRoot(doc)
}

// Load reads a document from a reader.
func Load(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	return checkRoot(doc)
}

// LoadFile reads a document from a file.
func LoadFile(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, err
	}
	d, err := checkRoot(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func checkRoot(doc *etree.Document) (*etree.Document, error) {
	if doc.Root() == nil {
		return nil, fmt.Errorf("xmlunit: document has no root element")
	}
	return doc, nil
}
