package xmltree

import (
	"strings"

	"github.com/beevik/etree"
)

// QName identifies an element or attribute by namespace URI and local name.
// Space holds the resolved URI, not the document prefix; it is empty when
// the name is in no namespace.
type QName struct {
	Space string
	Local string
}

// String renders the name in Clark notation, "{uri}local", or just the
// local name when there is no namespace.
func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return "{" + q.Space + "}" + q.Local
}

// ParseQName reads Clark notation as produced by QName.String. Input
// without a leading brace is taken as a plain local name.
func ParseQName(s string) QName {
	if strings.HasPrefix(s, "{") {
		if i := strings.IndexByte(s, '}'); i >= 0 {
			return QName{Space: s[1:i], Local: s[i+1:]}
		}
	}
	return QName{Local: s}
}

// QNameOf returns the element's identity with its prefix resolved to a
// namespace URI through the document's xmlns declarations.
func QNameOf(e *etree.Element) QName {
	return QName{Space: e.NamespaceURI(), Local: e.Tag}
}

type Kind int

const (
	ElementKind Kind = iota
	TextKind
	CommentKind
	ProcInstKind
	DirectiveKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ElementKind:   "Element",
		TextKind:      "Text",
		CommentKind:   "Comment",
		ProcInstKind:  "ProcInst",
		DirectiveKind: "Directive",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// KindOf maps an etree token to its node kind. Character data and CDATA
// sections both map to TextKind; the distinction never matters for pairing.
func KindOf(t etree.Token) Kind {
	switch t.(type) {
	case *etree.Element:
		return ElementKind
	case *etree.CharData:
		return TextKind
	case *etree.Comment:
		return CommentKind
	case *etree.ProcInst:
		return ProcInstKind
	case *etree.Directive:
		return DirectiveKind
	}
	panic("xmltree: unknown token kind")
}

// IsText reports whether t is a text-bearing leaf (plain text or CDATA).
func IsText(t etree.Token) bool {
	_, ok := t.(*etree.CharData)
	return ok
}

// Attributes returns the element's attribute set keyed by namespace URI and
// local name. Namespace declarations (xmlns, xmlns:*) are not attributes in
// this model and are excluded.
func Attributes(e *etree.Element) map[QName]string {
	attrs := make(map[QName]string, len(e.Attr))
	for _, a := range e.Attr {
		if isNamespaceDecl(&a) {
			continue
		}
		attrs[QName{Space: a.NamespaceURI(), Local: a.Key}] = a.Value
	}
	return attrs
}

// AttrValue looks up one attribute by qualified name. The boolean result
// distinguishes an absent attribute from an empty value.
func AttrValue(e *etree.Element, q QName) (string, bool) {
	for _, a := range e.Attr {
		if a.Key != q.Local || isNamespaceDecl(&a) {
			continue
		}
		if a.NamespaceURI() == q.Space {
			return a.Value, true
		}
	}
	return "", false
}

func isNamespaceDecl(a *etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}

// MergedText concatenates the element's immediate text-bearing children in
// document order. Descendants' text is not included.
func MergedText(e *etree.Element) string {
	var sb strings.Builder
	for _, ch := range e.Child {
		if cd, ok := ch.(*etree.CharData); ok {
			sb.WriteString(cd.Data)
		}
	}
	return sb.String()
}

// NormalizeWhitespace removes whitespace-only text children and collapses
// internal whitespace runs to a single space, recursively. The document is
// modified in place; pass a Copy when the original must survive.
func NormalizeWhitespace(doc *etree.Document) {
	normalizeElement(&doc.Element)
}

func normalizeElement(e *etree.Element) {
	var drop []etree.Token
	for _, ch := range e.Child {
		switch c := ch.(type) {
		case *etree.CharData:
			norm := collapseSpace(c.Data)
			if norm == "" {
				drop = append(drop, ch)
				continue
			}
			c.Data = norm
		case *etree.Element:
			normalizeElement(c)
		}
	}
	for _, ch := range drop {
		e.RemoveChild(ch)
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
