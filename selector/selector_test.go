package selector

import (
	"errors"
	"testing"

	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/xmltree"
)

func root(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return doc.Root()
}

// eval runs a selector on two parsed snippets with fresh contexts.
func eval(t *testing.T, s Selector, control, test string) bool {
	t.Helper()
	return s(root(t, control), NewXPathContext(), root(t, test), NewXPathContext())
}

func mustPanicIs(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", want)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic %v, want error wrapping %v", r, want)
		}
	}()
	f()
}

func TestByName(t *testing.T) {
	tests := []struct {
		name          string
		control, test string
		want          bool
	}{
		{"same name", `<a/>`, `<a/>`, true},
		{"different name", `<a/>`, `<b/>`, false},
		{"same name and namespace", `<a xmlns="urn:x"/>`, `<a xmlns="urn:x"/>`, true},
		{"different namespace", `<a xmlns="urn:x"/>`, `<a xmlns="urn:y"/>`, false},
		{"absent vs present namespace", `<a/>`, `<a xmlns="urn:x"/>`, false},
		{"prefix does not matter", `<p:a xmlns:p="urn:x"/>`, `<q:a xmlns:q="urn:x"/>`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := eval(t, ByName, tc.control, tc.test); got != tc.want {
				t.Errorf("ByName(%s, %s) = %v, want %v", tc.control, tc.test, got, tc.want)
			}
		})
	}
}

func TestByNameNilElements(t *testing.T) {
	e := root(t, `<a/>`)
	if ByName(nil, NewXPathContext(), e, NewXPathContext()) {
		t.Error("nil control must not match")
	}
	if ByName(e, NewXPathContext(), nil, NewXPathContext()) {
		t.Error("nil test must not match")
	}
}

func TestByNameAndText(t *testing.T) {
	tests := []struct {
		name          string
		control, test string
		want          bool
	}{
		{"same text", `<a>x</a>`, `<a>x</a>`, true},
		{"different text", `<a>x</a>`, `<a>y</a>`, false},
		{"both empty", `<a/>`, `<a></a>`, true},
		{"merged across children", `<a>x<b/>y</a>`, `<a>xy<b/></a>`, true},
		{"cdata counts as text", `<a><![CDATA[x]]></a>`, `<a>x</a>`, true},
		{"nested text not merged", `<a><b>x</b></a>`, `<a>x<b/></a>`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := eval(t, ByNameAndText, tc.control, tc.test); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestByNameAndAttrNames(t *testing.T) {
	sel := ByNameAndAttrNames("id")
	tests := []struct {
		name          string
		control, test string
		want          bool
	}{
		{"equal values", `<a id="1"/>`, `<a id="1"/>`, true},
		{"different values", `<a id="1"/>`, `<a id="2"/>`, false},
		{"absent vs present", `<a id="1"/>`, `<a/>`, false},
		{"present vs absent", `<a/>`, `<a id="1"/>`, false},
		{"both absent", `<a/>`, `<a/>`, true},
		{"other attributes ignored", `<a id="1" x="y"/>`, `<a id="1" x="z"/>`, true},
		{"namespaced attr not seen by plain name", `<a xmlns:p="urn:p" p:id="1"/>`, `<a/>`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := eval(t, sel, tc.control, tc.test); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestByNameAndAttrs(t *testing.T) {
	sel := ByNameAndAttrs(xmltree.QName{Space: "urn:p", Local: "id"})
	ok := eval(t, sel,
		`<a xmlns:p="urn:p" p:id="1"/>`,
		`<a xmlns:q="urn:p" q:id="1"/>`)
	if !ok {
		t.Error("same URI under different prefixes must match")
	}
	if eval(t, sel, `<a xmlns:p="urn:p" p:id="1"/>`, `<a id="1"/>`) {
		t.Error("no-namespace attribute must not satisfy a qualified key")
	}
}

func TestByNameAndAttrNamesControlNS(t *testing.T) {
	sel := ByNameAndAttrNamesControlNS("id")
	tests := []struct {
		name          string
		control, test string
		want          bool
	}{
		// control's id is namespaced, so lookup on both sides uses urn:p
		{"control namespace wins", `<a xmlns:p="urn:p" p:id="1"/>`, `<a xmlns:q="urn:p" q:id="1"/>`, true},
		{"test plain id invisible", `<a xmlns:p="urn:p" p:id="1"/>`, `<a id="1"/>`, false},
		// control has no id at all: absent namespace is used, so the
		// test side's namespaced id is invisible too
		{"control absent falls back", `<a/>`, `<a xmlns:p="urn:p" p:id="1"/>`, true},
		{"plain ids compared", `<a id="1"/>`, `<a id="1"/>`, true},
		{"plain id mismatch", `<a id="1"/>`, `<a id="2"/>`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := eval(t, sel, tc.control, tc.test); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestByNameAndAllAttrs(t *testing.T) {
	tests := []struct {
		name          string
		control, test string
		want          bool
	}{
		{"identical sets", `<a id="1" x="y"/>`, `<a x="y" id="1"/>`, true},
		{"extra on test side", `<a id="1"/>`, `<a id="1" x="y"/>`, false},
		{"extra on control side", `<a id="1" x="y"/>`, `<a id="1"/>`, false},
		{"value mismatch", `<a id="1"/>`, `<a id="2"/>`, false},
		{"no attributes", `<a/>`, `<a/>`, true},
		{"xmlns not an attribute", `<a xmlns:p="urn:p"/>`, `<a/>`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := eval(t, ByNameAndAllAttrs, tc.control, tc.test); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAttrSelectorConfigErrors(t *testing.T) {
	mustPanicIs(t, ErrConfig, func() { ByNameAndAttrNames("") })
	mustPanicIs(t, ErrConfig, func() { ByNameAndAttrNamesControlNS("id", "") })
	mustPanicIs(t, ErrConfig, func() { ByNameAndAttrs(xmltree.QName{Space: "urn:p"}) })
}

func TestDefault(t *testing.T) {
	if !eval(t, Default, `<a/>`, `<b/>`) {
		t.Error("Default must accept any pair")
	}
}
