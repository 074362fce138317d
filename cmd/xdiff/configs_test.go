package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNSOpt(t *testing.T) {
	ns := map[string]string{}
	f := nsOptTypeFunc(ns)
	if _, err := f(nil, "n=urn:x"); err != nil {
		t.Fatalf("n=urn:x: %v", err)
	}
	if _, err := f(nil, "m=urn:y"); err != nil {
		t.Fatalf("m=urn:y: %v", err)
	}
	if ns["n"] != "urn:x" || ns["m"] != "urn:y" {
		t.Fatalf("bindings = %v", ns)
	}
	for _, bad := range []string{"", "n", "=urn:x", "n="} {
		if _, err := f(nil, bad); err == nil {
			t.Errorf("%q: expected usage error", bad)
		}
	}
}

func TestGetDocPrefixedQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	src := `<r xmlns:p="urn:x"><p:item id="7"><v/></p:item></r>`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{
		Query: "./n:item",
		NS:    map[string]string{"n": "urn:x"},
	}
	doc, err := getDoc(cfg, nil, path)
	if err != nil {
		t.Fatalf("getDoc: %v", err)
	}
	root := doc.Root()
	if root.Tag != "item" || root.SelectAttrValue("id", "") != "7" {
		t.Fatalf("selected <%s id=%q>, want <item id=\"7\">", root.Tag, root.SelectAttrValue("id", ""))
	}
	// Unbound prefix surfaces as an error, not an empty selection.
	cfg.NS = nil
	if _, err := getDoc(cfg, nil, path); err == nil {
		t.Fatal("unbound prefix should fail")
	}
}

func TestColorMode(t *testing.T) {
	for in, want := range map[string]string{"": "auto", "auto": "auto", "always": "always", "never": "never"} {
		cfg := &MainConfig{Color: in}
		got, err := cfg.colorMode()
		if err != nil || got != want {
			t.Errorf("colorMode(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	cfg := &MainConfig{Color: "sometimes"}
	if _, err := cfg.colorMode(); err == nil {
		t.Error("bad mode should be a usage error")
	}
}
