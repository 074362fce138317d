package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/benroe89/xmlunit"
)

type sprintf func(string, ...any) string

type printer struct {
	w    io.Writer
	kind sprintf
	path sprintf
	del  sprintf
	ins  sprintf
}

func newPrinter(w io.Writer, mode string) *printer {
	plain := fmt.Sprintf
	p := &printer{w: w, kind: plain, path: plain, del: plain, ins: plain}
	if !useColor(w, mode) {
		return p
	}
	p.kind = color.New(color.FgYellow, color.Bold).SprintfFunc()
	p.path = color.New(color.FgCyan).SprintfFunc()
	p.del = color.New(color.FgRed).SprintfFunc()
	p.ins = color.New(color.FgGreen).SprintfFunc()
	return p
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (p *printer) print(d xmlunit.Difference) {
	loc := d.ControlPath
	if loc == "" {
		loc = d.TestPath
	}
	fmt.Fprintf(p.w, "%s %s\n", p.kind("%s", d.Kind), p.path("%s", loc))
	if d.Kind == xmlunit.DiffText {
		p.inline(d.Control, d.Test)
		return
	}
	if d.Control != "" {
		fmt.Fprintf(p.w, "  %s\n", p.del("- %s", d.Control))
	}
	if d.Test != "" {
		fmt.Fprintf(p.w, "  %s\n", p.ins("+ %s", d.Test))
	}
}

// inline renders a changed text value as one line with the removed and
// added spans marked, rather than two full before/after lines.
func (p *printer) inline(control, test string) {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(control, test, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	fmt.Fprint(p.w, "  ")
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			fmt.Fprint(p.w, p.del("[-%s]", d.Text))
		case diffpatch.DiffInsert:
			fmt.Fprint(p.w, p.ins("{+%s}", d.Text))
		default:
			fmt.Fprint(p.w, d.Text)
		}
	}
	fmt.Fprintln(p.w)
}
