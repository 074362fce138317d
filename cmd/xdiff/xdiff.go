package main

import (
	"fmt"
	"os"

	"github.com/beevik/etree"
	"github.com/scott-cotton/cli"

	"github.com/benroe89/xmlunit"
	"github.com/benroe89/xmlunit/query"
)

func xdiff(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		cfg.Main.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) != 2 {
		cfg.Main.Usage(cc, fmt.Errorf("%w: xdiff requires 2 args, got %d", cli.ErrUsage, len(args)))
		return cli.ExitCodeErr(2)
	}
	mode, err := cfg.colorMode()
	if err != nil {
		cfg.Main.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	opts, err := cfg.compareOpts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "xdiff: %v\n", err)
		return cli.ExitCodeErr(2)
	}
	control, err := getDoc(cfg, cc, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "xdiff: %s: %v\n", args[0], err)
		return cli.ExitCodeErr(2)
	}
	test, err := getDoc(cfg, cc, args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "xdiff: %s: %v\n", args[1], err)
		return cli.ExitCodeErr(2)
	}
	res, err := xmlunit.Compare(control, test, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xdiff: %v\n", err)
		return cli.ExitCodeErr(2)
	}
	if res.Identical() {
		return nil
	}
	p := newPrinter(cc.Out, mode)
	for _, d := range res.Differences {
		p.print(d)
	}
	return cli.ExitCodeErr(1)
}

func getDoc(cfg *MainConfig, cc *cli.Context, path string) (*etree.Document, error) {
	var (
		doc *etree.Document
		err error
	)
	if path == "-" {
		doc, err = xmlunit.Load(cc.In)
	} else {
		doc, err = loadPath(path)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Query == "" {
		return doc, nil
	}
	engine := query.New(cfg.NS)
	els, err := engine.SelectElements(cfg.Query, doc.Root())
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("path %q selects nothing", cfg.Query)
	}
	sub := etree.NewDocument()
	sub.SetRoot(els[0].Copy())
	return sub, nil
}

func loadPath(path string) (*etree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return xmlunit.Load(f)
}
