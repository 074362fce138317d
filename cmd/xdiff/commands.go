package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{NS: map[string]string{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "ns",
		Description: "bind a namespace prefix for -q, as prefix=uri",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(nsOptTypeFunc(cfg.NS)), "(prefix=uri)"),
	})
	return cli.NewCommandAt(&cfg.Main, "xdiff").
		WithSynopsis("xdiff [opts] control.xml test.xml").
		WithDescription(`xdiff compares two XML documents structurally.

Elements are paired by configurable selectors rather than raw position,
so reordered or keyed content still lines up. Differences are listed with
XPath locations on both sides. '-' reads a document from stdin.

Exit status is 0 when the documents are identical, 1 when they differ
and 2 on usage or input errors.`).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xdiff(cfg, cc, args)
		})
}
