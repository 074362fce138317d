package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/benroe89/xmlunit"
	"github.com/benroe89/xmlunit/matcher"
	"github.com/benroe89/xmlunit/ruleset"
	"github.com/benroe89/xmlunit/selector"
)

type MainConfig struct {
	Rules string `cli:"name=rules desc='YAML pairing rules file'"`
	W     bool   `cli:"name=w desc='normalize whitespace before comparing'"`
	Query string `cli:"name=q desc='compare only the first subtree selected by this path'"`
	Order bool   `cli:"name=order desc='align children strictly by document order'"`
	NC    bool   `cli:"name=nc desc='ignore comments'"`
	Color string `cli:"name=color desc='color output: auto, always, never'"`

	NS map[string]string

	Main *cli.Command
}

func nsOptTypeFunc(ns map[string]string) func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		pfx, uri, ok := strings.Cut(a, "=")
		if !ok || pfx == "" || uri == "" {
			return nil, fmt.Errorf("%w: bad namespace binding %q (want prefix=uri)", cli.ErrUsage, a)
		}
		ns[pfx] = uri
		return a, nil
	}
}

func (cfg *MainConfig) compareOpts() ([]xmlunit.Option, error) {
	opts := []xmlunit.Option{
		xmlunit.WithNormalizeWhitespace(cfg.W),
		xmlunit.WithIgnoreComments(cfg.NC),
	}
	if cfg.Rules != "" {
		sel, err := ruleset.LoadFile(cfg.Rules)
		if err != nil {
			return nil, err
		}
		opts = append(opts, xmlunit.WithSelector(sel))
	} else {
		opts = append(opts, xmlunit.WithSelector(selector.ByName))
	}
	if cfg.Order {
		opts = append(opts, xmlunit.WithMatcher(matcher.DocOrder{}))
	}
	return opts, nil
}

func (cfg *MainConfig) colorMode() (string, error) {
	switch cfg.Color {
	case "", "auto":
		return "auto", nil
	case "always", "never":
		return cfg.Color, nil
	default:
		return "", fmt.Errorf("%w: bad color mode %q (want auto, always or never)", cli.ErrUsage, cfg.Color)
	}
}
