// Package ruleset loads element pairing rules from YAML and compiles them
// into a single selector. A rule table routes elements by guard (a name or
// an expression) to a named pairing strategy, with an optional fallback:
//
//	rules:
//	  - when: li
//	    use: by-name-and-text
//	  - when: "{urn:x}item"
//	    use: by-name-and-attributes
//	    attributes: [id, class]
//	  - when-expr: "hasAttr('key')"
//	    use: by-name-and-all-attributes
//	default: by-name
//
// The compiled selector is a disjunction: entries run in order and a pair
// is accepted as soon as any guarded entry, or the default, accepts it. A
// guarded entry rejecting a pair does not stop later entries from accepting
// it. All validation happens at load time.
package ruleset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/benroe89/xmlunit/matcher"
	"github.com/benroe89/xmlunit/query"
	"github.com/benroe89/xmlunit/selector"
	"github.com/benroe89/xmlunit/xmltree"
)

// ErrRuleset reports a malformed rule document.
var ErrRuleset = errors.New("invalid ruleset")

type document struct {
	Rules   []rule `yaml:"rules"`
	Default string `yaml:"default"`
}

type rule struct {
	When       string            `yaml:"when"`
	WhenExpr   string            `yaml:"when-expr"`
	Use        string            `yaml:"use"`
	Attributes []string          `yaml:"attributes"`
	ControlNS  bool              `yaml:"control-ns"`
	XPath      string            `yaml:"xpath"`
	Namespaces map[string]string `yaml:"namespaces"`
	Child      *rule             `yaml:"child"`
}

// Load reads a YAML rule document and compiles it into a selector.
func Load(r io.Reader) (selector.Selector, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRuleset, err)
	}
	if len(doc.Rules) == 0 && doc.Default == "" {
		return nil, fmt.Errorf("%w: no rules and no default", ErrRuleset)
	}
	b := selector.NewBuilder()
	for i := range doc.Rules {
		ru := &doc.Rules[i]
		pred, err := guardOf(ru)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		sel, err := selectorOf(ru)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		b.When(pred).ThenUse(sel)
	}
	if doc.Default != "" {
		def, err := selectorOf(&rule{Use: doc.Default})
		if err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
		b.DefaultTo(def)
	}
	return b.Build(), nil
}

// LoadFile reads and compiles the rule document at path.
func LoadFile(path string) (selector.Selector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sel, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sel, nil
}

func guardOf(ru *rule) (selector.ElementPredicate, error) {
	switch {
	case ru.When != "" && ru.WhenExpr != "":
		return nil, fmt.Errorf("%w: both when and when-expr set", ErrRuleset)
	case ru.When != "":
		if strings.HasPrefix(ru.When, "{") {
			return selector.ElementNamedQN(xmltree.ParseQName(ru.When)), nil
		}
		return selector.ElementNamed(ru.When), nil
	case ru.WhenExpr != "":
		pred, err := selector.NewExprPredicate(ru.WhenExpr)
		if err != nil {
			return nil, fmt.Errorf("%w: when-expr: %v", ErrRuleset, err)
		}
		return pred, nil
	default:
		return nil, fmt.Errorf("%w: rule has no when or when-expr", ErrRuleset)
	}
}

func selectorOf(ru *rule) (selector.Selector, error) {
	switch ru.Use {
	case "":
		return nil, fmt.Errorf("%w: rule has no use", ErrRuleset)
	case "default":
		return selector.Default, nil
	case "by-name":
		return selector.ByName, nil
	case "by-name-and-text":
		return selector.ByNameAndText, nil
	case "by-name-and-text-rec":
		return selector.ByNameAndTextRec, nil
	case "by-name-and-all-attributes":
		return selector.ByNameAndAllAttrs, nil
	case "by-name-and-attributes":
		return attrSelectorOf(ru)
	case "by-xpath":
		return xpathSelectorOf(ru)
	default:
		return nil, fmt.Errorf("%w: unknown selector %q", ErrRuleset, ru.Use)
	}
}

func attrSelectorOf(ru *rule) (selector.Selector, error) {
	if len(ru.Attributes) == 0 {
		return nil, fmt.Errorf("%w: by-name-and-attributes needs an attributes list", ErrRuleset)
	}
	qualified := false
	for _, a := range ru.Attributes {
		if a == "" {
			return nil, fmt.Errorf("%w: empty attribute name", ErrRuleset)
		}
		if strings.HasPrefix(a, "{") {
			qualified = true
		}
	}
	switch {
	case qualified && ru.ControlNS:
		return nil, fmt.Errorf("%w: control-ns takes unqualified attribute names", ErrRuleset)
	case qualified:
		qs := make([]xmltree.QName, len(ru.Attributes))
		for i, a := range ru.Attributes {
			qs[i] = xmltree.ParseQName(a)
		}
		return selector.ByNameAndAttrs(qs...), nil
	case ru.ControlNS:
		return selector.ByNameAndAttrNamesControlNS(ru.Attributes...), nil
	default:
		return selector.ByNameAndAttrNames(ru.Attributes...), nil
	}
}

func xpathSelectorOf(ru *rule) (selector.Selector, error) {
	if ru.XPath == "" {
		return nil, fmt.Errorf("%w: by-xpath needs an xpath", ErrRuleset)
	}
	if ru.Child == nil {
		return nil, fmt.Errorf("%w: by-xpath needs a child rule", ErrRuleset)
	}
	child, err := selectorOf(ru.Child)
	if err != nil {
		return nil, fmt.Errorf("child: %w", err)
	}
	engine := query.New(ru.Namespaces)
	if err := engine.Compile(ru.XPath); err != nil {
		return nil, fmt.Errorf("%w: xpath: %v", ErrRuleset, err)
	}
	return selector.ByQueryWith(engine, matcher.Greedy{}, ru.XPath, child), nil
}
