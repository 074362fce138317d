package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Selector bool
	Match    bool
	Query    bool
	Diff     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Selector = boolEnv("XMLUNIT_DEBUG_SELECTOR")
	d.Match = boolEnv("XMLUNIT_DEBUG_MATCH")
	d.Query = boolEnv("XMLUNIT_DEBUG_QUERY")
	d.Diff = boolEnv("XMLUNIT_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Selector() bool {
	return d.Selector
}
func Match() bool {
	return d.Match
}
func Query() bool {
	return d.Query
}
func Diff() bool {
	return d.Diff
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
