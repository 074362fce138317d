package selector

import "testing"

func TestByNameAndTextRec(t *testing.T) {
	tests := []struct {
		name          string
		control, test string
		want          bool
	}{
		{
			"interleaved text fails the merged text gate",
			`<a><b/>text<c/></a>`,
			`<a><b/><c/></a>`,
			false, // direct text "text" vs "" differs before any recursion
		},
		{
			"interleaved text is positional glue once merged text agrees",
			`<a>t<b/>t2<c/></a>`,
			`<a>tt2<b/><c/></a>`,
			true,
		},
		{
			"reordered structural children",
			`<a><b/><c/></a>`,
			`<a><c/><b/></a>`,
			false,
		},
		{
			"leftover control child",
			`<a><b/><c/></a>`,
			`<a><b/></a>`,
			false,
		},
		{
			"leftover test child",
			`<a><b/></a>`,
			`<a><b/><c/></a>`,
			false,
		},
		{
			"trailing text on one side only",
			`<a><b/>tail</a>`,
			`<a><b/></a>`,
			false, // direct text "tail" vs "" differs
		},
		{
			"kind mismatch element vs comment",
			`<a><b/></a>`,
			`<a><!--b--></a>`,
			false,
		},
		{
			"matching comments accepted without recursion",
			`<a><!--x--><b/></a>`,
			`<a><!--y--><b/></a>`,
			true,
		},
		{
			"nested text compared per level",
			`<a><b>x</b></a>`,
			`<a><b>y</b></a>`,
			false,
		},
		{
			"deep structural agreement",
			`<a>t1<b><c>x</c></b>t2</a>`,
			`<a><b>  <c>x</c></b></a>`,
			false, // direct text "t1t2" vs "" differs at the top level
		},
		{
			"deep structural agreement with equal text",
			`<a><b><c>x</c></b></a>`,
			`<a><b><c>x</c></b></a>`,
			true,
		},
		{
			"empty elements",
			`<a/>`,
			`<a></a>`,
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := eval(t, ByNameAndTextRec, tc.control, tc.test); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

// The context stack must return to its entry depth on every outcome,
// including rejections raised deep inside the recursion.
func TestByNameAndTextRecContextBalance(t *testing.T) {
	tests := []struct {
		name          string
		control, test string
	}{
		{"accepted", `<a><b><c/></b></a>`, `<a><b><c/></b></a>`},
		{"rejected deep", `<a><b><c>x</c></b></a>`, `<a><b><c>y</c></b></a>`},
		{"rejected by leftover", `<a><b/><c/></a>`, `<a><b/></a>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cCtx, tCtx := NewXPathContext(), NewXPathContext()
			ByNameAndTextRec(root(t, tc.control), cCtx, root(t, tc.test), tCtx)
			if cCtx.Depth() != 0 || tCtx.Depth() != 0 {
				t.Errorf("context depths = (%d, %d), want (0, 0)", cCtx.Depth(), tCtx.Depth())
			}
		})
	}
}
