package markup

import "testing"

func TestToMarkdown(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"blank", "  \n ", ""},
		{"plain", "a programming language", "a programming language"},
		{"whitespace", "  a \n  b  ", "a b"},
		{"inline", `<p>The <b>Go</b> programming language is <i>statically typed</i>.</p>`,
			"The **Go** programming language is *statically typed*."},
		{"bold trailing space", `<b>Go </b>is`, "**Go** is"},
		{"empty bold", `a<b></b>b`, "ab"},
		{"paragraphs", `<p>First</p><p>Second<br>line</p>`, "First\n\nSecond\nline"},
		{"link", `see <a href="https://go.dev">Go site</a>`, "see [Go site](https://go.dev)"},
		{"anchor link", `<a href="#cite_note-1">[1]</a>`, `\[1]`},
		{"citation", `Go<sup class="reference"><a href="#cite_note-2">2</a></sup> is`, "Go2 is"},
		{"no href", `<a>label</a> only`, "label only"},
		{"empty link", `x<a href="https://go.dev"></a>y`, "xy"},
		{"unordered", `<ul><li>one</li><li>two</li></ul>`, "* one\n* two"},
		{"ordered", `<ol><li>a</li><li>b</li></ol>`, "1. a\n2. b"},
		{"nested list", `<ul><li>a<ul><li>b</li></ul></li></ul>`, "* a\n  * b"},
		{"script dropped", `<p>keep<script>alert(1)</script><style>p{}</style></p>`, "keep"},
		{"image dropped", `<p>pic <img src="x.png" alt="x"> here</p>`, "pic here"},
		{"escapes", `2*3_4`, `2\*3\_4`},
		{"code raw", `<code>a_b</code>`, "`a_b`"},
		{"heading", `<h2>Title</h2><p>x</p>`, "## Title\n\nx"},
		{"math alt", `<span class="mwe-math-element"><math alttext="x^2"><mi>x</mi></math></span>`, "`x^2`"},
		{"math inline", `area <math alttext="{\displaystyle \pi r^{2}}"><mi>r</mi></math>.`, "area `{\\displaystyle \\pi r^{2}}`."},
		{"entities", `Fish &amp; Chips &lt;3`, "Fish & Chips <3"},
		{"strike", `<s>old</s> new`, "~~old~~ new"},
		{"pre", "<pre>line 1\nline 2</pre>", "```\nline 1\nline 2\n```"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToMarkdown(tc.in); got != tc.want {
				t.Fatalf("ToMarkdown(%q)\n got %q\nwant %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestToMarkdown_WikipediaExtract(t *testing.T) {
	in := `<p><b>Go</b> is a high-level general purpose programming language that is statically typed and compiled. It is known for the simplicity of its syntax and the efficiency of development that it enables by the inclusion of a large standard library supplying many needs for common projects.</p>`
	want := "**Go** is a high-level general purpose programming language that is statically typed and compiled. It is known for the simplicity of its syntax and the efficiency of development that it enables by the inclusion of a large standard library supplying many needs for common projects."
	if got := ToMarkdown(in); got != want {
		t.Fatalf("got %q", got)
	}
}
