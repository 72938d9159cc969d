// Package markup converts the small HTML fragments returned by content APIs into chat markdown
package markup

import (
	"regexp"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"golang.org/x/net/html"
)

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	spaceRun   = regexp.MustCompile(`[ \t\r\n\f]+`)
	// chat clients show entities verbatim
	entities = strings.NewReplacer("&lt;", "<", "&gt;", ">")
)

var conv = sync.OnceValue(newConverter)

func newConverter() *converter.Converter {
	c := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithEmDelimiter("*"),
				commonmark.WithBulletListMarker("*"),
				commonmark.WithListEndComment(false),
				commonmark.WithLinkEmptyContentBehavior(commonmark.LinkBehaviorSkip),
			),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	c.Register.TagType("img", converter.TagTypeRemove, converter.PriorityEarly)
	c.Register.RendererFor("math", converter.TagTypeInline, renderMath, converter.PriorityEarly)
	c.Register.RendererFor("a", converter.TagTypeInline, renderAnchor, converter.PriorityEarly)
	return c
}

// renderMath writes the formula's alt text as inline code
func renderMath(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if alt := strings.TrimSpace(dom.GetAttributeOr(n, "alttext", "")); alt != "" {
		_, _ = w.WriteString("`" + alt + "`")
	}
	return converter.RenderSuccess
}

// renderAnchor keeps only the label of in-page links such as citation markers
func renderAnchor(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	href := strings.TrimSpace(dom.GetAttributeOr(n, "href", ""))
	if href != "" && !strings.HasPrefix(href, "#") {
		return converter.RenderTryNext
	}
	ctx.RenderChildNodes(ctx, w, n)
	return converter.RenderSuccess
}

// ToMarkdown renders an HTML fragment as markdown
// script/style/img are dropped and math renders as its alt text in code
// input that fails to convert is returned with whitespace collapsed
func ToMarkdown(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	out, err := conv().ConvertString(fragment)
	if err != nil {
		return strings.TrimSpace(spaceRun.ReplaceAllString(fragment, " "))
	}

	out = blankLines.ReplaceAllString(entities.Replace(out), "\n\n")
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
