// Package article implements the article command: Wikipedia summaries with title autocomplete
package article

import (
	"context"
	"strconv"
	"strings"

	"wikicord/internal/core/interaction"
	"wikicord/internal/core/markup"
	"wikicord/internal/platform/logger"
	pstrings "wikicord/internal/platform/strings"
	ptime "wikicord/internal/platform/time"
	"wikicord/internal/services/api/interactions/domain"
)

const (
	// Name is the registered command name
	Name = "article"

	optTitle     = "title"
	optPlaintext = "plaintext"

	// DefaultQuery is searched while the title option is still empty
	DefaultQuery = "Discord"

	missingTitle = "You need to provide a title!"
	footerText   = "Powered by Wikipedia"
	noContent    = "Not available"
)

// Options control the command
type Options struct {
	DefaultQuery string
}

// Command is the article command
type Command struct {
	src          domain.ContentSource
	defaultQuery string
}

// New constructs the command over a content source
func New(src domain.ContentSource, opt Options) *Command {
	if src == nil {
		panic("article.Command requires a non nil ContentSource")
	}
	return &Command{
		src:          src,
		defaultQuery: pstrings.FirstNonEmpty(strings.TrimSpace(opt.DefaultQuery), DefaultQuery),
	}
}

// Schema is the registration payload
func (c *Command) Schema() interaction.CommandSchema {
	return interaction.SlashCommand(Name, "Look up a Wikipedia article",
		interaction.OptionSchema{
			Type:         interaction.OptionString,
			Name:         optTitle,
			Description:  "The title of the article",
			Required:     true,
			Autocomplete: true,
		},
		interaction.OptionSchema{
			Type:        interaction.OptionBoolean,
			Name:        optPlaintext,
			Description: "Reply with plain text instead of an embed",
		},
	)
}

// Execute fetches the summary and renders it as an embed or as plain text
// collaborator failures become an ephemeral message carrying the reason
func (c *Command) Execute(ctx context.Context, inv interaction.Invocation) (interaction.Response, error) {
	title, ok := inv.String(optTitle)
	if !ok {
		return interaction.Text(missingTitle, true), nil
	}
	plaintext, _ := inv.Bool(optPlaintext)

	a, err := c.src.Summary(ctx, title)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("title", title).Msg("summary fetch failed")
		return interaction.Text(err.Error(), true), nil
	}

	r := render(a)
	if plaintext {
		return interaction.Text(r.plain(), false), nil
	}
	return interaction.Embeds(false, r.embed()), nil
}

// Suggest searches titles matching the focused text
func (c *Command) Suggest(ctx context.Context, inv interaction.Invocation) (interaction.Choices, error) {
	query := c.query(inv)
	hits, err := c.src.Search(ctx, query)
	if err != nil {
		return interaction.Choices{}, err
	}
	choices := make([]interaction.Choice, 0, len(hits))
	for _, h := range hits {
		choices = append(choices, interaction.NewChoice(ChoiceName(h), h.Key))
	}
	logger.C(ctx).Debug().Str("query", query).Int("choices", len(choices)).Msg("suggestions")
	return interaction.Suggest(choices...), nil
}

// query is the typed title text or the default query
func (c *Command) query(inv interaction.Invocation) string {
	v, ok := inv.Lookup(optTitle)
	if !ok {
		return c.defaultQuery
	}
	var q string
	switch x := v.(type) {
	case interaction.Focused:
		if x.Type() == interaction.OptionString {
			q = x.Text
		}
	case interaction.String:
		q = string(x)
	}
	if q == "" {
		return c.defaultQuery
	}
	return q
}

// ChoiceName is "title: description", or the title alone
func ChoiceName(h domain.SearchHit) string {
	if h.Description != nil && *h.Description != "" {
		return h.Title + ": " + *h.Description
	}
	return h.Title
}

// rendered is an article converted to markdown
type rendered struct {
	title       string
	url         string
	description string
	excerpt     string
	lastUpdated string
	thumbnail   string
}

func render(a domain.Article) rendered {
	return rendered{
		title:       a.Title,
		url:         a.URL,
		description: markup.ToMarkdown(a.DescriptionHTML),
		excerpt:     markup.ToMarkdown(a.ExtractHTML),
		lastUpdated: LastUpdated(a.Timestamp),
		thumbnail:   a.ThumbnailURL,
	}
}

// LastUpdated renders the revision time as chat timestamps; "" when ts does not parse
func LastUpdated(ts string) string {
	t, ok := ptime.ParseISO(ts)
	if !ok {
		return ""
	}
	unix := strconv.FormatInt(t.Unix(), 10)
	return "Last updated <t:" + unix + ":F> (<t:" + unix + ":R>)"
}

func (r rendered) plain() string {
	var b strings.Builder
	b.WriteString("## [" + r.title + "](<" + r.url + ">)\n")
	b.WriteString(r.description + "\n")
	b.WriteString("### Excerpt\n")
	b.WriteString(r.excerpt + "\n\n")
	b.WriteString(r.lastUpdated)
	return b.String()
}

func (r rendered) embed() interaction.Embed {
	e := interaction.Embed{
		Title:       interaction.Truncate(r.title, interaction.MaxEmbedTitle),
		URL:         r.url,
		Description: r.lastUpdated,
		Fields: []interaction.EmbedField{
			interaction.Field("Description", pstrings.FirstNonEmpty(r.description, noContent)),
			interaction.Field("Excerpt", pstrings.FirstNonEmpty(r.excerpt, noContent)),
		},
		Footer: &interaction.EmbedFooter{Text: footerText},
	}
	if r.thumbnail != "" {
		e.Thumbnail = &interaction.EmbedImage{URL: r.thumbnail}
	}
	return e
}
