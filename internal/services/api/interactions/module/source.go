package module

import (
	"context"

	"wikicord/internal/adapters/wikipedia"
	"wikicord/internal/platform/logger"
	"wikicord/internal/services/api/interactions/domain"
)

// wikiSource adapts the Wikipedia client to domain.ContentSource
type wikiSource struct{ c *wikipedia.Client }

func (w wikiSource) Summary(ctx context.Context, title string) (domain.Article, error) {
	s, err := w.c.Summary(ctx, title)
	if err != nil {
		if fe, ok := wikipedia.IsFetchError(err); ok {
			logger.C(ctx).Info().Str("op", fe.Op).Int("status", fe.Status).Msg("wikipedia refused summary")
		}
		return domain.Article{}, err
	}
	return domain.Article{
		Title:           s.Title,
		URL:             s.PageURL(),
		DescriptionHTML: s.Description,
		ExtractHTML:     s.ExtractHTML,
		ThumbnailURL:    s.ThumbnailURL(),
		Timestamp:       s.Timestamp,
	}, nil
}

func (w wikiSource) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	pages, err := w.c.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SearchHit, 0, len(pages))
	for _, p := range pages {
		h := domain.SearchHit{ID: p.ID, Key: p.Key, Title: p.Title, Description: p.Description}
		if p.Thumbnail != nil {
			h.Thumbnail = p.Thumbnail.URL
		}
		out = append(out, h)
	}
	return out, nil
}
