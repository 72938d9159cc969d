package wikipedia

// Summary is the subset of the REST page summary record the bot renders
type Summary struct {
	Title        string       `json:"title"`
	DisplayTitle string       `json:"displaytitle"`
	PageID       int64        `json:"pageid"`
	Lang         string       `json:"lang"`
	Description  string       `json:"description"`
	Extract      string       `json:"extract"`
	ExtractHTML  string       `json:"extract_html"`
	Timestamp    string       `json:"timestamp"`
	Thumbnail    *Image       `json:"thumbnail,omitempty"`
	Original     *Image       `json:"originalimage,omitempty"`
	ContentURLs  ContentURLs  `json:"content_urls"`
	Titles       SummaryTitle `json:"titles"`
}

// SummaryTitle carries the title variants of a page
type SummaryTitle struct {
	Canonical  string `json:"canonical"`
	Normalized string `json:"normalized"`
	Display    string `json:"display"`
}

// ContentURLs holds the per-platform links of a page
type ContentURLs struct {
	Desktop PageLinks `json:"desktop"`
	Mobile  PageLinks `json:"mobile"`
}

// PageLinks are the links for one platform
type PageLinks struct {
	Page      string `json:"page"`
	Revisions string `json:"revisions"`
	Edit      string `json:"edit"`
	Talk      string `json:"talk"`
}

// Image is a summary thumbnail or original image
type Image struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PageURL returns the desktop page link
func (s Summary) PageURL() string { return s.ContentURLs.Desktop.Page }

// ThumbnailURL returns the thumbnail source or ""
func (s Summary) ThumbnailURL() string {
	if s.Thumbnail == nil {
		return ""
	}
	return s.Thumbnail.Source
}

// SearchResult is the title search response
type SearchResult struct {
	Pages []Page `json:"pages"`
}

// Page is one title search hit
type Page struct {
	ID          int64      `json:"id"`
	Key         string     `json:"key"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Description *string    `json:"description"`
	Thumbnail   *Thumbnail `json:"thumbnail"`
}

// Thumbnail is the search hit image
type Thumbnail struct {
	MimeType string `json:"mimetype"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	URL      string `json:"url"`
}
