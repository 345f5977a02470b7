// Package scp defines the data model for SCP Foundation wiki items.
package scp

// DefaultDomain is the source domain for items without an explicit one.
const DefaultDomain = "scp-wiki.wikidot.com"

// HistoryEntry is a single edit history entry.
type HistoryEntry struct {
	Author  string     `json:"author,omitempty"`
	Date    *Timestamp `json:"date,omitempty"`
	Comment string     `json:"comment,omitempty"`
}

// Item is the complete item record matching the store schema.
type Item struct {
	// Primary identification
	Link      string `json:"link"`
	SCP       string `json:"scp"`
	SCPNumber int    `json:"scp_number"`

	// Core metadata
	Title  string   `json:"title"`
	Series string   `json:"series"`
	Tags   []string `json:"tags,omitempty"`
	Rating int      `json:"rating"`

	// Publication info
	CreatedAt *Timestamp `json:"created_at,omitempty"`
	Creator   string     `json:"creator,omitempty"`

	// URLs and references
	URL    string `json:"url"`
	Domain string `json:"domain,omitempty"`
	PageID string `json:"page_id,omitempty"`

	// Content (heavy fields, present on content files only)
	RawSource  string `json:"raw_source,omitempty"`
	RawContent string `json:"raw_content,omitempty"`
	Markdown   string `json:"markdown,omitempty"`
	Summary    string `json:"summary,omitempty"`

	// Cross-references
	Images     []string `json:"images,omitempty"`
	Hubs       []string `json:"hubs,omitempty"`
	References []string `json:"references,omitempty"`

	// Edit history
	History []HistoryEntry `json:"history,omitempty"`

	// Processing metadata
	ContentFile   string `json:"content_file,omitempty"`
	ContentSHA1   string `json:"content_sha1,omitempty"`
	DatasetCommit string `json:"dataset_commit,omitempty"`
}

// HasContent reports whether the item carries any content field.
func (it *Item) HasContent() bool {
	return it.RawContent != "" || it.RawSource != "" || it.Markdown != ""
}

// PrimaryContent returns the preferred content field for display:
// markdown, then cleaned raw content, then the original wikitext.
func (it *Item) PrimaryContent() string {
	switch {
	case it.Markdown != "":
		return it.Markdown
	case it.RawContent != "":
		return it.RawContent
	default:
		return it.RawSource
	}
}

// HTMLContent returns the raw HTML body, falling back to the original
// wikitext markup when no cleaned content is available.
func (it *Item) HTMLContent() string {
	if it.RawContent != "" {
		return it.RawContent
	}
	return it.RawSource
}

// IdentifierVariants returns all identifier spellings resolving to this item.
func (it *Item) IdentifierVariants() []string {
	variants := []string{it.SCP, itoa(it.SCPNumber), it.Link}
	if it.SCPNumber < 1000 {
		padded := NormalizeID(itoa(it.SCPNumber))
		if !contains(variants, padded) {
			variants = append(variants, padded)
		}
	}
	return variants
}

// ShardPath returns the export directory path for this item, one level per
// identifier character (e.g. SCP-173 -> "1/7/3").
func (it *Item) ShardPath() string {
	id := it.SCP
	if id == "" {
		id = it.Link
	}
	if id == "" {
		id = it.Title
	}
	return ShardPath(id)
}

// Hit is a lightweight item representation for search results and lists.
type Hit struct {
	Link      string     `json:"link"`
	SCP       string     `json:"scp"`
	SCPNumber int        `json:"scp_number"`
	Title     string     `json:"title"`
	Rating    int        `json:"rating"`
	Series    string     `json:"series"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
	Creator   string     `json:"creator,omitempty"`
}

// HitFromItem projects a full item down to a Hit.
func HitFromItem(it *Item) Hit {
	return Hit{
		Link:      it.Link,
		SCP:       it.SCP,
		SCPNumber: it.SCPNumber,
		Title:     it.Title,
		Rating:    it.Rating,
		Series:    it.Series,
		Tags:      it.Tags,
		CreatedAt: it.CreatedAt,
		Creator:   it.Creator,
	}
}

// SearchResult is a page of hits with an optional pagination cursor.
type SearchResult struct {
	Items         []Hit  `json:"items"`
	NextCursor    string `json:"next_cursor,omitempty"`
	DatasetCommit string `json:"dataset_commit,omitempty"`
	TotalCount    int    `json:"total_count,omitempty"`
}

// ContentResponse carries the content fields for a single item.
type ContentResponse struct {
	Markdown      string `json:"markdown,omitempty"`
	RawContent    string `json:"raw_content,omitempty"`
	RawSource     string `json:"raw_source,omitempty"`
	URL           string `json:"url"`
	ContentSHA1   string `json:"content_sha1,omitempty"`
	DatasetCommit string `json:"dataset_commit,omitempty"`
	Fallback      bool   `json:"fallback"`
}

// BestContent returns the best available content for AI processing.
func (r *ContentResponse) BestContent() string {
	switch {
	case r.Markdown != "":
		return r.Markdown
	case r.RawContent != "":
		return r.RawContent
	default:
		return r.RawSource
	}
}

// Attribution carries CC BY-SA 3.0 attribution information.
type Attribution struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Authors []string `json:"authors,omitempty"`
	License string   `json:"license"`
	Notice  string   `json:"notice"`
}

// LicenseNotice is the standard CC BY-SA 3.0 notice for wiki content.
const LicenseNotice = "Content from the SCP Wiki is licensed under CC BY-SA 3.0. " +
	"Derivatives must be shared under the same license."

// NewAttribution builds an attribution record for an item.
func NewAttribution(it *Item) Attribution {
	var authors []string
	if it.Creator != "" {
		authors = []string{it.Creator}
	}
	return Attribution{
		Title:   it.Title,
		URL:     it.URL,
		Authors: authors,
		License: "CC BY-SA 3.0",
		Notice:  LicenseNotice,
	}
}

// VersionInfo describes system version and dataset state.
type VersionInfo struct {
	DatasetCommit string            `json:"dataset_commit,omitempty"`
	StoreItems    int               `json:"store_items"`
	ServerInfo    map[string]string `json:"server_info,omitempty"`
}

// SyncResult summarizes a data synchronization operation.
type SyncResult struct {
	DatasetCommit    string   `json:"dataset_commit"`
	Updated          int      `json:"updated"`
	Skipped          int      `json:"skipped"`
	ProcessingTimeMS int64    `json:"processing_time_ms"`
	Errors           []string `json:"errors,omitempty"`
}
