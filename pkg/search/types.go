package search

import (
	"fmt"
	"strings"
)

// Type selects the result type: plain web results, images or videos. It
// drives both query augmentation and the template used to render results.
type Type string

const (
	TypeAll   Type = "all"
	TypeImage Type = "image"
	TypeVideo Type = "video"
)

// Types lists the supported result types in display order.
var Types = []Type{TypeAll, TypeImage, TypeVideo}

// ParseType converts user input into a Type. The empty string maps to TypeAll.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case "", TypeAll:
		return TypeAll, nil
	case TypeImage:
		return TypeImage, nil
	case TypeVideo:
		return TypeVideo, nil
	}
	return "", fmt.Errorf("unknown search type %q", s)
}

// Valid reports whether t is one of the supported types.
func (t Type) Valid() bool {
	switch t {
	case TypeAll, TypeImage, TypeVideo:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Request is a single page request. Term must already be trimmed and non-empty.
type Request struct {
	Term string
	Type Type
	Page int
}

// Item is a single search hit as returned by the API.
type Item struct {
	Kind             string     `json:"kind,omitempty"`
	Title            string     `json:"title"`
	HTMLTitle        string     `json:"htmlTitle,omitempty"`
	Link             string     `json:"link"`
	DisplayLink      string     `json:"displayLink,omitempty"`
	Snippet          string     `json:"snippet,omitempty"`
	HTMLSnippet      string     `json:"htmlSnippet,omitempty"`
	CacheID          string     `json:"cacheId,omitempty"`
	FormattedURL     string     `json:"formattedUrl"`
	HTMLFormattedURL string     `json:"htmlFormattedUrl,omitempty"`
	Mime             string     `json:"mime,omitempty"`
	Image            *ImageInfo `json:"image,omitempty"`
	PageMap          *PageMap   `json:"pagemap,omitempty"`
}

// ImageInfo is present on image search results.
type ImageInfo struct {
	ContextLink     string `json:"contextLink"`
	Height          int    `json:"height,omitempty"`
	Width           int    `json:"width,omitempty"`
	ByteSize        int    `json:"byteSize,omitempty"`
	ThumbnailLink   string `json:"thumbnailLink,omitempty"`
	ThumbnailHeight int    `json:"thumbnailHeight,omitempty"`
	ThumbnailWidth  int    `json:"thumbnailWidth,omitempty"`
}

// PageMap holds the structured data subset used for video thumbnails.
type PageMap struct {
	CSEThumbnail []Thumbnail `json:"cse_thumbnail,omitempty"`
	CSEImage     []Thumbnail `json:"cse_image,omitempty"`
}

// Thumbnail is a single pagemap image reference.
type Thumbnail struct {
	Src    string `json:"src"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// Key returns a stable key for the item, preferring the cache id.
func (i Item) Key() string {
	if i.CacheID != "" {
		return i.CacheID
	}
	return i.Link
}

// ContextLink returns the page an image was found on, falling back to the
// item link.
func (i Item) ContextLink() string {
	if i.Image != nil && i.Image.ContextLink != "" {
		return i.Image.ContextLink
	}
	return i.Link
}

// Thumbnail returns the best thumbnail URL for the item or "" when there is none.
func (i Item) Thumbnail() string {
	if i.PageMap != nil {
		for _, t := range i.PageMap.CSEThumbnail {
			if t.Src != "" {
				return t.Src
			}
		}
	}
	if i.Image != nil && i.Image.ThumbnailLink != "" {
		return i.Image.ThumbnailLink
	}
	return ""
}

// SearchInformation is the result summary shown above the result list.
type SearchInformation struct {
	SearchTime            float64 `json:"searchTime,omitempty"`
	FormattedSearchTime   string  `json:"formattedSearchTime"`
	TotalResults          string  `json:"totalResults,omitempty"`
	FormattedTotalResults string  `json:"formattedTotalResults"`
}

// QueryInfo describes a request or continuation in the queries block.
type QueryInfo struct {
	Title        string `json:"title,omitempty"`
	TotalResults string `json:"totalResults,omitempty"`
	SearchTerms  string `json:"searchTerms,omitempty"`
	Count        int    `json:"count,omitempty"`
	StartIndex   int    `json:"startIndex,omitempty"`
	SearchType   string `json:"searchType,omitempty"`
}

// Queries holds the request echo and the continuation token.
type Queries struct {
	Request  []QueryInfo `json:"request,omitempty"`
	NextPage []QueryInfo `json:"nextPage,omitempty"`
}

// APIErrorPayload is the error object the API embeds in failed replies.
type APIErrorPayload struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// Response is a decoded API reply. It is never mutated after decoding.
type Response struct {
	Kind              string             `json:"kind,omitempty"`
	Items             []Item             `json:"items,omitempty"`
	SearchInformation *SearchInformation `json:"searchInformation,omitempty"`
	Queries           *Queries           `json:"queries,omitempty"`
	Error             *APIErrorPayload   `json:"error,omitempty"`
}

// HasNextPage reports whether the API signalled a further page that is
// still within MaxPage.
func (r *Response) HasNextPage() bool {
	if r == nil || r.Queries == nil || len(r.Queries.NextPage) == 0 {
		return false
	}
	start := r.Queries.NextPage[0].StartIndex
	return start <= StartIndex(MaxPage)
}

// SearchInfo returns the search information block; nil-safe.
func (r *Response) SearchInfo() *SearchInformation {
	if r == nil {
		return nil
	}
	return r.SearchInformation
}
