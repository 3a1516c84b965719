package models

// DefaultPageLimit and MaxPageLimit bound every paginated listing.
const (
	DefaultPageLimit int64 = 10
	MaxPageLimit     int64 = 100
)

// PageMeta carries pagination metadata alongside a page of documents.
type PageMeta struct {
	TotalDocs   int64  `json:"totalDocs"`
	Count       int    `json:"count"`
	TotalPages  int64  `json:"totalPages"`
	CurrentPage int64  `json:"currentPage"`
	NextPage    *int64 `json:"nextPage"`
	PrevPage    *int64 `json:"prevPage"`
	HasNextPage bool   `json:"hasNextPage"`
	HasPrevPage bool   `json:"hasPrevPage"`
}

// NewPageMeta computes pagination metadata for a page. totalPages is
// ceil(total/limit); next/prev are nil at the edges.
func NewPageMeta(total, page, limit int64, count int) PageMeta {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	meta := PageMeta{
		TotalDocs:   total,
		Count:       count,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
	if page > 1 {
		prev := page - 1
		meta.PrevPage = &prev
		meta.HasPrevPage = true
	}
	if page < totalPages {
		next := page + 1
		meta.NextPage = &next
		meta.HasNextPage = true
	}
	return meta
}

// ClampPage normalizes caller-supplied page/limit values to the allowed range.
func ClampPage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// ChannelStats is the dashboard aggregate for a channel.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}
