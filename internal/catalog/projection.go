package catalog

import (
	"sort"
	"strings"

	"book_catalog_tgbot/internal/model"
)

// Params selects the visible slice of the authoritative record set.
type Params struct {
	SearchTerm string
	Sort       model.SortDirection
	Page       int // 1-indexed
	PageSize   int
}

// RenderModel is everything the view needs to draw one page. It is a
// pure function of the record set and Params; handlers mutate state,
// Project never does.
type RenderModel struct {
	Items      []model.Book
	Page       int
	PageCount  int
	TotalCount int
	Sort       model.SortDirection
	SearchTerm string
	Empty      bool
	// Paginated reports whether the unpaged result exceeds one page.
	Paginated bool
}

// Project filters, sorts and slices the authoritative records. The page
// index is taken as-is: changing search or sort keeps the selected
// page, only the delete flow adjusts it (see ClampPage).
func Project(records []model.Book, p Params) RenderModel {
	visible := Apply(records, p.SearchTerm, p.Sort)

	total := len(visible)
	pageCount := (total + p.PageSize - 1) / p.PageSize

	start := (p.Page - 1) * p.PageSize
	end := start + p.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]model.Book, end-start)
	copy(items, visible[start:end])

	return RenderModel{
		Items:      items,
		Page:       p.Page,
		PageCount:  pageCount,
		TotalCount: total,
		Sort:       p.Sort,
		SearchTerm: p.SearchTerm,
		// the empty state follows the visible slice, not the filtered
		// total: a kept page index past the end of a narrowed result
		// must not draw a blank card
		Empty:     len(items) == 0,
		Paginated: total > p.PageSize,
	}
}

// Apply returns the filtered and sorted derivative of records without
// slicing it. Search and sort compose: the filter keeps the order the
// sort established.
func Apply(records []model.Book, term string, dir model.SortDirection) []model.Book {
	out := make([]model.Book, len(records))
	copy(out, records)

	sortBooks(out, dir)

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return out
	}

	filtered := out[:0]
	for _, b := range out {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// sortBooks orders by title for asc/desc. SortNone falls through to
// the default recency order, newest createdAt first, which is also the
// order the store returns after a full reload.
func sortBooks(books []model.Book, dir model.SortDirection) {
	switch dir {
	case model.SortAsc:
		sort.SliceStable(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	case model.SortDesc:
		sort.SliceStable(books, func(i, j int) bool { return books[i].Title > books[j].Title })
	default:
		sort.SliceStable(books, func(i, j int) bool { return books[i].CreatedAt.After(books[j].CreatedAt) })
	}
}

// ToggleSort applies the sort-button semantics: activating a direction
// deactivates the other, activating the already-active one clears the
// sort back to recency order.
func ToggleSort(current, clicked model.SortDirection) model.SortDirection {
	if current == clicked {
		return model.SortNone
	}
	return clicked
}

// ClampPage walks the page index down until the visible slice is
// non-empty, so the page never shows "no data" while earlier pages
// still have entries. total is the post-filter, post-sort count and
// must be recomputed after the awaited refresh, not before it.
func ClampPage(total, page, pageSize int) int {
	if page < 1 {
		return 1
	}
	for page > 1 && (page-1)*pageSize >= total {
		page--
	}
	return page
}
