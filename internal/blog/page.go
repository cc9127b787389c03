// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package blog

// DefaultPageSize is the number of entries per listing page.
const DefaultPageSize = 10

// Page describes one window of a paginated listing.
type Page struct {
	ItemCount   int  `json:"item_count"`
	PageIndex   int  `json:"page_index"`
	PageSize    int  `json:"page_size"`
	PageCount   int  `json:"page_count"`
	Offset      int  `json:"offset"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPage computes the pagination window for pageIndex over itemCount
// items. Indexes below 1 and indexes past the last page fall back to the
// first page.
func NewPage(itemCount, pageIndex int) Page {
	p := Page{
		ItemCount: itemCount,
		PageSize:  DefaultPageSize,
	}
	p.PageCount = itemCount / p.PageSize
	if itemCount%p.PageSize != 0 {
		p.PageCount++
	}

	if pageIndex < 1 || itemCount == 0 || pageIndex > p.PageCount {
		p.PageIndex = 1
		p.Offset = 0
	} else {
		p.PageIndex = pageIndex
		p.Offset = p.PageSize * (pageIndex - 1)
	}
	p.Limit = p.PageSize
	p.HasNext = p.PageIndex < p.PageCount
	p.HasPrevious = p.PageIndex > 1
	return p
}
