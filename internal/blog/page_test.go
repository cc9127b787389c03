// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package blog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aweblog/aweblog/internal/blog"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name        string
		itemCount   int
		pageIndex   int
		wantIndex   int
		wantCount   int
		wantOffset  int
		wantNext    bool
		wantPrev    bool
	}{
		{"empty listing", 0, 1, 1, 0, 0, false, false},
		{"single partial page", 5, 1, 1, 1, 0, false, false},
		{"exact page boundary", 20, 2, 2, 2, 10, false, true},
		{"middle page", 35, 2, 2, 4, 10, true, true},
		{"last partial page", 35, 4, 4, 4, 30, false, true},
		{"index past the end falls back to first", 15, 9, 1, 2, 0, true, false},
		{"zero index falls back to first", 15, 0, 1, 2, 0, true, false},
		{"negative index falls back to first", 15, -3, 1, 2, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := blog.NewPage(tt.itemCount, tt.pageIndex)
			assert.Equal(t, tt.wantIndex, p.PageIndex)
			assert.Equal(t, tt.wantCount, p.PageCount)
			assert.Equal(t, tt.wantOffset, p.Offset)
			assert.Equal(t, blog.DefaultPageSize, p.Limit)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrevious)
		})
	}
}
