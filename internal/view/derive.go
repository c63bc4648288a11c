package view

import (
	"strings"

	"StockView/internal/catalog"
)

const (
	// PageSize is the fixed window of products shown per page.
	PageSize = 20
	// LowStockThreshold partitions the filtered list into low/in stock.
	LowStockThreshold = 10
	// SkeletonRows is the number of placeholder rows shown while loading.
	SkeletonRows = 10
)

// FilterByName returns the subsequence of products whose name contains
// search, case-insensitively. An empty search matches everything; order is
// preserved.
func FilterByName(products []catalog.Product, search string) []catalog.Product {
	if search == "" {
		return products
	}

	needle := strings.ToLower(search)
	var out []catalog.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// PageSlice returns the 1-based page's window of filtered, at most PageSize
// items. Out-of-range pages yield an empty slice.
func PageSlice(filtered []catalog.Product, page int) []catalog.Product {
	start := (page - 1) * PageSize
	if start < 0 || start >= len(filtered) {
		return nil
	}

	end := min(start+PageSize, len(filtered))
	return filtered[start:end]
}

// TotalPages is ceil(n/PageSize), never less than 1.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

type Counts struct {
	Total    int `json:"total"`
	LowStock int `json:"low_stock"`
	InStock  int `json:"in_stock"`
}

// CountStock tallies the filtered list. LowStock + InStock == Total always.
func CountStock(filtered []catalog.Product) Counts {
	c := Counts{Total: len(filtered)}
	for _, p := range filtered {
		if p.Stock < LowStockThreshold {
			c.LowStock++
		}
	}
	c.InStock = c.Total - c.LowStock
	return c
}

// PageButton is one pagination control: a numbered page or an ellipsis gap.
type PageButton struct {
	Page     int
	Ellipsis bool
}

// PageButtonsFor renders every page number when there are five pages or
// fewer. Beyond that it pins the first and last page, shows at most one
// ellipsis per side, and opens a three-page window around the current page
// once it has moved past the leading edge.
func PageButtonsFor(totalPages, current int) []PageButton {
	if totalPages <= 5 {
		btns := make([]PageButton, totalPages)
		for i := range btns {
			btns[i] = PageButton{Page: i + 1}
		}
		return btns
	}

	btns := []PageButton{{Page: 1}}

	if current > 3 {
		btns = append(btns, PageButton{Ellipsis: true})
		for i := current - 1; i <= current+1; i++ {
			if i > 1 && i < totalPages {
				btns = append(btns, PageButton{Page: i})
			}
		}
	}

	if current < totalPages-2 {
		btns = append(btns, PageButton{Ellipsis: true})
	}

	return append(btns, PageButton{Page: totalPages})
}
