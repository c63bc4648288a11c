package view

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"StockView/internal/catalog"
)

const (
	noticeTTL = 3 * time.Second

	loadErrMessage = "Failed to load products."
)

// View is the inventory page's state. Its exported methods are the only
// mutators; everything rendered is derived from a Snapshot so the count
// partition and paging invariants hold in one place.
type View struct {
	cat   catalog.Catalog
	clock Clock

	mu       sync.Mutex
	loading  bool
	loadErr  string
	products []catalog.Product

	search string
	page   int

	editID    string
	editToken string

	notice      string
	noticeGen   int
	noticeTimer Timer

	closed bool
}

type Option func(*View)

// WithClock substitutes the timer source, used by tests to drive the
// notice expiry deterministically.
func WithClock(c Clock) Option {
	return func(v *View) { v.clock = c }
}

func New(cat catalog.Catalog, opts ...Option) *View {
	v := &View{
		cat:     cat,
		clock:   systemClock{},
		loading: true,
		page:    1,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Load fetches the collection once. A view that was closed before the
// fetch resolved discards the result instead of mutating dead state.
func (v *View) Load(ctx context.Context) {
	products, err := v.cat.FetchAll(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}

	v.loading = false
	if err != nil {
		v.loadErr = loadErrMessage
		return
	}
	v.loadErr = ""
	v.products = products
}

// SetSearch updates the active search text and resets to the first page,
// so narrowing results never leaves the user on an out-of-range page.
func (v *View) SetSearch(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s == v.search {
		return
	}
	v.search = s
	v.page = 1
}

// SetPage moves to the requested page, clamped to the valid range for the
// current filtered list.
func (v *View) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	total := TotalPages(len(FilterByName(v.products, v.search)))
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	v.page = n
}

// OpenEdit selects the product as the active edit target and mints a fresh
// one-time form token. Unknown ids leave the state untouched.
func (v *View) OpenEdit(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.findLocked(id); !ok {
		return false
	}
	v.editID = id
	v.editToken = uuid.NewString()
	return true
}

// CloseEdit drops the active edit target without mutating any product.
func (v *View) CloseEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.editID = ""
	v.editToken = ""
}

// SubmitResult reports the outcome of a stock edit submission.
type SubmitResult struct {
	// Errors holds failed validation rules; the modal stays open.
	Errors []FieldError
	// Stale means no modal was open or the form token did not match;
	// nothing was mutated.
	Stale bool
	// Notice is the success message now showing.
	Notice string
}

// SubmitStock validates raw and, if it passes, replaces the active edit
// target's stock, shows a success notice for three seconds, and closes the
// modal. The update is local only; the catalog is never written to.
func (v *View) SubmitStock(token, raw string) SubmitResult {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.editID == "" || token == "" || token != v.editToken {
		return SubmitResult{Stale: true}
	}

	value, errs := ValidateStock(raw)
	if len(errs) > 0 {
		return SubmitResult{Errors: errs}
	}

	i, ok := v.findLocked(v.editID)
	if !ok {
		v.editID = ""
		v.editToken = ""
		return SubmitResult{Stale: true}
	}

	v.products[i].Stock = value
	v.notice = fmt.Sprintf("Stock for %q updated to %d", v.products[i].Name, value)
	v.scheduleNoticeClearLocked()

	v.editID = ""
	v.editToken = ""
	return SubmitResult{Notice: v.notice}
}

// Close marks the view discarded: pending loads and notice timers no
// longer touch its state.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	if v.noticeTimer != nil {
		v.noticeTimer.Stop()
		v.noticeTimer = nil
	}
}

// A newer notice cancels the previous clear timer, so the freshest message
// always gets its full three seconds.
func (v *View) scheduleNoticeClearLocked() {
	if v.noticeTimer != nil {
		v.noticeTimer.Stop()
	}

	v.noticeGen++
	gen := v.noticeGen
	v.noticeTimer = v.clock.AfterFunc(noticeTTL, func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if v.closed || v.noticeGen != gen {
			return
		}
		v.notice = ""
		v.noticeTimer = nil
	})
}

func (v *View) findLocked(id string) (int, bool) {
	for i, p := range v.products {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Snapshot is one consistent read of the view: raw state plus every
// derived projection the page renders. Items is a copy of the current
// window; later edits never reach into a snapshot already handed out.
type Snapshot struct {
	Loading bool
	LoadErr string

	Search string
	Page   int

	TotalPages int
	Items      []catalog.Product
	Counts     Counts
	Buttons    []PageButton

	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int

	Editing   *catalog.Product
	EditToken string

	Notice string
}

// QueryResult is a read-only projection of the collection for a given
// search/page pair, independent of the view's own navigation state.
type QueryResult struct {
	Items      []catalog.Product `json:"items"`
	Counts     Counts            `json:"counts"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

// Query derives the filtered page and counts without touching any state.
func (v *View) Query(search string, page int) QueryResult {
	v.mu.Lock()
	defer v.mu.Unlock()

	if page < 1 {
		page = 1
	}

	filtered := FilterByName(v.products, search)
	return QueryResult{
		Items:      slices.Clone(PageSlice(filtered, page)),
		Counts:     CountStock(filtered),
		Page:       page,
		TotalPages: TotalPages(len(filtered)),
	}
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := FilterByName(v.products, v.search)
	totalPages := TotalPages(len(filtered))

	s := Snapshot{
		Loading:    v.loading,
		LoadErr:    v.loadErr,
		Search:     v.search,
		Page:       v.page,
		TotalPages: totalPages,
		Items:      slices.Clone(PageSlice(filtered, v.page)),
		Counts:     CountStock(filtered),
		Buttons:    PageButtonsFor(totalPages, v.page),
		HasPrev:    v.page > 1,
		HasNext:    v.page < totalPages,
		PrevPage:   v.page - 1,
		NextPage:   v.page + 1,
		EditToken:  v.editToken,
		Notice:     v.notice,
	}

	if v.editID != "" {
		if i, ok := v.findLocked(v.editID); ok {
			p := v.products[i]
			s.Editing = &p
		}
	}

	return s
}
