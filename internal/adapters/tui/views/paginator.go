package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/paginator"

	"braindump/internal/adapters/tui/styles"
)

// DefaultPageSize is used until the window size is known
const DefaultPageSize = 10

// Paginator keeps a cursor over a list and the page that contains it
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
	dots       paginator.Model
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.ActiveDot = styles.HelpKey.Render("•")
	dots.InactiveDot = styles.MutedText.Render("•")
	return &Paginator{
		pageSize: pageSize,
		dots:     dots,
	}
}

// SetPageSize changes how many rows fit on a page, keeping the cursor visible
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	p.pageSize = size
	p.pageOffset = 0
	p.ensureCursorInPage()
}

// PageSize returns the number of rows per page
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// SetTotal sets the total number of items and clamps the cursor
func (p *Paginator) SetTotal(total int) {
	p.totalItems = total
	if p.cursor >= total {
		p.cursor = total - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.ensureCursorInPage()
}

// Total returns the number of items
func (p *Paginator) Total() int {
	return p.totalItems
}

// Cursor returns the current cursor position (absolute index)
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor > 0 {
		p.cursor--
		p.ensureCursorInPage()
		return true
	}
	return false
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor < p.totalItems-1 {
		p.cursor++
		p.ensureCursorInPage()
		return true
	}
	return false
}

// VisibleRange returns the start and end indices for the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.pageOffset
	end = min(p.pageOffset+p.pageSize, p.totalItems)
	return
}

// TotalPages returns the total number of pages
func (p *Paginator) TotalPages() int {
	if p.totalItems == 0 {
		return 1
	}
	return (p.totalItems + p.pageSize - 1) / p.pageSize
}

// CurrentPage returns the current page number (1-based)
func (p *Paginator) CurrentPage() int {
	return p.pageOffset/p.pageSize + 1
}

// NextPage moves to the first row of the next page
func (p *Paginator) NextPage() bool {
	if p.pageOffset+p.pageSize < p.totalItems {
		p.pageOffset += p.pageSize
		p.cursor = p.pageOffset
		return true
	}
	return false
}

// PrevPage moves to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	if p.pageOffset > 0 {
		p.pageOffset = max(p.pageOffset-p.pageSize, 0)
		p.cursor = p.pageOffset
		return true
	}
	return false
}

// Reset moves the cursor back to the first row
func (p *Paginator) Reset() {
	p.cursor = 0
	p.pageOffset = 0
}

// View renders the page dots, or nothing when everything fits on one page
func (p *Paginator) View() string {
	pages := p.TotalPages()
	if pages <= 1 {
		return ""
	}
	p.dots.TotalPages = pages
	p.dots.Page = p.CurrentPage() - 1
	return fmt.Sprintf("%s %s", p.dots.View(), styles.MutedText.Render(fmt.Sprintf("%d/%d", p.CurrentPage(), pages)))
}

func (p *Paginator) ensureCursorInPage() {
	if p.cursor < p.pageOffset || p.cursor >= p.pageOffset+p.pageSize {
		p.pageOffset = (p.cursor / p.pageSize) * p.pageSize
	}
}
