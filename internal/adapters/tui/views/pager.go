package views

// Pager windows a flat list of photos into pages of rows. Month headers are
// not counted as rows.
type Pager struct {
	size   int
	top    int
	cursor int
	total  int
}

// NewPager creates a pager showing size rows per page
func NewPager(size int) *Pager {
	if size <= 0 {
		size = 20
	}
	return &Pager{size: size}
}

// SetTotal updates the number of photos, clamping the cursor
func (p *Pager) SetTotal(total int) {
	p.total = max(total, 0)
	p.top = min(p.top, max(p.total-p.size, 0))
	p.SetCursor(p.cursor)
}

// Cursor returns the flat position under the cursor
func (p *Pager) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor to i, scrolling only when i is off screen
func (p *Pager) SetCursor(i int) {
	p.cursor = p.clamp(i)
	switch {
	case p.cursor < p.top:
		p.top = p.cursor
	case p.cursor >= p.top+p.size:
		p.top = p.cursor - p.size + 1
	}
}

// Jump moves the cursor to i and scrolls it to the top of the page, so a
// month starts on a fresh screen
func (p *Pager) Jump(i int) {
	p.cursor = p.clamp(i)
	p.top = min(p.cursor, max(p.total-p.size, 0))
}

// Up moves one row back
func (p *Pager) Up() bool {
	if p.cursor == 0 {
		return false
	}
	p.SetCursor(p.cursor - 1)
	return true
}

// Down moves one row forward
func (p *Pager) Down() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.SetCursor(p.cursor + 1)
	return true
}

// PageDown scrolls a full page, keeping the cursor on the same screen row.
// On the last page it moves to the last photo instead.
func (p *Pager) PageDown() bool {
	before := p.cursor
	if p.top+p.size >= p.total {
		p.SetCursor(p.total - 1)
		return p.cursor != before
	}
	row := p.cursor - p.top
	p.top = min(p.top+p.size, max(p.total-p.size, 0))
	p.cursor = p.clamp(p.top + row)
	return true
}

// PageUp scrolls a full page back, or moves to the first photo on the first page
func (p *Pager) PageUp() bool {
	before := p.cursor
	if p.top == 0 {
		p.SetCursor(0)
		return p.cursor != before
	}
	row := p.cursor - p.top
	p.top = max(p.top-p.size, 0)
	p.cursor = p.clamp(p.top + row)
	return true
}

// Visible returns the half-open range of rows on screen
func (p *Pager) Visible() (start, end int) {
	return p.top, min(p.top+p.size, p.total)
}

// Page returns the 1-based page of the first visible row and the page count
func (p *Pager) Page() (current, pages int) {
	if p.total == 0 {
		return 1, 1
	}
	pages = (p.total + p.size - 1) / p.size
	current = min(p.top/p.size+1, pages)
	if p.top+p.size >= p.total {
		current = pages
	}
	return current, pages
}

// Resize changes the rows per page, keeping the cursor in view
func (p *Pager) Resize(size int) {
	if size <= 0 || size == p.size {
		return
	}
	p.size = size
	p.SetCursor(p.cursor)
}

func (p *Pager) clamp(i int) int {
	if p.total == 0 || i < 0 {
		return 0
	}
	return min(i, p.total-1)
}
