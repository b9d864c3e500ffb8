package domain

// Cursor tracks the photo open in the single image viewer. It stores the
// identity, so it survives view rebuilds as long as the photo stays visible.
type Cursor struct {
	identity string
	index    int
	open     bool
}

// Open points the cursor at identity. It reports false when the identity is
// not part of v.
func (c *Cursor) Open(v *ViewIndex, identity string) bool {
	i, ok := v.IndexOf(identity)
	if !ok {
		return false
	}
	c.identity, c.index, c.open = identity, i, true
	return true
}

// OpenAt points the cursor at flat position i
func (c *Cursor) OpenAt(v *ViewIndex, i int) bool {
	id, ok := v.IdentityAt(i)
	if !ok {
		return false
	}
	c.identity, c.index, c.open = id, i, true
	return true
}

// Close closes the viewer
func (c *Cursor) Close() {
	*c = Cursor{}
}

// IsOpen reports whether the viewer shows a photo
func (c *Cursor) IsOpen() bool {
	return c.open
}

// Identity returns the photo under the cursor
func (c *Cursor) Identity() (string, bool) {
	return c.identity, c.open
}

// Index returns the flat position under the cursor
func (c *Cursor) Index() int {
	return c.index
}

// Next moves to the following photo, stopping at the end
func (c *Cursor) Next(v *ViewIndex) bool {
	if !c.open {
		return false
	}
	return c.OpenAt(v, c.index+1)
}

// Prev moves to the preceding photo, stopping at the start
func (c *Cursor) Prev(v *ViewIndex) bool {
	if !c.open {
		return false
	}
	return c.OpenAt(v, c.index-1)
}

// Rebase re-resolves the cursor against a rebuilt view. The identity is kept
// when still visible; otherwise the cursor moves to the nearest position, or
// closes when the view is empty.
func (c *Cursor) Rebase(v *ViewIndex) {
	if !c.open {
		return
	}
	if c.Open(v, c.identity) {
		return
	}
	n := v.Len()
	if n == 0 {
		c.Close()
		return
	}
	c.OpenAt(v, min(c.index, n-1))
}
