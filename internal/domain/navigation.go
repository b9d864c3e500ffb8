package domain

// Resolution is the result of resolving a bucket selector against a view
type Resolution struct {
	Selector   BucketKey
	Matching   []string // identities in view order
	Anchor     string   // first identity of the bucket; empty when nothing matches
	Deselected bool
}

// Found reports whether the selector matched at least one identity
func (r Resolution) Found() bool {
	return len(r.Matching) > 0
}

// Resolve returns the identities of the bucket selected by sel. It reads
// only the already built grouping so it can never disagree with it. A
// selector with no matching bucket, or an invalid one, yields an empty
// resolution. Only the zero key selects the unknown bucket.
func Resolve(v *ViewIndex, sel BucketKey) Resolution {
	res := Resolution{Selector: sel}
	if !sel.Valid() {
		return res
	}
	b, ok := v.Bucket(sel)
	if !ok || len(b.Identities) == 0 {
		return res
	}
	res.Matching = append([]string(nil), b.Identities...)
	res.Anchor = b.Identities[0]
	return res
}

// Navigator holds the caller side toggle state for bucket selection.
// Selecting the same bucket twice in a row deselects it.
type Navigator struct {
	active   BucketKey
	selected bool
}

// Select resolves sel against v, or deselects when sel is already active.
// An invalid selector matches nothing and leaves the toggle state alone.
func (n *Navigator) Select(v *ViewIndex, sel BucketKey) Resolution {
	if !sel.Valid() {
		return Resolution{Selector: sel}
	}
	if n.selected && n.active == sel {
		n.Clear()
		return Resolution{Selector: sel, Deselected: true}
	}
	n.active = sel
	n.selected = true
	return Resolve(v, sel)
}

// Active returns the selected bucket, if any
func (n *Navigator) Active() (BucketKey, bool) {
	return n.active, n.selected
}

// Clear drops the current selection
func (n *Navigator) Clear() {
	n.active = BucketKey{}
	n.selected = false
}
