package value

// MutableRef is a shared interior-mutable cell: the backing store for `mut`
// bindings and for record fields declared `mut` (spec 3.1, 3.3). Copying a
// MutableRef value copies the pointer, not the cell, so aliasing through
// closures or nested structures observes later writes.
type MutableRef struct {
	Val Value
}

func NewMutableRef(v Value) *MutableRef { return &MutableRef{Val: v} }

func (r *MutableRef) Type() string   { return r.Val.Type() }
func (r *MutableRef) String() string { return Print(r.Val) }

// Get dereferences the cell.
func (r *MutableRef) Get() Value { return r.Val }

// Set overwrites the cell's contents in place.
func (r *MutableRef) Set(v Value) { r.Val = v }
