package history

// Kind tags what an Entry does to the document.
type Kind uint8

const (
	// Insert records bytes written at Index.
	Insert Kind = iota
	// Delete records bytes removed starting at Index.
	Delete
)

// Entry is one reversible, self-contained edit: the logical (compact)
// index it occurred at, and the payload bytes either written (Insert) or
// removed (Delete). Payload is always a copy, never a slice aliasing the
// live buffer, since a later delete would invalidate an alias in place.
type Entry struct {
	Kind    Kind
	Index   int
	Payload []byte
}

// Length is len(Payload), the span the entry covers in the document.
func (e Entry) Length() int { return len(e.Payload) }

// reversed returns the entry that undoes e: an Insert's reverse is a
// Delete of the same payload at the same index, and vice versa.
func (e Entry) reversed() Entry {
	k := Insert
	if e.Kind == Insert {
		k = Delete
	}
	out := Entry{Kind: k, Index: e.Index, Payload: make([]byte, len(e.Payload))}
	copy(out.Payload, e.Payload)
	return out
}
