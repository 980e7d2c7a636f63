package tracking

// DeleteBias controls how a handle behaves when the range it falls inside
// is deleted. Exactly one must be set per handle.
type DeleteBias uint8

const (
	// LeftBias snaps the handle to the start of the deleted range.
	LeftBias DeleteBias = iota
	// RightBias snaps the handle to the end of the deleted range.
	RightBias
	// NullBias invalidates the handle (it becomes Invalid()).
	NullBias
)

// InsertBias controls how a handle behaves when new content is inserted
// exactly at its position. Exactly one must be set per handle.
type InsertBias uint8

const (
	// LeftOfInsert keeps the handle at the insertion point, i.e. before
	// the inserted bytes.
	LeftOfInsert InsertBias = iota
	// RightOfInsert advances the handle past the inserted bytes.
	RightOfInsert
)

// Policy is the fixed, orthogonal set of rewrite rules a handle obeys.
// curleft and curright are the only handles that additionally slide with
// the gap on navigate; every other handle implicitly holds (its raw
// offset is only touched when the bytes it refers to are physically
// relocated by a grow or gap move).
type Policy struct {
	OnDelete DeleteBias
	OnInsert InsertBias
}
