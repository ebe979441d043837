package grid

import "fmt"

// ChangeKind identifies the shape of a data change.
type ChangeKind int

const (
	ChangeInsert ChangeKind = iota // One row inserted at Index
	ChangeRemove                   // One row removed from Index
	ChangeAppend                   // Count rows appended starting at Index
	ChangeReset                    // Whole collection replaced, Count rows now
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeRemove:
		return "remove"
	case ChangeAppend:
		return "append"
	case ChangeReset:
		return "reset"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Change describes one observable mutation of a RowStore.
type Change struct {
	Kind  ChangeKind
	Index int
	Count int
}

// Listener receives store changes in the order they happen.
type Listener func(Change)
