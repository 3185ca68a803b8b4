package table

import (
	"sync"

	"github.com/huandu/skiplist"

	"github.com/octris/octodb/internal/types"
)

// ------------------------------------------------
// Table
// ------------------------------------------------

// Table holds the rows of one collection ordered by row key.
type Table struct {
	mu sync.RWMutex

	// skl stores key (string), row (types.Row) pairs
	skl *skiplist.SkipList
}

func New() *Table {
	return &Table{
		skl: skiplist.New(skiplist.String),
	}
}

// Put stores a copy of row under key, replacing any previous row.
func (t *Table) Put(key string, row types.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.skl.Set(key, row.Clone())
}

// Snapshot returns copies of the rows in key order as they are right now.
// Later writes to the table are not visible in the returned slice, and
// writes to the returned rows are not visible in the table.
func (t *Table) Snapshot() []types.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]types.Row, 0, t.skl.Len())
	for elem := t.skl.Front(); elem != nil; elem = elem.Next() {
		rows = append(rows, elem.Value.(types.Row).Clone())
	}
	return rows
}
