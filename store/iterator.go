package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendBtree collects all cached items within the given range in
// ascending order. The cache is bounded by the transaction size, so
// materializing the selection is fine.
func ascendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	insert := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// descendBtree collects all cached items within the given range in
// descending order.
func descendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	insert := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Descend(insert)
	case start == nil:
		bt.DescendLessOrEqual(bkeyLess{end}, insert)
	case end == nil:
		bt.DescendGreaterThan(bkeyLess{start}, insert)
	default:
		bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// itemIter combines the cached writes with the backing iterator,
// taking into consideration overwrites and deletes.
type itemIter struct {
	items   []btree.Item
	idx     int
	parent  Iterator
	reverse bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []btree.Item, parentIter Iterator, reverse bool) *itemIter {
	iter := &itemIter{
		items:   items,
		parent:  parentIter,
		reverse: reverse,
	}
	iter.skipAllDeleted()
	return iter
}

// Valid implements Iterator and returns true iff it can be read.
func (i *itemIter) Valid() bool {
	return i.cacheValid() || i.parent.Valid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *itemIter) Next() {
	i.advance()
	// keep advancing over all deleted entries
	i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *itemIter) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.get().Key()
	case parent:
		return i.parent.Key()
	default: // none
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *itemIter) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.get().(setItem).value
	case parent:
		return i.parent.Value()
	default: // none
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *itemIter) Close() {
	i.items = nil
	i.parent.Close()
}

// advance either us, parent, or both
func (i *itemIter) advance() {
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		fallthrough
	case parent:
		i.parent.Next()
	default:
		panic("Advanced past the end!")
	}
}

// skipAllDeleted loops and skips any number of deleted entries
// at the head of the merged view.
func (i *itemIter) skipAllDeleted() {
	for {
		switch i.firstKey() {
		case us, both:
			if _, deleted := i.get().(deletedItem); deleted {
				i.advance()
				continue
			}
		}
		return
	}
}

func (i *itemIter) cacheValid() bool {
	return i.idx < len(i.items)
}

// get requires the cache position is valid, gets what we are pointing at
func (i *itemIter) get() keyer {
	return i.items[i.idx].(keyer)
}

// firstKey selects the source of the next item to yield: the cached
// view wins ties so overwrites and deletes shadow the parent.
func (i *itemIter) firstKey() source {
	cacheValid := i.cacheValid()
	parentValid := i.parent.Valid()

	switch {
	case !cacheValid && !parentValid:
		return none
	case !parentValid:
		return us
	case !cacheValid:
		return parent
	}

	cmp := bytes.Compare(i.get().Key(), i.parent.Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return us
	case cmp > 0:
		return parent
	default:
		return both
	}
}
