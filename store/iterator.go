package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendBtree collects all cached items within [start, end) in ascending
// order. Cache wraps live for a single transaction, so the copy stays small.
func ascendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(i btree.Item) bool {
		items = append(items, i.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// descendBtree collects all cached items within [start, end) in descending
// order.
func descendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(i btree.Item) bool {
		k := i.(keyer).Key()
		if end != nil && bytes.Compare(k, end) >= 0 {
			return true
		}
		if start != nil && bytes.Compare(k, start) < 0 {
			return false
		}
		items = append(items, i.(keyer))
		return true
	}
	if end == nil {
		bt.Descend(collect)
	} else {
		bt.DescendLessOrEqual(bkey{end}, collect)
	}
	return items
}

// source marks which side holds the current item.
type source int32

const (
	none source = iota
	cache
	parent
	both
)

// mergeIterator combines the cached items with the iterator of the parent
// store. Cached values shadow the parent and deleted items hide it.
type mergeIterator struct {
	items     []keyer
	idx       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []keyer, parentIter Iterator, ascending bool) (*mergeIterator, error) {
	it := &mergeIterator{
		items:     items,
		parent:    parentIter,
		ascending: ascending,
	}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// Valid returns true while either side has data left.
func (i *mergeIterator) Valid() bool {
	return i.current() != none
}

// Next moves the iterator forward. It panics when called on an invalid
// iterator.
func (i *mergeIterator) Next() error {
	switch i.current() {
	case cache:
		i.idx++
	case both:
		i.idx++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("iterator advanced past the end")
	}
	return i.skipDeleted()
}

// Key returns the key under the cursor.
func (i *mergeIterator) Key() []byte {
	switch i.current() {
	case cache, both:
		return i.items[i.idx].Key()
	case parent:
		return i.parent.Key()
	default:
		panic("iterator advanced past the end")
	}
}

// Value returns the value under the cursor.
func (i *mergeIterator) Value() []byte {
	switch i.current() {
	case cache, both:
		return i.items[i.idx].(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("iterator advanced past the end")
	}
}

// Close releases the parent iterator.
func (i *mergeIterator) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipDeleted fast forwards over deleted cache entries, together with the
// parent entry they hide.
func (i *mergeIterator) skipDeleted() error {
	for {
		src := i.current()
		if src != cache && src != both {
			return nil
		}
		if _, ok := i.items[i.idx].(deletedItem); !ok {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// current selects the side that holds the next key in iteration order.
func (i *mergeIterator) current() source {
	cacheValid := i.idx < len(i.items)
	parentValid := i.parent != nil && i.parent.Valid()
	switch {
	case !cacheValid && !parentValid:
		return none
	case !parentValid:
		return cache
	case !cacheValid:
		return parent
	}

	cmp := bytes.Compare(i.items[i.idx].Key(), i.parent.Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return cache
	case cmp > 0:
		return parent
	default:
		return both
	}
}
