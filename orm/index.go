package orm

import (
	"bytes"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given object. A nil key
// leaves the object out of the index.
type Indexer func(Object) ([]byte, error)

// Index is a secondary index over the objects of one bucket. All primary
// keys indexed under the same value are kept as a single MultiRef entry,
// which suits the small fan out of owner lookups. A unique index stores
// the primary key directly.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
}

// NewIndex constructs an index. unique enforces that at most one object is
// stored under any index value.
func NewIndex(name string, indexer Indexer, unique bool) Index {
	return Index{
		name:   name,
		id:     []byte(indexPrefix + name + ":"),
		index:  indexer,
		unique: unique,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// indexKey copies into a new array, so that consecutive calls never share
// the backing array of the prefix.
func (i Index) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update moves the reference of an object to the right index entry.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
func (i Index) Update(db weave.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		key, err := i.index(save)
		if err != nil || key == nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case save == nil:
		key, err := i.index(prev)
		if err != nil || key == nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	}

	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot change primary key")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if oldKey != nil {
		if err := i.remove(db, oldKey, prev.Key()); err != nil {
			return err
		}
	}
	if newKey != nil {
		return i.insert(db, newKey, save.Key())
	}
	return nil
}

// GetAt returns the primary keys of all objects indexed under value.
func (i Index) GetAt(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.indexKey(value))
	if err != nil || raw == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "index entry")
	}
	return refs.Refs, nil
}

func (i Index) insert(db weave.KVStore, value []byte, pk []byte) error {
	dbkey := i.indexKey(value)
	raw, err := db.Get(dbkey)
	if err != nil {
		return err
	}

	if i.unique {
		if raw != nil && !bytes.Equal(raw, pk) {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(dbkey, pk)
	}

	var refs MultiRef
	if raw != nil {
		if err := refs.Unmarshal(raw); err != nil {
			return errors.Wrap(err, "index entry")
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, bz)
}

func (i Index) remove(db weave.KVStore, value []byte, pk []byte) error {
	dbkey := i.indexKey(value)
	raw, err := db.Get(dbkey)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s has no entry", i.name)
	}

	if i.unique {
		if !bytes.Equal(raw, pk) {
			return errors.Wrapf(errors.ErrNotFound, "index %s points elsewhere", i.name)
		}
		return db.Delete(dbkey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return errors.Wrap(err, "index entry")
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbkey)
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, bz)
}
