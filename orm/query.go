package orm

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Register exposes the bucket under "/<path>" and each of its indexes under
// "/<path>/<index>".
func (b Bucket) Register(path string, r weave.QueryRouter) {
	root := "/" + path
	r.Register(root, b)
	for name := range b.indexes {
		r.Register(root+"/"+name, indexQuery{bucket: b, name: name})
	}
}

// Query returns the entry stored under data (KeyQueryMod) or all entries
// whose key starts with data (PrefixQueryMod). Keys are returned without
// the bucket prefix.
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		bz, err := db.Get(b.DBKey(data))
		if err != nil {
			return nil, err
		}
		if bz == nil {
			return nil, nil
		}
		return []weave.Model{weave.Pair(data, bz)}, nil
	case weave.PrefixQueryMod:
		start, end := prefixRange(b.DBKey(data))
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		defer it.Close()

		var res []weave.Model
		for it.Valid() {
			key := append([]byte(nil), it.Key()[len(b.prefix):]...)
			value := append([]byte(nil), it.Value()...)
			res = append(res, weave.Pair(key, value))
			if err := it.Next(); err != nil {
				return nil, err
			}
		}
		return res, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mode %q", mod)
	}
}

type indexQuery struct {
	bucket Bucket
	name   string
}

// Query returns the entries the index maps data to. Only KeyQueryMod is
// supported.
func (q indexQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "index %s supports key queries only", q.name)
	}
	refs, err := q.bucket.indexes[q.name].GetAt(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]weave.Model, 0, len(refs))
	for _, ref := range refs {
		bz, err := db.Get(q.bucket.DBKey(ref))
		if err != nil {
			return nil, err
		}
		if bz == nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "index %s references missing %X", q.name, ref)
		}
		res = append(res, weave.Pair(ref, bz))
	}
	return res, nil
}
