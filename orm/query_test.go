package orm

import (
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("refs", NewSimpleObj(nil, new(MultiRef))).
		WithIndex("first", firstRef, false)
	other := NewBucket("refsx", NewSimpleObj(nil, new(MultiRef)))

	alice := newRefObj(t, "alice", "x")
	assert.Nil(t, b.Save(db, alice))
	assert.Nil(t, b.Save(db, newRefObj(t, "alfred", "y")))
	assert.Nil(t, b.Save(db, newRefObj(t, "bob", "x")))
	assert.Nil(t, other.Save(db, newRefObj(t, "alan", "x")))

	qr := weave.NewQueryRouter()
	b.Register("refs", qr)
	raw, err := alice.Value().Marshal()
	assert.Nil(t, err)

	cases := map[string]struct {
		path    string
		mod     string
		data    string
		wantKey []string
		wantErr *errors.Error
	}{
		"by key": {
			path:    "/refs",
			data:    "alice",
			wantKey: []string{"alice"},
		},
		"missing key": {
			path: "/refs",
			data: "carol",
		},
		"by prefix stays in bucket": {
			path:    "/refs",
			mod:     weave.PrefixQueryMod,
			data:    "al",
			wantKey: []string{"alfred", "alice"},
		},
		"whole bucket": {
			path:    "/refs",
			mod:     weave.PrefixQueryMod,
			wantKey: []string{"alfred", "alice", "bob"},
		},
		"by index": {
			path:    "/refs/first",
			data:    "x",
			wantKey: []string{"alice", "bob"},
		},
		"index prefix": {
			path:    "/refs/first",
			mod:     weave.PrefixQueryMod,
			data:    "x",
			wantErr: errors.ErrInput,
		},
		"unknown mode": {
			path:    "/refs",
			mod:     "range",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := qr.Handler(tc.path)
			if h == nil {
				t.Fatalf("no handler for %s", tc.path)
			}
			models, err := h.Query(db, tc.mod, []byte(tc.data))
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			keys := make([]string, 0, len(models))
			for _, m := range models {
				keys = append(keys, string(m.Key))
			}
			assert.Equal(t, len(tc.wantKey), len(keys))
			for i := range tc.wantKey {
				assert.Equal(t, tc.wantKey[i], keys[i])
			}
		})
	}

	models, err := b.Query(db, weave.KeyQueryMod, []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, raw, models[0].Value)
}

func TestQueryRouterDuplicate(t *testing.T) {
	qr := weave.NewQueryRouter()
	b := NewBucket("refs", NewSimpleObj(nil, new(MultiRef)))
	b.Register("refs", qr)
	assert.Panics(t, func() { b.Register("refs", qr) })
	assert.Nil(t, qr.Handler("/nothing"))
}
