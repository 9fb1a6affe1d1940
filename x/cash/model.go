package cash

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the persisted content of a wallet.
type Set struct {
	Coins coin.Coins `protobuf:"bytes,1,rep,name=coins" json:"coins"`
}

var _ orm.CloneableData = (*Set)(nil)

// Validate requires that all coins are in alphabetical order
func (s *Set) Validate() error {
	return s.Coins.Validate()
}

// Copy makes a new set with the same coins
func (s *Set) Copy() orm.CloneableData {
	return &Set{Coins: s.Coins.Clone()}
}

// Wallet is a type-safe wrapper around the orm object holding the coins of
// one address.
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address
func NewWallet(key weave.Address) *Wallet {
	return &Wallet{key: key, value: new(Set)}
}

// WalletWith creates a wallet holding the given coins.
func WalletWith(key weave.Address, coins ...*coin.Coin) (*Wallet, error) {
	w := NewWallet(key)
	for _, c := range coins {
		if c == nil {
			continue
		}
		if err := w.Add(*c); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Value gets the value stored in the object
func (w Wallet) Value() weave.Persistent {
	return w.value
}

// Key returns the key to store the object under
func (w Wallet) Key() []byte {
	return w.key
}

// Validate makes sure the fields aren't empty.
func (w Wallet) Validate() error {
	if err := weave.Address(w.key).Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return w.value.Validate()
}

// SetKey may be used to update a simple obj key
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone will make a copy of this object
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy().(*Set),
	}
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Coins returns the coins stored in the wallet
func (w Wallet) Coins() coin.Coins {
	return w.value.Coins
}

// Add modifies the wallet to add Coin c
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins().Add(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove Coin c. Fails with ErrAmount
// when not enough is held.
func (w *Wallet) Subtract(c coin.Coin) error {
	cs, err := w.Coins().Subtract(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// Get returns the wallet of the address, or nil.
func (b Bucket) Get(db weave.ReadOnlyKVStore, key weave.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil || obj == nil {
		return nil, err
	}
	w, ok := obj.(*Wallet)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj)
	}
	return w, nil
}

// Save writes the wallet. Empty wallets are deleted instead, so that a
// closed deposit account leaves no state behind.
func (b Bucket) Save(db weave.KVStore, w *Wallet) error {
	if w.Coins().IsEmpty() {
		return b.Bucket.Delete(db, w.Key())
	}
	return b.Bucket.Save(db, w)
}

// GetOrCreate returns the stored wallet, or a new empty one.
func (b Bucket) GetOrCreate(db weave.ReadOnlyKVStore, key weave.Address) (*Wallet, error) {
	w, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = NewWallet(key)
	}
	return w, nil
}
