package token

import (
	"math/big"
	"regexp"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
	"github.com/shopspring/decimal"
)

const (
	mintBucketName    = "mint"
	holdingBucketName = "holding"

	// MaxDecimals is the highest precision a mint may declare.
	MaxDecimals = 18
)

var isMintName = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{1,32}$`).MatchString

// MintCondition is the condition a mint address is derived from.
func MintCondition(authority weave.Address, name string) weave.Condition {
	data := make([]byte, 0, len(authority)+len(name))
	data = append(data, authority...)
	data = append(data, name...)
	return weave.NewCondition("token", "mint", data)
}

// MintAddress returns the address of the mint created by authority under
// name.
func MintAddress(authority weave.Address, name string) weave.Address {
	return MintCondition(authority, name).Address()
}

// HoldingCondition is the condition a holding address is derived from.
func HoldingCondition(mint, owner weave.Address) weave.Condition {
	data := make([]byte, 0, len(mint)+len(owner))
	data = append(data, mint...)
	data = append(data, owner...)
	return weave.NewCondition("token", "holding", data)
}

// HoldingAddress returns the address of the holding of owner in mint. The
// same pair always yields the same address.
func HoldingAddress(mint, owner weave.Address) weave.Address {
	return HoldingCondition(mint, owner).Address()
}

// Mint describes a fungible asset.
type Mint struct {
	Address   weave.Address `protobuf:"bytes,1,opt,name=address,proto3" json:"address"`
	Authority weave.Address `protobuf:"bytes,2,opt,name=authority,proto3" json:"authority"`
	Name      string        `protobuf:"bytes,3,opt,name=name,proto3" json:"name"`
	Decimals  uint32        `protobuf:"varint,4,opt,name=decimals,proto3" json:"decimals"`
	Supply    uint64        `protobuf:"varint,5,opt,name=supply,proto3" json:"supply"`
}

var _ orm.CloneableData = (*Mint)(nil)

// Validate ensures the mint is well formed and sits at its derived address.
func (m *Mint) Validate() error {
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if !isMintName(m.Name) {
		return errors.Wrapf(errors.ErrInput, "mint name %q", m.Name)
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals %d", m.Decimals)
	}
	if !m.Address.Equals(MintAddress(m.Authority, m.Name)) {
		return errors.Wrap(errors.ErrMismatch, "address not derived from authority and name")
	}
	return nil
}

func (m *Mint) Copy() orm.CloneableData {
	return &Mint{
		Address:   m.Address.Clone(),
		Authority: m.Authority.Clone(),
		Name:      m.Name,
		Decimals:  m.Decimals,
		Supply:    m.Supply,
	}
}

// Display renders amount using the mint decimals, e.g. 1500000 with six
// decimals is "1.500000".
func (m *Mint) Display(amount uint64) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(m.Decimals))
	return d.StringFixed(int32(m.Decimals))
}

// Holding is the balance of one owner in one mint.
type Holding struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  weave.Address   `protobuf:"bytes,2,opt,name=address,proto3" json:"address"`
	Mint     weave.Address   `protobuf:"bytes,3,opt,name=mint,proto3" json:"mint"`
	Owner    weave.Address   `protobuf:"bytes,4,opt,name=owner,proto3" json:"owner"`
	Amount   uint64          `protobuf:"varint,5,opt,name=amount,proto3" json:"amount"`
}

var _ orm.CloneableData = (*Holding)(nil)

// Validate ensures the holding sits at the address derived from its mint
// and owner.
func (h *Holding) Validate() error {
	if err := h.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := h.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := h.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !h.Address.Equals(HoldingAddress(h.Mint, h.Owner)) {
		return errors.Wrap(errors.ErrMismatch, "address not derived from mint and owner")
	}
	return nil
}

func (h *Holding) Copy() orm.CloneableData {
	return &Holding{
		Metadata: h.Metadata.Copy(),
		Address:  h.Address.Clone(),
		Mint:     h.Mint.Clone(),
		Owner:    h.Owner.Clone(),
		Amount:   h.Amount,
	}
}

// MintBucket stores mints by address.
type MintBucket struct {
	orm.Bucket
}

func NewMintBucket() MintBucket {
	return MintBucket{
		Bucket: orm.NewBucket(mintBucketName, orm.NewSimpleObj(nil, new(Mint))),
	}
}

// Get returns the mint at addr, or nil if there is none.
func (b MintBucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Mint, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	m, ok := obj.Value().(*Mint)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return m, nil
}

// Put stores m under its own address.
func (b MintBucket) Put(db weave.KVStore, m *Mint) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(m.Address, m))
}

// HoldingBucket stores holdings by address. The "owner" index lists every
// holding of an owner across mints.
type HoldingBucket struct {
	orm.Bucket
}

func NewHoldingBucket() HoldingBucket {
	b := orm.NewBucket(holdingBucketName, orm.NewSimpleObj(nil, new(Holding))).
		WithIndex("owner", idxOwner, false)
	return HoldingBucket{Bucket: b}
}

// Get returns the holding at addr, or nil if there is none.
func (b HoldingBucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Holding, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	return asHolding(obj)
}

// Put stores h under its own address.
func (b HoldingBucket) Put(db weave.KVStore, h *Holding) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(h.Address, h))
}

// ByOwner returns all holdings of owner.
func (b HoldingBucket) ByOwner(db weave.ReadOnlyKVStore, owner weave.Address) ([]*Holding, error) {
	objs, err := b.GetIndexed(db, "owner", owner)
	if err != nil {
		return nil, err
	}
	res := make([]*Holding, 0, len(objs))
	for _, obj := range objs {
		h, err := asHolding(obj)
		if err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, nil
}

func asHolding(obj orm.Object) (*Holding, error) {
	h, ok := obj.Value().(*Holding)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return h, nil
}

func idxOwner(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	h, err := asHolding(obj)
	if err != nil {
		return nil, err
	}
	return h.Owner, nil
}
