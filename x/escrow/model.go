package escrow

import (
	"encoding/binary"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
	"github.com/iov-one/weave-escrow/x/token"
)

const (
	bucketName        = "escrow"
	outcomeBucketName = "escrowout"
)

// RecordCondition is the condition the address of the escrow of maker
// opened with seed is derived from.
func RecordCondition(maker weave.Address, seed uint64) weave.Condition {
	data := make([]byte, len(maker)+8)
	copy(data, maker)
	binary.LittleEndian.PutUint64(data[len(maker):], seed)
	return weave.NewCondition("escrow", "seed", data)
}

// RecordAddress returns the address of the escrow of maker opened with
// seed.
func RecordAddress(maker weave.Address, seed uint64) weave.Address {
	return RecordCondition(maker, seed).Address()
}

// VaultAddress returns the address of the holding of mintA owned by the
// escrow record.
func VaultAddress(mintA, record weave.Address) weave.Address {
	return token.HoldingAddress(mintA, record)
}

// Escrow is an open offer of the vault content for Receive units of MintB.
type Escrow struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Maker    weave.Address   `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker"`
	Seed     uint64          `protobuf:"varint,3,opt,name=seed,proto3" json:"seed"`
	MintA    weave.Address   `protobuf:"bytes,4,opt,name=mint_a,proto3" json:"mint_a"`
	MintB    weave.Address   `protobuf:"bytes,5,opt,name=mint_b,proto3" json:"mint_b"`
	Receive  uint64          `protobuf:"varint,6,opt,name=receive,proto3" json:"receive"`
	Vault    weave.Address   `protobuf:"bytes,7,opt,name=vault,proto3" json:"vault"`
	Address  weave.Address   `protobuf:"bytes,8,opt,name=address,proto3" json:"address"`
}

var _ orm.CloneableData = (*Escrow)(nil)

// Validate ensures the escrow is well formed and that the record and vault
// addresses are the derived ones.
func (e *Escrow) Validate() error {
	if err := e.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := e.MintA.Validate(); err != nil {
		return errors.Wrap(err, "mint a")
	}
	if err := e.MintB.Validate(); err != nil {
		return errors.Wrap(err, "mint b")
	}
	if e.MintA.Equals(e.MintB) {
		return errors.Wrap(errors.ErrInput, "mints must differ")
	}
	if e.Receive == 0 {
		return errors.Wrap(errors.ErrAmount, "receive")
	}
	if !e.Address.Equals(RecordAddress(e.Maker, e.Seed)) {
		return errors.Wrap(errors.ErrMismatch, "address not derived from maker and seed")
	}
	if !e.Vault.Equals(VaultAddress(e.MintA, e.Address)) {
		return errors.Wrap(errors.ErrMismatch, "vault not derived from mint a and address")
	}
	return nil
}

func (e *Escrow) Copy() orm.CloneableData {
	return &Escrow{
		Metadata: e.Metadata.Copy(),
		Maker:    e.Maker.Clone(),
		Seed:     e.Seed,
		MintA:    e.MintA.Clone(),
		MintB:    e.MintB.Clone(),
		Receive:  e.Receive,
		Vault:    e.Vault.Clone(),
		Address:  e.Address.Clone(),
	}
}

// State is the lifecycle position of an escrow.
type State int32

const (
	// NotFound is reported for addresses that never held an escrow.
	NotFound State = iota
	Created
	Settled
	Cancelled
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Settled:
		return "settled"
	case Cancelled:
		return "cancelled"
	default:
		return "not found"
	}
}

// Outcome records how a closed escrow ended.
type Outcome struct {
	State    State         `protobuf:"varint,1,opt,name=state,proto3" json:"state"`
	ClosedBy weave.Address `protobuf:"bytes,2,opt,name=closed_by,proto3" json:"closed_by"`
}

var _ orm.CloneableData = (*Outcome)(nil)

func (o *Outcome) Validate() error {
	if o.State != Settled && o.State != Cancelled {
		return errors.Wrapf(errors.ErrState, "outcome state %s", o.State)
	}
	if err := o.ClosedBy.Validate(); err != nil {
		return errors.Wrap(err, "closed by")
	}
	return nil
}

func (o *Outcome) Copy() orm.CloneableData {
	return &Outcome{State: o.State, ClosedBy: o.ClosedBy.Clone()}
}

// Bucket stores open escrows by record address. The "maker" index lists
// the open escrows of a maker.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	b := orm.NewBucket(bucketName, orm.NewSimpleObj(nil, new(Escrow))).
		WithIndex("maker", idxMaker, false)
	return Bucket{Bucket: b}
}

// Get returns the open escrow at addr, or nil.
func (b Bucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Escrow, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	return asEscrow(obj)
}

// Put stores the escrow under its own address.
func (b Bucket) Put(db weave.KVStore, e *Escrow) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(e.Address, e))
}

// ByMaker returns the open escrows of maker, ordered by record address.
func (b Bucket) ByMaker(db weave.ReadOnlyKVStore, maker weave.Address) ([]*Escrow, error) {
	objs, err := b.GetIndexed(db, "maker", maker)
	if err != nil {
		return nil, err
	}
	res := make([]*Escrow, 0, len(objs))
	for _, obj := range objs {
		e, err := asEscrow(obj)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, nil
}

func asEscrow(obj orm.Object) (*Escrow, error) {
	e, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return e, nil
}

func idxMaker(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	e, err := asEscrow(obj)
	if err != nil {
		return nil, err
	}
	return e.Maker, nil
}

// OutcomeBucket stores the outcome of closed escrows by record address.
type OutcomeBucket struct {
	orm.Bucket
}

func NewOutcomeBucket() OutcomeBucket {
	return OutcomeBucket{
		Bucket: orm.NewBucket(outcomeBucketName, orm.NewSimpleObj(nil, new(Outcome))),
	}
}

// Get returns the outcome at addr, or nil.
func (b OutcomeBucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Outcome, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	o, ok := obj.Value().(*Outcome)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return o, nil
}

// Put stores the outcome of the escrow at addr. Outcomes are final.
func (b OutcomeBucket) Put(db weave.KVStore, addr weave.Address, o *Outcome) error {
	switch ok, err := b.Has(db, addr); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrImmutable, "outcome of %s", addr)
	}
	return b.Bucket.Save(db, orm.NewSimpleObj(addr, o))
}
