package escrow

import (
	"encoding/binary"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/weavetest/assert"
	"github.com/iov-one/weave-escrow/x/token"
)

func TestDerivedAddresses(t *testing.T) {
	maker := weavetest.NewCondition().Address()
	other := weavetest.NewCondition().Address()
	mint := weavetest.NewCondition().Address()

	// Anyone can recompute the record address from the maker and seed.
	data := append([]byte{}, maker...)
	data = append(data, make([]byte, 8)...)
	binary.LittleEndian.PutUint64(data[len(maker):], 0x0102030405060708)
	want := weave.NewCondition("escrow", "seed", data).Address()
	assert.Equal(t, want, RecordAddress(maker, 0x0102030405060708))
	assert.Equal(t, byte(0x08), data[len(maker)])

	record := RecordAddress(maker, 1)
	assert.Equal(t, record, RecordAddress(maker, 1))
	assert.Nil(t, record.Validate())
	if record.Equals(RecordAddress(maker, 2)) {
		t.Fatal("seeds must not collide")
	}
	if record.Equals(RecordAddress(other, 1)) {
		t.Fatal("makers must not collide")
	}

	vault := VaultAddress(mint, record)
	assert.Equal(t, token.HoldingAddress(mint, record), vault)
	if vault.Equals(record) {
		t.Fatal("vault and record must differ")
	}
}

func TestEscrowValidate(t *testing.T) {
	maker := weavetest.NewCondition().Address()
	mintA := weavetest.NewCondition().Address()
	mintB := weavetest.NewCondition().Address()
	record := RecordAddress(maker, 5)

	valid := func() *Escrow {
		return &Escrow{
			Metadata: &weave.Metadata{Schema: 1},
			Maker:    maker,
			Seed:     5,
			MintA:    mintA,
			MintB:    mintB,
			Receive:  100,
			Vault:    VaultAddress(mintA, record),
			Address:  record,
		}
	}

	cases := map[string]struct {
		mod     func(*Escrow)
		wantErr *errors.Error
	}{
		"valid":            {mod: func(*Escrow) {}},
		"missing metadata": {mod: func(e *Escrow) { e.Metadata = nil }, wantErr: errors.ErrMetadata},
		"zero schema":      {mod: func(e *Escrow) { e.Metadata.Schema = 0 }, wantErr: errors.ErrMetadata},
		"missing maker":    {mod: func(e *Escrow) { e.Maker = nil }, wantErr: errors.ErrEmpty},
		"same mints":       {mod: func(e *Escrow) { e.MintB = mintA }, wantErr: errors.ErrInput},
		"nothing wanted":   {mod: func(e *Escrow) { e.Receive = 0 }, wantErr: errors.ErrAmount},
		"seed changed":     {mod: func(e *Escrow) { e.Seed = 6 }, wantErr: errors.ErrMismatch},
		"foreign vault":    {mod: func(e *Escrow) { e.Vault = VaultAddress(mintB, record) }, wantErr: errors.ErrMismatch},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := valid()
			tc.mod(e)
			if err := e.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestOutcomeIsFinal(t *testing.T) {
	db := store.MemStore()
	b := NewOutcomeBucket()
	addr := RecordAddress(weavetest.NewCondition().Address(), 1)
	taker := weavetest.NewCondition().Address()

	got, err := b.Get(db, addr)
	assert.Nil(t, err)
	assert.Nil(t, got)

	assert.Nil(t, b.Put(db, addr, &Outcome{State: Settled, ClosedBy: taker}))
	err = b.Put(db, addr, &Outcome{State: Cancelled, ClosedBy: taker})
	assert.IsErr(t, errors.ErrImmutable, err)

	got, err = b.Get(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, Settled, got.State)

	err = b.Put(db, RecordAddress(taker, 1), &Outcome{State: Created, ClosedBy: taker})
	assert.IsErr(t, errors.ErrState, err)
}

func TestEscrowWireFormat(t *testing.T) {
	maker := weavetest.NewCondition().Address()
	mintA := weavetest.NewCondition().Address()
	mintB := weavetest.NewCondition().Address()
	record := RecordAddress(maker, 300)
	e := &Escrow{
		Metadata: &weave.Metadata{Schema: 1},
		Maker:    maker,
		Seed:     300,
		MintA:    mintA,
		MintB:    mintB,
		Receive:  2000000,
		Vault:    VaultAddress(mintA, record),
		Address:  record,
	}

	want := proto.NewBuffer(nil)
	bytesField := func(num uint64, b []byte) {
		assert.Nil(t, want.EncodeVarint(num<<3|proto.WireBytes))
		assert.Nil(t, want.EncodeRawBytes(b))
	}
	varintField := func(num, v uint64) {
		assert.Nil(t, want.EncodeVarint(num<<3|proto.WireVarint))
		assert.Nil(t, want.EncodeVarint(v))
	}
	bytesField(1, []byte{0x08, 0x01})
	bytesField(2, maker)
	varintField(3, 300)
	bytesField(4, mintA)
	bytesField(5, mintB)
	varintField(6, 2000000)
	bytesField(7, e.Vault)
	bytesField(8, record)

	raw, err := e.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, want.Bytes(), raw)

	var got Escrow
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, e, &got)
	assert.Nil(t, got.Validate())

	assert.IsErr(t, errors.ErrInput, got.Unmarshal(raw[:len(raw)-3]))
}
