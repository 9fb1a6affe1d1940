package escrow

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	pathMakeMsg   = "escrow/make"
	pathTakeMsg   = "escrow/take"
	pathRefundMsg = "escrow/refund"
)

var (
	_ weave.Msg = (*MakeMsg)(nil)
	_ weave.Msg = (*TakeMsg)(nil)
	_ weave.Msg = (*RefundMsg)(nil)
)

// MakeMsg opens an escrow offering Amount of MintA for Receive of MintB.
// MakerAtaA, Vault and Escrow may be left empty, in which case the derived
// addresses are used. When set they must match the derived ones.
type MakeMsg struct {
	Maker     weave.Address `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed      uint64        `protobuf:"varint,2,opt,name=seed,proto3" json:"seed,omitempty"`
	Receive   uint64        `protobuf:"varint,3,opt,name=receive,proto3" json:"receive,omitempty"`
	Amount    uint64        `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	MintA     weave.Address `protobuf:"bytes,5,opt,name=mint_a,proto3" json:"mint_a,omitempty"`
	MintB     weave.Address `protobuf:"bytes,6,opt,name=mint_b,proto3" json:"mint_b,omitempty"`
	MakerAtaA weave.Address `protobuf:"bytes,7,opt,name=maker_ata_a,proto3" json:"maker_ata_a,omitempty"`
	Vault     weave.Address `protobuf:"bytes,8,opt,name=vault,proto3" json:"vault,omitempty"`
	Escrow    weave.Address `protobuf:"bytes,9,opt,name=escrow,proto3" json:"escrow,omitempty"`
}

func (MakeMsg) Path() string {
	return pathMakeMsg
}

func (m *MakeMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.MintA.Validate(); err != nil {
		return errors.Wrap(err, "mint a")
	}
	if err := m.MintB.Validate(); err != nil {
		return errors.Wrap(err, "mint b")
	}
	if m.MintA.Equals(m.MintB) {
		return errors.Wrap(errors.ErrInput, "mints must differ")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount")
	}
	if m.Receive == 0 {
		return errors.Wrap(errors.ErrAmount, "receive")
	}
	return validateOptional(map[string]weave.Address{
		"maker ata a": m.MakerAtaA,
		"vault":       m.Vault,
		"escrow":      m.Escrow,
	})
}

// TakeMsg settles the escrow of Maker opened with Seed. The taker pays
// Receive of MintB and gets the vault content.
type TakeMsg struct {
	Taker     weave.Address `protobuf:"bytes,1,opt,name=taker,proto3" json:"taker,omitempty"`
	Maker     weave.Address `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed      uint64        `protobuf:"varint,3,opt,name=seed,proto3" json:"seed,omitempty"`
	MintA     weave.Address `protobuf:"bytes,4,opt,name=mint_a,proto3" json:"mint_a,omitempty"`
	MintB     weave.Address `protobuf:"bytes,5,opt,name=mint_b,proto3" json:"mint_b,omitempty"`
	Escrow    weave.Address `protobuf:"bytes,6,opt,name=escrow,proto3" json:"escrow,omitempty"`
	Vault     weave.Address `protobuf:"bytes,7,opt,name=vault,proto3" json:"vault,omitempty"`
	TakerAtaA weave.Address `protobuf:"bytes,8,opt,name=taker_ata_a,proto3" json:"taker_ata_a,omitempty"`
	TakerAtaB weave.Address `protobuf:"bytes,9,opt,name=taker_ata_b,proto3" json:"taker_ata_b,omitempty"`
	MakerAtaB weave.Address `protobuf:"bytes,10,opt,name=maker_ata_b,proto3" json:"maker_ata_b,omitempty"`
}

func (TakeMsg) Path() string {
	return pathTakeMsg
}

func (m *TakeMsg) Validate() error {
	if err := m.Taker.Validate(); err != nil {
		return errors.Wrap(err, "taker")
	}
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.MintA.Validate(); err != nil {
		return errors.Wrap(err, "mint a")
	}
	if err := m.MintB.Validate(); err != nil {
		return errors.Wrap(err, "mint b")
	}
	return validateOptional(map[string]weave.Address{
		"escrow":      m.Escrow,
		"vault":       m.Vault,
		"taker ata a": m.TakerAtaA,
		"taker ata b": m.TakerAtaB,
		"maker ata b": m.MakerAtaB,
	})
}

// RefundMsg cancels the escrow of Maker opened with Seed and returns the
// vault content to the maker.
type RefundMsg struct {
	Maker     weave.Address `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed      uint64        `protobuf:"varint,2,opt,name=seed,proto3" json:"seed,omitempty"`
	MintA     weave.Address `protobuf:"bytes,3,opt,name=mint_a,proto3" json:"mint_a,omitempty"`
	Escrow    weave.Address `protobuf:"bytes,4,opt,name=escrow,proto3" json:"escrow,omitempty"`
	Vault     weave.Address `protobuf:"bytes,5,opt,name=vault,proto3" json:"vault,omitempty"`
	MakerAtaA weave.Address `protobuf:"bytes,6,opt,name=maker_ata_a,proto3" json:"maker_ata_a,omitempty"`
}

func (RefundMsg) Path() string {
	return pathRefundMsg
}

func (m *RefundMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.MintA.Validate(); err != nil {
		return errors.Wrap(err, "mint a")
	}
	return validateOptional(map[string]weave.Address{
		"escrow":      m.Escrow,
		"vault":       m.Vault,
		"maker ata a": m.MakerAtaA,
	})
}

// validateOptional checks the addresses that were provided. Empty ones are
// filled in by the handler.
func validateOptional(addrs map[string]weave.Address) error {
	for name, a := range addrs {
		if len(a) == 0 {
			continue
		}
		if err := a.Validate(); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}

// pick returns given if set, otherwise derived.
func pick(given, derived weave.Address) weave.Address {
	if len(given) == 0 {
		return derived
	}
	return given
}
