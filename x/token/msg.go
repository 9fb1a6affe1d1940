package token

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

var (
	_ weave.Msg = (*CreateMintMsg)(nil)
	_ weave.Msg = (*MintToMsg)(nil)
	_ weave.Msg = (*CreateHoldingMsg)(nil)
	_ weave.Msg = (*TransferMsg)(nil)
	_ weave.Msg = (*CloseHoldingMsg)(nil)
)

// CreateMintMsg registers a new asset. The authority must sign.
type CreateMintMsg struct {
	Authority weave.Address `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority,omitempty"`
	Name      string        `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Decimals  uint32        `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals,omitempty"`
}

func (CreateMintMsg) Path() string {
	return "token/create_mint"
}

func (m *CreateMintMsg) Validate() error {
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if !isMintName(m.Name) {
		return errors.Wrapf(errors.ErrInput, "mint name %q", m.Name)
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals %d", m.Decimals)
	}
	return nil
}

// MintToMsg issues new units into a holding. The mint authority must sign.
type MintToMsg struct {
	Mint        weave.Address `protobuf:"bytes,1,opt,name=mint,proto3" json:"mint,omitempty"`
	Destination weave.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64        `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (MintToMsg) Path() string {
	return "token/mint_to"
}

func (m *MintToMsg) Validate() error {
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// CreateHoldingMsg creates the holding of Owner in Mint. The payer signs and
// pays the deposit. Owner may be any address.
type CreateHoldingMsg struct {
	Payer weave.Address `protobuf:"bytes,1,opt,name=payer,proto3" json:"payer,omitempty"`
	Mint  weave.Address `protobuf:"bytes,2,opt,name=mint,proto3" json:"mint,omitempty"`
	Owner weave.Address `protobuf:"bytes,3,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (CreateHoldingMsg) Path() string {
	return "token/create_holding"
}

func (m *CreateHoldingMsg) Validate() error {
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// TransferMsg moves units between two holdings. The owner of the source
// holding must sign.
type TransferMsg struct {
	Source      weave.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination weave.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64        `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (TransferMsg) Path() string {
	return "token/transfer"
}

func (m *TransferMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// CloseHoldingMsg deletes an empty holding. The owner must sign. The deposit
// goes to Destination.
type CloseHoldingMsg struct {
	Holding     weave.Address `protobuf:"bytes,1,opt,name=holding,proto3" json:"holding,omitempty"`
	Destination weave.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
}

func (CloseHoldingMsg) Path() string {
	return "token/close_holding"
}

func (m *CloseHoldingMsg) Validate() error {
	if err := m.Holding.Validate(); err != nil {
		return errors.Wrap(err, "holding")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}

