package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/cash"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/iov-one/weave-escrow/x/sigs"
	"github.com/iov-one/weave-escrow/x/token"
)

// Tx carries exactly one message and the signatures of everyone
// authorizing it. Only one of the message fields may be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures" json:"signatures,omitempty"`

	CashSendMsg           *cash.SendMsg           `protobuf:"bytes,51,opt,name=cash_send_msg,proto3" json:"cash_send_msg,omitempty"`
	TokenCreateMintMsg    *token.CreateMintMsg    `protobuf:"bytes,52,opt,name=token_create_mint_msg,proto3" json:"token_create_mint_msg,omitempty"`
	TokenMintToMsg        *token.MintToMsg        `protobuf:"bytes,53,opt,name=token_mint_to_msg,proto3" json:"token_mint_to_msg,omitempty"`
	TokenCreateHoldingMsg *token.CreateHoldingMsg `protobuf:"bytes,54,opt,name=token_create_holding_msg,proto3" json:"token_create_holding_msg,omitempty"`
	TokenTransferMsg      *token.TransferMsg      `protobuf:"bytes,55,opt,name=token_transfer_msg,proto3" json:"token_transfer_msg,omitempty"`
	TokenCloseHoldingMsg  *token.CloseHoldingMsg  `protobuf:"bytes,56,opt,name=token_close_holding_msg,proto3" json:"token_close_holding_msg,omitempty"`
	EscrowMakeMsg         *escrow.MakeMsg         `protobuf:"bytes,57,opt,name=escrow_make_msg,proto3" json:"escrow_make_msg,omitempty"`
	EscrowTakeMsg         *escrow.TakeMsg         `protobuf:"bytes,58,opt,name=escrow_take_msg,proto3" json:"escrow_take_msg,omitempty"`
	EscrowRefundMsg       *escrow.RefundMsg       `protobuf:"bytes,59,opt,name=escrow_refund_msg,proto3" json:"escrow_refund_msg,omitempty"`
}

var (
	_ weave.Tx      = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

// NewTx returns an unsigned transaction carrying msg.
func NewTx(msg weave.Msg) (*Tx, error) {
	var tx Tx
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.CashSendMsg = m
	case *token.CreateMintMsg:
		tx.TokenCreateMintMsg = m
	case *token.MintToMsg:
		tx.TokenMintToMsg = m
	case *token.CreateHoldingMsg:
		tx.TokenCreateHoldingMsg = m
	case *token.TransferMsg:
		tx.TokenTransferMsg = m
	case *token.CloseHoldingMsg:
		tx.TokenCloseHoldingMsg = m
	case *escrow.MakeMsg:
		tx.EscrowMakeMsg = m
	case *escrow.TakeMsg:
		tx.EscrowTakeMsg = m
	case *escrow.RefundMsg:
		tx.EscrowRefundMsg = m
	default:
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	return &tx, nil
}

// messages returns the set message fields in field order.
func (tx *Tx) messages() []weave.Msg {
	var msgs []weave.Msg
	add := func(set bool, m weave.Msg) {
		if set {
			msgs = append(msgs, m)
		}
	}
	add(tx.CashSendMsg != nil, tx.CashSendMsg)
	add(tx.TokenCreateMintMsg != nil, tx.TokenCreateMintMsg)
	add(tx.TokenMintToMsg != nil, tx.TokenMintToMsg)
	add(tx.TokenCreateHoldingMsg != nil, tx.TokenCreateHoldingMsg)
	add(tx.TokenTransferMsg != nil, tx.TokenTransferMsg)
	add(tx.TokenCloseHoldingMsg != nil, tx.TokenCloseHoldingMsg)
	add(tx.EscrowMakeMsg != nil, tx.EscrowMakeMsg)
	add(tx.EscrowTakeMsg != nil, tx.EscrowTakeMsg)
	add(tx.EscrowRefundMsg != nil, tx.EscrowRefundMsg)
	return msgs
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	msgs := tx.messages()
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "transaction carries no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "transaction carries %d messages", len(msgs))
	}
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the encoding of the transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return unsigned.Marshal()
}

// Sign appends the signature of signer over the transaction.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

type txPB Tx

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(tx))
}

func (tx *Tx) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*txPB)(tx))
}

// DecodeTx is the weave.TxDecoder for Tx.
func DecodeTx(bz []byte) (weave.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return &tx, nil
}
