package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow"
)

// Each type is encoded through a local alias that carries the
// proto.Message methods, so gogo walks the struct tags instead of
// calling back into Marshal.

type mintPB Mint
type holdingPB Holding
type configurationPB Configuration
type createMintMsgPB CreateMintMsg
type mintToMsgPB MintToMsg
type createHoldingMsgPB CreateHoldingMsg
type transferMsgPB TransferMsg
type closeHoldingMsgPB CloseHoldingMsg

func (m *mintPB) Reset()         { *m = mintPB{} }
func (m *mintPB) String() string { return proto.CompactTextString(m) }
func (*mintPB) ProtoMessage()    {}

func (m *holdingPB) Reset()         { *m = holdingPB{} }
func (m *holdingPB) String() string { return proto.CompactTextString(m) }
func (*holdingPB) ProtoMessage()    {}

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

func (m *createMintMsgPB) Reset()         { *m = createMintMsgPB{} }
func (m *createMintMsgPB) String() string { return proto.CompactTextString(m) }
func (*createMintMsgPB) ProtoMessage()    {}

func (m *mintToMsgPB) Reset()         { *m = mintToMsgPB{} }
func (m *mintToMsgPB) String() string { return proto.CompactTextString(m) }
func (*mintToMsgPB) ProtoMessage()    {}

func (m *createHoldingMsgPB) Reset()         { *m = createHoldingMsgPB{} }
func (m *createHoldingMsgPB) String() string { return proto.CompactTextString(m) }
func (*createHoldingMsgPB) ProtoMessage()    {}

func (m *transferMsgPB) Reset()         { *m = transferMsgPB{} }
func (m *transferMsgPB) String() string { return proto.CompactTextString(m) }
func (*transferMsgPB) ProtoMessage()    {}

func (m *closeHoldingMsgPB) Reset()         { *m = closeHoldingMsgPB{} }
func (m *closeHoldingMsgPB) String() string { return proto.CompactTextString(m) }
func (*closeHoldingMsgPB) ProtoMessage()    {}

func (m *Mint) Marshal() ([]byte, error) {
	return proto.Marshal((*mintPB)(m))
}

func (m *Mint) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*mintPB)(m))
}

func (m *Holding) Marshal() ([]byte, error) {
	return proto.Marshal((*holdingPB)(m))
}

func (m *Holding) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*holdingPB)(m))
}

func (m *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(m))
}

func (m *Configuration) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*configurationPB)(m))
}

func (m *CreateMintMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createMintMsgPB)(m))
}

func (m *CreateMintMsg) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*createMintMsgPB)(m))
}

func (m *MintToMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*mintToMsgPB)(m))
}

func (m *MintToMsg) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*mintToMsgPB)(m))
}

func (m *CreateHoldingMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createHoldingMsgPB)(m))
}

func (m *CreateHoldingMsg) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*createHoldingMsgPB)(m))
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferMsgPB)(m))
}

func (m *TransferMsg) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*transferMsgPB)(m))
}

func (m *CloseHoldingMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*closeHoldingMsgPB)(m))
}

func (m *CloseHoldingMsg) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*closeHoldingMsgPB)(m))
}
