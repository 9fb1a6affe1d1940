package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow"
)

// Each type is encoded through a local alias that carries the
// proto.Message methods, so gogo walks the struct tags instead of
// calling back into Marshal.

type escrowPB Escrow
type outcomePB Outcome
type configurationPB Configuration
type makeMsgPB MakeMsg
type takeMsgPB TakeMsg
type refundMsgPB RefundMsg

func (m *escrowPB) Reset()         { *m = escrowPB{} }
func (m *escrowPB) String() string { return proto.CompactTextString(m) }
func (*escrowPB) ProtoMessage()    {}

func (m *outcomePB) Reset()         { *m = outcomePB{} }
func (m *outcomePB) String() string { return proto.CompactTextString(m) }
func (*outcomePB) ProtoMessage()    {}

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

func (m *makeMsgPB) Reset()         { *m = makeMsgPB{} }
func (m *makeMsgPB) String() string { return proto.CompactTextString(m) }
func (*makeMsgPB) ProtoMessage()    {}

func (m *takeMsgPB) Reset()         { *m = takeMsgPB{} }
func (m *takeMsgPB) String() string { return proto.CompactTextString(m) }
func (*takeMsgPB) ProtoMessage()    {}

func (m *refundMsgPB) Reset()         { *m = refundMsgPB{} }
func (m *refundMsgPB) String() string { return proto.CompactTextString(m) }
func (*refundMsgPB) ProtoMessage()    {}

func (m *Escrow) Marshal() ([]byte, error) {
	return proto.Marshal((*escrowPB)(m))
}

func (m *Escrow) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*escrowPB)(m))
}

func (m *Outcome) Marshal() ([]byte, error) {
	return proto.Marshal((*outcomePB)(m))
}

func (m *Outcome) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*outcomePB)(m))
}

func (m *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(m))
}

func (m *Configuration) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*configurationPB)(m))
}

func (m *MakeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*makeMsgPB)(m))
}

func (m *MakeMsg) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*makeMsgPB)(m))
}

func (m *TakeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*takeMsgPB)(m))
}

func (m *TakeMsg) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*takeMsgPB)(m))
}

func (m *RefundMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*refundMsgPB)(m))
}

func (m *RefundMsg) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*refundMsgPB)(m))
}
