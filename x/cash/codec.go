package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow"
)

// Each type is encoded through a local alias that carries the
// proto.Message methods, so gogo walks the struct tags instead of
// calling back into Marshal.

type setPB Set
type sendMsgPB SendMsg

func (m *setPB) Reset()         { *m = setPB{} }
func (m *setPB) String() string { return proto.CompactTextString(m) }
func (*setPB) ProtoMessage()    {}

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}

func (m *Set) Marshal() ([]byte, error) {
	return proto.Marshal((*setPB)(m))
}

func (m *Set) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*setPB)(m))
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgPB)(m))
}

func (m *SendMsg) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*sendMsgPB)(m))
}
