package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow"
)

// Each type is encoded through a local alias that carries the
// proto.Message methods, so gogo walks the struct tags instead of
// calling back into Marshal.

type userDataPB UserData
type stdSignaturePB StdSignature

func (m *userDataPB) Reset()         { *m = userDataPB{} }
func (m *userDataPB) String() string { return proto.CompactTextString(m) }
func (*userDataPB) ProtoMessage()    {}

func (m *stdSignaturePB) Reset()         { *m = stdSignaturePB{} }
func (m *stdSignaturePB) String() string { return proto.CompactTextString(m) }
func (*stdSignaturePB) ProtoMessage()    {}

func (m *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataPB)(m))
}

func (m *UserData) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*userDataPB)(m))
}

func (m *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignaturePB)(m))
}

func (m *StdSignature) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*stdSignaturePB)(m))
}
