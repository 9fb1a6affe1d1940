package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow"
)

// Each type is encoded through a local alias that carries the
// proto.Message methods, so gogo walks the struct tags instead of
// calling back into Marshal.

type publicKeyPB PublicKey
type privateKeyPB PrivateKey
type signaturePB Signature

func (m *publicKeyPB) Reset()         { *m = publicKeyPB{} }
func (m *publicKeyPB) String() string { return proto.CompactTextString(m) }
func (*publicKeyPB) ProtoMessage()    {}

func (m *privateKeyPB) Reset()         { *m = privateKeyPB{} }
func (m *privateKeyPB) String() string { return proto.CompactTextString(m) }
func (*privateKeyPB) ProtoMessage()    {}

func (m *signaturePB) Reset()         { *m = signaturePB{} }
func (m *signaturePB) String() string { return proto.CompactTextString(m) }
func (*signaturePB) ProtoMessage()    {}

func (m *PublicKey) Marshal() ([]byte, error) {
	return proto.Marshal((*publicKeyPB)(m))
}

func (m *PublicKey) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*publicKeyPB)(m))
}

func (m *PrivateKey) Marshal() ([]byte, error) {
	return proto.Marshal((*privateKeyPB)(m))
}

func (m *PrivateKey) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*privateKeyPB)(m))
}

func (m *Signature) Marshal() ([]byte, error) {
	return proto.Marshal((*signaturePB)(m))
}

func (m *Signature) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*signaturePB)(m))
}
