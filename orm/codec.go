package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow"
)

// Each type is encoded through a local alias that carries the
// proto.Message methods, so gogo walks the struct tags instead of
// calling back into Marshal.

type multiRefPB MultiRef

func (m *multiRefPB) Reset()         { *m = multiRefPB{} }
func (m *multiRefPB) String() string { return proto.CompactTextString(m) }
func (*multiRefPB) ProtoMessage()    {}

func (m *MultiRef) Marshal() ([]byte, error) {
	return proto.Marshal((*multiRefPB)(m))
}

func (m *MultiRef) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*multiRefPB)(m))
}
