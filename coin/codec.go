package coin

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow"
)

// Each type is encoded through a local alias that carries the
// proto.Message methods, so gogo walks the struct tags instead of
// calling back into Marshal.

type coinPB Coin

func (m *coinPB) Reset()         { *m = coinPB{} }
func (m *coinPB) String() string { return proto.CompactTextString(m) }
func (*coinPB) ProtoMessage()    {}

func (m *Coin) Marshal() ([]byte, error) {
	return proto.Marshal((*coinPB)(m))
}

func (m *Coin) Unmarshal(bz []byte) error {
	return weave.UnmarshalProto(bz, (*coinPB)(m))
}
