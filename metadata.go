package weave

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow/errors"
)

// Metadata is carried by persisted models and names the schema version
// their serialized form follows.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version")
	}
	return nil
}

// Copy returns a deep copy, nil safe.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

type metadataPB Metadata

func (m *metadataPB) Reset()         { *m = metadataPB{} }
func (m *metadataPB) String() string { return proto.CompactTextString(m) }
func (*metadataPB) ProtoMessage()    {}

func (m *Metadata) Marshal() ([]byte, error) {
	return proto.Marshal((*metadataPB)(m))
}

func (m *Metadata) Unmarshal(bz []byte) error {
	return UnmarshalProto(bz, (*metadataPB)(m))
}

// UnmarshalProto decodes bz into m. Malformed input is reported as
// errors.ErrInput.
func UnmarshalProto(bz []byte, m proto.Message) error {
	if err := proto.Unmarshal(bz, m); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
