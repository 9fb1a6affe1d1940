package weavetest

import "github.com/iov-one/weave-escrow"

// Tx is a transaction carrying a single message. Err, if set, is returned
// by GetMsg.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg is a message routed by RoutePath. ValidErr is returned by Validate.
type Msg struct {
	RoutePath  string
	Serialized []byte
	ValidErr   error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.ValidErr
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return nil
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, nil
}
