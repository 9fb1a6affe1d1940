package weave

import (
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

type demoMsg struct {
	Seed uint64
	bad  bool
}

func (demoMsg) Path() string               { return "demo/msg" }
func (demoMsg) Marshal() ([]byte, error)   { return nil, nil }
func (*demoMsg) Unmarshal(bz []byte) error { return nil }

func (m demoMsg) Validate() error {
	if m.bad {
		return errors.Wrap(errors.ErrMsg, "bad")
	}
	return nil
}

type otherMsg struct{ demoMsg }

type demoTx struct {
	msg Msg
	err error
}

func (demoTx) Marshal() ([]byte, error)   { return nil, nil }
func (*demoTx) Unmarshal(bz []byte) error { return nil }
func (tx *demoTx) GetMsg() (Msg, error)   { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dst     interface{}
		want    *demoMsg
		wantErr *errors.Error
	}{
		"pointer message": {
			tx:   &demoTx{msg: &demoMsg{Seed: 7}},
			dst:  &demoMsg{},
			want: &demoMsg{Seed: 7},
		},
		"no message": {
			tx:      &demoTx{},
			dst:     &demoMsg{},
			wantErr: errors.ErrMsg,
		},
		"message error is passed on": {
			tx:      &demoTx{err: errors.ErrInput},
			dst:     &demoMsg{},
			wantErr: errors.ErrInput,
		},
		"destination is not a pointer": {
			tx:      &demoTx{msg: &demoMsg{}},
			dst:     demoMsg{},
			wantErr: errors.ErrHuman,
		},
		"destination of another type": {
			tx:      &demoTx{msg: &otherMsg{}},
			dst:     &demoMsg{},
			wantErr: errors.ErrType,
		},
		"invalid message": {
			tx:      &demoTx{msg: &demoMsg{bad: true}},
			dst:     &demoMsg{},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dst)
			assert.IsErr(t, tc.wantErr, err)
			if tc.want != nil {
				assert.Equal(t, tc.want, tc.dst)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo/msg", GetPath(&demoTx{msg: &demoMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&demoTx{}))
	assert.Equal(t, "(missing)", GetPath(&demoTx{err: errors.ErrMsg}))
}
