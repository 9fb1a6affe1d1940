package assert

import (
	"testing"

	"github.com/iov-one/weave-escrow/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant: errors.ErrEmpty,
			ErrGot:  errors.ErrEmpty,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant: nil,
			ErrGot:  nil,
		},
		"wrapped": {
			ErrWant: errors.ErrMismatch,
			ErrGot:  errors.Wrap(errors.ErrMismatch, "vault"),
		},
		"different code": {
			ErrWant:  errors.ErrAmount,
			ErrGot:   errors.Wrap(errors.ErrNotFound, "holding"),
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilPtr *int
	cases := map[string]struct {
		Value    interface{}
		WantFail bool
	}{
		"nil":         {Value: nil},
		"nil pointer": {Value: nilPtr},
		"zero int":    {Value: 0, WantFail: true},
		"error":       {Value: errors.ErrEmpty, WantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Nil(mock, tc.Value)
			if failed := mock.failcalls > 0; failed != tc.WantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Helper() {}

func (t *tmock) Fatal(args ...interface{}) {
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.failcalls++
}
