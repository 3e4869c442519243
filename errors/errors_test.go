package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := fmt.Errorf("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root *Error
	}{
		"Wrap (multiple levels) does not lose the root": {
			err:  Wrap(Wrap(ErrNotFound, "wrapped"), "wrapped again"),
			root: ErrNotFound,
		},
		"Wrapf carries the root": {
			err:  Wrapf(ErrUnauthorized, "login %q", "alice"),
			root: ErrUnauthorized,
		},
		"New creates an instance of its root": {
			err:  ErrState.New("owner mismatch"),
			root: ErrState,
		},
		"stdlib error has no root": {
			err:  std,
			root: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if tc.root == nil {
				for _, root := range usedCodes {
					if root != nil && root.Is(tc.err) {
						t.Fatalf("stdlib error matched root %v", root)
					}
				}
				return
			}
			if !tc.root.Is(tc.err) {
				t.Fatalf("error does not match its root: %+v", tc.err)
			}
			if ErrPanic.Is(tc.err) {
				t.Fatal("error must not match an unrelated root")
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "description"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
	if err := Wrapf(nil, "description %d", 42); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}

func TestWrappedCode(t *testing.T) {
	err := Wrap(Wrap(ErrInput, "inner"), "outer")
	c, ok := err.(interface{ Code() uint32 })
	if !ok {
		t.Fatal("wrapped error does not carry a code")
	}
	if got, want := c.Code(), ErrInput.Code(); got != want {
		t.Fatalf("want code %d, got %d", want, got)
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(Wrap(Wrap(ErrEmpty, "a"), "b"), "c")
	var traced int
	for e := err; e != nil; {
		if _, ok := e.(interface{ StackTrace() errors.StackTrace }); ok {
			traced++
		}
		if c, ok := e.(causer); ok {
			e = c.Cause()
		} else {
			break
		}
	}
	if traced != 1 {
		t.Fatalf("want exactly one stack trace, got %d", traced)
	}
}

func TestRegisterDuplicateCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("reusing an error code must panic")
		}
	}()
	Register(2, "duplicate of unauthorized")
}

func TestAppend(t *testing.T) {
	cases := map[string]struct {
		errs     []error
		wantNil  bool
		wantRoot *Error
	}{
		"all nils flatten to nil": {
			errs:    []error{nil, nil},
			wantNil: true,
		},
		"single error is returned unchanged": {
			errs:     []error{ErrInput.New("bad field")},
			wantRoot: ErrInput,
		},
		"first error decides the category": {
			errs:     []error{nil, ErrState.New("one"), ErrInput.New("two")},
			wantRoot: ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Append(tc.errs...)
			if tc.wantNil {
				if err != nil {
					t.Fatalf("want nil, got %+v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("want an error, got nil")
			}
			if !tc.wantRoot.Is(err) {
				t.Fatalf("unexpected error category: %+v", err)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("oh no")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
}
