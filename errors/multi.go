package errors

import (
	"reflect"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// When the result error is tested for its category, the first clubbed
// error determines the outcome, consistent with a fail-fast validation.
func Append(errs ...error) error {
	var result multiError
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiError); ok {
			result = append(result, m...)
		} else {
			result = append(result, err)
		}
	}

	switch len(result) {
	case 0:
		return nil
	case 1:
		return result[0]
	default:
		return result
	}
}

type multiError []error

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Cause returns the first error, consistent with Code.
func (errs multiError) Cause() error {
	if len(errs) == 0 {
		return nil
	}
	if c, ok := errs[0].(causer); ok {
		return c.Cause()
	}
	return errs[0]
}

// Code returns the code of the first error or falls back to the
// internal error code.
func (errs multiError) Code() uint32 {
	if len(errs) == 0 {
		return 0
	}
	if c, ok := errs[0].(coder); ok {
		return c.Code()
	}
	return 1
}

func isNilErr(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if err == nil {
		return true
	}
	if reflect.ValueOf(err).Kind() == reflect.Ptr {
		return reflect.ValueOf(err).IsNil()
	}
	return false
}
