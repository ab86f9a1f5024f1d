package errutils

import "emperror.dev/errors"

// As reports whether err (or anything it wraps) is a T, returning the match.
func As[T error](err error) (target T, ok bool) {
	ok = errors.As(err, &target)
	return target, ok
}
