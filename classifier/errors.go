// SPDX-License-Identifier: MIT
// Package classifier: sentinel errors.

package classifier

import "errors"

var (
	// ErrLengthMismatch indicates candidate or quality vectors of unequal length.
	ErrLengthMismatch = errors.New("classifier: length mismatch")

	// ErrEmptyInput indicates zero samples.
	ErrEmptyInput = errors.New("classifier: empty input")
)
