// SPDX-License-Identifier: MIT
// Package amphibole: sentinel errors.

package amphibole

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDeltaNNO indicates P_Kraw2012 was requested without WithDeltaNNO.
	ErrMissingDeltaNNO = errors.New("amphibole: P_Kraw2012 requires deltaNNO")

	// ErrUnsupportedCoupling indicates a pressure ID that cannot take part in a
	// coupled P–T solve on this path (e.g. P_Kraw2012, which is PH2O only).
	ErrUnsupportedCoupling = errors.New("amphibole: equation cannot be coupled")

	// ErrUnknownMeltMethod indicates a method other than MeltRidolfi2021 or MeltZhang2017.
	ErrUnknownMeltMethod = errors.New("amphibole: unknown melt method")
)

func amphiboleErrorf(tag string, err error) error {
	return fmt.Errorf("amphibole.%s: %w", tag, err)
}
