// Package nif holds the parsed NetImmerse record graph that controller
// constructors consume. Records are plain data: they are produced once by a
// loader, validated, and then only read.
package nif

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingData is returned when a record lacks a block it cannot work without.
	ErrMissingData = errors.New("missing data block")

	// ErrMorphCountMismatch is returned when a morpher drives more morph targets than its geometry has.
	ErrMorphCountMismatch = errors.New("morph count mismatch")

	// ErrRecordTypeMismatch is returned when an interpolator block is not of the expected record type.
	ErrRecordTypeMismatch = errors.New("interpolator record type mismatch")
)

// RecordType tags the runtime kind of an interpolator block.
type RecordType int

const (
	RecordUnknown RecordType = iota
	RecordFloatInterpolator
	RecordPoint3Interpolator
	RecordBoolInterpolator
	RecordTransformInterpolator
)

// String returns the NIF block name for the record type.
func (r RecordType) String() string {
	switch r {
	case RecordFloatInterpolator:
		return "NiFloatInterpolator"
	case RecordPoint3Interpolator:
		return "NiPoint3Interpolator"
	case RecordBoolInterpolator:
		return "NiBoolInterpolator"
	case RecordTransformInterpolator:
		return "NiTransformInterpolator"
	default:
		return fmt.Sprintf("RecordType(%d)", int(r))
	}
}

// ExtrapolationMode selects how a controller maps times outside its active window.
type ExtrapolationMode uint16

const (
	ExtrapolationCycle    ExtrapolationMode = 0
	ExtrapolationReverse  ExtrapolationMode = 1
	ExtrapolationConstant ExtrapolationMode = 2
)

// String returns the lower-case name of the mode.
func (m ExtrapolationMode) String() string {
	switch m {
	case ExtrapolationCycle:
		return "cycle"
	case ExtrapolationReverse:
		return "reverse"
	case ExtrapolationConstant:
		return "constant"
	default:
		return fmt.Sprintf("extrapolation(%d)", uint16(m))
	}
}

const (
	// FlagExtrapolationMask selects the extrapolation bits of Controller.Flags.
	FlagExtrapolationMask uint16 = 0x6
	// FlagActive marks a controller that should be attached at load.
	FlagActive uint16 = 0x8
)

// Controller is the timing header shared by every controller record.
type Controller struct {
	Frequency float32
	Phase     float32
	TimeStart float32
	TimeStop  float32
	Flags     uint16
}

// ExtrapolationMode decodes the extrapolation bits of the flags.
// Unknown values decode as constant.
func (c Controller) ExtrapolationMode() ExtrapolationMode {
	m := ExtrapolationMode((c.Flags & FlagExtrapolationMask) >> 1)
	if m > ExtrapolationConstant {
		return ExtrapolationConstant
	}
	return m
}

// Active reports whether the active flag is set.
func (c Controller) Active() bool {
	return c.Flags&FlagActive != 0
}

// Base returns the timing header.
func (c *Controller) Base() *Controller {
	return c
}

// Record is implemented by every controller record.
type Record interface {
	// Base returns the shared timing header.
	Base() *Controller

	// Validate checks the record for inconsistencies a constructor cannot recover from.
	Validate() error
}

// NewFlags packs an extrapolation mode and the active bit into controller flags.
//
// Parameters:
//   - mode: the extrapolation mode
//   - active: whether the controller is active
//
// Returns:
//   - uint16: the packed flags
func NewFlags(mode ExtrapolationMode, active bool) uint16 {
	f := (uint16(mode) << 1) & FlagExtrapolationMask
	if active {
		f |= FlagActive
	}
	return f
}

// ExpectInterpolator checks that an interpolator block, when present, carries the wanted record type.
// A nil block is not an error.
func ExpectInterpolator(interp Interpolator, want RecordType) error {
	if interp == nil {
		return nil
	}
	if got := interp.RecordType(); got != want {
		return errors.Wrapf(ErrRecordTypeMismatch, "got %s, want %s", got, want)
	}
	return nil
}
