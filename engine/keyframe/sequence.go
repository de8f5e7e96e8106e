package keyframe

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-nif/common"
)

// ErrUnsortedKeys is returned when a key list is not ordered by time.
var ErrUnsortedKeys = errors.New("keys are not sorted by time")

// Sequence is an immutable, time-sorted list of keys plus the interpolation
// kind used to blend between them. A single sequence is shared by every
// interpolator and controller clone built from the same parsed data.
type Sequence[T Value] struct {
	interpolation InterpolationType
	keys          []Key[T]
}

// FloatSequence is a track of scalar keys.
type FloatSequence = Sequence[float32]

// Vec3Sequence is a track of vector keys.
type Vec3Sequence = Sequence[common.Vec3]

// QuatSequence is a track of rotation keys.
type QuatSequence = Sequence[common.Quat]

// BoolSequence is a track of on/off keys.
type BoolSequence = Sequence[bool]

// NewSequence validates and copies a key list into an immutable Sequence.
// Times must be non-decreasing; equal times are allowed. TBC keys have their
// Hermite tangents derived here so sampling never recomputes them.
//
// Parameters:
//   - interpolation: the blend rule for the track
//   - keys: the keys in time order
//
// Returns:
//   - *Sequence[T]: the immutable sequence
//   - error: ErrUnsortedKeys if a key precedes its predecessor
func NewSequence[T Value](interpolation InterpolationType, keys []Key[T]) (*Sequence[T], error) {
	for i := 1; i < len(keys); i++ {
		if keys[i].Time < keys[i-1].Time {
			return nil, fmt.Errorf("key %d at %v follows %v: %w", i, keys[i].Time, keys[i-1].Time, ErrUnsortedKeys)
		}
	}

	s := &Sequence[T]{
		interpolation: interpolation,
		keys:          make([]Key[T], len(keys)),
	}
	copy(s.keys, keys)

	if interpolation == InterpolationTBC {
		s.generateTBCTangents()
	}
	return s, nil
}

// generateTBCTangents fills InTan/OutTan from tension, bias and continuity.
// Endpoints reuse themselves as the missing neighbor.
func (s *Sequence[T]) generateTBCTangents() {
	ops := opsFor[T]()
	if !ops.smooth() || len(s.keys) < 2 {
		return
	}
	src := make([]Key[T], len(s.keys))
	copy(src, s.keys)
	for i := range s.keys {
		prev, next := src[i], src[i]
		if i > 0 {
			prev = src[i-1]
		}
		if i+1 < len(src) {
			next = src[i+1]
		}
		cur := &s.keys[i]
		cur.InTan, cur.OutTan = ops.tangents(
			prev.Value, cur.Value, next.Value,
			cur.Time-prev.Time, next.Time-cur.Time,
			cur.Tension, cur.Bias, cur.Continuity,
		)
	}
}

// Len returns the number of keys. A nil sequence has no keys.
func (s *Sequence[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Key returns the i-th key.
func (s *Sequence[T]) Key(i int) Key[T] {
	return s.keys[i]
}

// Interpolation returns the blend rule of the track.
func (s *Sequence[T]) Interpolation() InterpolationType {
	if s == nil {
		return InterpolationUnknown
	}
	return s.interpolation
}

// TimeRange returns the first and last key times. Both are zero for an empty track.
func (s *Sequence[T]) TimeRange() (start, end float32) {
	if s.Len() == 0 {
		return 0, 0
	}
	return s.keys[0].Time, s.keys[len(s.keys)-1].Time
}

// bracket returns the keys surrounding t such that a.Time <= t < b.Time.
// Callers guarantee first.Time < t < last.Time. When several keys share a
// time, the later one is chosen as a.
func (s *Sequence[T]) bracket(t float32) (a, b *Key[T], ok bool) {
	n := len(s.keys)
	j := sort.Search(n, func(i int) bool { return s.keys[i].Time > t })
	if j <= 0 || j >= n {
		return nil, nil, false
	}
	return &s.keys[j-1], &s.keys[j], true
}
