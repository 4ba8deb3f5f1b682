package chuffman

import "errors"

var (
	// ErrSentinelRange is returned when a Model's Sentinel() is outside
	// the range this decoder surface supports.
	ErrSentinelRange = errors.New("chuffman: sentinel out of range")

	// ErrMalformedModel is returned when a Model's PrefixTable does not
	// tile [0, 1<<S) the way a valid canonical code must: missing the
	// key 0, keys out of order, an empty ownership interval, or a code
	// length outside [1, S].
	ErrMalformedModel = errors.New("chuffman: malformed model")

	// ErrShortSource is returned by NewIterator when the byte source
	// could not supply enough bytes to prime the buffer and still
	// plausibly honor goal.
	ErrShortSource = errors.New("chuffman: source exhausted before priming buffer")

	// ErrTruncated is returned when the byte source is exhausted and the
	// bits remaining in the decoder's registers are not backed by enough
	// real input to honor the remaining goal.
	ErrTruncated = errors.New("chuffman: truncated input")
)
