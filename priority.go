// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import "strconv"

const (
	// PrioMax is the exclusive upper bound for message priorities.
	// Linux pins MQ_PRIO_MAX to this value.
	PrioMax Priority = 32768

	// DefaultPriority is used by Send and by default-constructed priorities.
	DefaultPriority Priority = 3
)

// Priority is the priority of a single message. Messages with a higher
// priority are delivered before messages with a lower one. Priorities
// compare as plain unsigned integers.
type Priority uint32

// NewPriority returns a priority for the given value.
// Values outside [0, PrioMax) are rejected with an invalid argument error.
func NewPriority(value uint32) (Priority, error) {
	if value >= uint32(PrioMax) {
		return 0, ErrInvalidArgument.New("priority %d is out of range [0, %d)", value, PrioMax)
	}
	return Priority(value), nil
}

// MustPriority is like NewPriority, but panics on an out-of-range value.
func MustPriority(value uint32) Priority {
	p, err := NewPriority(value)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Priority) String() string {
	return strconv.FormatUint(uint64(p), 10)
}
