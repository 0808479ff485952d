// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
)

func TestNewPriority(t *testing.T) {
	a := assert.New(t)
	for _, value := range []uint32{0, 1, 3, 100, uint32(PrioMax) - 1} {
		p, err := NewPriority(value)
		if a.NoError(err) {
			a.Equal(value, uint32(p))
		}
	}
	for _, value := range []uint32{uint32(PrioMax), uint32(PrioMax) + 1, 1 << 31} {
		_, err := NewPriority(value)
		if a.Error(err) {
			a.True(errorx.IsOfType(err, ErrInvalidArgument))
		}
	}
}

func TestMustPriority(t *testing.T) {
	a := assert.New(t)
	a.Equal(Priority(42), MustPriority(42))
	a.Panics(func() {
		MustPriority(uint32(PrioMax))
	})
}

func TestPriorityOrdering(t *testing.T) {
	a := assert.New(t)
	a.True(MustPriority(0) < MustPriority(1))
	a.True(MustPriority(100) > MustPriority(99))
	a.True(DefaultPriority < PrioMax)
	a.Equal(MustPriority(7), MustPriority(7))
}

func TestPriorityString(t *testing.T) {
	a := assert.New(t)
	a.Equal("3", DefaultPriority.String())
	a.Equal("31337", MustPriority(31337).String())
}
