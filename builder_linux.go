// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"os"

	"go.uber.org/zap"
)

// Builder constructs a Queue step by step. Name, Mode and Type must each
// be set exactly once before Build; violating that is a programming error
// and panics. Everything else is optional. Build itself never panics on
// an operational failure, it returns it.
type Builder struct {
	name    string
	nameSet bool
	mode    Mode
	modeSet bool
	typ     Type
	typSet  bool

	creation     Creation
	perm         os.FileMode
	maxQueueSize int
	maxMsgSize   int
	reset        bool
	logger       *zap.Logger
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Name sets the queue name.
func (b *Builder) Name(name string) *Builder {
	if b.nameSet {
		panic("mqueue: builder: name is already set")
	}
	b.name, b.nameSet = name, true
	return b
}

// Mode sets blocking or non-blocking operation.
func (b *Builder) Mode(mode Mode) *Builder {
	if b.modeSet {
		panic("mqueue: builder: mode is already set")
	}
	b.mode, b.modeSet = mode, true
	return b
}

// Type sets the handle's direction restriction.
func (b *Builder) Type(typ Type) *Builder {
	if b.typSet {
		panic("mqueue: builder: type is already set")
	}
	b.typ, b.typSet = typ, true
	return b
}

// Creation sets the creation disposition. The default is OpenOrCreate.
func (b *Builder) Creation(c Creation) *Builder {
	b.creation = c
	return b
}

// Perm sets the permission mask for a created queue. The default is
// DefaultPerm. Exec bits are rejected at Build.
func (b *Builder) Perm(perm os.FileMode) *Builder {
	b.perm = perm
	return b
}

// Capacity sets the maximum number of messages for a created queue.
// Zero keeps the kernel default.
func (b *Builder) Capacity(maxQueueSize int) *Builder {
	b.maxQueueSize = maxQueueSize
	return b
}

// MaxMessageSize sets the maximum message size for a created queue.
// Zero keeps the kernel default.
func (b *Builder) MaxMessageSize(maxMsgSize int) *Builder {
	b.maxMsgSize = maxMsgSize
	return b
}

// Reset makes Build unlink the named queue before opening it, so the
// queue is created fresh. The unlink failure, including not-found when
// there is nothing to remove, is propagated, not swallowed.
func (b *Builder) Reset(reset bool) *Builder {
	b.reset = reset
	return b
}

// Logger sets the logger for the built queue. The default is a nop logger.
func (b *Builder) Logger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// Build opens the queue described by the builder.
func (b *Builder) Build() (*Queue, error) {
	if !b.nameSet {
		panic("mqueue: builder: name is not set")
	}
	if !b.modeSet {
		panic("mqueue: builder: mode is not set")
	}
	if !b.typSet {
		panic("mqueue: builder: type is not set")
	}
	if b.reset {
		if err := Unlink(b.name); err != nil {
			return nil, err
		}
	}
	return openQueue(openParams{
		name:         b.name,
		mode:         b.mode,
		typ:          b.typ,
		creation:     b.creation,
		perm:         b.perm,
		maxQueueSize: b.maxQueueSize,
		maxMsgSize:   b.maxMsgSize,
		logger:       b.logger,
	})
}
