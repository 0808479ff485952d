// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"os"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestErrnoTableWording(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		op    opTag
		errno unix.Errno
		typ   *errorx.Type
		msg   string
	}{
		{opOpen, unix.EACCES, ErrPermission, "permission to the queue is denied"},
		{opOpen, unix.EEXIST, ErrExists, "queue already exists"},
		{opOpen, unix.EMFILE, ErrSystemLimit, "too many open descriptors in the process"},
		{opOpen, unix.ENFILE, ErrSystemLimit, "too many open descriptors in the system"},
		{opOpen, unix.ENOENT, ErrNotFound, "no queue with this name"},
		{opOpen, unix.ENOMEM, ErrSystemLimit, "out of memory"},
		{opOpen, unix.ENOSPC, ErrSystemLimit, "out of space"},
		{opClose, unix.EBADF, ErrBadDescriptor, "invalid queue descriptor"},
		{opSend, unix.EAGAIN, ErrQueueFull, "queue is full"},
		{opSend, unix.EBADF, ErrBadDescriptor, "invalid descriptor or the queue is not open for sending"},
		{opSend, unix.EINTR, ErrInterrupted, "send was interrupted by a signal"},
		{opSend, unix.EMSGSIZE, ErrMessageTooBig, "message exceeds the maximum message size"},
		{opReceive, unix.EAGAIN, ErrQueueEmpty, "queue is empty"},
		{opReceive, unix.EBADF, ErrBadDescriptor, "invalid descriptor or the queue is not open for receiving"},
		{opReceive, unix.EINTR, ErrInterrupted, "receive was interrupted by a signal"},
		{opReceive, unix.EMSGSIZE, ErrMessageTooBig, "receive buffer is smaller than the maximum message size"},
		{opGetAttr, unix.EBADF, ErrBadDescriptor, "invalid queue descriptor"},
		{opGetAttr, unix.EINVAL, ErrInvalidArgument, "unsupported attribute flags"},
		{opUnlink, unix.EACCES, ErrPermission, "permission to remove the queue is denied"},
		{opUnlink, unix.ENAMETOOLONG, ErrNotFound, "queue name is too long"},
		{opUnlink, unix.ENOENT, ErrNotFound, "no queue with this name"},
	}
	for _, test := range tests {
		err := errnoError(test.op, test.errno, nil)
		if !a.Error(err, "%s/%v", test.op, test.errno) {
			continue
		}
		a.True(errorx.IsOfType(err, test.typ), "%s/%v", test.op, test.errno)
		e := errorx.Cast(err)
		if a.NotNil(e) {
			a.Equal(test.msg, e.Message())
			op, ok := e.Property(PropertyOperation)
			a.True(ok)
			a.Equal(string(test.op), op)
			errno, ok := e.Property(PropertyErrno)
			a.True(ok)
			a.Equal(int(test.errno), errno)
		}
	}
}

func TestOpErrorKeepsCause(t *testing.T) {
	a := assert.New(t)
	cause := os.NewSyscallError("MQ_TIMEDSEND", unix.EAGAIN)
	err := opError(opSend, cause)
	a.True(IsQueueFull(err))
	a.True(IsTemporary(err))
	a.ErrorIs(errorx.Cast(err).Cause(), cause)
}

func TestUnmappedErrnoPanics(t *testing.T) {
	a := assert.New(t)
	a.Panics(func() {
		errnoError(opSend, unix.EOVERFLOW, nil)
	})
	a.Panics(func() {
		opError(opOpen, os.NewSyscallError("MQ_OPEN", unix.EOVERFLOW))
	})
	// An error with no kernel code at all is a taxonomy bug as well.
	a.Panics(func() {
		opError(opSend, errorx.IllegalState.New("no errno here"))
	})
}

func TestTemporaryHelpers(t *testing.T) {
	a := assert.New(t)
	a.True(IsQueueFull(errnoError(opSend, unix.EAGAIN, nil)))
	a.False(IsQueueFull(errnoError(opReceive, unix.EAGAIN, nil)))
	a.True(IsQueueEmpty(errnoError(opReceive, unix.EAGAIN, nil)))
	a.True(IsTemporary(errnoError(opSend, unix.EINTR, nil)))
	a.False(IsTemporary(errnoError(opSend, unix.EBADF, nil)))
	a.False(IsQueueFull(nil))
	a.False(IsQueueEmpty(nil))
}
