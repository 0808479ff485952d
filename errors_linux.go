// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/joomcode/errorx"
	"golang.org/x/sys/unix"
)

// Namespace holds every error type returned by this package.
var Namespace = errorx.NewNamespace("mqueue")

var (
	// ErrInvalidArgument reports a contract violation caught before any
	// kernel call: a malformed name, an out-of-range priority, a bad
	// config value or invalid creation attributes.
	ErrInvalidArgument = Namespace.NewType("invalid_argument")

	// ErrQueueFull is returned by a non-blocking send on a queue at capacity.
	ErrQueueFull = Namespace.NewType("queue_full", errorx.Temporary())

	// ErrQueueEmpty is returned by a non-blocking receive on an empty queue.
	ErrQueueEmpty = Namespace.NewType("queue_empty", errorx.Temporary())

	// ErrInterrupted is returned when a blocked call is interrupted by a signal.
	ErrInterrupted = Namespace.NewType("interrupted", errorx.Temporary())

	// ErrPermission is returned when the caller may not access the named queue.
	ErrPermission = Namespace.NewType("permission_denied")

	// ErrExists is returned by an exclusive create of an existing queue.
	ErrExists = Namespace.NewType("already_exists", errorx.Duplicate())

	// ErrNotFound is returned when the named queue does not exist.
	ErrNotFound = Namespace.NewType("not_found", errorx.NotFound())

	// ErrBadDescriptor is returned for operations on an invalid descriptor,
	// including sends and receives not permitted by the handle type.
	ErrBadDescriptor = Namespace.NewType("bad_descriptor")

	// ErrMessageTooBig is returned when a message does not fit the queue's
	// maximum message size, or a receive buffer is smaller than that size.
	ErrMessageTooBig = Namespace.NewType("message_too_big")

	// ErrSystemLimit is returned when a system-wide resource is exhausted.
	ErrSystemLimit = Namespace.NewType("system_limit")
)

var (
	// PropertyOperation carries the logical operation which failed,
	// one of "open", "close", "send", "receive", "getattr", "unlink".
	PropertyOperation = errorx.RegisterPrintableProperty("operation")

	// PropertyErrno carries the raw kernel error code.
	PropertyErrno = errorx.RegisterPrintableProperty("errno")
)

type opTag string

const (
	opOpen    opTag = "open"
	opClose   opTag = "close"
	opSend    opTag = "send"
	opReceive opTag = "receive"
	opGetAttr opTag = "getattr"
	opUnlink  opTag = "unlink"
)

type errnoEntry struct {
	typ *errorx.Type
	msg string
}

// errnoTable is the single source of truth for translating a kernel error
// code into a structured error, one sub-table per logical operation.
// Every code the corresponding kernel call can produce must be listed here.
var errnoTable = map[opTag]map[syscall.Errno]errnoEntry{
	opOpen: {
		unix.EACCES: {ErrPermission, "permission to the queue is denied"},
		unix.EEXIST: {ErrExists, "queue already exists"},
		unix.EMFILE: {ErrSystemLimit, "too many open descriptors in the process"},
		unix.ENFILE: {ErrSystemLimit, "too many open descriptors in the system"},
		unix.ENOENT: {ErrNotFound, "no queue with this name"},
		unix.ENOMEM: {ErrSystemLimit, "out of memory"},
		unix.ENOSPC: {ErrSystemLimit, "out of space"},
		unix.EINVAL: {ErrInvalidArgument, "invalid creation attributes"},
	},
	opClose: {
		unix.EBADF: {ErrBadDescriptor, "invalid queue descriptor"},
	},
	opSend: {
		unix.EAGAIN:   {ErrQueueFull, "queue is full"},
		unix.EBADF:    {ErrBadDescriptor, "invalid descriptor or the queue is not open for sending"},
		unix.EINTR:    {ErrInterrupted, "send was interrupted by a signal"},
		unix.EMSGSIZE: {ErrMessageTooBig, "message exceeds the maximum message size"},
	},
	opReceive: {
		unix.EAGAIN:   {ErrQueueEmpty, "queue is empty"},
		unix.EBADF:    {ErrBadDescriptor, "invalid descriptor or the queue is not open for receiving"},
		unix.EINTR:    {ErrInterrupted, "receive was interrupted by a signal"},
		unix.EMSGSIZE: {ErrMessageTooBig, "receive buffer is smaller than the maximum message size"},
	},
	opGetAttr: {
		unix.EBADF:  {ErrBadDescriptor, "invalid queue descriptor"},
		unix.EINVAL: {ErrInvalidArgument, "unsupported attribute flags"},
	},
	opUnlink: {
		unix.EACCES:       {ErrPermission, "permission to remove the queue is denied"},
		unix.ENAMETOOLONG: {ErrNotFound, "queue name is too long"},
		unix.ENOENT:       {ErrNotFound, "no queue with this name"},
	},
}

// opError translates a failed kernel call into a taxonomy error.
// An error carrying no kernel code, or a code with no table entry, is a
// sign of an incomplete taxonomy and panics.
func opError(op opTag, err error) error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		panic(fmt.Sprintf("mqueue: %s failed without a kernel error code: %v", op, err))
	}
	return errnoError(op, errno, err)
}

func errnoError(op opTag, errno syscall.Errno, cause error) error {
	entry, ok := errnoTable[op][errno]
	if !ok {
		panic(fmt.Sprintf("mqueue: no %s mapping for kernel error code %d (%v)", op, int(errno), errno))
	}
	var e *errorx.Error
	if cause != nil {
		e = entry.typ.Wrap(cause, entry.msg)
	} else {
		e = entry.typ.New(entry.msg)
	}
	return e.WithProperty(PropertyOperation, string(op)).WithProperty(PropertyErrno, int(errno))
}

// IsQueueFull reports whether err is a non-blocking send on a full queue.
func IsQueueFull(err error) bool {
	return errorx.IsOfType(err, ErrQueueFull)
}

// IsQueueEmpty reports whether err is a non-blocking receive on an empty queue.
func IsQueueEmpty(err error) bool {
	return errorx.IsOfType(err, ErrQueueEmpty)
}

// IsTemporary reports whether the failed operation may succeed if repeated:
// a full or empty queue, or an interrupted call.
func IsTemporary(err error) bool {
	return errorx.HasTrait(err, errorx.Temporary())
}
