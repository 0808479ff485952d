// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"os"
	"syscall"
	"unsafe"

	"bitbucket.org/avd/go-mqueue/internal/allocator"

	"golang.org/x/sys/unix"
)

// mqAttr mirrors the kernel's mq_attr structure. getattr copies the whole
// structure back, including the reserved longs, so they must be present.
type mqAttr struct {
	Flags    int /* 0 or O_NONBLOCK */
	Maxmsg   int /* max # of messages on queue */
	Msgsize  int /* max message size in bytes */
	Curmsgs  int /* # of messages currently in queue */
	reserved [4]int
}

func mq_open(name string, flags int, mode uint32, attrs *mqAttr) (int, error) {
	nameBytes, err := syscall.BytePtrFromString(name)
	if err != nil {
		return -1, err
	}
	bytes := unsafe.Pointer(nameBytes)
	attrsP := unsafe.Pointer(attrs)
	id, _, errno := syscall.Syscall6(unix.SYS_MQ_OPEN,
		uintptr(bytes),
		uintptr(flags),
		uintptr(mode),
		uintptr(attrsP),
		0,
		0)
	allocator.Use(bytes)
	allocator.Use(attrsP)
	if errno != syscall.Errno(0) {
		return -1, os.NewSyscallError("MQ_OPEN", errno)
	}
	return int(id), nil
}

func mq_close(id int) error {
	if err := unix.Close(id); err != nil {
		return os.NewSyscallError("CLOSE", err)
	}
	return nil
}

// mq_send blocks until the message is stored, unless the descriptor is
// non-blocking; the nil timeout makes the kernel wait indefinitely.
func mq_send(id int, data []byte, prio int) error {
	rawData := allocator.ByteSliceData(data)
	_, _, errno := syscall.Syscall6(unix.SYS_MQ_TIMEDSEND,
		uintptr(id),
		uintptr(rawData),
		uintptr(len(data)),
		uintptr(prio),
		0,
		0)
	allocator.Use(rawData)
	if errno != syscall.Errno(0) {
		return os.NewSyscallError("MQ_TIMEDSEND", errno)
	}
	return nil
}

// mq_receive stores the oldest of the highest-priority messages into data
// and returns its length and priority.
func mq_receive(id int, data []byte) (int, int, error) {
	var prio int
	rawData := allocator.ByteSliceData(data)
	prioP := unsafe.Pointer(&prio)
	n, _, errno := syscall.Syscall6(unix.SYS_MQ_TIMEDRECEIVE,
		uintptr(id),
		uintptr(rawData),
		uintptr(len(data)),
		uintptr(prioP),
		0,
		0)
	allocator.Use(rawData)
	allocator.Use(prioP)
	if errno != syscall.Errno(0) {
		return 0, 0, os.NewSyscallError("MQ_TIMEDRECEIVE", errno)
	}
	return int(n), prio, nil
}

// mq_getsetattr sets the queue flags from attrs if it is non-nil, and
// stores the current attributes into oldAttrs if it is non-nil.
func mq_getsetattr(id int, attrs, oldAttrs *mqAttr) error {
	attrsP := unsafe.Pointer(attrs)
	oldAttrsP := unsafe.Pointer(oldAttrs)
	_, _, errno := syscall.Syscall(unix.SYS_MQ_GETSETATTR,
		uintptr(id),
		uintptr(attrsP),
		uintptr(oldAttrsP))
	allocator.Use(attrsP)
	allocator.Use(oldAttrsP)
	if errno != syscall.Errno(0) {
		return os.NewSyscallError("MQ_GETSETATTR", errno)
	}
	return nil
}

func mq_unlink(name string) error {
	nameBytes, err := syscall.BytePtrFromString(name)
	if err != nil {
		return err
	}
	bytes := unsafe.Pointer(nameBytes)
	_, _, errno := syscall.Syscall(unix.SYS_MQ_UNLINK, uintptr(bytes), 0, 0)
	allocator.Use(bytes)
	if errno != syscall.Errno(0) {
		return os.NewSyscallError("MQ_UNLINK", errno)
	}
	return nil
}
