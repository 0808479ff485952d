// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// DefaultPerm is the permission mask for queues created without an
// explicit one.
const DefaultPerm os.FileMode = 0640

// Type restricts the directions in which a handle may move messages.
// It is a property of the handle, not of the named queue.
type Type int

const (
	// Receiver opens the queue for receiving only.
	Receiver Type = unix.O_RDONLY
	// Sender opens the queue for sending only.
	Sender Type = unix.O_WRONLY
	// Bidirectional opens the queue for both directions.
	Bidirectional Type = unix.O_RDWR
)

func (t Type) String() string {
	switch t {
	case Receiver:
		return "receiver"
	case Sender:
		return "sender"
	case Bidirectional:
		return "bidirectional"
	default:
		return "unknown"
	}
}

// Mode selects between blocking and non-blocking sends and receives.
type Mode int

const (
	// Blocking suspends the caller until the kernel can complete the call.
	Blocking Mode = 0
	// NonBlocking makes a send on a full queue and a receive on an empty
	// queue fail immediately instead of suspending the caller.
	NonBlocking Mode = unix.O_NONBLOCK
)

func (m Mode) String() string {
	if m == NonBlocking {
		return "non_blocking"
	}
	return "blocking"
}

// Creation selects what to do when the named queue does or does not exist.
type Creation int

const (
	// OpenOrCreate attaches to an existing queue or creates a new one.
	OpenOrCreate Creation = iota
	// CreateOnly creates the queue and fails if it already exists.
	CreateOnly
	// OpenOnly attaches to an existing queue and fails if there is none.
	OpenOnly
)

func (c Creation) String() string {
	switch c {
	case CreateOnly:
		return "create_only"
	case OpenOnly:
		return "open_only"
	default:
		return "open_or_create"
	}
}

// Message is one received message. Contents is sized exactly to the
// received length and is owned by the caller.
type Message struct {
	Contents []byte
	Priority Priority
}

// closedMqd marks a handle which no longer owns a descriptor, either
// because it was closed or because it was the source of a Move.
const closedMqd = -1

// Queue is a handle to a named kernel message queue. A Queue owns exactly
// one descriptor; ownership is transferred with Move and released with
// Close. Closing a handle detaches from the queue, it never removes the
// named object from the system; use Unlink or Destroy for that.
//
// A Queue must not be copied. Use Move to transfer it, and do not use one
// handle from several goroutines without external synchronization.
type Queue struct {
	name      string
	typ       Type
	mqd       int
	attrs     attrCache
	inputBuff []byte
	logger    *zap.Logger
}

type openParams struct {
	name         string
	mode         Mode
	typ          Type
	creation     Creation
	perm         os.FileMode
	maxQueueSize int
	maxMsgSize   int
	logger       *zap.Logger
}

// Open attaches to the named queue, creating it with kernel-default
// attributes and DefaultPerm if it does not exist. The name is validated
// before any kernel call. Use a Builder for creation attributes,
// exclusive creation or reset-before-open.
func Open(name string, mode Mode, typ Type) (*Queue, error) {
	return openQueue(openParams{
		name:     name,
		mode:     mode,
		typ:      typ,
		creation: OpenOrCreate,
		perm:     DefaultPerm,
	})
}

// MustOpen is like Open, but panics on failure.
func MustOpen(name string, mode Mode, typ Type) *Queue {
	q, err := Open(name, mode, typ)
	if err != nil {
		panic(err)
	}
	return q
}

func openQueue(p openParams) (*Queue, error) {
	if err := CheckName(p.name); err != nil {
		return nil, err
	}
	if p.perm == 0 {
		p.perm = DefaultPerm
	}
	if p.perm&0111 != 0 {
		return nil, ErrInvalidArgument.New("queue permissions %v must not contain exec bits", p.perm)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	sysflags := int(p.typ) | int(p.mode) | unix.O_CLOEXEC
	switch p.creation {
	case OpenOrCreate:
		sysflags |= unix.O_CREAT
	case CreateOnly:
		sysflags |= unix.O_CREAT | unix.O_EXCL
	case OpenOnly:
	default:
		return nil, ErrInvalidArgument.New("unknown creation disposition %d", int(p.creation))
	}
	var attrs *mqAttr
	if p.maxQueueSize > 0 || p.maxMsgSize > 0 {
		attrs = &mqAttr{Maxmsg: p.maxQueueSize, Msgsize: p.maxMsgSize}
	}
	id, err := mq_open(p.name, sysflags, uint32(p.perm), attrs)
	if err != nil {
		return nil, opError(opOpen, err)
	}
	q := &Queue{
		name:   p.name,
		typ:    p.typ,
		mqd:    id,
		logger: p.logger,
	}
	// One defensive fetch feeds the cache with the fixed attributes.
	if err := q.refreshAttrs(); err != nil {
		mq_close(id)
		return nil, err
	}
	q.inputBuff = make([]byte, q.attrs.msgsize)
	q.logger.Debug("queue opened",
		zap.String("name", q.name),
		zap.Stringer("type", q.typ),
		zap.Stringer("mode", p.mode),
		zap.Int("max_messages", q.attrs.maxmsg),
		zap.Int("max_message_size", q.attrs.msgsize))
	return q, nil
}

// Send sends data with the default priority.
// On a full queue it blocks or, in non-blocking mode, fails with the
// queue-full error.
func (q *Queue) Send(data []byte) error {
	return q.SendPriority(data, DefaultPriority)
}

// SendPriority sends data with the given priority.
func (q *Queue) SendPriority(data []byte, prio Priority) error {
	if prio >= PrioMax {
		return ErrInvalidArgument.New("priority %d is out of range [0, %d)", uint32(prio), PrioMax)
	}
	if q.typ == Receiver {
		return errnoError(opSend, unix.EBADF, nil)
	}
	if err := mq_send(q.mqd, data, int(prio)); err != nil {
		return opError(opSend, err)
	}
	return nil
}

// Receive returns the oldest of the highest-priority messages.
// On an empty queue it blocks or, in non-blocking mode, fails with the
// queue-empty error. The scratch buffer is sized to the queue's maximum
// message size, as the kernel rejects anything smaller; the returned
// contents are copied out at the actual message length.
func (q *Queue) Receive() (Message, error) {
	if q.typ == Sender {
		return Message{}, errnoError(opReceive, unix.EBADF, nil)
	}
	if len(q.inputBuff) < q.attrs.msgsize {
		q.inputBuff = make([]byte, q.attrs.msgsize)
	}
	n, prio, err := mq_receive(q.mqd, q.inputBuff)
	if err != nil {
		return Message{}, opError(opReceive, err)
	}
	contents := make([]byte, n)
	copy(contents, q.inputBuff[:n])
	return Message{Contents: contents, Priority: Priority(prio)}, nil
}

// Clear drains the number of messages observed by one Len snapshot at
// entry. Messages arriving during the drain are left in place, which
// bounds the loop against concurrent senders. The first receive failure
// is reported after the remaining drains complete.
func (q *Queue) Clear() error {
	n, err := q.Len()
	if err != nil {
		return err
	}
	var first error
	for i := 0; i < n; i++ {
		if _, err := q.Receive(); err != nil && first == nil {
			first = err
		}
	}
	q.logger.Debug("queue cleared", zap.String("name", q.name), zap.Int("snapshot", n))
	return first
}

// Len returns the current number of messages in the queue.
func (q *Queue) Len() (int, error) {
	if err := q.refreshAttrs(); err != nil {
		return 0, err
	}
	return q.attrs.curmsgs, nil
}

// Free returns how many more messages the queue can hold. The value is a
// best-effort snapshot: senders and receivers in other processes may
// change it before the caller acts on it. The only authority on "full"
// and "empty" is the error result of Send and Receive themselves.
func (q *Queue) Free() (int, error) {
	n, err := q.Len()
	if err != nil {
		return 0, err
	}
	return q.attrs.maxmsg - n, nil
}

// IsEmpty reports whether the queue currently holds no messages.
func (q *Queue) IsEmpty() (bool, error) {
	n, err := q.Len()
	return n == 0, err
}

// Cap returns the maximum number of messages the queue can hold.
// The value is fixed at queue creation.
func (q *Queue) Cap() int {
	return q.attrs.maxmsg
}

// MaxMessageSize returns the maximum size of a single message in bytes.
// The value is fixed at queue creation.
func (q *Queue) MaxMessageSize() int {
	return q.attrs.msgsize
}

// Mode reports whether the handle currently blocks. The flag is volatile,
// it is re-read from the kernel on every call.
func (q *Queue) Mode() (Mode, error) {
	if err := q.refreshAttrs(); err != nil {
		return Blocking, err
	}
	if q.attrs.nonblock {
		return NonBlocking, nil
	}
	return Blocking, nil
}

// SetBlocking switches the handle between blocking and non-blocking mode.
func (q *Queue) SetBlocking(block bool) error {
	attrs := &mqAttr{}
	if !block {
		attrs.Flags = int(NonBlocking)
	}
	if err := mq_getsetattr(q.mqd, attrs, nil); err != nil {
		return opError(opGetAttr, err)
	}
	return nil
}

// Type returns the handle's direction restriction.
func (q *Queue) Type() Type {
	return q.typ
}

// Name returns the validated queue name.
func (q *Queue) Name() string {
	return q.name
}

// Move transfers ownership of the descriptor and all cached state to a
// new handle. The receiver becomes an empty handle: closing it is a
// no-op, any other use of it is invalid until it is reassigned.
func (q *Queue) Move() *Queue {
	moved := &Queue{
		name:      q.name,
		typ:       q.typ,
		mqd:       q.mqd,
		attrs:     q.attrs,
		inputBuff: q.inputBuff,
		logger:    q.logger,
	}
	*q = Queue{mqd: closedMqd, logger: q.logger}
	return moved
}

// Close releases the descriptor and leaves the handle empty. Closing an
// empty handle is a no-op. The named queue stays in the system.
func (q *Queue) Close() error {
	if q.mqd == closedMqd {
		return nil
	}
	logger, name := q.logger, q.name
	err := mq_close(q.mqd)
	*q = Queue{mqd: closedMqd, logger: logger}
	if err != nil {
		return opError(opClose, err)
	}
	logger.Debug("queue closed", zap.String("name", name))
	return nil
}

// Destroy closes the handle and removes the named queue from the system.
func (q *Queue) Destroy() error {
	name := q.name
	if err := q.Close(); err != nil {
		return err
	}
	return Unlink(name)
}

// Unlink removes the named queue from the system. It does not require an
// open handle. Removing a queue which does not exist fails with the
// not-found error; it is up to the caller to ignore it.
func Unlink(name string) error {
	if err := mq_unlink(name); err != nil {
		return opError(opUnlink, err)
	}
	return nil
}
