// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// frame is a user-defined contiguous byte container; it must be accepted
// by the generic senders without any adapter code.
type frame []byte

func TestGenericSendShapes(t *testing.T) {
	a := assert.New(t)
	q := makeTestQueue(t, Bidirectional)

	a.NoError(Send(q, []byte("raw slice")))
	a.NoError(Send(q, "plain string"))
	a.NoError(Send(q, frame{0x01, 0x02}))
	a.NoError(SendPriority(q, "important", MustPriority(9)))

	expected := []struct {
		contents string
		prio     Priority
	}{
		{"important", 9},
		{"raw slice", DefaultPriority},
		{"plain string", DefaultPriority},
		{string([]byte{0x01, 0x02}), DefaultPriority},
	}
	for i, want := range expected {
		msg, err := q.Receive()
		if a.NoError(err, "message %d", i) {
			a.Equal(want.contents, string(msg.Contents), "message %d", i)
			a.Equal(want.prio, msg.Priority, "message %d", i)
		}
	}
}

func TestPayloadBytesLength(t *testing.T) {
	a := assert.New(t)
	a.Len(payloadBytes("four"), 4)
	a.Len(payloadBytes([]byte{}), 0)
	a.Len(payloadBytes(frame{1, 2, 3}), 3)
}
