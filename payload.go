// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

// Bytes is the closed set of payload shapes accepted by the generic send
// helpers: any contiguous byte container and any length-carrying string.
// The check is done by the compiler, there is no runtime dispatch.
type Bytes interface {
	~[]byte | ~string
}

// payloadBytes is the single conversion point between an accepted payload
// shape and the byte slice handed to the kernel.
func payloadBytes[B Bytes](msg B) []byte {
	return []byte(msg)
}

// Send sends any accepted payload with the default priority.
func Send[B Bytes](q *Queue, msg B) error {
	return q.Send(payloadBytes(msg))
}

// SendPriority sends any accepted payload with the given priority.
func SendPriority[B Bytes](q *Queue, msg B, prio Priority) error {
	return q.SendPriority(payloadBytes(msg), prio)
}
