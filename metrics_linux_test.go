// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorGauges(t *testing.T) {
	a := assert.New(t)
	q := makeTestQueue(t, Bidirectional)
	a.NoError(q.Send([]byte("one")))

	expected := fmt.Sprintf(`
# HELP mqueue_max_message_size_bytes Maximum size of a single message
# TYPE mqueue_max_message_size_bytes gauge
mqueue_max_message_size_bytes{queue=%[1]q} %[3]d
# HELP mqueue_max_messages Maximum number of messages the queue can hold
# TYPE mqueue_max_messages gauge
mqueue_max_messages{queue=%[1]q} %[2]d
# HELP mqueue_messages Number of messages currently in the queue
# TYPE mqueue_messages gauge
mqueue_messages{queue=%[1]q} 1
# HELP mqueue_messages_free Number of additional messages the queue can hold
# TYPE mqueue_messages_free gauge
mqueue_messages_free{queue=%[1]q} %[4]d
`, q.Name(), testCapacity, testMsgSize, testCapacity-1)

	a.NoError(testutil.CollectAndCompare(NewCollector(q), strings.NewReader(expected)))
}

func TestCollectorTracksVolatileFields(t *testing.T) {
	a := assert.New(t)
	q := makeTestQueue(t, Bidirectional)
	c := NewCollector(q)

	a.Equal(4, testutil.CollectAndCount(c))
	a.NoError(q.Send(nil))
	a.NoError(q.Send(nil))
	depth := `
# HELP mqueue_messages Number of messages currently in the queue
# TYPE mqueue_messages gauge
mqueue_messages{queue=%q} %d
`
	a.NoError(testutil.CollectAndCompare(c,
		strings.NewReader(fmt.Sprintf(depth, q.Name(), 2)), "mqueue_messages"))
	a.NoError(q.Clear())
	a.NoError(testutil.CollectAndCompare(c,
		strings.NewReader(fmt.Sprintf(depth, q.Name(), 0)), "mqueue_messages"))
}
