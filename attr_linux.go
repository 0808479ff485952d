// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

// attrCache keeps the last attributes reported by the kernel for one handle.
// maxmsg and msgsize are set at queue creation and never change afterwards,
// so they are fetched once, when the queue is opened. curmsgs and nonblock
// change behind the handle's back and must be refreshed before each read
// which depends on them.
type attrCache struct {
	maxmsg   int
	msgsize  int
	curmsgs  int
	nonblock bool
}

func (c *attrCache) update(raw *mqAttr) {
	c.maxmsg = raw.Maxmsg
	c.msgsize = raw.Msgsize
	c.curmsgs = raw.Curmsgs
	c.nonblock = raw.Flags&int(NonBlocking) != 0
}

// refreshAttrs re-fetches all queue attributes from the kernel.
func (q *Queue) refreshAttrs() error {
	var raw mqAttr
	if err := mq_getsetattr(q.mqd, nil, &raw); err != nil {
		return opError(opGetAttr, err)
	}
	q.attrs.update(&raw)
	return nil
}
