// Copyright 2018 Aleksandr Demakin. All rights reserved.

// Package mqueue implements a typed wrapper around linux message queues.
// It turns the raw mq descriptor into a move-only Queue handle with
// validated names, bounded message priorities, cached queue attributes
// and a per-operation error taxonomy built from the kernel error codes.
// Several handles, possibly in different processes, may address one named
// queue; a single handle must not be used from several goroutines at once.
package mqueue
