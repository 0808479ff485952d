// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

// NameMax is the exclusive upper bound for the length of a queue name.
const NameMax = 255

// CheckName validates a queue name without touching the kernel.
// A valid name is an ascii string of the form "/somename": exactly one
// slash at the beginning, no other slashes, total length in [2, NameMax).
func CheckName(name string) error {
	if len(name) < 2 {
		return ErrInvalidArgument.New("queue name %q is too short", name)
	}
	if len(name) >= NameMax {
		return ErrInvalidArgument.New("queue name of %d bytes exceeds the limit of %d", len(name), NameMax-1)
	}
	if name[0] != '/' {
		return ErrInvalidArgument.New("queue name %q must begin with a slash", name)
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if c == '/' {
			return ErrInvalidArgument.New("queue name %q must not contain slashes after the first one", name)
		}
		if c == 0 || c >= 0x80 {
			return ErrInvalidArgument.New("queue name %q must consist of ascii characters", name)
		}
	}
	return nil
}
