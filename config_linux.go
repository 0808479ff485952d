// Copyright 2018 Aleksandr Demakin. All rights reserved.

package mqueue

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the declarative form of a Builder, suitable for embedding
// into a service configuration file:
//
//	name: /events
//	mode: non_blocking
//	type: receiver
//	creation: open_or_create
//	permissions: 0o640
//	max_queue_size: 16
//	max_message_size: 4096
//	reset: false
//
// Name, Mode and Type are required; the rest keeps the builder defaults.
type Config struct {
	Name           string      `yaml:"name"`
	Mode           string      `yaml:"mode"`
	Type           string      `yaml:"type"`
	Creation       string      `yaml:"creation"`
	Permissions    os.FileMode `yaml:"permissions"`
	MaxQueueSize   int         `yaml:"max_queue_size"`
	MaxMessageSize int         `yaml:"max_message_size"`
	Reset          bool        `yaml:"reset"`
}

// ParseConfig decodes a Config from yaml, rejecting unknown fields.
func ParseConfig(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	c := new(Config)
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrap(err, "parse mqueue config")
	}
	return c, nil
}

// Builder translates the config into a builder. Unlike builder misuse,
// a bad config value is external input and is reported as an invalid
// argument error, not a panic.
func (c *Config) Builder() (*Builder, error) {
	if c.Name == "" {
		return nil, ErrInvalidArgument.New("config: name is required")
	}
	mode, err := parseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	typ, err := parseType(c.Type)
	if err != nil {
		return nil, err
	}
	creation, err := parseCreation(c.Creation)
	if err != nil {
		return nil, err
	}
	b := NewBuilder().
		Name(c.Name).
		Mode(mode).
		Type(typ).
		Creation(creation).
		Reset(c.Reset)
	if c.Permissions != 0 {
		b.Perm(c.Permissions)
	}
	if c.MaxQueueSize != 0 {
		b.Capacity(c.MaxQueueSize)
	}
	if c.MaxMessageSize != 0 {
		b.MaxMessageSize(c.MaxMessageSize)
	}
	return b, nil
}

// Build is shorthand for translating the config and building the queue.
func (c *Config) Build() (*Queue, error) {
	b, err := c.Builder()
	if err != nil {
		return nil, err
	}
	return b.Build()
}

func parseMode(s string) (Mode, error) {
	switch s {
	case "blocking":
		return Blocking, nil
	case "non_blocking":
		return NonBlocking, nil
	default:
		return Blocking, ErrInvalidArgument.New("config: unknown mode %q", s)
	}
}

func parseType(s string) (Type, error) {
	switch s {
	case "receiver":
		return Receiver, nil
	case "sender":
		return Sender, nil
	case "bidirectional":
		return Bidirectional, nil
	default:
		return Bidirectional, ErrInvalidArgument.New("config: unknown type %q", s)
	}
}

func parseCreation(s string) (Creation, error) {
	switch s {
	case "", "open_or_create":
		return OpenOrCreate, nil
	case "create_only":
		return CreateOnly, nil
	case "open_only":
		return OpenOnly, nil
	default:
		return OpenOrCreate, ErrInvalidArgument.New("config: unknown creation disposition %q", s)
	}
}
