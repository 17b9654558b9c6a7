package repository

import (
	"fmt"
	"reflect"

	"github.com/yreynhout/aggregatesource/pkg/codec"
)

type options struct {
	codec  codec.Codec
	events []registration
}

type registration struct {
	name string
	ctor func() any
}

type Option func(o *options)

// WithEvent registers the payload type E under name so stored events of
// that name decode back into E values.
func WithEvent[E any](name string) Option {
	if reflect.TypeFor[E]().Kind() != reflect.Struct {
		panic(fmt.Sprintf("event %q must be a struct and not a pointer", name))
	}
	return func(o *options) {
		o.events = append(o.events, registration{name: name, ctor: func() any { return new(E) }})
	}
}

// WithCodec sets the payload codec. Default is JSON.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}
