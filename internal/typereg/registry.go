package typereg

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var ErrUnknownType = errors.New("registry: unknown type name")

type registry struct {
	mu    sync.RWMutex
	ctors map[string]ctor
	types map[reflect.Type]string
}

func New() *registry {
	return &registry{
		ctors: make(map[string]ctor),
		types: make(map[reflect.Type]string),
	}
}

// ctor returns a pointer to a fresh value of the registered type.
type ctor = func() any

// Register binds tname to the type produced by c. Registering the same
// name or the same type twice panics.
func (r *registry) Register(tname string, c ctor) {
	t := reflect.TypeOf(c())
	if t == nil || t.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("type %q must be constructed as a pointer, got %v", tname, t))
	}
	t = t.Elem()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[t]; ok {
		panic(fmt.Sprintf("type %v is already registered", t))
	}
	if _, ok := r.ctors[tname]; ok {
		panic(fmt.Sprintf("type %q is already registered", tname))
	}
	r.types[t] = tname
	r.ctors[tname] = c
}

// Create returns a pointer to a new value of the type registered as name.
func (r *registry) Create(name string) (any, error) {
	r.mu.RLock()
	ct, ok := r.ctors[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
	}
	return ct(), nil
}

// NameFor returns the name in is registered under. Values and pointers
// to values resolve to the same name.
func (r *registry) NameFor(in any) (string, error) {
	if in == nil {
		return "", errors.New("registry: cannot get name for nil")
	}

	t := reflect.TypeOf(in)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.RLock()
	name, ok := r.types[t]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("registry: type %v is not registered", t)
	}
	return name, nil
}
