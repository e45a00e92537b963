package operator

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Signature identifies one implementation inside a Registry.
type Signature struct {
	Operation string
	Left      Kind
	Right     Kind
}

func (s Signature) String() string {
	return fmt.Sprintf("%s(%s, %s)", s.Operation, s.Left, s.Right)
}

// Func is a monomorphic binary implementation.
type Func[T Number] func(a, b T) (T, error)

// Handle is a resolved implementation.
//
// The zero Handle is not callable.
type Handle struct {
	Signature Signature
	Result    Kind
	fn        any
}

// Call invokes h with operands of type T.
//
// T must match h.Result; resolving first and then calling with the promoted
// type is the caller's responsibility.
func Call[T Number](h Handle, a, b T) (T, error) {
	fn, ok := h.fn.(Func[T])
	if !ok {
		var zero T
		return zero, &UnsupportedSignatureError{
			Operation: h.Signature.Operation,
			Left:      KindOf[T](),
			Right:     KindOf[T](),
		}
	}
	return fn(a, b)
}

type operands struct {
	left, right Kind
}

// Registry holds the implementations registered under one operation name.
//
// Registration is serialized; lookups are lock-free loads of an immutable
// snapshot.
type Registry struct {
	name    string
	mu      sync.Mutex
	handles atomic.Pointer[map[operands]Handle]
}

func newRegistry(name string) *Registry {
	r := &Registry{name: name}
	empty := make(map[operands]Handle)
	r.handles.Store(&empty)
	return r
}

// Name returns the canonical operation name.
func (r *Registry) Name() string { return r.name }

// Register adds a homogeneous implementation for T.
func Register[T Number](r *Registry, fn Func[T]) error {
	if fn == nil {
		return nil
	}
	k := KindOf[T]()
	return r.add(Handle{
		Signature: Signature{Operation: r.name, Left: k, Right: k},
		Result:    k,
		fn:        fn,
	})
}

func (r *Registry) add(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.handles.Load()
	key := operands{h.Signature.Left, h.Signature.Right}
	if _, exists := cur[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSignature, h.Signature)
	}
	next := maps.Clone(cur)
	next[key] = h
	r.handles.Store(&next)
	return nil
}

// Lookup returns the implementation registered for exactly (left, right).
func (r *Registry) Lookup(left, right Kind) (Handle, bool) {
	h, ok := (*r.handles.Load())[operands{left, right}]
	return h, ok
}

// Resolve finds the implementation for an operand pair.
//
// An exact match wins. Otherwise both operands are promoted to the wider
// kind and the homogeneous signature for that kind is used.
func (r *Registry) Resolve(left, right Kind) (Handle, error) {
	if h, ok := r.Lookup(left, right); ok {
		return h, nil
	}
	if p := Promote(left, right); p != KindInvalid {
		if h, ok := r.Lookup(p, p); ok {
			return h, nil
		}
	}
	return Handle{}, &UnsupportedSignatureError{Operation: r.name, Left: left, Right: right}
}

// Signatures returns the registered signatures sorted by operand kinds.
func (r *Registry) Signatures() []Signature {
	cur := *r.handles.Load()
	out := make([]Signature, 0, len(cur))
	for _, h := range cur {
		out = append(out, h.Signature)
	}
	slices.SortFunc(out, func(a, b Signature) int {
		if a.Left != b.Left {
			return int(a.Left) - int(b.Left)
		}
		return int(a.Right) - int(b.Right)
	})
	return out
}

// Operators maps operation names to registries.
type Operators struct {
	mu         sync.Mutex
	registries atomic.Pointer[map[string]*Registry]
}

// Module registers implementations into an Operators value.
type Module func(ops *Operators) error

// New creates an empty Operators value and applies the given modules.
//
// Use New for hermetic tests; production code normally uses Default.
func New(modules ...Module) (*Operators, error) {
	o := &Operators{}
	empty := make(map[string]*Registry)
	o.registries.Store(&empty)
	for _, m := range modules {
		if err := m(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func canonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Registry returns the registry for name, creating it on first use.
//
// Names are case-insensitive. Concurrent first use creates exactly one
// instance; subsequent calls return that same instance.
func (o *Operators) Registry(name string) *Registry {
	name = canonicalName(name)
	if r, ok := (*o.registries.Load())[name]; ok {
		return r
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	cur := *o.registries.Load()
	if r, ok := cur[name]; ok {
		return r
	}
	r := newRegistry(name)
	next := maps.Clone(cur)
	next[name] = r
	o.registries.Store(&next)
	return r
}

// Lookup returns the registry for name without creating it.
func (o *Operators) Lookup(name string) (*Registry, bool) {
	r, ok := (*o.registries.Load())[canonicalName(name)]
	return r, ok
}

// Names returns the sorted names of all registries.
func (o *Operators) Names() []string {
	return slices.Sorted(maps.Keys(*o.registries.Load()))
}

type namedModule struct {
	name   string
	module Module
}

var (
	defaultOnce sync.Once
	defaultOps  atomic.Pointer[Operators]

	modulesMu sync.Mutex
	modules   []namedModule
)

// RegisterModule adds a module to the process-wide Operators.
//
// It is meant to be called from init functions. If Default has already been
// constructed the module is applied immediately, so every registration is
// visible to later Default().Registry calls regardless of init order.
// A failing module panics: it is a programming error detected at load time.
func RegisterModule(name string, m Module) {
	modulesMu.Lock()
	defer modulesMu.Unlock()

	modules = append(modules, namedModule{name: name, module: m})
	if ops := defaultOps.Load(); ops != nil {
		mustApply(ops, name, m)
	}
}

// Default returns the process-wide Operators, constructing it on first use.
func Default() *Operators {
	defaultOnce.Do(func() {
		modulesMu.Lock()
		defer modulesMu.Unlock()

		ops, _ := New()
		for _, nm := range modules {
			mustApply(ops, nm.name, nm.module)
		}
		defaultOps.Store(ops)
	})
	return defaultOps.Load()
}

func mustApply(ops *Operators, name string, m Module) {
	if err := m(ops); err != nil {
		panic(fmt.Errorf("operator module %s: %w", name, err))
	}
}
