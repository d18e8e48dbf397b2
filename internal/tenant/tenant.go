package tenant

// ID names a logical storage partition. Profile attributes and post
// content are scoped to one; bookmark data always lives in the
// canonical tenant regardless of where a request originated.
type ID string

func (t ID) String() string { return string(t) }

// Scope tracks the tenant a request is currently operating against.
// A request is handled on a single goroutine, so Scope carries no lock;
// it must not be shared across requests.
type Scope struct {
	current ID
}

func NewScope(initial ID) *Scope {
	return &Scope{current: initial}
}

func (s *Scope) Current() ID {
	if s == nil {
		return ""
	}
	return s.current
}

// As runs fn with the scope switched to t and restores the previous
// tenant on every exit path, including an error return or a panic in fn.
func (s *Scope) As(t ID, fn func() error) error {
	if s == nil {
		return fn()
	}
	prev := s.current
	s.current = t
	defer func() { s.current = prev }()
	return fn()
}
