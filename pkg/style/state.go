package style

import (
	"sync"

	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/muesli/termenv"
)

// State is the ambient style stack. Current returns the innermost pushed
// style; an empty stack means the terminal default.
type State struct {
	mu      sync.Mutex
	profile termenv.Profile
	stack   []Style
}

// NewState creates an empty state rendering for profile
func NewState(profile termenv.Profile) *State {
	return &State{profile: profile}
}

// Profile returns the color profile styles are built for
func (s *State) Profile() termenv.Profile {
	return s.profile
}

// Build renders a spec for this state's profile
func (s *State) Build(spec Spec) Style {
	return Build(spec, s.profile)
}

// Push makes st the current style
func (s *State) Push(st Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack = append(s.stack, st)
}

// Pop restores the previous style. Popping an empty state is a programming
// error and panics.
func (s *State) Pop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		panic(errors.New(errors.ErrStackUnderflow, "style pop without matching push"))
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// With pushes st for the duration of fn
func (s *State) With(st Style, fn func() error) error {
	s.Push(st)
	defer s.Pop()
	return fn()
}

// Current returns the active escape prefix
func (s *State) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		return ""
	}
	return string(s.stack[len(s.stack)-1])
}

// Reset returns the sequence that clears all styling
func (s *State) Reset() string {
	return ResetFor(s.profile)
}

// Depth returns the number of pushed styles
func (s *State) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stack)
}
