package client

import "sync"

// Permission kinds the capture flow needs before it can run.
const (
	PermissionCamera   = "camera"
	PermissionLocation = "location"
)

// Granter asks the platform for a permission. Implementations wrap whatever
// the host OS exposes; tests inject fakes.
type Granter interface {
	Request(kind string) (bool, error)
}

// permissionPrompt is one in-flight platform dialog. Waiters block on done
// and read the shared answer instead of raising a dialog of their own.
type permissionPrompt struct {
	done    chan struct{}
	granted bool
	err     error
}

// PermissionArbiter serializes permission prompts. Platforms reject a second
// request for the same permission while the first dialog is still up, so
// concurrent callers for one kind collapse into a single prompt and share its
// answer, whether that answer is a grant or a denial.
type PermissionArbiter struct {
	granter Granter

	mutex    sync.Mutex
	inflight map[string]*permissionPrompt
	granted  map[string]bool
}

func NewPermissionArbiter(granter Granter) *PermissionArbiter {
	return &PermissionArbiter{
		granter:  granter,
		inflight: map[string]*permissionPrompt{},
		granted:  map[string]bool{},
	}
}

// Require returns once the permission state for kind is known. A caller that
// arrives while a prompt for the same kind is up waits for that prompt and
// returns its result. Denials are not cached across gestures: a later call
// prompts again and the user may grant then.
func (arbiter *PermissionArbiter) Require(kind string) (bool, error) {
	arbiter.mutex.Lock()
	if arbiter.granted[kind] {
		arbiter.mutex.Unlock()
		return true, nil
	}
	if prompt := arbiter.inflight[kind]; prompt != nil {
		arbiter.mutex.Unlock()
		<-prompt.done
		return prompt.granted, prompt.err
	}
	prompt := &permissionPrompt{done: make(chan struct{})}
	arbiter.inflight[kind] = prompt
	arbiter.mutex.Unlock()

	// The prompt always resolves, even when the granter panics, otherwise
	// every waiter for this kind blocks forever.
	defer func() {
		arbiter.mutex.Lock()
		delete(arbiter.inflight, kind)
		arbiter.mutex.Unlock()
		close(prompt.done)
	}()

	prompt.granted, prompt.err = arbiter.granter.Request(kind)
	if prompt.err == nil && prompt.granted {
		arbiter.mutex.Lock()
		arbiter.granted[kind] = true
		arbiter.mutex.Unlock()
	}
	return prompt.granted, prompt.err
}
