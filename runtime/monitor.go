package runtime

import "sync"

// Owner identifies the thread of execution holding a monitor. Go exposes no
// goroutine identity, so the interpreter supplies its own token, typically
// the runtime thread id it already tracks per frame stack.
type Owner = uint64

// ObjectMonitor implements the mutual-exclusion half of synchronized
// semantics: a re-entrant lock with a wait set. Entering while another owner
// holds the monitor blocks; re-entering under the same owner just deepens
// the hold. Long waits are this component's concern, never the Heap's, so
// every Heap operation stays short even when monitors are contended.
type ObjectMonitor struct {
	mu      sync.Mutex
	cond    *sync.Cond
	owner   Owner
	held    bool
	entries int
	waiting int
	permits int
}

func NewObjectMonitor() *ObjectMonitor {
	m := new(ObjectMonitor)
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Enter blocks until the monitor is free or already held by owner, then
// takes (or deepens) the hold.
func (m *ObjectMonitor) Enter(owner Owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.held && m.owner != owner {
		m.cond.Wait()
	}
	m.held = true
	m.owner = owner
	m.entries++
}

// TryEnter takes the monitor only if that needs no blocking, reporting
// whether it did.
func (m *ObjectMonitor) TryEnter(owner Owner) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held && m.owner != owner {
		return false
	}
	m.held = true
	m.owner = owner
	m.entries++
	return true
}

// Exit undoes one Enter. Releasing the last entry frees the monitor and
// wakes blocked entrants. Exiting a monitor the caller does not hold is a
// contract violation.
func (m *ObjectMonitor) Exit(owner Owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.held || m.owner != owner {
		panic("Monitor exited by a non-owner.")
	}
	m.entries--
	if m.entries == 0 {
		m.held = false
		m.cond.Broadcast()
	}
}

// Wait fully releases the monitor (whatever the re-entry depth), blocks
// until notified, then re-acquires at the same depth before returning. Only
// the current owner may wait.
func (m *ObjectMonitor) Wait(owner Owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.held || m.owner != owner {
		panic("Monitor waited on by a non-owner.")
	}
	depth := m.entries
	m.entries = 0
	m.held = false
	m.waiting++
	m.cond.Broadcast()
	for m.permits == 0 {
		m.cond.Wait()
	}
	m.permits--
	m.waiting--
	for m.held && m.owner != owner {
		m.cond.Wait()
	}
	m.held = true
	m.owner = owner
	m.entries = depth
}

// Notify releases one waiter, if any. Only the current owner may notify; a
// notification with no waiters present is discarded, not banked.
func (m *ObjectMonitor) Notify(owner Owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.held || m.owner != owner {
		panic("Monitor notified by a non-owner.")
	}
	if m.permits < m.waiting {
		m.permits++
	}
	m.cond.Broadcast()
}

// NotifyAll releases every waiter currently in the wait set.
func (m *ObjectMonitor) NotifyAll(owner Owner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.held || m.owner != owner {
		panic("Monitor notified by a non-owner.")
	}
	m.permits = m.waiting
	m.cond.Broadcast()
}
