package service

import (
	"sync"
	"time"
)

// Flash holds at most one success and one error message. Each expires after ttl.
type Flash struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	success   string
	failure   string
	successAt time.Time
	failureAt time.Time
}

func NewFlash(ttl time.Duration) *Flash {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Flash{ttl: ttl, now: time.Now}
}

// Success records msg and clears any pending error.
func (f *Flash) Success(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.success, f.successAt = msg, f.now()
	f.failure = ""
}

func (f *Flash) Error(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failure, f.failureAt = msg, f.now()
}

// Messages returns the messages that have not expired yet.
func (f *Flash) Messages() (success, failure string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	if f.success != "" && now.Sub(f.successAt) >= f.ttl {
		f.success = ""
	}
	if f.failure != "" && now.Sub(f.failureAt) >= f.ttl {
		f.failure = ""
	}
	return f.success, f.failure
}

func (f *Flash) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.success, f.failure = "", ""
}
