package store

import (
	"context"
	"sync"
	"time"
)

// OTPTTL is how long a one-time code stays valid.
const OTPTTL = 10 * time.Minute

// sweepInterval is how often expired codes are purged.
const sweepInterval = time.Minute

// OTPStore holds pending one-time codes keyed by email. A code is consumed
// on its first successful verification.
type OTPStore interface {
	Store(ctx context.Context, email, code string) error
	Verify(ctx context.Context, email, code string) (bool, error)
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryOTPStore is the default OTPStore. A background sweep evicts expired
// codes; Verify also checks expiry so the sweep is purely housekeeping.
type MemoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

func NewMemoryOTPStore() *MemoryOTPStore {
	s := &MemoryOTPStore{
		entries:   make(map[string]otpEntry),
		stopSweep: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop()

	return s
}

func (s *MemoryOTPStore) Store(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[normalizeEmail(email)] = otpEntry{
		code:      code,
		expiresAt: time.Now().Add(OTPTTL),
	}
	return nil
}

func (s *MemoryOTPStore) Verify(_ context.Context, email, code string) (bool, error) {
	key := normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) || entry.code != code {
		return false, nil
	}
	delete(s.entries, key)
	return true, nil
}

// Close stops the sweep goroutine.
func (s *MemoryOTPStore) Close() {
	close(s.stopSweep)
	s.wg.Wait()
}

func (s *MemoryOTPStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepExpired()
		case <-s.stopSweep:
			return
		}
	}
}

func (s *MemoryOTPStore) sweepExpired() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for email, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, email)
		}
	}
}
