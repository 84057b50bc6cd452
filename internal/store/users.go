package store

import (
	"errors"
	"strings"
	"sync"

	"verdant_back_end/internal/models"
)

var (
	ErrEmailTaken   = errors.New("account with this email already exists")
	ErrUserNotFound = errors.New("user not found")
)

// UserStore keeps accounts in memory, keyed by lowercased email.
// Swapping in a real database is a production TODO.
type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
	byID    map[string]string // id -> email
}

func NewUserStore() *UserStore {
	return &UserStore{
		byEmail: make(map[string]models.User),
		byID:    make(map[string]string),
	}
}

func (s *UserStore) Create(user models.User) error {
	email := normalizeEmail(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return ErrEmailTaken
	}
	s.byEmail[email] = user
	s.byID[user.ID] = email
	return nil
}

func (s *UserStore) GetByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *UserStore) GetByID(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email, ok := s.byID[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return s.byEmail[email], nil
}

// MarkVerified flips the verified flag after a successful registration OTP.
func (s *UserStore) MarkVerified(email string) error {
	key := normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byEmail[key]
	if !ok {
		return ErrUserNotFound
	}
	user.Verified = true
	s.byEmail[key] = user
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
