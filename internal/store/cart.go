package store

import (
	"context"
	"errors"
	"sync"

	"verdant_back_end/internal/models"
)

// DefaultSessionKey is used when a request carries no session-id header.
// Every anonymous caller shares this cart.
const DefaultSessionKey = "default"

var (
	ErrPlantIDRequired   = errors.New("plant id is required")
	ErrPlantNotFound     = errors.New("plant not found")
	ErrItemNotFound      = errors.New("item not found in cart")
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// PlantResolver resolves a plant id to its current catalog entry.
type PlantResolver interface {
	GetPlant(ctx context.Context, id string) (models.Plant, error)
}

// CartStore maps a session key to an ordered list of line items. Carts live
// for the lifetime of the process; a real session store is a production TODO.
// All operations are serialized behind a single lock so concurrent mutations
// of the same session key cannot lose updates.
type CartStore struct {
	mu       sync.RWMutex
	plants   PlantResolver
	sessions map[string][]models.CartItem
}

func NewCartStore(plants PlantResolver) *CartStore {
	return &CartStore{
		plants:   plants,
		sessions: make(map[string][]models.CartItem),
	}
}

// Get returns the current cart view for a session, empty if none exists.
func (s *CartStore) Get(sessionKey string) models.CartResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.BuildCartResponse(cloneItems(s.sessions[sessionKey]))
}

// GetItem returns the line item for a plant id, or ErrItemNotFound.
func (s *CartStore) GetItem(sessionKey, plantID string) (models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.sessions[sessionKey] {
		if item.PlantID == plantID {
			return item, nil
		}
	}
	return models.CartItem{}, ErrItemNotFound
}

// Add resolves the plant, checks stock and merges the quantity into any
// existing line item for the same plant. A cart never holds two entries
// with the same plant id.
func (s *CartStore) Add(ctx context.Context, sessionKey, plantID string, quantity int) (models.CartResponse, error) {
	if plantID == "" {
		return models.CartResponse{}, ErrPlantIDRequired
	}
	if quantity < 1 {
		quantity = 1
	}

	plant, err := s.plants.GetPlant(ctx, plantID)
	if err != nil {
		return models.CartResponse{}, ErrPlantNotFound
	}
	if !plant.InStock || plant.StockQuantity < quantity {
		return models.CartResponse{}, ErrInsufficientStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.sessions[sessionKey]
	merged := false
	for i := range items {
		if items[i].PlantID == plantID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{
			PlantID:  plantID,
			Quantity: quantity,
			Plant:    plant,
		})
	}
	s.sessions[sessionKey] = items

	return models.BuildCartResponse(cloneItems(items)), nil
}

// Update overwrites the quantity of an existing line item. A quantity of
// zero removes the entry. Stock is not re-validated here.
func (s *CartStore) Update(sessionKey, plantID string, quantity int) (models.CartResponse, error) {
	if quantity < 0 {
		return models.CartResponse{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.sessions[sessionKey]
	idx := -1
	for i := range items {
		if items[i].PlantID == plantID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.CartResponse{}, ErrItemNotFound
	}

	if quantity == 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	s.sessions[sessionKey] = items

	return models.BuildCartResponse(cloneItems(items)), nil
}

// Remove filters the plant out of the cart. Removing an absent plant is a
// no-op returning the unchanged cart.
func (s *CartStore) Remove(sessionKey, plantID string) models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.sessions[sessionKey]
	kept := items[:0:0]
	for _, item := range items {
		if item.PlantID != plantID {
			kept = append(kept, item)
		}
	}
	s.sessions[sessionKey] = kept

	return models.BuildCartResponse(cloneItems(kept))
}

// Clear drops the session's cart entirely.
func (s *CartStore) Clear(sessionKey string) models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionKey)
	return models.BuildCartResponse(nil)
}

// cloneItems copies the slice so responses cannot alias store-owned memory.
func cloneItems(items []models.CartItem) []models.CartItem {
	if len(items) == 0 {
		return []models.CartItem{}
	}
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}
