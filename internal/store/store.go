// Package store keeps the machine's inventory: price and stock per item.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
)

var (
	ErrNotStocked  = errors.New("item not stocked")
	ErrOutOfStock  = errors.New("item out of stock")
	ErrInvalidSlot = errors.New("invalid inventory slot")
)

type slot struct {
	price int64
	stock int64
}

type Store struct {
	mu sync.RWMutex
	m  map[model.Item]slot
}

func New() *Store {
	return &Store{m: make(map[model.Item]slot)}
}

// Put sets the price and stock for an item, replacing any previous entry.
func (s *Store) Put(p model.Product) error {
	if !p.Item.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidSlot, model.ErrUnknownItem)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: %s price must be > 0", ErrInvalidSlot, p.Item)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: %s stock must be >= 0", ErrInvalidSlot, p.Item)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.Item] = slot{price: p.Price, stock: p.Stock}
	return nil
}

func (s *Store) Get(item model.Item) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.m[item]
	if !ok {
		return model.Product{}, false
	}
	return model.Product{Item: item, Price: sl.price, Stock: sl.stock}, true
}

// Take removes one unit of item and returns the stock left.
func (s *Store) Take(item model.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.m[item]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotStocked, item)
	}
	if sl.stock <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrOutOfStock, item)
	}
	sl.stock--
	s.m[item] = sl
	return sl.stock, nil
}

// Snapshot returns every product ordered by item name.
func (s *Store) Snapshot() []model.Product {
	s.mu.RLock()
	out := make([]model.Product, 0, len(s.m))
	for it, sl := range s.m {
		out = append(out, model.Product{Item: it, Price: sl.price, Stock: sl.stock})
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out
}
