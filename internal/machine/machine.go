// Package machine implements the coin-operated vending machine: item
// selection, coin collection, change and refunds.
package machine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/fairyhunter13/vending-machine-simulator/internal/change"
	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
	"github.com/fairyhunter13/vending-machine-simulator/internal/store"
)

// State is the machine's position in the purchase lifecycle.
type State string

const (
	Idle     State = "idle"
	Selected State = "selected"
)

// Snapshot is a consistent view of the pending transaction.
type Snapshot struct {
	State         State        `json:"state"`
	Item          model.Item   `json:"item,omitempty"`
	Balance       int64        `json:"balance"`
	Inserted      []model.Coin `json:"inserted"`
	TransactionID string       `json:"transaction_id,omitempty"`
}

// Stats are running totals since the machine was built.
type Stats struct {
	Sales      int64 `json:"sales"`
	TotalSales int64 `json:"total_sales"`
	Refunds    int64 `json:"refunds"`
	Resets     int64 `json:"resets"`
}

// Machine is a single vending machine. All methods are safe for concurrent
// use; each one holds the machine lock for its whole span.
type Machine struct {
	mu     sync.Mutex
	store  *store.Store
	log    *slog.Logger
	nextID func() string

	item     model.Item
	selected bool
	inserted []model.Coin
	balance  int64
	txID     string
	stats    Stats
}

// New builds an idle machine stocked with products.
func New(products []model.Product, opts ...Option) (*Machine, error) {
	st := store.New()
	for _, p := range products {
		if _, dup := st.Get(p.Item); dup {
			return nil, fmt.Errorf("%w: duplicate item %s", store.ErrInvalidSlot, p.Item)
		}
		if err := st.Put(p); err != nil {
			return nil, err
		}
	}
	m := &Machine{
		store:  st,
		log:    obs.Logger,
		nextID: uuid.NewString,
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// begin tags a new transaction if none is in flight. Caller holds mu.
func (m *Machine) begin() {
	if m.txID == "" {
		m.txID = m.nextID()
	}
}

// end concludes the transaction. Caller holds mu.
func (m *Machine) end() {
	m.item = ""
	m.selected = false
	m.inserted = nil
	m.balance = 0
	m.txID = ""
}

// SelectItemAndGetPrice makes item the current selection and returns its
// price. Coins already inserted stay with the transaction, so switching
// items does not refund them.
func (m *Machine) SelectItemAndGetPrice(item model.Item) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store.Get(item)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownItem, item)
	}
	if p.Stock <= 0 {
		m.log.Info("item_sold_out", "item", item)
		return 0, fmt.Errorf("%w: %s", ErrItemSoldOut, item)
	}
	m.begin()
	m.item = item
	m.selected = true
	m.log.Info("item_selected",
		"transaction_id", m.txID,
		"item", item,
		"price", p.Price,
		"stock", p.Stock,
	)
	return p.Price, nil
}

// InsertCoin adds coin to the current transaction. Any state accepts coins.
func (m *Machine) InsertCoin(coin model.Coin) error {
	if !coin.Valid() {
		return fmt.Errorf("%w: %d", model.ErrUnknownCoin, coin.Value())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin()
	m.inserted = append(m.inserted, coin)
	m.balance += coin.Value()
	m.log.Debug("coin_inserted",
		"transaction_id", m.txID,
		"coin", coin,
		"balance", m.balance,
	)
	return nil
}

// CollectItemAndChange dispenses the selected item with change for any
// overpayment. When the inserted coins fall short the transaction is left
// untouched and a *NotFullyPaidError is returned.
func (m *Machine) CollectItemAndChange() (model.Bucket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.selected {
		return model.Bucket{}, ErrNoItemSelected
	}
	p, ok := m.store.Get(m.item)
	if !ok {
		return model.Bucket{}, fmt.Errorf("%w: %s", ErrUnknownItem, m.item)
	}
	if m.balance < p.Price {
		err := &NotFullyPaidError{Item: m.item, Price: p.Price, Paid: m.balance}
		m.log.Info("collect_rejected",
			"transaction_id", m.txID,
			"item", m.item,
			"price", p.Price,
			"paid", m.balance,
			"remaining", err.Remaining(),
		)
		return model.Bucket{}, err
	}
	left, err := m.store.Take(m.item)
	if err != nil {
		return model.Bucket{}, fmt.Errorf("%w: %w", ErrItemSoldOut, err)
	}
	coins := change.Make(m.balance - p.Price)
	b := model.Bucket{Item: m.item, Coins: coins}
	m.stats.Sales++
	m.stats.TotalSales += p.Price
	m.log.Info("item_dispensed",
		"transaction_id", m.txID,
		"item", m.item,
		"price", p.Price,
		"paid", m.balance,
		"change", model.CoinNames(coins),
		"stock_left", left,
	)
	m.end()
	return b, nil
}

// Refund hands back the inserted coins in insertion order. The selection,
// if any, is kept.
func (m *Machine) Refund() []model.Coin {
	m.mu.Lock()
	defer m.mu.Unlock()
	coins := m.inserted
	if coins == nil {
		coins = []model.Coin{}
	}
	if len(coins) > 0 {
		m.stats.Refunds++
		m.log.Info("coins_refunded",
			"transaction_id", m.txID,
			"coins", model.CoinNames(coins),
			"amount", m.balance,
		)
	}
	m.inserted = nil
	m.balance = 0
	if !m.selected {
		m.txID = ""
	}
	return coins
}

// Reset abandons the pending transaction: selection and inserted coins are
// cleared. Stock and prices are not touched.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Resets++
	m.log.Info("machine_reset",
		"transaction_id", m.txID,
		"discarded", m.balance,
	)
	m.end()
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state()
}

// state derives the lifecycle position. Caller holds mu.
func (m *Machine) state() State {
	if m.selected {
		return Selected
	}
	return Idle
}

// Snapshot reads the whole pending transaction under one lock.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:         m.state(),
		Item:          m.item,
		Balance:       m.balance,
		Inserted:      append([]model.Coin{}, m.inserted...),
		TransactionID: m.txID,
	}
}

// Selection returns the current item, if one is selected.
func (m *Machine) Selection() (model.Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.item, m.selected
}

// Balance is the value of the coins inserted so far, in cents.
func (m *Machine) Balance() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

// Inserted returns a copy of the pending coins in insertion order.
func (m *Machine) Inserted() []model.Coin {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Coin{}, m.inserted...)
}

// TransactionID identifies the in-flight transaction, or "" when idle with
// no coins pending.
func (m *Machine) TransactionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txID
}

func (m *Machine) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Inventory returns price and stock for every item, ordered by name.
func (m *Machine) Inventory() []model.Product {
	return m.store.Snapshot()
}
