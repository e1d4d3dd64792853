package machine

import (
	"errors"
	"fmt"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
)

var (
	ErrItemSoldOut    = errors.New("item sold out")
	ErrNotFullyPaid   = errors.New("item not fully paid")
	ErrNoItemSelected = errors.New("no item selected")
	ErrUnknownItem    = errors.New("item not sold by this machine")
)

// NotFullyPaidError reports how far the inserted coins fall short of the
// selected item's price. It matches ErrNotFullyPaid with errors.Is.
type NotFullyPaidError struct {
	Item  model.Item
	Price int64
	Paid  int64
}

func (e *NotFullyPaidError) Error() string {
	return fmt.Sprintf("%s: %s costs %d, paid %d, remaining %d", ErrNotFullyPaid, e.Item, e.Price, e.Paid, e.Remaining())
}

func (e *NotFullyPaidError) Unwrap() error { return ErrNotFullyPaid }

// Remaining is the amount still owed, in cents.
func (e *NotFullyPaidError) Remaining() int64 { return e.Price - e.Paid }
