package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
)

// ErrInvalidInventory is returned when an inventory file is malformed.
var ErrInvalidInventory = errors.New("invalid inventory")

// Inventory is the starting stock and price list of a machine.
type Inventory struct {
	Items []model.Product `yaml:"items"`
}

// DefaultInventory is the stock every machine ships with when no file is given.
func DefaultInventory(stock int64) Inventory {
	return Inventory{Items: []model.Product{
		{Item: model.Coke, Price: 25, Stock: stock},
		{Item: model.Pepsi, Price: 35, Stock: stock},
		{Item: model.Soda, Price: 45, Stock: stock},
	}}
}

// LoadInventory reads and validates a YAML inventory file.
func LoadInventory(path string) (Inventory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Inventory{}, fmt.Errorf("read inventory %s: %w", path, err)
	}
	return ParseInventory(b)
}

// ParseInventory decodes and validates YAML inventory data.
func ParseInventory(b []byte) (Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(b, &inv); err != nil {
		return Inventory{}, errors.Join(ErrInvalidInventory, err)
	}
	if err := inv.Validate(); err != nil {
		return Inventory{}, err
	}
	return inv, nil
}

// Validate checks item names, prices and stock counts.
func (inv Inventory) Validate() error {
	if len(inv.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidInventory)
	}
	seen := make(map[model.Item]bool, len(inv.Items))
	for _, p := range inv.Items {
		if !p.Item.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidInventory, model.ErrUnknownItem, p.Item)
		}
		if seen[p.Item] {
			return fmt.Errorf("%w: duplicate item %s", ErrInvalidInventory, p.Item)
		}
		seen[p.Item] = true
		if p.Price <= 0 {
			return fmt.Errorf("%w: %s price must be > 0", ErrInvalidInventory, p.Item)
		}
		if p.Stock < 0 {
			return fmt.Errorf("%w: %s stock must be >= 0", ErrInvalidInventory, p.Item)
		}
	}
	return nil
}

// Resolve returns the inventory named by c.InventoryFile, or the default one.
func (c Config) Resolve() (Inventory, error) {
	if c.InventoryFile == "" {
		return DefaultInventory(c.DefaultStock), nil
	}
	return LoadInventory(c.InventoryFile)
}
