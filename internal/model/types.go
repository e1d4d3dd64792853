// Package model defines domain types used by the simulator.
package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCoin = errors.New("unknown coin")
	ErrUnknownItem = errors.New("unknown item")
)

// Coin is an accepted denomination, valued in cents.
type Coin int64

const (
	Penny   Coin = 1
	Nickle  Coin = 5
	Dime    Coin = 10
	Quarter Coin = 25
)

// Denominations lists every accepted coin, largest first.
var Denominations = []Coin{Quarter, Dime, Nickle, Penny}

// Value returns the coin's worth in cents.
func (c Coin) Value() int64 { return int64(c) }

func (c Coin) String() string {
	switch c {
	case Quarter:
		return "QUARTER"
	case Dime:
		return "DIME"
	case Nickle:
		return "NICKLE"
	case Penny:
		return "PENNY"
	}
	return fmt.Sprintf("Coin(%d)", int64(c))
}

// Valid reports whether c is one of the accepted denominations.
func (c Coin) Valid() bool {
	switch c {
	case Quarter, Dime, Nickle, Penny:
		return true
	}
	return false
}

// ParseCoin resolves a coin by name, case-insensitively. NICKEL is accepted
// as an alias of NICKLE.
func ParseCoin(s string) (Coin, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QUARTER":
		return Quarter, nil
	case "DIME":
		return Dime, nil
	case "NICKLE", "NICKEL":
		return Nickle, nil
	case "PENNY":
		return Penny, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCoin, s)
}

func (c Coin) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCoin, int64(c))
	}
	return []byte(c.String()), nil
}

func (c *Coin) UnmarshalText(b []byte) error {
	v, err := ParseCoin(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Item is a product the machine can sell.
type Item string

const (
	Coke  Item = "COKE"
	Pepsi Item = "PEPSI"
	Soda  Item = "SODA"
)

// Items lists every known product.
var Items = []Item{Coke, Pepsi, Soda}

func (i Item) String() string { return string(i) }

// Valid reports whether i is a known product.
func (i Item) Valid() bool {
	switch i {
	case Coke, Pepsi, Soda:
		return true
	}
	return false
}

// ParseItem resolves an item by name, case-insensitively.
func ParseItem(s string) (Item, error) {
	it := Item(strings.ToUpper(strings.TrimSpace(s)))
	if !it.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownItem, s)
	}
	return it, nil
}

func (i *Item) UnmarshalText(b []byte) error {
	v, err := ParseItem(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// Product is the configured price and remaining stock of an item.
type Product struct {
	Item  Item  `json:"item" yaml:"item"`
	Price int64 `json:"price" yaml:"price"`
	Stock int64 `json:"stock" yaml:"stock"`
}

// Bucket is what a completed purchase hands back: the item and its change.
type Bucket struct {
	Item  Item   `json:"item"`
	Coins []Coin `json:"coins"`
}

// CoinNames renders coins as their names, in order.
func CoinNames(coins []Coin) []string {
	out := make([]string, len(coins))
	for i, c := range coins {
		out[i] = c.String()
	}
	return out
}
