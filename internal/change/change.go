// Package change computes the coins handed back after a purchase.
package change

import "github.com/fairyhunter13/vending-machine-simulator/internal/model"

// Make breaks amount into the fewest coins, largest denomination first.
// A non-positive amount yields an empty, non-nil slice.
func Make(amount int64) []model.Coin {
	coins := []model.Coin{}
	for _, d := range model.Denominations {
		for amount >= d.Value() {
			coins = append(coins, d)
			amount -= d.Value()
		}
	}
	return coins
}

// Sum returns the total value of coins in cents.
func Sum(coins []model.Coin) int64 {
	var total int64
	for _, c := range coins {
		total += c.Value()
	}
	return total
}
