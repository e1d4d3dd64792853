package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/vending-machine-simulator/internal/config"
	"github.com/fairyhunter13/vending-machine-simulator/internal/console"
	"github.com/fairyhunter13/vending-machine-simulator/internal/machine"
	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
)

func bootMachine(t *testing.T, inventoryYAML string) *machine.Machine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(inventoryYAML), 0o600))
	t.Setenv("VENDING_INVENTORY_FILE", path)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	inv, err := cfg.Resolve()
	require.NoError(t, err)

	var logs bytes.Buffer
	m, err := machine.New(inv.Items, machine.WithLogger(obs.NewLogger(&logs, cfg.LogLevel, cfg.LogFormat)))
	require.NoError(t, err)
	return m
}

const inventory = `items:
  - item: COKE
    price: 25
    stock: 2
  - item: PEPSI
    price: 35
    stock: 1
  - item: SODA
    price: 45
    stock: 1
`

func TestIntegration_SessionDrainsStock(t *testing.T) {
	m := bootMachine(t, inventory)
	var out bytes.Buffer
	s := console.New(m, &out, true)

	script := strings.Join([]string{
		"select SODA",
		"insert QUARTER DIME NICKLE NICKLE PENNY",
		"collect",
		"select SODA",
		"select COKE",
		"insert DIME",
		"collect",
		"insert QUARTER",
		"collect",
		"select COKE",
		"insert QUARTER QUARTER",
		"collect",
		"select COKE",
		"stats",
	}, "\n")
	require.NoError(t, s.Run(context.Background(), strings.NewReader(script)))

	dec := json.NewDecoder(&out)
	var got []map[string]any
	for dec.More() {
		var v map[string]any
		require.NoError(t, dec.Decode(&v))
		got = append(got, v)
	}
	require.Len(t, got, 14)
	assert.Equal(t, []any{"PENNY"}, got[2]["change"])
	assert.Equal(t, "sold_out", got[3]["error"])
	assert.Equal(t, "not_fully_paid", got[6]["error"])
	assert.Equal(t, []any{"DIME"}, got[8]["change"])
	assert.Equal(t, []any{"QUARTER"}, got[11]["change"])
	assert.Equal(t, "sold_out", got[12]["error"])
	assert.Equal(t, float64(3), got[13]["sales"])
	assert.Equal(t, float64(95), got[13]["total_sales"])

	for _, p := range m.Inventory() {
		if p.Item == model.Pepsi {
			assert.Equal(t, int64(1), p.Stock)
			continue
		}
		assert.Equal(t, int64(0), p.Stock, p.Item)
	}
}

func TestIntegration_RefundThenReset(t *testing.T) {
	m := bootMachine(t, inventory)

	price, err := m.SelectItemAndGetPrice(model.Pepsi)
	require.NoError(t, err)
	assert.Equal(t, int64(35), price)
	require.NoError(t, m.InsertCoin(model.Quarter))
	require.NoError(t, m.InsertCoin(model.Dime))
	require.NoError(t, m.InsertCoin(model.Penny))

	assert.Equal(t, []model.Coin{model.Quarter, model.Dime, model.Penny}, m.Refund())
	_, err = m.CollectItemAndChange()
	assert.ErrorIs(t, err, machine.ErrNotFullyPaid)

	m.Reset()
	_, err = m.CollectItemAndChange()
	assert.ErrorIs(t, err, machine.ErrNoItemSelected)
	assert.Equal(t, machine.Idle, m.State())
}
