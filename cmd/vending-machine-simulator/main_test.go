package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/vending-machine-simulator/internal/machine"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VENDING_INVENTORY_FILE", "")
	t.Setenv("VENDING_DEFAULT_STOCK", "1")
	t.Setenv("LOG_LEVEL", "error")
	verbose, outputJSON, inventoryFile, logFormat = false, false, "", "json"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return out.String(), err
}

func TestBuyWithChange(t *testing.T) {
	out, err := execute(t, "", "buy", "COKE", "QUARTER", "DIME", "NICKLE", "PENNY")
	require.NoError(t, err)
	assert.Equal(t, "COKE costs 25\nbalance 41\ndispensed COKE, change: DIME NICKLE PENNY\n", out)
}

func TestBuyUnderpaidRefunds(t *testing.T) {
	out, err := execute(t, "", "buy", "SODA", "DIME", "NICKLE", "PENNY")
	require.Error(t, err)
	assert.ErrorIs(t, err, machine.ErrNotFullyPaid)
	assert.True(t, strings.HasPrefix(err.Error(), "not_fully_paid: "))
	assert.Contains(t, out, "refunded: DIME NICKLE PENNY\n")
}

func TestBuyUnknownCoin(t *testing.T) {
	_, err := execute(t, "", "buy", "COKE", "DOUBLOON")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "unknown_coin: "))
}

func TestRunSession(t *testing.T) {
	script := "insert QUARTER DIME PENNY\nrefund\nselect PEPSI\ninsert QUARTER DIME\ncollect\nselect PEPSI\n"
	out, err := execute(t, script, "run")
	require.NoError(t, err)
	assert.Equal(t, `balance 36
refunded: QUARTER DIME PENNY
PEPSI costs 35
balance 35
dispensed PEPSI, change: none
error: sold_out: item sold out: PEPSI
`, out)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunEndsOnCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	t.Setenv("VENDING_INVENTORY_FILE", "")
	t.Setenv("LOG_LEVEL", "error")
	verbose, outputJSON, inventoryFile, logFormat = false, false, "", "json"

	ctx, cancel := context.WithCancel(context.Background())
	runCmd.SetContext(ctx)
	t.Cleanup(func() { runCmd.SetContext(context.Background()) })

	out := &syncBuffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(pr)
	rootCmd.SetArgs([]string{"run"})

	done := make(chan error, 1)
	go func() {
		_, err := rootCmd.ExecuteC()
		done <- err
	}()

	_, err := io.WriteString(pw, "insert QUARTER\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return out.String() == "balance 25\n" }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	assert.Equal(t, "balance 25\n", out.String())
}

func TestInventoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - item: SODA\n    price: 60\n    stock: 9\n"), 0o600))
	out, err := execute(t, "", "inventory", "--json", "--inventory", path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"item":"SODA","price":60,"stock":9}]`, out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "vending-machine-simulator version dev\n", out)
}
