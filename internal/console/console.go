// Package console drives a vending machine from line-oriented commands,
// one command per line:
//
//	select COKE
//	insert QUARTER DIME
//	collect
//	refund
//	reset
//	stock | stats | state | help | quit
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fairyhunter13/vending-machine-simulator/internal/machine"
	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
)

// ErrQuit is returned by Exec when the operator asks to leave.
var ErrQuit = errors.New("quit")

const helpText = `commands:
  select ITEM          choose an item and show its price
  insert COIN...       insert one or more coins (QUARTER, DIME, NICKLE, PENNY)
  collect              take the item and change
  refund               return inserted coins
  reset                abandon the current transaction
  stock                show prices and stock
  stats                show sales totals
  state                show the pending transaction
  quit                 leave
`

type Session struct {
	m      *machine.Machine
	out    io.Writer
	asJSON bool
}

type priceResult struct {
	Op    string     `json:"op"`
	Item  model.Item `json:"item"`
	Price int64      `json:"price"`
}

type balanceResult struct {
	Op      string `json:"op"`
	Balance int64  `json:"balance"`
}

type collectResult struct {
	Op     string       `json:"op"`
	Item   model.Item   `json:"item"`
	Change []model.Coin `json:"change"`
}

type refundResult struct {
	Op    string       `json:"op"`
	Coins []model.Coin `json:"coins"`
}

// New returns a session writing results for m to out, as JSON lines when
// asJSON is set.
func New(m *machine.Machine, out io.Writer, asJSON bool) *Session {
	return &Session{m: m, out: out, asJSON: asJSON}
}

// Run executes commands from in until EOF, quit or ctx is done. Command
// failures are reported on the session output and do not stop the loop.
// Cancelling ctx returns ctx.Err() even while in is blocked on a read.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return ctx.Err()
				}
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			err := s.Exec(line)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				WriteError(s.out, s.asJSON, err)
			}
		}
	}
}

// Exec runs a single command line. Blank lines and lines starting with #
// are ignored.
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	obs.Logger.Debug("console_command", "command", cmd, "args", args)
	switch cmd {
	case "select":
		return s.selectItem(args)
	case "insert":
		return s.insert(args)
	case "collect":
		return s.collect(args)
	case "refund":
		if err := noArgs(cmd, args); err != nil {
			return err
		}
		coins := s.m.Refund()
		return s.emit(refundResult{Op: "refund", Coins: coins}, "refunded: "+coinList(coins))
	case "reset":
		if err := noArgs(cmd, args); err != nil {
			return err
		}
		s.m.Reset()
		return s.emit(struct {
			Op string `json:"op"`
		}{"reset"}, "reset")
	case "stock":
		return s.stock()
	case "stats":
		st := s.m.Stats()
		return s.emit(st, fmt.Sprintf("sales=%d total_sales=%d refunds=%d resets=%d",
			st.Sales, st.TotalSales, st.Refunds, st.Resets))
	case "state":
		return s.state()
	case "help":
		_, err := io.WriteString(s.out, helpText)
		return err
	case "quit", "exit":
		return ErrQuit
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
}

func (s *Session) selectItem(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: select takes exactly one item", ErrInvalidArguments)
	}
	item, err := model.ParseItem(args[0])
	if err != nil {
		return err
	}
	price, err := s.m.SelectItemAndGetPrice(item)
	if err != nil {
		return err
	}
	return s.emit(priceResult{Op: "select", Item: item, Price: price}, fmt.Sprintf("%s costs %d", item, price))
}

// insert parses every coin before inserting any, so a typo leaves the
// balance unchanged.
func (s *Session) insert(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: insert takes at least one coin", ErrInvalidArguments)
	}
	coins := make([]model.Coin, 0, len(args))
	for _, a := range args {
		c, err := model.ParseCoin(a)
		if err != nil {
			return err
		}
		coins = append(coins, c)
	}
	for _, c := range coins {
		if err := s.m.InsertCoin(c); err != nil {
			return err
		}
	}
	bal := s.m.Balance()
	return s.emit(balanceResult{Op: "insert", Balance: bal}, fmt.Sprintf("balance %d", bal))
}

func (s *Session) collect(args []string) error {
	if err := noArgs("collect", args); err != nil {
		return err
	}
	b, err := s.m.CollectItemAndChange()
	if err != nil {
		return err
	}
	return s.emit(collectResult{Op: "collect", Item: b.Item, Change: b.Coins},
		fmt.Sprintf("dispensed %s, change: %s", b.Item, coinList(b.Coins)))
}

func (s *Session) stock() error {
	inv := s.m.Inventory()
	if s.asJSON {
		return json.NewEncoder(s.out).Encode(inv)
	}
	for _, p := range inv {
		if _, err := fmt.Fprintf(s.out, "%-6s price=%d stock=%d\n", p.Item, p.Price, p.Stock); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) state() error {
	snap := s.m.Snapshot()
	text := fmt.Sprintf("state=%s balance=%d inserted=%s", snap.State, snap.Balance, coinList(snap.Inserted))
	if snap.Item != "" {
		text += " item=" + snap.Item.String()
	}
	return s.emit(snap, text)
}

func (s *Session) emit(v any, text string) error {
	if s.asJSON {
		return json.NewEncoder(s.out).Encode(v)
	}
	_, err := fmt.Fprintln(s.out, text)
	return err
}

func noArgs(cmd string, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %s takes no arguments", ErrInvalidArguments, cmd)
	}
	return nil
}

func coinList(coins []model.Coin) string {
	if len(coins) == 0 {
		return "none"
	}
	return strings.Join(model.CoinNames(coins), " ")
}
