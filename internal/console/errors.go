package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fairyhunter13/vending-machine-simulator/internal/machine"
	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorCode maps err to a stable, machine-readable code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, machine.ErrItemSoldOut):
		return "sold_out"
	case errors.Is(err, machine.ErrNotFullyPaid):
		return "not_fully_paid"
	case errors.Is(err, machine.ErrNoItemSelected):
		return "no_item_selected"
	case errors.Is(err, machine.ErrUnknownItem), errors.Is(err, model.ErrUnknownItem):
		return "unknown_item"
	case errors.Is(err, model.ErrUnknownCoin):
		return "unknown_coin"
	case errors.Is(err, ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, ErrInvalidArguments):
		return "invalid_arguments"
	}
	return "internal_error"
}

// WriteError writes err as a JSON payload or an "error:" line.
func WriteError(w io.Writer, asJSON bool, err error) {
	if asJSON {
		_ = json.NewEncoder(w).Encode(jsonError{Error: ErrorCode(err), Details: err.Error()})
		return
	}
	fmt.Fprintf(w, "error: %s: %v\n", ErrorCode(err), err)
}
