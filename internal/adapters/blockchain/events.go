package blockchain

import (
	"context"
	"fmt"

	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
)

// EventExtractor reads event fields out of mined receipts
type EventExtractor struct {
	waiter usecase.ReceiptWaiter
}

// NewEventExtractor creates an extractor that waits for receipts with waiter
func NewEventExtractor(waiter usecase.ReceiptWaiter) *EventExtractor {
	return &EventExtractor{waiter: waiter}
}

// EventValue waits for tx to be mined and returns field of the first log
// matching event. Logs emitted by contracts other than the transaction's
// target are ignored.
func (e *EventExtractor) EventValue(ctx context.Context, tx *types.Transaction, contractABI *abi.ABI, event, field string) (any, bool, error) {
	ev, ok := contractABI.Events[event]
	if !ok {
		return nil, false, fmt.Errorf("event %s not found in ABI", event)
	}

	receipt, err := e.waiter.WaitMined(ctx, tx)
	if err != nil {
		return nil, false, err
	}

	for _, log := range receipt.Logs {
		if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
			continue
		}
		if tx.To() != nil && log.Address != *tx.To() {
			continue
		}

		values, err := decodeEvent(ev, log)
		if err != nil {
			return nil, false, fmt.Errorf("failed to decode %s: %w", event, err)
		}
		value, ok := values[field]
		if !ok {
			return nil, false, fmt.Errorf("event %s has no field %s", event, field)
		}
		return value, true, nil
	}

	return nil, false, nil
}

// decodeEvent decodes indexed and non-indexed arguments into one map
func decodeEvent(ev abi.Event, log *types.Log) (map[string]any, error) {
	values := make(map[string]any)

	var indexed abi.Arguments
	for _, input := range ev.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(indexed) > 0 {
		if len(log.Topics) < len(indexed)+1 {
			return nil, fmt.Errorf("expected %d topics, got %d", len(indexed)+1, len(log.Topics))
		}
		if err := abi.ParseTopicsIntoMap(values, indexed, log.Topics[1:]); err != nil {
			return nil, err
		}
	}

	if err := ev.Inputs.NonIndexed().UnpackIntoMap(values, log.Data); err != nil {
		return nil, err
	}
	return values, nil
}

var _ usecase.EventExtractor = (*EventExtractor)(nil)
