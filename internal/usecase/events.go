package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EventString reads an event field as a string. Address values are returned
// in checksummed hex.
func EventString(ctx context.Context, events EventExtractor, tx *types.Transaction, contractABI *abi.ABI, event, field string) (string, bool, error) {
	value, found, err := events.EventValue(ctx, tx, contractABI, event, field)
	if err != nil || !found {
		return "", found, err
	}
	switch v := value.(type) {
	case string:
		return v, true, nil
	case common.Address:
		return v.Hex(), true, nil
	case fmt.Stringer:
		return v.String(), true, nil
	default:
		return fmt.Sprint(v), true, nil
	}
}

// EventBigInt reads an integer event field
func EventBigInt(ctx context.Context, events EventExtractor, tx *types.Transaction, contractABI *abi.ABI, event, field string) (*big.Int, bool, error) {
	value, found, err := events.EventValue(ctx, tx, contractABI, event, field)
	if err != nil || !found {
		return nil, found, err
	}
	switch v := value.(type) {
	case *big.Int:
		return v, true, nil
	case uint64:
		return new(big.Int).SetUint64(v), true, nil
	case int64:
		return big.NewInt(v), true, nil
	default:
		return nil, true, fmt.Errorf("event %s field %s: unexpected type %T", event, field, value)
	}
}
