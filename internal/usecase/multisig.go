package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/ethereum/go-ethereum/common"
)

// walletProposal is a call the multi-sig wallet executes once enough members confirm it
type walletProposal struct {
	Purpose     string
	Title       string
	Description string
	Destination common.Address
	Value       *big.Int
	Data        []byte
}

// submitAndConfirm submits a proposal from the first token owner and confirms
// it from the next ones until the wallet threshold is met. The submission
// counts as the first confirmation, so the transaction reaching the threshold
// carries the Execution event. Returns the wallet's transaction id.
func (d *DeploySteps) submitAndConfirm(ctx context.Context, log *slog.Logger, state *DeployState, wallet Contract, p walletProposal) (*big.Int, error) {
	required := state.Registry.RequiredConfirmations
	if err := domain.CheckRequiredConfirmations(required, len(state.Accounts.TokenOwners)); err != nil {
		return nil, err
	}
	submitter := state.Accounts.TokenOwners[0]
	confirmers := state.Accounts.TokenOwners[1:required]
	value := p.Value
	if value == nil {
		value = new(big.Int)
	}

	tx, err := wallet.Transact(ctx, submitter, "submitTransaction", p.Title, p.Description, p.Destination, value, p.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction for %s: %w", p.Purpose, err)
	}
	submitted, found, err := EventBigInt(ctx, d.events, tx, wallet.ABI(), domain.EventSubmission, domain.FieldTransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction for %s: %w", p.Purpose, err)
	}
	if !found {
		return nil, fmt.Errorf("failed to submit transaction for %s: %w: %s", p.Purpose, domain.ErrEventNotFound, domain.EventSubmission)
	}
	log.Debug("Submitted", "transactionId", submitted.String(), "by", submitter.Label())

	for i, confirmer := range confirmers {
		tx, err = wallet.Transact(ctx, confirmer, "confirmTransaction", submitted)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm transaction for %s: %w", p.Purpose, err)
		}
		// Each confirmation must land before the next one can execute the call
		if i < len(confirmers)-1 {
			if _, err := d.waiter.WaitMined(ctx, tx); err != nil {
				return nil, fmt.Errorf("failed to confirm transaction for %s: %w", p.Purpose, err)
			}
		}
		log.Debug("Confirmed", "transactionId", submitted.String(), "by", confirmer.Label())
	}

	executed, found, err := EventBigInt(ctx, d.events, tx, wallet.ABI(), domain.EventExecution, domain.FieldTransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm transaction for %s: %w", p.Purpose, err)
	}
	if !found || executed.Cmp(submitted) != 0 {
		return nil, fmt.Errorf("failed to confirm transaction for %s: %w: submitted %s, executed %s",
			p.Purpose, domain.ErrTransactionMismatch, submitted, describeID(executed, found))
	}
	log.Debug("Executed", "transactionId", executed.String())

	return submitted, nil
}

func describeID(id *big.Int, found bool) string {
	if !found {
		return "none"
	}
	return id.String()
}
