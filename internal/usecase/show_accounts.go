package usecase

import (
	"context"
	"log/slog"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// AccountBalance is one account with its balances. Balances are nil when
// they could not be read.
type AccountBalance struct {
	Account      *models.Account
	Balance      *domain.Amount
	TokenBalance *domain.Amount
}

// ShowAccountsResult contains every deployment account
type ShowAccountsResult struct {
	Network  string
	Token    *common.Address
	Accounts []AccountBalance
}

// ShowAccounts lists the accounts derived from the configured keys
type ShowAccounts struct {
	config *config.RuntimeConfig
	store  DeploymentStore
	coins  BalanceReader
	tokens TokenBalanceReader
	log    *slog.Logger
	sink   ProgressSink
}

// NewShowAccounts creates a new ShowAccounts use case
func NewShowAccounts(
	cfg *config.RuntimeConfig,
	store DeploymentStore,
	coins BalanceReader,
	tokens TokenBalanceReader,
	log *slog.Logger,
	sink ProgressSink,
) *ShowAccounts {
	return &ShowAccounts{
		config: cfg,
		store:  store,
		coins:  coins,
		tokens: tokens,
		log:    log,
		sink:   sink,
	}
}

// ShowAccountsParams contains parameters for showing accounts
type ShowAccountsParams struct {
	// Offline skips balance lookups
	Offline bool
}

// Run executes the use case. Balance lookups are best effort.
func (uc *ShowAccounts) Run(ctx context.Context, params ShowAccountsParams) (*ShowAccountsResult, error) {
	accounts, err := NewAccountSet(uc.config.PrivateKeys)
	if err != nil {
		return nil, err
	}

	result := &ShowAccountsResult{Network: uc.config.NetworkName}
	if !params.Offline && uc.store.Exists() {
		addresses, err := uc.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		if token, ok := addresses[domain.TokenContract]; ok {
			result.Token = &token
		}
	}

	all := accounts.All()
	for i, account := range all {
		entry := AccountBalance{Account: account}
		if !params.Offline {
			uc.sink.OnProgress(ctx, ProgressEvent{
				Stage:   "balances",
				Current: i + 1,
				Total:   len(all),
				Message: "Reading balances of " + account.Label(),
				Spinner: true,
			})
			entry.Balance, entry.TokenBalance = uc.balances(ctx, account.Address, result.Token)
		}
		result.Accounts = append(result.Accounts, entry)
	}

	return result, nil
}

func (uc *ShowAccounts) balances(ctx context.Context, holder common.Address, token *common.Address) (coin, tokens *domain.Amount) {
	if raw, err := uc.coins.BalanceAt(ctx, holder); err != nil {
		uc.log.Warn("Failed to read balance", "address", holder.Hex(), "error", err)
	} else {
		amount := domain.NewAmount(raw)
		coin = &amount
	}

	if token == nil {
		return coin, nil
	}
	if raw, err := uc.tokens.TokenBalanceAt(ctx, *token, holder); err != nil {
		uc.log.Warn("Failed to read token balance", "address", holder.Hex(), "error", err)
	} else {
		amount := domain.NewAmount(raw)
		tokens = &amount
	}
	return coin, tokens
}
