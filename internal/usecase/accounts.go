package usecase

import (
	"fmt"
	"strings"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/ethereum/go-ethereum/crypto"
)

// NewAccountSet derives the deployment accounts from private keys given in
// role order: deployer, owner, fee account, then the token owners.
func NewAccountSet(keys []string) (*models.AccountSet, error) {
	if len(keys) < models.AccountCount {
		return nil, fmt.Errorf("%w: need %d, got %d", domain.ErrInsufficientKeys, models.AccountCount, len(keys))
	}

	accounts := make([]*models.Account, models.AccountCount)
	for i := range accounts {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(keys[i]), "0x"))
		if err != nil {
			return nil, fmt.Errorf("%w at position %d: %v", domain.ErrInvalidKey, i, err)
		}
		accounts[i] = &models.Account{
			Key:     key,
			Address: crypto.PubkeyToAddress(key.PublicKey),
		}
	}

	set := &models.AccountSet{
		Deployer:   accounts[0],
		Owner:      accounts[1],
		FeeAccount: accounts[2],
	}
	set.Deployer.Role = models.RoleDeployer
	set.Owner.Role = models.RoleOwner
	set.FeeAccount.Role = models.RoleFeeAccount
	for i := range models.TokenOwnerCount {
		owner := accounts[3+i]
		owner.Role = models.RoleTokenOwner
		owner.Index = i
		set.TokenOwners[i] = owner
	}

	return set, nil
}
