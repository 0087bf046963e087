package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
)

// CheckDeploymentExists checks if a contract exists at the given address
func (c *Client) CheckDeploymentExists(ctx context.Context, address common.Address) (exists bool, reason string, err error) {
	rpc, _, err := c.connect(ctx)
	if err != nil {
		return false, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := rpc.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Sprintf("failed to check code: %v", err), nil
	}

	// If no code at address, contract doesn't exist
	if len(code) == 0 {
		return false, "no code at address", nil
	}

	return true, "", nil
}

var _ usecase.BlockchainChecker = (*Client)(nil)
