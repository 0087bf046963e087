package usecase

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
)

// Token calls executed by the multi-sig wallet on behalf of its members
var (
	funcMint     = w3.MustNewFunc("mint(uint256)", "")
	funcTransfer = w3.MustNewFunc("transfer(address,uint256)", "bool")
)

func encodeMint(amount *big.Int) ([]byte, error) {
	return funcMint.EncodeArgs(amount)
}

func encodeTransfer(to common.Address, amount *big.Int) ([]byte, error) {
	return funcTransfer.EncodeArgs(to, amount)
}
