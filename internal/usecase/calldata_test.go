package usecase

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMint(t *testing.T) {
	data, err := encodeMint(big.NewInt(1))
	require.NoError(t, err)

	assert.Equal(t, "0xa0712d68", hexutil.Encode(data[:4]))
	require.Len(t, data, 4+32)
	assert.Equal(t, common.LeftPadBytes([]byte{1}, 32), data[4:])
}

func TestEncodeTransfer(t *testing.T) {
	to := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	data, err := encodeTransfer(to, DistributionAmount.Value())
	require.NoError(t, err)

	assert.Equal(t, "0xa9059cbb", hexutil.Encode(data[:4]))
	require.Len(t, data, 4+64)
	assert.Equal(t, common.LeftPadBytes(to.Bytes(), 32), data[4:36])
	assert.Equal(t, 0, new(big.Int).SetBytes(data[36:]).Cmp(DistributionAmount.Value()))
}
