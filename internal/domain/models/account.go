package models

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// AccountRole names the part an account plays during deployment
type AccountRole string

const (
	RoleDeployer   AccountRole = "deployer"
	RoleOwner      AccountRole = "owner"
	RoleFeeAccount AccountRole = "feeAccount"
	RoleTokenOwner AccountRole = "tokenOwner"
)

// TokenOwnerCount is the number of multi-sig wallet members
const TokenOwnerCount = 3

// AccountCount is the number of keys needed to fill every role
const AccountCount = 3 + TokenOwnerCount

// Account is a signing identity
type Account struct {
	Role    AccountRole
	Index   int // position among accounts sharing a role
	Address common.Address
	Key     *ecdsa.PrivateKey `json:"-" yaml:"-"`
}

// Label returns a display name such as "tokenOwner[1]"
func (a *Account) Label() string {
	if a.Role == RoleTokenOwner {
		return fmt.Sprintf("%s[%d]", a.Role, a.Index)
	}
	return string(a.Role)
}

// AccountSet holds every account the deployment uses. It is created once at
// startup and never modified.
type AccountSet struct {
	Deployer    *Account
	Owner       *Account
	FeeAccount  *Account
	TokenOwners [TokenOwnerCount]*Account
}

// All returns the accounts in role order
func (s *AccountSet) All() []*Account {
	all := []*Account{s.Deployer, s.Owner, s.FeeAccount}
	return append(all, s.TokenOwners[:]...)
}

// TokenOwnerAddresses returns the multi-sig member addresses in order
func (s *AccountSet) TokenOwnerAddresses() []common.Address {
	addrs := make([]common.Address, 0, TokenOwnerCount)
	for _, owner := range s.TokenOwners {
		addrs = append(addrs, owner.Address)
	}
	return addrs
}
