package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrContractNotDeployed is returned when a step needs a contract the registry doesn't hold
	ErrContractNotDeployed = errors.New("contract is not deployed")

	// ErrUnknownNetwork is returned when the active network has no configuration entry
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrFactoryAddressMissing is returned when a network has no multi-sig wallet factory address
	ErrFactoryAddressMissing = errors.New("multi-sig wallet factory address not configured")

	// ErrInsufficientKeys is returned when fewer private keys than account roles are configured
	ErrInsufficientKeys = errors.New("insufficient private keys")

	// ErrInvalidKey is returned when a configured private key cannot be parsed
	ErrInvalidKey = errors.New("invalid private key")

	// ErrNoBytecode is returned when deploying a contract whose artifact carries no bytecode
	ErrNoBytecode = errors.New("contract artifact has no bytecode")

	// ErrUnknownContract is returned when no contract interface exists for a name
	ErrUnknownContract = errors.New("unknown contract interface")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrEventNotFound is returned when an expected event is absent from a receipt
	ErrEventNotFound = errors.New("event not found in receipt")

	// ErrTransactionMismatch is returned when a multi-sig execution doesn't match its submission
	ErrTransactionMismatch = errors.New("multi-sig transaction id mismatch")

	// ErrInvalidConfirmations is returned when the multi-sig threshold can't be met by the wallet owners
	ErrInvalidConfirmations = errors.New("invalid required confirmations")

	// ErrMalformedDeployments is returned when the persisted deployments file can't be decoded
	ErrMalformedDeployments = errors.New("malformed deployments file")
)

// MissingPrerequisiteErr reports the contracts a step needed but could not find
type MissingPrerequisiteErr struct {
	Step      string
	Contracts []string
}

func (e MissingPrerequisiteErr) Error() string {
	return fmt.Sprintf("step %s: %s: %s", e.Step, ErrContractNotDeployed, strings.Join(e.Contracts, ", "))
}

func (e MissingPrerequisiteErr) Unwrap() error {
	return ErrContractNotDeployed
}
