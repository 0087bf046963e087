package domain

import "fmt"

// Contract interface names. They double as registry keys and as keys in the
// persisted deployments file.
const (
	MultiSigWalletFactoryContract = "MultiSigWalletFactory"
	MultiSigWalletContract        = "MultiSigWallet"
	TokenContract                 = "ACC"
)

// Events and fields read back from receipts
const (
	EventContractInstantiation = "ContractInstantiation"
	EventSubmission            = "Submission"
	EventExecution             = "Execution"

	FieldWallet        = "wallet"
	FieldTransactionID = "transactionId"
)

// DefaultRequiredConfirmations is the multi-sig approval threshold used when
// creating the owner wallet
const DefaultRequiredConfirmations = 2

// CheckRequiredConfirmations rejects a threshold a wallet with owners members can't reach
func CheckRequiredConfirmations(required, owners int) error {
	if required < 1 || required > owners {
		return fmt.Errorf("%w: %d, must be between 1 and %d", ErrInvalidConfirmations, required, owners)
	}
	return nil
}

// OwnerWalletName is the name the factory records for the created wallet
const OwnerWalletName = "OwnerWallet"
