package types

// Argument records, one per plugin method. Field names follow the host
// schema.

type GetServiceInfoArgs struct{}

type GetServiceMasterCopiesInfoArgs struct{}

type DecodeDataArgs struct {
	Data string `json:"data" validate:"required"`
}

type GetSafesByOwnerArgs struct {
	OwnerAddress string `json:"ownerAddress" validate:"required"`
}

type GetSafesByModuleArgs struct {
	ModuleAddress string `json:"moduleAddress" validate:"required"`
}

type GetTransactionArgs struct {
	SafeTxHash string `json:"safeTxHash" validate:"required"`
}

type GetTransactionConfirmationsArgs struct {
	SafeTxHash string `json:"safeTxHash" validate:"required"`
}

type ConfirmTransactionArgs struct {
	SafeTxHash string `json:"safeTxHash" validate:"required"`
	Signature  string `json:"signature" validate:"required"`
}

type GetSafeInfoArgs struct {
	SafeAddress string `json:"safeAddress" validate:"required"`
}

type GetSafeDelegatesArgs struct {
	SafeAddress      Optional[string] `json:"safeAddress"`
	DelegateAddress  Optional[string] `json:"delegateAddress"`
	DelegatorAddress Optional[string] `json:"delegatorAddress"`
	Label            Optional[string] `json:"label"`
	Offset           Optional[int]    `json:"offset"`
	Limit            Optional[int]    `json:"limit"`
}

type AddSafeDelegateArgs struct {
	SafeAddress      Optional[string] `json:"safeAddress"`
	DelegateAddress  string           `json:"delegateAddress" validate:"required"`
	DelegatorAddress string           `json:"delegatorAddress" validate:"required"`
	Label            string           `json:"label" validate:"required"`
}

type RemoveSafeDelegateArgs struct {
	DelegateAddress  string `json:"delegateAddress" validate:"required"`
	DelegatorAddress string `json:"delegatorAddress" validate:"required"`
}

type GetSafeCreationInfoArgs struct {
	SafeAddress string `json:"safeAddress" validate:"required"`
}

type SafeMultisigTransactionEstimate struct {
	To        string           `json:"to" validate:"required"`
	Value     string           `json:"value"`
	Data      Optional[string] `json:"data"`
	Operation OperationType    `json:"operation"`
}

type EstimateSafeTransactionArgs struct {
	SafeAddress     string                          `json:"safeAddress" validate:"required"`
	SafeTransaction SafeMultisigTransactionEstimate `json:"safeTransaction"`
}

type SafeTransactionData struct {
	To             string        `json:"to" validate:"required"`
	Value          string        `json:"value"`
	Data           string        `json:"data"`
	Operation      OperationType `json:"operation"`
	SafeTxGas      string        `json:"safeTxGas"`
	BaseGas        string        `json:"baseGas"`
	GasPrice       string        `json:"gasPrice"`
	GasToken       string        `json:"gasToken"`
	RefundReceiver string        `json:"refundReceiver"`
	Nonce          int64         `json:"nonce"`
}

type ProposeTransactionArgs struct {
	SafeAddress         string              `json:"safeAddress" validate:"required"`
	SafeTransactionData SafeTransactionData `json:"safeTransactionData"`
	SafeTxHash          string              `json:"safeTxHash" validate:"required"`
	SenderAddress       string              `json:"senderAddress" validate:"required"`
	SenderSignature     string              `json:"senderSignature" validate:"required"`
	Origin              Optional[string]    `json:"origin"`
}

type GetIncomingTransactionsArgs struct {
	SafeAddress string `json:"safeAddress" validate:"required"`
}

type GetModuleTransactionsArgs struct {
	SafeAddress string `json:"safeAddress" validate:"required"`
}

type GetMultisigTransactionsArgs struct {
	SafeAddress string `json:"safeAddress" validate:"required"`
}

type GetPendingTransactionsArgs struct {
	SafeAddress  string        `json:"safeAddress" validate:"required"`
	CurrentNonce Optional[int] `json:"currentNonce"`
}

type AllTransactionsOptions struct {
	Executed Optional[bool] `json:"executed"`
	Queued   Optional[bool] `json:"queued"`
	Trusted  Optional[bool] `json:"trusted"`
}

type GetAllTransactionsArgs struct {
	SafeAddress string                  `json:"safeAddress" validate:"required"`
	Options     *AllTransactionsOptions `json:"options"`
}

type GetNextNonceArgs struct {
	SafeAddress string `json:"safeAddress" validate:"required"`
}

type GetTokenListArgs struct{}

type GetTokenArgs struct {
	TokenAddress string `json:"tokenAddress" validate:"required"`
}
