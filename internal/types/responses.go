package types

import "github.com/vultisig/safe-api-plugin/internal/safeapi"

// Response records handed back to the host. Fixed-shape records are the
// transaction service records themselves; records with open-ended JSON
// members shadow those members with their JSON text.

type (
	SafeServiceInfoResponse                 = safeapi.SafeServiceInfoResponse
	MasterCopyResponse                      = safeapi.MasterCopyResponse
	OwnerResponse                           = safeapi.OwnerResponse
	ModulesResponse                         = safeapi.ModulesResponse
	SafeMultisigConfirmationResponse        = safeapi.SafeMultisigConfirmationResponse
	SafeMultisigConfirmationListResponse    = safeapi.SafeMultisigConfirmationListResponse
	SignatureResponse                       = safeapi.SignatureResponse
	SafeInfoResponse                        = safeapi.SafeInfoResponse
	SafeDelegateResponse                    = safeapi.SafeDelegateResponse
	SafeDelegateListResponse                = safeapi.SafeDelegateListResponse
	SafeMultisigTransactionEstimateResponse = safeapi.SafeMultisigTransactionEstimateResponse
	TransferResponse                        = safeapi.TransferResponse
	TransferListResponse                    = safeapi.TransferListResponse
	TokenInfoResponse                       = safeapi.TokenInfoResponse
	TokenInfoListResponse                   = safeapi.TokenInfoListResponse
)

type SafeMultisigTransactionResponse struct {
	safeapi.SafeMultisigTransactionResponse
	DataDecoded *string `json:"dataDecoded,omitempty"`
}

type SafeMultisigTransactionListResponse struct {
	Count    int                               `json:"count"`
	Next     *string                           `json:"next,omitempty"`
	Previous *string                           `json:"previous,omitempty"`
	Results  []SafeMultisigTransactionResponse `json:"results"`
}

type SafeModuleTransaction struct {
	safeapi.SafeModuleTransaction
	DataDecoded *string `json:"dataDecoded,omitempty"`
}

type SafeModuleTransactionListResponse struct {
	Count    int                     `json:"count"`
	Next     *string                 `json:"next,omitempty"`
	Previous *string                 `json:"previous,omitempty"`
	Results  []SafeModuleTransaction `json:"results"`
}

type SafeCreationInfoResponse struct {
	safeapi.SafeCreationInfoResponse
	DataDecoded *string `json:"dataDecoded,omitempty"`
}

// AllTransactionsListResponse carries each entry as JSON text: entries are
// a union of multisig, module and ethereum transactions.
type AllTransactionsListResponse struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next,omitempty"`
	Previous *string  `json:"previous,omitempty"`
	Results  []string `json:"results"`
}
