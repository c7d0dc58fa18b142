package safeapi

import "encoding/json"

type SafeServiceInfoSettings struct {
	AwsConfigured                   bool   `json:"AWS_CONFIGURED"`
	AwsS3CustomDomain               string `json:"AWS_S3_CUSTOM_DOMAIN"`
	EthereumNodeURL                 string `json:"ETHEREUM_NODE_URL"`
	EthereumTracingNodeURL          string `json:"ETHEREUM_TRACING_NODE_URL"`
	EthInternalTxsBlockProcessLimit int    `json:"ETH_INTERNAL_TXS_BLOCK_PROCESS_LIMIT"`
	EthInternalNoFilter             bool   `json:"ETH_INTERNAL_NO_FILTER"`
	EthReorgBlocks                  int    `json:"ETH_REORG_BLOCKS"`
	TokensLogoBaseURI               string `json:"TOKENS_LOGO_BASE_URI"`
	TokensLogoExtension             string `json:"TOKENS_LOGO_EXTENSION"`
}

type SafeServiceInfoResponse struct {
	Name       string                  `json:"name"`
	Version    string                  `json:"version"`
	APIVersion string                  `json:"api_version"`
	Secure     bool                    `json:"secure"`
	Settings   SafeServiceInfoSettings `json:"settings"`
}

type MasterCopyResponse struct {
	Address                string `json:"address"`
	Version                string `json:"version"`
	Deployer               string `json:"deployer"`
	DeployedBlockNumber    int64  `json:"deployedBlockNumber"`
	LastIndexedBlockNumber int64  `json:"lastIndexedBlockNumber"`
	L2                     bool   `json:"l2"`
}

type OwnerResponse struct {
	Safes []string `json:"safes"`
}

type ModulesResponse struct {
	Safes []string `json:"safes"`
}

type SafeMultisigConfirmationResponse struct {
	Owner            string  `json:"owner"`
	SubmissionDate   string  `json:"submissionDate"`
	TransactionHash  *string `json:"transactionHash,omitempty"`
	ConfirmationType *string `json:"confirmationType,omitempty"`
	Signature        string  `json:"signature"`
	SignatureType    *string `json:"signatureType,omitempty"`
}

type SafeMultisigConfirmationListResponse struct {
	Count    int                                `json:"count"`
	Next     *string                            `json:"next,omitempty"`
	Previous *string                            `json:"previous,omitempty"`
	Results  []SafeMultisigConfirmationResponse `json:"results"`
}

type SignatureResponse struct {
	Signature string `json:"signature"`
}

type SafeMultisigTransactionResponse struct {
	Safe                  string                             `json:"safe"`
	To                    string                             `json:"to"`
	Value                 string                             `json:"value"`
	Data                  *string                            `json:"data,omitempty"`
	Operation             int                                `json:"operation"`
	GasToken              string                             `json:"gasToken"`
	SafeTxGas             int64                              `json:"safeTxGas"`
	BaseGas               int64                              `json:"baseGas"`
	GasPrice              string                             `json:"gasPrice"`
	RefundReceiver        *string                            `json:"refundReceiver,omitempty"`
	Nonce                 int64                              `json:"nonce"`
	ExecutionDate         *string                            `json:"executionDate,omitempty"`
	SubmissionDate        string                             `json:"submissionDate"`
	Modified              string                             `json:"modified"`
	BlockNumber           *int64                             `json:"blockNumber,omitempty"`
	TransactionHash       *string                            `json:"transactionHash,omitempty"`
	SafeTxHash            string                             `json:"safeTxHash"`
	Executor              *string                            `json:"executor,omitempty"`
	IsExecuted            bool                               `json:"isExecuted"`
	IsSuccessful          *bool                              `json:"isSuccessful,omitempty"`
	EthGasPrice           *string                            `json:"ethGasPrice,omitempty"`
	GasUsed               *int64                             `json:"gasUsed,omitempty"`
	Fee                   *string                            `json:"fee,omitempty"`
	Origin                *string                            `json:"origin,omitempty"`
	DataDecoded           json.RawMessage                    `json:"dataDecoded,omitempty"`
	ConfirmationsRequired int                                `json:"confirmationsRequired"`
	Confirmations         []SafeMultisigConfirmationResponse `json:"confirmations,omitempty"`
	Trusted               bool                               `json:"trusted"`
	Signatures            *string                            `json:"signatures,omitempty"`
}

type SafeMultisigTransactionListResponse struct {
	Count    int                               `json:"count"`
	Next     *string                           `json:"next,omitempty"`
	Previous *string                           `json:"previous,omitempty"`
	Results  []SafeMultisigTransactionResponse `json:"results"`
}

type SafeInfoResponse struct {
	Address         string   `json:"address"`
	Nonce           int64    `json:"nonce"`
	Threshold       int      `json:"threshold"`
	Owners          []string `json:"owners"`
	MasterCopy      string   `json:"masterCopy"`
	Modules         []string `json:"modules"`
	FallbackHandler string   `json:"fallbackHandler"`
	Guard           string   `json:"guard"`
	Version         string   `json:"version"`
}

type SafeDelegateResponse struct {
	Safe      *string `json:"safe,omitempty"`
	Delegate  string  `json:"delegate"`
	Delegator string  `json:"delegator"`
	Label     string  `json:"label"`
}

type SafeDelegateListResponse struct {
	Count    int                    `json:"count"`
	Next     *string                `json:"next,omitempty"`
	Previous *string                `json:"previous,omitempty"`
	Results  []SafeDelegateResponse `json:"results"`
}

type SafeCreationInfoResponse struct {
	Created         string          `json:"created"`
	Creator         string          `json:"creator"`
	TransactionHash string          `json:"transactionHash"`
	FactoryAddress  string          `json:"factoryAddress"`
	MasterCopy      string          `json:"masterCopy"`
	SetupData       string          `json:"setupData"`
	DataDecoded     json.RawMessage `json:"dataDecoded,omitempty"`
}

type SafeMultisigTransactionEstimateResponse struct {
	SafeTxGas string `json:"safeTxGas"`
}

type TransferResponse struct {
	Type            *string `json:"type,omitempty"`
	ExecutionDate   string  `json:"executionDate"`
	BlockNumber     int64   `json:"blockNumber"`
	TransactionHash string  `json:"transactionHash"`
	To              string  `json:"to"`
	Value           *string `json:"value,omitempty"`
	TokenID         *string `json:"tokenId,omitempty"`
	TokenAddress    *string `json:"tokenAddress,omitempty"`
	From            string  `json:"from"`
}

type TransferListResponse struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next,omitempty"`
	Previous *string            `json:"previous,omitempty"`
	Results  []TransferResponse `json:"results"`
}

type SafeModuleTransaction struct {
	Created         *string         `json:"created,omitempty"`
	ExecutionDate   string          `json:"executionDate"`
	BlockNumber     *int64          `json:"blockNumber,omitempty"`
	IsSuccessful    *bool           `json:"isSuccessful,omitempty"`
	TransactionHash *string         `json:"transactionHash,omitempty"`
	Safe            string          `json:"safe"`
	Module          string          `json:"module"`
	To              string          `json:"to"`
	Value           string          `json:"value"`
	Data            string          `json:"data"`
	Operation       int             `json:"operation"`
	DataDecoded     json.RawMessage `json:"dataDecoded,omitempty"`
}

type SafeModuleTransactionListResponse struct {
	Count    int                     `json:"count"`
	Next     *string                 `json:"next,omitempty"`
	Previous *string                 `json:"previous,omitempty"`
	Results  []SafeModuleTransaction `json:"results"`
}

type AllTransactionsListResponse struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next,omitempty"`
	Previous *string           `json:"previous,omitempty"`
	Results  []json.RawMessage `json:"results"`
}

type TokenInfoResponse struct {
	Type     *string `json:"type,omitempty"`
	Address  string  `json:"address"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Decimals int     `json:"decimals"`
	LogoURI  *string `json:"logoUri,omitempty"`
}

type TokenInfoListResponse struct {
	Count    int                 `json:"count"`
	Next     *string             `json:"next,omitempty"`
	Previous *string             `json:"previous,omitempty"`
	Results  []TokenInfoResponse `json:"results"`
}

// OperationType is the execution mode code the Safe contracts use.
type OperationType int

const (
	OperationTypeCall         OperationType = 0
	OperationTypeDelegateCall OperationType = 1
)

type SafeMultisigTransactionEstimate struct {
	To        string        `json:"to"`
	Value     string        `json:"value"`
	Data      *string       `json:"data,omitempty"`
	Operation OperationType `json:"operation"`
}

type SafeTransactionData struct {
	To             string        `json:"to"`
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

type ProposeTransactionProps struct {
	SafeAddress         string
	SafeTransactionData SafeTransactionData
	SafeTxHash          string
	SenderAddress       string
	SenderSignature     string
	Origin              *string
}

type GetSafeDelegateProps struct {
	SafeAddress      *string
	DelegateAddress  *string
	DelegatorAddress *string
	Label            *string
	Limit            *int
	Offset           *int
}

type AddSafeDelegateProps struct {
	SafeAddress      *string
	DelegateAddress  string
	DelegatorAddress string
	Label            string
	Signer           Signer
}

type DeleteSafeDelegateProps struct {
	DelegateAddress  string
	DelegatorAddress string
	Signer           Signer
}

type AllTransactionsOptions struct {
	Executed *bool
	Queued   *bool
	Trusted  *bool
}
