package safe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/safe-api-plugin/internal/safeapi"
	"github.com/vultisig/safe-api-plugin/plugin"
)

const (
	PluginName    = "safe-api-kit"
	PluginVersion = "0.1.0"
)

// Service is the transaction service client the plugin delegates to.
// *safeapi.Client implements it.
type Service interface {
	GetServiceInfo(ctx context.Context) (*safeapi.SafeServiceInfoResponse, error)
	GetServiceMasterCopiesInfo(ctx context.Context) ([]safeapi.MasterCopyResponse, error)
	DecodeData(ctx context.Context, data string) (json.RawMessage, error)
	GetSafesByOwner(ctx context.Context, ownerAddress string) (*safeapi.OwnerResponse, error)
	GetSafesByModule(ctx context.Context, moduleAddress string) (*safeapi.ModulesResponse, error)
	GetTransaction(ctx context.Context, safeTxHash string) (*safeapi.SafeMultisigTransactionResponse, error)
	GetTransactionConfirmations(ctx context.Context, safeTxHash string) (*safeapi.SafeMultisigConfirmationListResponse, error)
	ConfirmTransaction(ctx context.Context, safeTxHash, signature string) (*safeapi.SignatureResponse, error)
	GetSafeInfo(ctx context.Context, safeAddress string) (*safeapi.SafeInfoResponse, error)
	GetSafeDelegates(ctx context.Context, props safeapi.GetSafeDelegateProps) (*safeapi.SafeDelegateListResponse, error)
	AddSafeDelegate(ctx context.Context, props safeapi.AddSafeDelegateProps) (*safeapi.SafeDelegateResponse, error)
	RemoveSafeDelegate(ctx context.Context, props safeapi.DeleteSafeDelegateProps) error
	GetSafeCreationInfo(ctx context.Context, safeAddress string) (*safeapi.SafeCreationInfoResponse, error)
	EstimateSafeTransaction(ctx context.Context, safeAddress string, safeTransaction safeapi.SafeMultisigTransactionEstimate) (*safeapi.SafeMultisigTransactionEstimateResponse, error)
	ProposeTransaction(ctx context.Context, props safeapi.ProposeTransactionProps) error
	GetIncomingTransactions(ctx context.Context, safeAddress string) (*safeapi.TransferListResponse, error)
	GetModuleTransactions(ctx context.Context, safeAddress string) (*safeapi.SafeModuleTransactionListResponse, error)
	GetMultisigTransactions(ctx context.Context, safeAddress string) (*safeapi.SafeMultisigTransactionListResponse, error)
	GetPendingTransactions(ctx context.Context, safeAddress string, currentNonce *int) (*safeapi.SafeMultisigTransactionListResponse, error)
	GetAllTransactions(ctx context.Context, safeAddress string, options safeapi.AllTransactionsOptions) (*safeapi.AllTransactionsListResponse, error)
	GetNextNonce(ctx context.Context, safeAddress string) (int64, error)
	GetTokenList(ctx context.Context) (*safeapi.TokenInfoListResponse, error)
	GetToken(ctx context.Context, tokenAddress string) (*safeapi.TokenInfoResponse, error)
}

var _ Service = (*safeapi.Client)(nil)
var _ plugin.Plugin = (*SafePlugin)(nil)

var ErrNoSigner = errors.New("no signer configured")

// SafePlugin exposes the transaction service to the plugin host. It keeps
// no state between calls besides its configuration.
type SafePlugin struct {
	service   Service
	signer    safeapi.Signer
	addresses AddressPolicy
	validate  *validator.Validate
	methods   map[string]handler
	logger    logrus.FieldLogger
}

func NewSafePlugin(cfg Config, logger logrus.FieldLogger) (*SafePlugin, error) {
	var opts []safeapi.Option
	if cfg.Timeout > 0 {
		opts = append(opts, safeapi.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	client, err := safeapi.NewClient(safeapi.Config{
		TxServiceURL: cfg.TxServiceURL,
		ChainAdapter: cfg.ChainAdapter,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return NewSafePluginWithService(client, cfg, logger), nil
}

// NewSafePluginWithService builds the plugin around an existing service
// client. Only the signer and address policy of cfg are used.
func NewSafePluginWithService(service Service, cfg Config, logger logrus.FieldLogger) *SafePlugin {
	addresses := cfg.AddressPolicy
	if addresses == nil {
		addresses = ChecksumAddressPolicy{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	p := &SafePlugin{
		service:   service,
		signer:    cfg.Signer,
		addresses: addresses,
		validate:  validator.New(),
		logger:    logger.WithField("plugin", PluginName),
	}
	p.methods = p.registerMethods()
	return p
}

func (p *SafePlugin) Name() string {
	return PluginName
}

func (p *SafePlugin) Version() string {
	return PluginVersion
}
