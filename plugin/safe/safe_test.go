package safe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vcommon "github.com/vultisig/safe-api-plugin/common"
	"github.com/vultisig/safe-api-plugin/internal/safeapi"
	"github.com/vultisig/safe-api-plugin/internal/types"
	"github.com/vultisig/safe-api-plugin/plugin"
)

const (
	safeLower     = "0xa49a88055ce0d972f6f6b9af0843fe4c9e9e5ec5"
	safeChecksum  = "0xa49A88055Ce0D972F6f6b9AF0843Fe4C9E9e5Ec5"
	ownerChecksum = "0x937F5b32Bc3cafcd1B02462F93e6AE5a843f6C6A"
	otherSafe     = "0x8c3FA50473065f1D90f186cA8ba1Aa76Aee409Bb"
)

var errRemote = &safeapi.HTTPError{StatusCode: 422, Message: "Signature does not match"}

// stubService records the arguments of the last call of each method.
type stubService struct {
	calls int
	err   error

	gotAddress       string
	gotDelegateProps safeapi.GetSafeDelegateProps
	gotAddDelegate   safeapi.AddSafeDelegateProps
	gotRemove        safeapi.DeleteSafeDelegateProps
	gotEstimate      safeapi.SafeMultisigTransactionEstimate
	gotPropose       safeapi.ProposeTransactionProps
	gotNonce         *int
	gotAllOptions    safeapi.AllTransactionsOptions

	safes           []string
	decoded         json.RawMessage
	multisig        []safeapi.SafeMultisigTransactionResponse
	allTransactions []json.RawMessage
	creationDecoded json.RawMessage
	nextNonce       int64
}

func (s *stubService) record(address string) error {
	s.calls++
	s.gotAddress = address
	return s.err
}

func (s *stubService) GetServiceInfo(context.Context) (*safeapi.SafeServiceInfoResponse, error) {
	if err := s.record(""); err != nil {
		return nil, err
	}
	return &safeapi.SafeServiceInfoResponse{Name: "Safe Transaction Service", Version: "4.21.2"}, nil
}

func (s *stubService) GetServiceMasterCopiesInfo(context.Context) ([]safeapi.MasterCopyResponse, error) {
	if err := s.record(""); err != nil {
		return nil, err
	}
	return []safeapi.MasterCopyResponse{{Address: safeChecksum, Version: "1.3.0"}}, nil
}

func (s *stubService) DecodeData(_ context.Context, data string) (json.RawMessage, error) {
	if err := s.record(data); err != nil {
		return nil, err
	}
	return s.decoded, nil
}

func (s *stubService) GetSafesByOwner(_ context.Context, owner string) (*safeapi.OwnerResponse, error) {
	if err := s.record(owner); err != nil {
		return nil, err
	}
	return &safeapi.OwnerResponse{Safes: s.safes}, nil
}

func (s *stubService) GetSafesByModule(_ context.Context, module string) (*safeapi.ModulesResponse, error) {
	if err := s.record(module); err != nil {
		return nil, err
	}
	return &safeapi.ModulesResponse{Safes: s.safes}, nil
}

func (s *stubService) GetTransaction(_ context.Context, hash string) (*safeapi.SafeMultisigTransactionResponse, error) {
	if err := s.record(hash); err != nil {
		return nil, err
	}
	return &s.multisig[0], nil
}

func (s *stubService) GetTransactionConfirmations(_ context.Context, hash string) (*safeapi.SafeMultisigConfirmationListResponse, error) {
	if err := s.record(hash); err != nil {
		return nil, err
	}
	return &safeapi.SafeMultisigConfirmationListResponse{Count: 1, Results: []safeapi.SafeMultisigConfirmationResponse{{Owner: ownerChecksum}}}, nil
}

func (s *stubService) ConfirmTransaction(_ context.Context, hash, signature string) (*safeapi.SignatureResponse, error) {
	if err := s.record(hash); err != nil {
		return nil, err
	}
	return &safeapi.SignatureResponse{Signature: signature}, nil
}

func (s *stubService) GetSafeInfo(_ context.Context, safe string) (*safeapi.SafeInfoResponse, error) {
	if err := s.record(safe); err != nil {
		return nil, err
	}
	return &safeapi.SafeInfoResponse{Address: safe, Nonce: 7, Threshold: 2, Owners: []string{ownerChecksum}}, nil
}

func (s *stubService) GetSafeDelegates(_ context.Context, props safeapi.GetSafeDelegateProps) (*safeapi.SafeDelegateListResponse, error) {
	s.gotDelegateProps = props
	if err := s.record(""); err != nil {
		return nil, err
	}
	return &safeapi.SafeDelegateListResponse{}, nil
}

func (s *stubService) AddSafeDelegate(_ context.Context, props safeapi.AddSafeDelegateProps) (*safeapi.SafeDelegateResponse, error) {
	s.gotAddDelegate = props
	if err := s.record(props.DelegateAddress); err != nil {
		return nil, err
	}
	return &safeapi.SafeDelegateResponse{Delegate: props.DelegateAddress, Delegator: props.DelegatorAddress, Label: props.Label}, nil
}

func (s *stubService) RemoveSafeDelegate(_ context.Context, props safeapi.DeleteSafeDelegateProps) error {
	s.gotRemove = props
	return s.record(props.DelegateAddress)
}

func (s *stubService) GetSafeCreationInfo(_ context.Context, safe string) (*safeapi.SafeCreationInfoResponse, error) {
	if err := s.record(safe); err != nil {
		return nil, err
	}
	return &safeapi.SafeCreationInfoResponse{Creator: ownerChecksum, DataDecoded: s.creationDecoded}, nil
}

func (s *stubService) EstimateSafeTransaction(_ context.Context, safe string, tx safeapi.SafeMultisigTransactionEstimate) (*safeapi.SafeMultisigTransactionEstimateResponse, error) {
	s.gotEstimate = tx
	if err := s.record(safe); err != nil {
		return nil, err
	}
	return &safeapi.SafeMultisigTransactionEstimateResponse{SafeTxGas: "42000"}, nil
}

func (s *stubService) ProposeTransaction(_ context.Context, props safeapi.ProposeTransactionProps) error {
	s.gotPropose = props
	return s.record(props.SafeAddress)
}

func (s *stubService) GetIncomingTransactions(_ context.Context, safe string) (*safeapi.TransferListResponse, error) {
	if err := s.record(safe); err != nil {
		return nil, err
	}
	return &safeapi.TransferListResponse{}, nil
}

func (s *stubService) GetModuleTransactions(_ context.Context, safe string) (*safeapi.SafeModuleTransactionListResponse, error) {
	if err := s.record(safe); err != nil {
		return nil, err
	}
	return &safeapi.SafeModuleTransactionListResponse{
		Count:   1,
		Results: []safeapi.SafeModuleTransaction{{Safe: safe, DataDecoded: json.RawMessage(`{"method": "transfer"}`)}},
	}, nil
}

func (s *stubService) GetMultisigTransactions(_ context.Context, safe string) (*safeapi.SafeMultisigTransactionListResponse, error) {
	if err := s.record(safe); err != nil {
		return nil, err
	}
	return &safeapi.SafeMultisigTransactionListResponse{Count: len(s.multisig), Results: s.multisig}, nil
}

func (s *stubService) GetPendingTransactions(_ context.Context, safe string, nonce *int) (*safeapi.SafeMultisigTransactionListResponse, error) {
	s.gotNonce = nonce
	if err := s.record(safe); err != nil {
		return nil, err
	}
	return &safeapi.SafeMultisigTransactionListResponse{Count: len(s.multisig), Results: s.multisig}, nil
}

func (s *stubService) GetAllTransactions(_ context.Context, safe string, options safeapi.AllTransactionsOptions) (*safeapi.AllTransactionsListResponse, error) {
	s.gotAllOptions = options
	if err := s.record(safe); err != nil {
		return nil, err
	}
	return &safeapi.AllTransactionsListResponse{Count: len(s.allTransactions), Results: s.allTransactions}, nil
}

func (s *stubService) GetNextNonce(_ context.Context, safe string) (int64, error) {
	if err := s.record(safe); err != nil {
		return 0, err
	}
	return s.nextNonce, nil
}

func (s *stubService) GetTokenList(context.Context) (*safeapi.TokenInfoListResponse, error) {
	if err := s.record(""); err != nil {
		return nil, err
	}
	return &safeapi.TokenInfoListResponse{}, nil
}

func (s *stubService) GetToken(_ context.Context, token string) (*safeapi.TokenInfoResponse, error) {
	if err := s.record(token); err != nil {
		return nil, err
	}
	return &safeapi.TokenInfoResponse{Address: token, Symbol: "WETH", Decimals: 18}, nil
}

type stubSigner struct{}

func (stubSigner) Address() common.Address {
	return common.HexToAddress(ownerChecksum)
}

func (stubSigner) SignMessage(context.Context, []byte) ([]byte, error) {
	return make([]byte, 65), nil
}

func newTestPlugin(t *testing.T, svc *stubService, policy AddressPolicy) *SafePlugin {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewSafePluginWithService(svc, Config{Signer: stubSigner{}, AddressPolicy: policy}, logger)
}

func TestGetSafeInfoChecksumsAddress(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	info, err := p.GetSafeInfo(context.Background(), types.GetSafeInfoArgs{SafeAddress: safeLower})
	require.NoError(t, err)
	assert.Equal(t, safeChecksum, svc.gotAddress)
	assert.Equal(t, safeChecksum, info.Address)
}

func TestChecksumNormalizationIsCaseInsensitive(t *testing.T) {
	inputs := []string{
		safeLower,
		safeChecksum,
		"0xA49A88055CE0D972F6F6B9AF0843FE4C9E9E5EC5",
	}
	for _, input := range inputs {
		svc := &stubService{}
		p := newTestPlugin(t, svc, ChecksumAddressPolicy{})
		_, err := p.GetNextNonce(context.Background(), types.GetNextNonceArgs{SafeAddress: input})
		require.NoError(t, err)
		assert.Equal(t, safeChecksum, svc.gotAddress, "input %s", input)
	}
}

func TestIdentityPolicyForwardsAddress(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, IdentityAddressPolicy{})

	_, err := p.GetSafeInfo(context.Background(), types.GetSafeInfoArgs{SafeAddress: safeLower})
	require.NoError(t, err)
	assert.Equal(t, safeLower, svc.gotAddress)
}

func TestInvalidAddressFailsBeforeDelegation(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	_, err := p.GetToken(context.Background(), types.GetTokenArgs{TokenAddress: "0x1234"})
	require.ErrorIs(t, err, vcommon.ErrInvalidAddress)
	assert.Zero(t, svc.calls)
}

func TestBadChecksumIsRejected(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	_, err := p.Invoke(context.Background(), "getSafeInfo", json.RawMessage(`{"safeAddress":"0xa49a88055Ce0D972F6f6b9AF0843Fe4C9E9e5Ec5"}`))
	require.ErrorIs(t, err, vcommon.ErrInvalidAddress)
	assert.Equal(t, http.StatusBadRequest, plugin.StatusCode(err))
	assert.Zero(t, svc.calls)

	// the 0x prefix is optional
	_, err = p.GetSafeInfo(context.Background(), types.GetSafeInfoArgs{SafeAddress: safeLower[2:]})
	require.NoError(t, err)
	assert.Equal(t, safeChecksum, svc.gotAddress)
}

func TestGetSafesByModule(t *testing.T) {
	svc := &stubService{safes: []string{safeChecksum}}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	resp, err := p.GetSafesByModule(context.Background(), types.GetSafesByModuleArgs{ModuleAddress: "0x8c3fa50473065f1d90f186ca8ba1aa76aee409bb"})
	require.NoError(t, err)
	assert.Equal(t, otherSafe, svc.gotAddress)
	assert.Equal(t, []string{safeChecksum}, resp.Safes)
}

func TestTransactionHashMethodsForwardHash(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})
	ctx := context.Background()

	confirmations, err := p.GetTransactionConfirmations(ctx, types.GetTransactionConfirmationsArgs{SafeTxHash: "0xabc"})
	require.NoError(t, err)
	assert.Equal(t, "0xabc", svc.gotAddress)
	require.Len(t, confirmations.Results, 1)
	assert.Equal(t, ownerChecksum, confirmations.Results[0].Owner)

	sig, err := p.ConfirmTransaction(ctx, types.ConfirmTransactionArgs{SafeTxHash: "0xdef", Signature: "0x1234"})
	require.NoError(t, err)
	assert.Equal(t, "0xdef", svc.gotAddress)
	assert.Equal(t, "0x1234", sig.Signature)
}

func TestServiceAndTokenMethods(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})
	ctx := context.Background()

	copies, err := p.GetServiceMasterCopiesInfo(ctx, types.GetServiceMasterCopiesInfoArgs{})
	require.NoError(t, err)
	require.Len(t, copies, 1)
	assert.Equal(t, "1.3.0", copies[0].Version)

	_, err = p.GetTokenList(ctx, types.GetTokenListArgs{})
	require.NoError(t, err)
	assert.Equal(t, 2, svc.calls)

	token, err := p.GetToken(ctx, types.GetTokenArgs{TokenAddress: safeLower})
	require.NoError(t, err)
	assert.Equal(t, safeChecksum, svc.gotAddress)
	assert.Equal(t, safeChecksum, token.Address)
	assert.Equal(t, "WETH", token.Symbol)
}

func TestGetSafesByOwnerReturnsListUnmodified(t *testing.T) {
	svc := &stubService{safes: []string{safeChecksum, otherSafe}}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	resp, err := p.GetSafesByOwner(context.Background(), types.GetSafesByOwnerArgs{OwnerAddress: ownerChecksum})
	require.NoError(t, err)
	assert.Equal(t, ownerChecksum, svc.gotAddress)
	assert.Equal(t, []string{safeChecksum, otherSafe}, resp.Safes)
}

func validProposal() types.ProposeTransactionArgs {
	return types.ProposeTransactionArgs{
		SafeAddress: safeLower,
		SafeTransactionData: types.SafeTransactionData{
			To:        "0x937f5b32bc3cafcd1b02462f93e6ae5a843f6c6a",
			Value:     "1000",
			Data:      "0x",
			Operation: types.OperationTypeCall,
			Nonce:     7,
		},
		SafeTxHash:      "0xdeadbeef",
		SenderAddress:   "0x937f5b32bc3cafcd1b02462f93e6ae5a843f6c6a",
		SenderSignature: "0xsig",
	}
}

func TestProposeTransaction(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	args := validProposal()
	args.SafeTransactionData.Operation = types.OperationTypeDelegateCall
	args.Origin = types.Some("")

	ok, err := p.ProposeTransaction(context.Background(), args)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, safeChecksum, svc.gotPropose.SafeAddress)
	assert.Equal(t, ownerChecksum, svc.gotPropose.SenderAddress)
	assert.Equal(t, ownerChecksum, svc.gotPropose.SafeTransactionData.To)
	assert.Equal(t, safeapi.OperationTypeDelegateCall, svc.gotPropose.SafeTransactionData.Operation)
	assert.Nil(t, svc.gotPropose.Origin)
}

func TestProposeTransactionUnknownOperation(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	args := validProposal()
	args.SafeTransactionData.Operation = types.ParseOperationType("Unknown")

	ok, err := p.ProposeTransaction(context.Background(), args)
	require.ErrorIs(t, err, ErrUnknownOperationType)
	assert.Contains(t, err.Error(), "Unknown")
	assert.False(t, ok)
	assert.Zero(t, svc.calls)
}

func TestProposeTransactionRemoteFailure(t *testing.T) {
	svc := &stubService{err: errRemote}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	ok, err := p.ProposeTransaction(context.Background(), validProposal())
	require.Error(t, err)
	var httpErr *safeapi.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Signature does not match", httpErr.Message)
	assert.False(t, ok)
}

func TestEstimateSafeTransaction(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	resp, err := p.EstimateSafeTransaction(context.Background(), types.EstimateSafeTransactionArgs{
		SafeAddress: safeLower,
		SafeTransaction: types.SafeMultisigTransactionEstimate{
			To:        "0x937f5b32bc3cafcd1b02462f93e6ae5a843f6c6a",
			Value:     "0",
			Data:      types.Some(""),
			Operation: types.OperationTypeCall,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "42000", resp.SafeTxGas)
	assert.Equal(t, safeChecksum, svc.gotAddress)
	assert.Equal(t, ownerChecksum, svc.gotEstimate.To)
	assert.Nil(t, svc.gotEstimate.Data)
	assert.Equal(t, safeapi.OperationTypeCall, svc.gotEstimate.Operation)
}

func TestEstimateSafeTransactionUnknownOperation(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	_, err := p.EstimateSafeTransaction(context.Background(), types.EstimateSafeTransactionArgs{
		SafeAddress: safeLower,
		SafeTransaction: types.SafeMultisigTransactionEstimate{
			To:        ownerChecksum,
			Operation: types.ParseOperationType("2"),
		},
	})
	require.ErrorIs(t, err, ErrUnknownOperationType)
	assert.Zero(t, svc.calls)
}

func TestRemoveSafeDelegate(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	ok, err := p.RemoveSafeDelegate(context.Background(), types.RemoveSafeDelegateArgs{
		DelegateAddress:  safeLower,
		DelegatorAddress: "0x937f5b32bc3cafcd1b02462f93e6ae5a843f6c6a",
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, safeChecksum, svc.gotRemove.DelegateAddress)
	assert.Equal(t, ownerChecksum, svc.gotRemove.DelegatorAddress)
	assert.NotNil(t, svc.gotRemove.Signer)

	svc.err = errRemote
	ok, err = p.RemoveSafeDelegate(context.Background(), types.RemoveSafeDelegateArgs{
		DelegateAddress:  safeLower,
		DelegatorAddress: ownerChecksum,
	})
	require.ErrorIs(t, err, errRemote)
	assert.False(t, ok)
}

func TestDelegateMethodsRequireSigner(t *testing.T) {
	svc := &stubService{}
	p := NewSafePluginWithService(svc, Config{}, nil)

	_, err := p.AddSafeDelegate(context.Background(), types.AddSafeDelegateArgs{
		DelegateAddress:  safeChecksum,
		DelegatorAddress: ownerChecksum,
		Label:            "ops",
	})
	require.ErrorIs(t, err, ErrNoSigner)
	assert.Zero(t, svc.calls)
}

func TestAddSafeDelegate(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	resp, err := p.AddSafeDelegate(context.Background(), types.AddSafeDelegateArgs{
		SafeAddress:      types.Some(safeLower),
		DelegateAddress:  "0x8c3fa50473065f1d90f186ca8ba1aa76aee409bb",
		DelegatorAddress: ownerChecksum,
		Label:            "ops",
	})
	require.NoError(t, err)
	require.NotNil(t, svc.gotAddDelegate.SafeAddress)
	assert.Equal(t, safeChecksum, *svc.gotAddDelegate.SafeAddress)
	assert.Equal(t, otherSafe, svc.gotAddDelegate.DelegateAddress)
	assert.Equal(t, otherSafe, resp.Delegate)
	assert.Equal(t, stubSigner{}, svc.gotAddDelegate.Signer)
}

func TestGetSafeDelegatesDropsEmptyFields(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	_, err := p.GetSafeDelegates(context.Background(), types.GetSafeDelegatesArgs{
		SafeAddress:     types.Some(safeLower),
		DelegateAddress: types.Some(""),
		Label:           types.Some(""),
		Offset:          types.Some(0),
		Limit:           types.Some(0),
	})
	require.NoError(t, err)
	props := svc.gotDelegateProps
	require.NotNil(t, props.SafeAddress)
	assert.Equal(t, safeChecksum, *props.SafeAddress)
	assert.Nil(t, props.DelegateAddress)
	assert.Nil(t, props.DelegatorAddress)
	assert.Nil(t, props.Label)
	assert.Nil(t, props.Offset)
	assert.Nil(t, props.Limit)

	_, err = p.GetSafeDelegates(context.Background(), types.GetSafeDelegatesArgs{
		Label:  types.Some("ops"),
		Offset: types.Some(20),
		Limit:  types.Some(10),
	})
	require.NoError(t, err)
	props = svc.gotDelegateProps
	assert.Nil(t, props.SafeAddress)
	require.NotNil(t, props.Label)
	assert.Equal(t, "ops", *props.Label)
	require.NotNil(t, props.Offset)
	assert.Equal(t, 20, *props.Offset)
	require.NotNil(t, props.Limit)
	assert.Equal(t, 10, *props.Limit)
}

func TestGetPendingTransactionsNonce(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	_, err := p.GetPendingTransactions(context.Background(), types.GetPendingTransactionsArgs{SafeAddress: safeLower})
	require.NoError(t, err)
	assert.Nil(t, svc.gotNonce)

	// zero falls back to the Safe's own nonce
	_, err = p.GetPendingTransactions(context.Background(), types.GetPendingTransactionsArgs{
		SafeAddress:  safeLower,
		CurrentNonce: types.Some(0),
	})
	require.NoError(t, err)
	assert.Nil(t, svc.gotNonce)

	_, err = p.GetPendingTransactions(context.Background(), types.GetPendingTransactionsArgs{
		SafeAddress:  safeLower,
		CurrentNonce: types.Some(3),
	})
	require.NoError(t, err)
	require.NotNil(t, svc.gotNonce)
	assert.Equal(t, 3, *svc.gotNonce)
}

func TestGetAllTransactionsFalseOptionsAreAbsent(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	_, err := p.Invoke(context.Background(), "getAllTransactions", json.RawMessage(
		`{"safeAddress":"`+safeLower+`","options":{"executed":false,"queued":false,"trusted":false}}`))
	require.NoError(t, err)
	assert.Nil(t, svc.gotAllOptions.Executed)
	assert.Nil(t, svc.gotAllOptions.Queued)
	assert.Nil(t, svc.gotAllOptions.Trusted)
}

func TestGetAllTransactionsSerializesResults(t *testing.T) {
	entries := []json.RawMessage{
		json.RawMessage(`{"txType": "MULTISIG_TRANSACTION", "nonce": 4, "confirmations": [{"owner": "0x937F5b32Bc3cafcd1B02462F93e6AE5a843f6C6A"}]}`),
		json.RawMessage(`{"txType":"ETHEREUM_TRANSACTION","transfers":[]}`),
	}
	svc := &stubService{allTransactions: entries}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	resp, err := p.GetAllTransactions(context.Background(), types.GetAllTransactionsArgs{
		SafeAddress: safeLower,
		Options:     &types.AllTransactionsOptions{Executed: types.Some(true)},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, len(entries))
	for i, text := range resp.Results {
		var got, want any
		require.NoError(t, json.Unmarshal([]byte(text), &got))
		require.NoError(t, json.Unmarshal(entries[i], &want))
		assert.Equal(t, want, got)
	}
	require.NotNil(t, svc.gotAllOptions.Executed)
	assert.True(t, *svc.gotAllOptions.Executed)
	assert.Nil(t, svc.gotAllOptions.Queued)
	assert.Nil(t, svc.gotAllOptions.Trusted)
}

func TestDataDecodedBecomesText(t *testing.T) {
	svc := &stubService{
		multisig: []safeapi.SafeMultisigTransactionResponse{
			{SafeTxHash: "0x01", DataDecoded: json.RawMessage(`{"method": "approve", "parameters": []}`)},
			{SafeTxHash: "0x02", DataDecoded: json.RawMessage(`null`)},
		},
		creationDecoded: json.RawMessage(`{"method":"setup"}`),
	}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	list, err := p.GetMultisigTransactions(context.Background(), types.GetMultisigTransactionsArgs{SafeAddress: safeLower})
	require.NoError(t, err)
	require.Len(t, list.Results, 2)
	require.NotNil(t, list.Results[0].DataDecoded)
	assert.Equal(t, `{"method":"approve","parameters":[]}`, *list.Results[0].DataDecoded)
	assert.Nil(t, list.Results[1].DataDecoded)

	buf, err := json.Marshal(list.Results[0])
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(buf, &wire))
	assert.Equal(t, `{"method":"approve","parameters":[]}`, wire["dataDecoded"])

	info, err := p.GetSafeCreationInfo(context.Background(), types.GetSafeCreationInfoArgs{SafeAddress: safeLower})
	require.NoError(t, err)
	require.NotNil(t, info.DataDecoded)
	assert.Equal(t, `{"method":"setup"}`, *info.DataDecoded)
}

func TestModuleTransactionsDataDecodedBecomesText(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	list, err := p.GetModuleTransactions(context.Background(), types.GetModuleTransactionsArgs{SafeAddress: safeLower})
	require.NoError(t, err)
	assert.Equal(t, safeChecksum, svc.gotAddress)
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Results, 1)
	assert.Equal(t, safeChecksum, list.Results[0].Safe)
	require.NotNil(t, list.Results[0].DataDecoded)
	assert.Equal(t, `{"method":"transfer"}`, *list.Results[0].DataDecoded)
}

func TestDecodeData(t *testing.T) {
	svc := &stubService{decoded: json.RawMessage(`{"method": "transfer", "parameters": [{"name": "to"}]}`)}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})

	text, err := p.DecodeData(context.Background(), types.DecodeDataArgs{Data: "0xa9059cbb"})
	require.NoError(t, err)
	assert.Equal(t, `{"method":"transfer","parameters":[{"name":"to"}]}`, text)
	assert.Equal(t, "0xa9059cbb", svc.gotAddress)
}

func TestInvoke(t *testing.T) {
	svc := &stubService{nextNonce: 12}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})
	ctx := context.Background()

	out, err := p.Invoke(ctx, "getNextNonce", json.RawMessage(`{"safeAddress":"`+safeLower+`"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `12`, string(out))
	assert.Equal(t, safeChecksum, svc.gotAddress)

	out, err = p.Invoke(ctx, "getServiceInfo", nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Safe Transaction Service")

	out, err = p.Invoke(ctx, "removeSafeDelegate", json.RawMessage(`{"delegateAddress":"`+safeChecksum+`","delegatorAddress":"`+ownerChecksum+`"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `true`, string(out))
}

func TestInvokeErrors(t *testing.T) {
	svc := &stubService{}
	p := newTestPlugin(t, svc, ChecksumAddressPolicy{})
	ctx := context.Background()

	_, err := p.Invoke(ctx, "transferOwnership", nil)
	require.ErrorIs(t, err, plugin.ErrUnknownMethod)

	_, err = p.Invoke(ctx, "getSafeInfo", json.RawMessage(`{}`))
	require.ErrorIs(t, err, plugin.ErrInvalidArguments)

	_, err = p.Invoke(ctx, "getSafeInfo", json.RawMessage(`{"safeAddress": 12}`))
	require.ErrorIs(t, err, plugin.ErrInvalidArguments)

	proposal := `{
		"safeAddress": "` + safeLower + `",
		"safeTxHash": "0x01",
		"senderAddress": "` + ownerChecksum + `",
		"senderSignature": "0x02",
		"safeTransactionData": {"to": "` + ownerChecksum + `", "value": "0", "data": "0x", "operation": "Unknown", "nonce": 1}
	}`
	_, err = p.Invoke(ctx, "proposeTransaction", json.RawMessage(proposal))
	require.ErrorIs(t, err, ErrUnknownOperationType)
	assert.Equal(t, http.StatusBadRequest, plugin.StatusCode(err))
	assert.Zero(t, svc.calls)

	svc.err = errRemote
	_, err = p.Invoke(ctx, "getSafeInfo", json.RawMessage(`{"safeAddress":"`+safeLower+`"}`))
	require.ErrorIs(t, err, errRemote)
	assert.Equal(t, http.StatusBadGateway, plugin.StatusCode(err))
}

func TestMethods(t *testing.T) {
	p := newTestPlugin(t, &stubService{}, nil)
	methods := p.Methods()
	assert.Len(t, methods, 23)
	assert.Contains(t, methods, "getAllTransactions")
	assert.IsNonDecreasing(t, methods)
}
