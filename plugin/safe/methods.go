package safe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/vultisig/safe-api-plugin/internal/safeapi"
	"github.com/vultisig/safe-api-plugin/internal/types"
)

func (p *SafePlugin) GetServiceInfo(ctx context.Context, _ types.GetServiceInfoArgs) (*types.SafeServiceInfoResponse, error) {
	return p.service.GetServiceInfo(ctx)
}

func (p *SafePlugin) GetServiceMasterCopiesInfo(ctx context.Context, _ types.GetServiceMasterCopiesInfoArgs) ([]types.MasterCopyResponse, error) {
	return p.service.GetServiceMasterCopiesInfo(ctx)
}

// DecodeData returns the decoded call data as JSON text.
func (p *SafePlugin) DecodeData(ctx context.Context, args types.DecodeDataArgs) (string, error) {
	decoded, err := p.service.DecodeData(ctx, args.Data)
	if err != nil {
		return "", err
	}
	return jsonText(decoded)
}

func (p *SafePlugin) GetSafesByOwner(ctx context.Context, args types.GetSafesByOwnerArgs) (*types.OwnerResponse, error) {
	owner, err := p.address(args.OwnerAddress)
	if err != nil {
		return nil, err
	}
	return p.service.GetSafesByOwner(ctx, owner)
}

func (p *SafePlugin) GetSafesByModule(ctx context.Context, args types.GetSafesByModuleArgs) (*types.ModulesResponse, error) {
	module, err := p.address(args.ModuleAddress)
	if err != nil {
		return nil, err
	}
	return p.service.GetSafesByModule(ctx, module)
}

func (p *SafePlugin) GetTransaction(ctx context.Context, args types.GetTransactionArgs) (*types.SafeMultisigTransactionResponse, error) {
	tx, err := p.service.GetTransaction(ctx, args.SafeTxHash)
	if err != nil {
		return nil, err
	}
	return toMultisigTransaction(*tx)
}

func (p *SafePlugin) GetTransactionConfirmations(ctx context.Context, args types.GetTransactionConfirmationsArgs) (*types.SafeMultisigConfirmationListResponse, error) {
	return p.service.GetTransactionConfirmations(ctx, args.SafeTxHash)
}

func (p *SafePlugin) ConfirmTransaction(ctx context.Context, args types.ConfirmTransactionArgs) (*types.SignatureResponse, error) {
	return p.service.ConfirmTransaction(ctx, args.SafeTxHash, args.Signature)
}

func (p *SafePlugin) GetSafeInfo(ctx context.Context, args types.GetSafeInfoArgs) (*types.SafeInfoResponse, error) {
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return nil, err
	}
	return p.service.GetSafeInfo(ctx, safe)
}

func (p *SafePlugin) GetSafeDelegates(ctx context.Context, args types.GetSafeDelegatesArgs) (*types.SafeDelegateListResponse, error) {
	var (
		props safeapi.GetSafeDelegateProps
		err   error
	)
	if props.SafeAddress, err = p.optionalAddress(args.SafeAddress); err != nil {
		return nil, err
	}
	if props.DelegateAddress, err = p.optionalAddress(args.DelegateAddress); err != nil {
		return nil, err
	}
	if props.DelegatorAddress, err = p.optionalAddress(args.DelegatorAddress); err != nil {
		return nil, err
	}
	props.Label = types.NonEmpty(args.Label).Ptr()
	props.Offset = types.NonZero(args.Offset).Ptr()
	props.Limit = types.NonZero(args.Limit).Ptr()
	return p.service.GetSafeDelegates(ctx, props)
}

func (p *SafePlugin) AddSafeDelegate(ctx context.Context, args types.AddSafeDelegateArgs) (*types.SafeDelegateResponse, error) {
	if p.signer == nil {
		return nil, ErrNoSigner
	}
	safe, err := p.optionalAddress(args.SafeAddress)
	if err != nil {
		return nil, err
	}
	delegate, err := p.address(args.DelegateAddress)
	if err != nil {
		return nil, err
	}
	delegator, err := p.address(args.DelegatorAddress)
	if err != nil {
		return nil, err
	}
	return p.service.AddSafeDelegate(ctx, safeapi.AddSafeDelegateProps{
		SafeAddress:      safe,
		DelegateAddress:  delegate,
		DelegatorAddress: delegator,
		Label:            args.Label,
		Signer:           p.signer,
	})
}

func (p *SafePlugin) RemoveSafeDelegate(ctx context.Context, args types.RemoveSafeDelegateArgs) (bool, error) {
	if p.signer == nil {
		return false, ErrNoSigner
	}
	delegate, err := p.address(args.DelegateAddress)
	if err != nil {
		return false, err
	}
	delegator, err := p.address(args.DelegatorAddress)
	if err != nil {
		return false, err
	}
	err = p.service.RemoveSafeDelegate(ctx, safeapi.DeleteSafeDelegateProps{
		DelegateAddress:  delegate,
		DelegatorAddress: delegator,
		Signer:           p.signer,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *SafePlugin) GetSafeCreationInfo(ctx context.Context, args types.GetSafeCreationInfoArgs) (*types.SafeCreationInfoResponse, error) {
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return nil, err
	}
	info, err := p.service.GetSafeCreationInfo(ctx, safe)
	if err != nil {
		return nil, err
	}
	dataDecoded, err := optionalJSONText(info.DataDecoded)
	if err != nil {
		return nil, err
	}
	return &types.SafeCreationInfoResponse{SafeCreationInfoResponse: *info, DataDecoded: dataDecoded}, nil
}

func (p *SafePlugin) EstimateSafeTransaction(ctx context.Context, args types.EstimateSafeTransactionArgs) (*types.SafeMultisigTransactionEstimateResponse, error) {
	operation, err := toCoreOperationType(args.SafeTransaction.Operation)
	if err != nil {
		return nil, err
	}
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return nil, err
	}
	to, err := p.address(args.SafeTransaction.To)
	if err != nil {
		return nil, err
	}
	return p.service.EstimateSafeTransaction(ctx, safe, safeapi.SafeMultisigTransactionEstimate{
		To:        to,
		Value:     args.SafeTransaction.Value,
		Data:      types.NonEmpty(args.SafeTransaction.Data).Ptr(),
		Operation: operation,
	})
}

func (p *SafePlugin) ProposeTransaction(ctx context.Context, args types.ProposeTransactionArgs) (bool, error) {
	data := args.SafeTransactionData
	operation, err := toCoreOperationType(data.Operation)
	if err != nil {
		return false, err
	}
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return false, err
	}
	sender, err := p.address(args.SenderAddress)
	if err != nil {
		return false, err
	}
	to, err := p.address(data.To)
	if err != nil {
		return false, err
	}
	err = p.service.ProposeTransaction(ctx, safeapi.ProposeTransactionProps{
		SafeAddress: safe,
		SafeTransactionData: safeapi.SafeTransactionData{
			To:             to,
			Value:          data.Value,
			Data:           data.Data,
			Operation:      operation,
			SafeTxGas:      data.SafeTxGas,
			BaseGas:        data.BaseGas,
			GasPrice:       data.GasPrice,
			GasToken:       data.GasToken,
			RefundReceiver: data.RefundReceiver,
			Nonce:          data.Nonce,
		},
		SafeTxHash:      args.SafeTxHash,
		SenderAddress:   sender,
		SenderSignature: args.SenderSignature,
		Origin:          types.NonEmpty(args.Origin).Ptr(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *SafePlugin) GetIncomingTransactions(ctx context.Context, args types.GetIncomingTransactionsArgs) (*types.TransferListResponse, error) {
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return nil, err
	}
	return p.service.GetIncomingTransactions(ctx, safe)
}

func (p *SafePlugin) GetModuleTransactions(ctx context.Context, args types.GetModuleTransactionsArgs) (*types.SafeModuleTransactionListResponse, error) {
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return nil, err
	}
	list, err := p.service.GetModuleTransactions(ctx, safe)
	if err != nil {
		return nil, err
	}
	resp := &types.SafeModuleTransactionListResponse{
		Count:    list.Count,
		Next:     list.Next,
		Previous: list.Previous,
		Results:  make([]types.SafeModuleTransaction, 0, len(list.Results)),
	}
	for _, tx := range list.Results {
		dataDecoded, err := optionalJSONText(tx.DataDecoded)
		if err != nil {
			return nil, err
		}
		resp.Results = append(resp.Results, types.SafeModuleTransaction{SafeModuleTransaction: tx, DataDecoded: dataDecoded})
	}
	return resp, nil
}

func (p *SafePlugin) GetMultisigTransactions(ctx context.Context, args types.GetMultisigTransactionsArgs) (*types.SafeMultisigTransactionListResponse, error) {
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return nil, err
	}
	list, err := p.service.GetMultisigTransactions(ctx, safe)
	if err != nil {
		return nil, err
	}
	return toMultisigTransactionList(list)
}

func (p *SafePlugin) GetPendingTransactions(ctx context.Context, args types.GetPendingTransactionsArgs) (*types.SafeMultisigTransactionListResponse, error) {
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return nil, err
	}
	list, err := p.service.GetPendingTransactions(ctx, safe, types.NonZero(args.CurrentNonce).Ptr())
	if err != nil {
		return nil, err
	}
	return toMultisigTransactionList(list)
}

func (p *SafePlugin) GetAllTransactions(ctx context.Context, args types.GetAllTransactionsArgs) (*types.AllTransactionsListResponse, error) {
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return nil, err
	}
	var options safeapi.AllTransactionsOptions
	if args.Options != nil {
		options.Executed = types.NonZero(args.Options.Executed).Ptr()
		options.Queued = types.NonZero(args.Options.Queued).Ptr()
		options.Trusted = types.NonZero(args.Options.Trusted).Ptr()
	}
	list, err := p.service.GetAllTransactions(ctx, safe, options)
	if err != nil {
		return nil, err
	}
	resp := &types.AllTransactionsListResponse{
		Count:    list.Count,
		Next:     list.Next,
		Previous: list.Previous,
		Results:  make([]string, 0, len(list.Results)),
	}
	for i, entry := range list.Results {
		text, err := jsonText(entry)
		if err != nil {
			return nil, fmt.Errorf("fail to serialize transaction %d, err: %w", i, err)
		}
		resp.Results = append(resp.Results, text)
	}
	return resp, nil
}

func (p *SafePlugin) GetNextNonce(ctx context.Context, args types.GetNextNonceArgs) (int64, error) {
	safe, err := p.address(args.SafeAddress)
	if err != nil {
		return 0, err
	}
	return p.service.GetNextNonce(ctx, safe)
}

func (p *SafePlugin) GetTokenList(ctx context.Context, _ types.GetTokenListArgs) (*types.TokenInfoListResponse, error) {
	return p.service.GetTokenList(ctx)
}

func (p *SafePlugin) GetToken(ctx context.Context, args types.GetTokenArgs) (*types.TokenInfoResponse, error) {
	token, err := p.address(args.TokenAddress)
	if err != nil {
		return nil, err
	}
	return p.service.GetToken(ctx, token)
}

func toMultisigTransaction(tx safeapi.SafeMultisigTransactionResponse) (*types.SafeMultisigTransactionResponse, error) {
	dataDecoded, err := optionalJSONText(tx.DataDecoded)
	if err != nil {
		return nil, err
	}
	return &types.SafeMultisigTransactionResponse{SafeMultisigTransactionResponse: tx, DataDecoded: dataDecoded}, nil
}

func toMultisigTransactionList(list *safeapi.SafeMultisigTransactionListResponse) (*types.SafeMultisigTransactionListResponse, error) {
	resp := &types.SafeMultisigTransactionListResponse{
		Count:    list.Count,
		Next:     list.Next,
		Previous: list.Previous,
		Results:  make([]types.SafeMultisigTransactionResponse, 0, len(list.Results)),
	}
	for _, tx := range list.Results {
		converted, err := toMultisigTransaction(tx)
		if err != nil {
			return nil, err
		}
		resp.Results = append(resp.Results, *converted)
	}
	return resp, nil
}

// jsonText returns the compact JSON text of raw.
func jsonText(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "null", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("fail to compact json, err: %w", err)
	}
	return buf.String(), nil
}

func optionalJSONText(raw json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	text, err := jsonText(raw)
	if err != nil {
		return nil, err
	}
	return &text, nil
}
