package safeapi

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

func (c *Client) GetTransaction(ctx context.Context, safeTxHash string) (*SafeMultisigTransactionResponse, error) {
	if safeTxHash == "" {
		return nil, errors.New("invalid safeTxHash")
	}
	var resp SafeMultisigTransactionResponse
	if err := c.get(ctx, pathf("/v1/multisig-transactions/%s/", safeTxHash), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetTransactionConfirmations(ctx context.Context, safeTxHash string) (*SafeMultisigConfirmationListResponse, error) {
	if safeTxHash == "" {
		return nil, errors.New("invalid safeTxHash")
	}
	var resp SafeMultisigConfirmationListResponse
	if err := c.get(ctx, pathf("/v1/multisig-transactions/%s/confirmations/", safeTxHash), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConfirmTransaction adds an owner signature to a pending multisig
// transaction.
func (c *Client) ConfirmTransaction(ctx context.Context, safeTxHash, signature string) (*SignatureResponse, error) {
	if safeTxHash == "" {
		return nil, errors.New("invalid safeTxHash")
	}
	if signature == "" {
		return nil, errors.New("invalid signature")
	}
	var resp SignatureResponse
	body := map[string]string{"signature": signature}
	if err := c.post(ctx, pathf("/v1/multisig-transactions/%s/confirmations/", safeTxHash), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) EstimateSafeTransaction(ctx context.Context, safeAddress string, safeTransaction SafeMultisigTransactionEstimate) (*SafeMultisigTransactionEstimateResponse, error) {
	address, err := c.safeAddress(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	var resp SafeMultisigTransactionEstimateResponse
	if err := c.post(ctx, pathf("/v1/safes/%s/multisig-transactions/estimations/", address), safeTransaction, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type proposeTransactionBody struct {
	SafeTransactionData
	ContractTransactionHash string  `json:"contractTransactionHash"`
	Sender                  string  `json:"sender"`
	Signature               string  `json:"signature"`
	Origin                  *string `json:"origin,omitempty"`
}

// ProposeTransaction submits a new multisig transaction together with the
// sender's signature.
func (c *Client) ProposeTransaction(ctx context.Context, props ProposeTransactionProps) error {
	safe, err := c.safeAddress(ctx, props.SafeAddress)
	if err != nil {
		return err
	}
	if props.SafeTxHash == "" {
		return errors.New("invalid safeTxHash")
	}
	sender, err := c.resolveAddress(ctx, props.SenderAddress)
	if err != nil {
		return err
	}
	body := proposeTransactionBody{
		SafeTransactionData:     props.SafeTransactionData,
		ContractTransactionHash: props.SafeTxHash,
		Sender:                  sender,
		Signature:               props.SenderSignature,
		Origin:                  props.Origin,
	}
	return c.post(ctx, pathf("/v1/safes/%s/multisig-transactions/", safe), body, nil)
}

func (c *Client) GetIncomingTransactions(ctx context.Context, safeAddress string) (*TransferListResponse, error) {
	address, err := c.safeAddress(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	var resp TransferListResponse
	query := url.Values{"executed": {"true"}}
	if err := c.get(ctx, pathf("/v1/safes/%s/incoming-transfers", address), query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetModuleTransactions(ctx context.Context, safeAddress string) (*SafeModuleTransactionListResponse, error) {
	address, err := c.safeAddress(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	var resp SafeModuleTransactionListResponse
	if err := c.get(ctx, pathf("/v1/safes/%s/module-transactions/", address), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetMultisigTransactions(ctx context.Context, safeAddress string) (*SafeMultisigTransactionListResponse, error) {
	address, err := c.safeAddress(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	var resp SafeMultisigTransactionListResponse
	if err := c.get(ctx, pathf("/v1/safes/%s/multisig-transactions/", address), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPendingTransactions lists the not yet executed transactions whose nonce
// is at least currentNonce. Without currentNonce the Safe's nonce is used.
func (c *Client) GetPendingTransactions(ctx context.Context, safeAddress string, currentNonce *int) (*SafeMultisigTransactionListResponse, error) {
	address, err := c.safeAddress(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	var nonce int64
	if currentNonce != nil {
		nonce = int64(*currentNonce)
	} else {
		info, err := c.GetSafeInfo(ctx, address)
		if err != nil {
			return nil, err
		}
		nonce = info.Nonce
	}
	query := url.Values{
		"executed":   {"false"},
		"nonce__gte": {strconv.FormatInt(nonce, 10)},
	}
	var resp SafeMultisigTransactionListResponse
	if err := c.get(ctx, pathf("/v1/safes/%s/multisig-transactions/", address), query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAllTransactions lists every transaction of a Safe. Unset options use
// the service defaults trusted=true, queued=true, executed=false.
func (c *Client) GetAllTransactions(ctx context.Context, safeAddress string, options AllTransactionsOptions) (*AllTransactionsListResponse, error) {
	address, err := c.safeAddress(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	query := url.Values{
		"trusted":  {boolParam(options.Trusted, true)},
		"queued":   {boolParam(options.Queued, true)},
		"executed": {boolParam(options.Executed, false)},
	}
	var resp AllTransactionsListResponse
	if err := c.get(ctx, pathf("/v1/safes/%s/all-transactions/", address), query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetNextNonce returns the nonce the next proposed transaction should use.
func (c *Client) GetNextNonce(ctx context.Context, safeAddress string) (int64, error) {
	address, err := c.safeAddress(ctx, safeAddress)
	if err != nil {
		return 0, err
	}
	pending, err := c.GetPendingTransactions(ctx, address, nil)
	if err != nil {
		return 0, err
	}
	if len(pending.Results) > 0 {
		last := pending.Results[0].Nonce
		for _, tx := range pending.Results[1:] {
			last = max(last, tx.Nonce)
		}
		return last + 1, nil
	}
	info, err := c.GetSafeInfo(ctx, address)
	if err != nil {
		return 0, err
	}
	return info.Nonce, nil
}

func boolParam(v *bool, fallback bool) string {
	if v == nil {
		return strconv.FormatBool(fallback)
	}
	return strconv.FormatBool(*v)
}
