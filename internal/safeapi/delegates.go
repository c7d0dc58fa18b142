package safeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func (c *Client) GetSafeDelegates(ctx context.Context, props GetSafeDelegateProps) (*SafeDelegateListResponse, error) {
	query := url.Values{}
	if props.SafeAddress != nil {
		address, err := c.resolveAddress(ctx, *props.SafeAddress)
		if err != nil {
			return nil, err
		}
		query.Set("safe", address)
	}
	if props.DelegateAddress != nil {
		address, err := c.resolveAddress(ctx, *props.DelegateAddress)
		if err != nil {
			return nil, err
		}
		query.Set("delegate", address)
	}
	if props.DelegatorAddress != nil {
		address, err := c.resolveAddress(ctx, *props.DelegatorAddress)
		if err != nil {
			return nil, err
		}
		query.Set("delegator", address)
	}
	if props.Label != nil {
		query.Set("label", *props.Label)
	}
	if props.Limit != nil {
		query.Set("limit", strconv.Itoa(*props.Limit))
	}
	if props.Offset != nil {
		query.Set("offset", strconv.Itoa(*props.Offset))
	}

	var resp SafeDelegateListResponse
	if err := c.get(ctx, "/v1/delegates/", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type addDelegateBody struct {
	Safe      *string `json:"safe"`
	Delegate  string  `json:"delegate"`
	Delegator string  `json:"delegator"`
	Label     string  `json:"label"`
	Signature string  `json:"signature"`
}

// AddSafeDelegate registers a delegate. The signer proves control of the
// delegator by signing the delegate address with the current hourly TOTP.
func (c *Client) AddSafeDelegate(ctx context.Context, props AddSafeDelegateProps) (*SafeDelegateResponse, error) {
	if props.DelegateAddress == "" {
		return nil, errors.New("invalid Safe delegate address")
	}
	if props.DelegatorAddress == "" {
		return nil, errors.New("invalid Safe delegator address")
	}
	if props.Label == "" {
		return nil, errors.New("invalid label")
	}
	if props.Signer == nil {
		return nil, errors.New("signer is required")
	}
	delegate, err := c.resolveAddress(ctx, props.DelegateAddress)
	if err != nil {
		return nil, err
	}
	delegator, err := c.resolveAddress(ctx, props.DelegatorAddress)
	if err != nil {
		return nil, err
	}
	signature, err := c.signDelegate(ctx, props.Signer, delegate)
	if err != nil {
		return nil, err
	}

	body := addDelegateBody{
		Delegate:  delegate,
		Delegator: delegator,
		Label:     props.Label,
		Signature: signature,
	}
	if props.SafeAddress != nil {
		safe, err := c.resolveAddress(ctx, *props.SafeAddress)
		if err != nil {
			return nil, err
		}
		body.Safe = &safe
	}

	var resp SafeDelegateResponse
	if err := c.post(ctx, "/v1/delegates/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type removeDelegateBody struct {
	Delegate  string `json:"delegate"`
	Delegator string `json:"delegator"`
	Signature string `json:"signature"`
}

func (c *Client) RemoveSafeDelegate(ctx context.Context, props DeleteSafeDelegateProps) error {
	if props.DelegateAddress == "" {
		return errors.New("invalid Safe delegate address")
	}
	if props.DelegatorAddress == "" {
		return errors.New("invalid Safe delegator address")
	}
	if props.Signer == nil {
		return errors.New("signer is required")
	}
	delegate, err := c.resolveAddress(ctx, props.DelegateAddress)
	if err != nil {
		return err
	}
	delegator, err := c.resolveAddress(ctx, props.DelegatorAddress)
	if err != nil {
		return err
	}
	signature, err := c.signDelegate(ctx, props.Signer, delegate)
	if err != nil {
		return err
	}
	body := removeDelegateBody{
		Delegate:  delegate,
		Delegator: delegator,
		Signature: signature,
	}
	return c.sendRequest(ctx, http.MethodDelete, pathf("/v1/delegates/%s", delegate), nil, body, nil)
}

// DelegateMessage is the text a delegator signs: the delegate address
// followed by the number of hours since the unix epoch.
func DelegateMessage(delegate string, unixSeconds int64) string {
	return delegate + strconv.FormatInt(unixSeconds/3600, 10)
}

func (c *Client) signDelegate(ctx context.Context, signer Signer, delegate string) (string, error) {
	msg := DelegateMessage(delegate, c.now().Unix())
	sig, err := signer.SignMessage(ctx, []byte(msg))
	if err != nil {
		return "", fmt.Errorf("fail to sign delegate message, err: %w", err)
	}
	return hexutil.Encode(sig), nil
}
