package safeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

func (c *Client) GetServiceInfo(ctx context.Context) (*SafeServiceInfoResponse, error) {
	var resp SafeServiceInfoResponse
	if err := c.get(ctx, "/v1/about", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetServiceMasterCopiesInfo(ctx context.Context) ([]MasterCopyResponse, error) {
	var resp []MasterCopyResponse
	if err := c.get(ctx, "/v1/about/master-copies", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DecodeData decodes contract call data with the ABIs known to the service.
func (c *Client) DecodeData(ctx context.Context, data string) (json.RawMessage, error) {
	if data == "" {
		return nil, errors.New("invalid data")
	}
	var resp json.RawMessage
	if err := c.post(ctx, "/v1/data-decoder/", map[string]string{"data": data}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetSafesByOwner(ctx context.Context, ownerAddress string) (*OwnerResponse, error) {
	if ownerAddress == "" {
		return nil, errors.New("invalid owner address")
	}
	address, err := c.resolveAddress(ctx, ownerAddress)
	if err != nil {
		return nil, err
	}
	var resp OwnerResponse
	if err := c.get(ctx, pathf("/v1/owners/%s/safes/", address), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetSafesByModule(ctx context.Context, moduleAddress string) (*ModulesResponse, error) {
	if moduleAddress == "" {
		return nil, errors.New("invalid module address")
	}
	address, err := c.resolveAddress(ctx, moduleAddress)
	if err != nil {
		return nil, err
	}
	var resp ModulesResponse
	if err := c.get(ctx, pathf("/v1/modules/%s/safes/", address), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetSafeInfo(ctx context.Context, safeAddress string) (*SafeInfoResponse, error) {
	address, err := c.safeAddress(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	var resp SafeInfoResponse
	if err := c.get(ctx, pathf("/v1/safes/%s/", address), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetSafeCreationInfo(ctx context.Context, safeAddress string) (*SafeCreationInfoResponse, error) {
	address, err := c.safeAddress(ctx, safeAddress)
	if err != nil {
		return nil, err
	}
	var resp SafeCreationInfoResponse
	if err := c.get(ctx, pathf("/v1/safes/%s/creation/", address), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetTokenList(ctx context.Context) (*TokenInfoListResponse, error) {
	var resp TokenInfoListResponse
	if err := c.get(ctx, "/v1/tokens/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetToken(ctx context.Context, tokenAddress string) (*TokenInfoResponse, error) {
	if tokenAddress == "" {
		return nil, errors.New("invalid token address")
	}
	address, err := c.resolveAddress(ctx, tokenAddress)
	if err != nil {
		return nil, err
	}
	var resp TokenInfoResponse
	if err := c.get(ctx, pathf("/v1/tokens/%s/", address), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) safeAddress(ctx context.Context, safeAddress string) (string, error) {
	if safeAddress == "" {
		return "", errors.New("invalid Safe address")
	}
	address, err := c.resolveAddress(ctx, safeAddress)
	if err != nil {
		return "", fmt.Errorf("invalid Safe address, err: %w", err)
	}
	return address, nil
}
