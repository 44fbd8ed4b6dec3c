package consumerchainpos

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	baseclient "github.com/babylonchain/restaking-ledger-service/internal/clients/base"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type keyRequest struct {
	StakerId string `json:"staker_id"`
	Key      string `json:"key"`
}

type Client struct {
	config     *config.ClientsConfig
	httpClient *http.Client
}

func NewConsumerChainPosClient(cfg *config.ClientsConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{},
	}
}

func (c *Client) GetName() string {
	return "consumer_chain_pos"
}

func (c *Client) GetBaseURL() string {
	return c.config.ConsumerChainPos.Url
}

func (c *Client) GetDefaultRequestTimeout() int {
	if c.config.ConsumerChainPos.Timeout != 0 {
		return c.config.ConsumerChainPos.Timeout
	}
	return c.config.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) call(ctx context.Context, posAccountId, action, stakerId, key string) (bool, *types.Error) {
	opts := &baseclient.BaseClientOptions{
		Path:      fmt.Sprintf("/v1/positions/%s/%s", url.PathEscape(posAccountId), action),
		Operation: action,
		Headers:   map[string]string{"Accept": "application/json"},
	}
	resp, err := baseclient.SendRequest[keyRequest, baseclient.ExecutionResponse](
		ctx, c, http.MethodPost, opts, &keyRequest{StakerId: stakerId, Key: key},
	)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (c *Client) Bond(ctx context.Context, posAccountId, stakerId, key string) (bool, *types.Error) {
	return c.call(ctx, posAccountId, "bond", stakerId, key)
}

func (c *Client) ChangeKey(ctx context.Context, posAccountId, stakerId, key string) (bool, *types.Error) {
	return c.call(ctx, posAccountId, "change-key", stakerId, key)
}
