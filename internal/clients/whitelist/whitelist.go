package whitelist

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	baseclient "github.com/babylonchain/restaking-ledger-service/internal/clients/base"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type WhitelistResponse struct {
	PoolId      string `json:"pool_id"`
	Whitelisted bool   `json:"whitelisted"`
}

type Client struct {
	config     *config.ClientsConfig
	httpClient *http.Client
}

func NewWhitelistClient(cfg *config.ClientsConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{},
	}
}

func (c *Client) GetName() string {
	return "whitelist"
}

func (c *Client) GetBaseURL() string {
	return c.config.Whitelist.Url
}

func (c *Client) GetDefaultRequestTimeout() int {
	if c.config.Whitelist.Timeout != 0 {
		return c.config.Whitelist.Timeout
	}
	return c.config.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) IsWhitelisted(ctx context.Context, poolId string) (bool, *types.Error) {
	opts := &baseclient.BaseClientOptions{
		Path:      fmt.Sprintf("/v1/whitelist/%s", url.PathEscape(poolId)),
		Operation: "is_whitelisted",
		Headers:   map[string]string{"Accept": "application/json"},
	}
	resp, err := baseclient.SendRequestWithRetry[any, WhitelistResponse](
		ctx, c, http.MethodGet, opts, nil, c.config.MaxRetries,
	)
	if err != nil {
		return false, err
	}
	return resp.Whitelisted, nil
}
