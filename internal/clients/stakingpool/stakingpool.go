package stakingpool

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	baseclient "github.com/babylonchain/restaking-ledger-service/internal/clients/base"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type amountRequest struct {
	Amount types.Amount `json:"amount"`
}

type StakedBalanceResponse struct {
	AccountId string       `json:"account_id"`
	Balance   types.Amount `json:"balance"`
}

type Client struct {
	config     *config.ClientsConfig
	httpClient *http.Client
	headers    map[string]string
}

func NewStakingPoolClient(cfg *config.ClientsConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{},
		headers: map[string]string{
			"Accept": "application/json",
		},
	}
}

// Necessary for the BaseClient interface
func (c *Client) GetName() string {
	return "staking_pool"
}

func (c *Client) GetBaseURL() string {
	return c.config.StakingPool.Url
}

func (c *Client) GetDefaultRequestTimeout() int {
	if c.config.StakingPool.Timeout != 0 {
		return c.config.StakingPool.Timeout
	}
	return c.config.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) poolPath(poolId, action string) string {
	return fmt.Sprintf("/v1/pools/%s/%s", url.PathEscape(poolId), action)
}

func (c *Client) Ping(ctx context.Context, poolId string) *types.Error {
	return baseclient.Execute[struct{}](ctx, c, &baseclient.BaseClientOptions{
		Path:      c.poolPath(poolId, "ping"),
		Operation: "ping",
		Headers:   c.headers,
	}, &struct{}{})
}

func (c *Client) DepositAndStake(ctx context.Context, poolId string, amount types.Amount) *types.Error {
	return baseclient.Execute(ctx, c, &baseclient.BaseClientOptions{
		Path:      c.poolPath(poolId, "deposit-and-stake"),
		Operation: "deposit_and_stake",
		Headers:   c.headers,
	}, &amountRequest{Amount: amount})
}

func (c *Client) Unstake(ctx context.Context, poolId string, amount types.Amount) *types.Error {
	return baseclient.Execute(ctx, c, &baseclient.BaseClientOptions{
		Path:      c.poolPath(poolId, "unstake"),
		Operation: "unstake",
		Headers:   c.headers,
	}, &amountRequest{Amount: amount})
}

func (c *Client) Withdraw(ctx context.Context, poolId string, amount types.Amount) *types.Error {
	return baseclient.Execute(ctx, c, &baseclient.BaseClientOptions{
		Path:      c.poolPath(poolId, "withdraw"),
		Operation: "withdraw",
		Headers:   c.headers,
	}, &amountRequest{Amount: amount})
}

func (c *Client) GetAccountStakedBalance(
	ctx context.Context, poolId, accountId string,
) (types.Amount, *types.Error) {
	opts := &baseclient.BaseClientOptions{
		Path:      c.poolPath(poolId, "accounts/"+url.PathEscape(accountId)+"/staked-balance"),
		Operation: "get_account_staked_balance",
		Headers:   c.headers,
	}
	resp, err := baseclient.SendRequestWithRetry[any, StakedBalanceResponse](
		ctx, c, http.MethodGet, opts, nil, c.config.MaxRetries,
	)
	if err != nil {
		return types.ZeroAmount(), err
	}
	return resp.Balance, nil
}
