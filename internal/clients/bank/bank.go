package bank

import (
	"context"
	"net/http"

	baseclient "github.com/babylonchain/restaking-ledger-service/internal/clients/base"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type transferRequest struct {
	ReceiverId string       `json:"receiver_id"`
	Amount     types.Amount `json:"amount"`
}

type Client struct {
	config     *config.ClientsConfig
	httpClient *http.Client
}

func NewBankClient(cfg *config.ClientsConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{},
	}
}

func (c *Client) GetName() string {
	return "bank"
}

func (c *Client) GetBaseURL() string {
	return c.config.Bank.Url
}

func (c *Client) GetDefaultRequestTimeout() int {
	if c.config.Bank.Timeout != 0 {
		return c.config.Bank.Timeout
	}
	return c.config.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) Transfer(ctx context.Context, receiverId string, amount types.Amount) *types.Error {
	return baseclient.Execute(ctx, c, &baseclient.BaseClientOptions{
		Path:      "/v1/transfers",
		Operation: "transfer",
		Headers:   map[string]string{"Accept": "application/json"},
	}, &transferRequest{ReceiverId: receiverId, Amount: amount})
}
