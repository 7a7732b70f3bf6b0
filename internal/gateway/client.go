// internal/gateway/client.go
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/techstore/techstore-backend/internal/authz"
	"github.com/techstore/techstore-backend/internal/config"
	"github.com/techstore/techstore-backend/internal/models"
	"github.com/techstore/techstore-backend/internal/services"
	"github.com/techstore/techstore-backend/internal/utils"
)

// Client is the HTTP side of the node-to-node gateway, implementing
// services.PeerClient against the other node's /internal API. Every call is
// bounded by both the client timeout and the caller's context; there are no
// retries here — idempotency at the endpoints is what makes replays safe.
type Client struct {
	http *resty.Client
	node models.NodeID
}

func NewClient(cfg config.PeerConfig, node models.NodeID) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.ForwardTimeout) * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient, node: node}
}

type shipmentEnvelope struct {
	Success bool            `json:"success"`
	Data    models.Shipment `json:"data"`
}

type quantityEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"data"`
}

func (c *Client) UpsertCustomer(ctx context.Context, customer models.Customer) error {
	token, err := c.peerToken()
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(customer).
		Post("/internal/customers")
	if err != nil {
		return fmt.Errorf("forward customer: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("forward customer: peer returned %s", resp.Status())
	}
	return nil
}

func (c *Client) ReplicateShipment(ctx context.Context, shipment models.Shipment) error {
	token, err := c.peerToken()
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(shipment).
		Post("/internal/shipments")
	if err != nil {
		return fmt.Errorf("replicate shipment: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("replicate shipment: peer returned %s", resp.Status())
	}
	return nil
}

func (c *Client) FetchShipment(ctx context.Context, id string) (*models.Shipment, error) {
	token, err := c.peerToken()
	if err != nil {
		return nil, err
	}

	var envelope shipmentEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&envelope).
		Get("/internal/shipments/" + id)
	if err != nil {
		return nil, fmt.Errorf("fetch shipment: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, services.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch shipment: peer returned %s", resp.Status())
	}
	return &envelope.Data, nil
}

func (c *Client) Quantity(ctx context.Context, productID string) (int, error) {
	token, err := c.peerToken()
	if err != nil {
		return 0, err
	}

	var envelope quantityEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&envelope).
		Get("/internal/stock/" + productID)
	if err != nil {
		return 0, fmt.Errorf("peer stock query: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("peer stock query: peer returned %s", resp.Status())
	}
	return envelope.Data.Quantity, nil
}

// peerToken mints a fresh short-lived token identifying this node as a peer
// caller. Minting is a local HMAC; doing it per request sidesteps expiry
// handling on long-running processes.
func (c *Client) peerToken() (string, error) {
	token, err := utils.GenerateNodeToken(string(c.node), string(authz.RolePeer), string(c.node), 1)
	if err != nil {
		return "", fmt.Errorf("mint peer token: %w", err)
	}
	return token, nil
}
