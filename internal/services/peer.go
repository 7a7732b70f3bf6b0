// internal/services/peer.go
package services

import (
	"context"

	"github.com/techstore/techstore-backend/internal/models"
)

// PeerClient is the outbound side of the node-to-node gateway. All calls are
// bounded by the caller's context; implementations must not retry forever.
// The HTTP implementation lives in internal/gateway.
type PeerClient interface {
	// UpsertCustomer forwards a newly registered customer. The destination
	// keeps its existing row if one already exists.
	UpsertCustomer(ctx context.Context, customer models.Customer) error

	// ReplicateShipment pushes a hub shipment row to the branch for
	// visibility. Informational only; receipt correctness never depends on it.
	ReplicateShipment(ctx context.Context, shipment models.Shipment) error

	// FetchShipment retrieves a shipment from the peer when the local replica
	// is missing. Returns ErrNotFound if the peer does not know it.
	FetchShipment(ctx context.Context, id string) (*models.Shipment, error)

	// Quantity asks the peer for its on-hand quantity of a product.
	Quantity(ctx context.Context, productID string) (int, error)
}
