// internal/models/common.go
package models

// NodeID identifies one of the two deployment nodes. The hub owns the product
// catalog and originates shipments; the branch sells from local stock and
// confirms receipts.
type NodeID string

const (
	NodeHub    NodeID = "hub"
	NodeBranch NodeID = "branch"
)

func (n NodeID) Valid() bool {
	return n == NodeHub || n == NodeBranch
}

// Peer returns the other node of the pair.
func (n NodeID) Peer() NodeID {
	if n == NodeHub {
		return NodeBranch
	}
	return NodeHub
}

// ShipmentStatus is derived state: a shipment is SENT until a matching receipt
// exists, then RECEIVED. Only SENT is ever stored.
type ShipmentStatus string

const (
	ShipmentStatusSent     ShipmentStatus = "SENT"
	ShipmentStatusReceived ShipmentStatus = "RECEIVED"
)
