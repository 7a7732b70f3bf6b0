// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientStock is a business outcome, not a system failure. It is
	// returned via InsufficientStockError so callers can report the available
	// quantity; match it with errors.Is.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrValidation covers malformed input; wrapped errors carry the detail.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateID signals a unique-key violation on an operator-assigned
	// identifier (product, customer, employee).
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrAlreadyReceived is the idempotent no-op outcome of replaying a
	// shipment receipt.
	ErrAlreadyReceived = errors.New("shipment already received")

	ErrUnauthorized = errors.New("operation not permitted for this node or role")

	ErrNotFound = errors.New("record not found")

	// ErrNodeUnreachable reports a failed call to the peer node's gateway.
	// For customer forwarding it is logged and swallowed, never surfaced.
	ErrNodeUnreachable = errors.New("peer node unreachable")

	// ErrBranchAllocationPending reports a partial AddProduct outcome: the
	// catalog row committed and the full intake sits at the hub, but the
	// automatic branch shipment failed and must be retried by the operator.
	ErrBranchAllocationPending = errors.New("product created but branch shipment pending")
)

// InsufficientStockError reports how much was asked for and how much the node
// actually has, so the caller can act on it.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
