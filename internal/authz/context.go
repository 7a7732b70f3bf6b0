// internal/authz/context.go
package authz

import "github.com/techstore/techstore-backend/internal/models"

// Role is the caller's role at its node, carried in the signed token.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
	RoleGuest    Role = "guest"
	// RolePeer is used only by the other node's gateway client on the
	// /internal API.
	RolePeer Role = "peer"
)

// Context is the request-scoped authorization context: the acting node, the
// caller's role at that node and, for customers and peers, who they are. It is
// built by middleware from the request token and passed explicitly into every
// core operation; nothing reads ambient session state.
type Context struct {
	Node      models.NodeID
	Role      Role
	SubjectID string
}

// Catalog creation, edits and deletes happen only at the hub.
func (c Context) CanManageCatalog() bool {
	return c.Node == models.NodeHub && c.Role == RoleEmployee
}

// Shipments originate only at the hub.
func (c Context) CanSendShipments() bool {
	return c.Node == models.NodeHub && c.Role == RoleEmployee
}

// Receipts are confirmed only at the branch.
func (c Context) CanReceiveShipments() bool {
	return c.Node == models.NodeBranch && c.Role == RoleEmployee
}

// Local-only inventory cleanup is a branch capability; the hub uses the global
// catalog delete instead.
func (c Context) CanCleanLocalInventory() bool {
	return c.Node == models.NodeBranch && c.Role == RoleEmployee
}

// Employees may not buy with their work account; customers and guests may.
func (c Context) CanCheckout() bool {
	return c.Role == RoleCustomer || c.Role == RoleGuest
}

func (c Context) CanRegisterEmployees() bool {
	return c.Role == RoleEmployee
}

func (c Context) CanViewReports() bool {
	return c.Role == RoleEmployee
}

func (c Context) IsPeer() bool {
	return c.Role == RolePeer
}
