// internal/authz/context_test.go
package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/techstore/techstore-backend/internal/models"
)

func TestHubEmployeeCapabilities(t *testing.T) {
	actx := Context{Node: models.NodeHub, Role: RoleEmployee, SubjectID: "emp-1"}

	assert.True(t, actx.CanManageCatalog())
	assert.True(t, actx.CanSendShipments())
	assert.True(t, actx.CanRegisterEmployees())
	assert.True(t, actx.CanViewReports())

	assert.False(t, actx.CanReceiveShipments())
	assert.False(t, actx.CanCleanLocalInventory())
	assert.False(t, actx.CanCheckout())
	assert.False(t, actx.IsPeer())
}

func TestBranchEmployeeCapabilities(t *testing.T) {
	actx := Context{Node: models.NodeBranch, Role: RoleEmployee, SubjectID: "emp-2"}

	assert.True(t, actx.CanReceiveShipments())
	assert.True(t, actx.CanCleanLocalInventory())
	assert.True(t, actx.CanRegisterEmployees())
	assert.True(t, actx.CanViewReports())

	assert.False(t, actx.CanManageCatalog())
	assert.False(t, actx.CanSendShipments())
	assert.False(t, actx.CanCheckout())
}

func TestCustomerAndGuestCanCheckoutOnly(t *testing.T) {
	for _, role := range []Role{RoleCustomer, RoleGuest} {
		for _, node := range []models.NodeID{models.NodeHub, models.NodeBranch} {
			actx := Context{Node: node, Role: role}

			assert.True(t, actx.CanCheckout(), "role %s at %s", role, node)
			assert.False(t, actx.CanManageCatalog())
			assert.False(t, actx.CanSendShipments())
			assert.False(t, actx.CanReceiveShipments())
			assert.False(t, actx.CanCleanLocalInventory())
			assert.False(t, actx.CanRegisterEmployees())
			assert.False(t, actx.CanViewReports())
		}
	}
}

func TestPeerRole(t *testing.T) {
	actx := Context{Node: models.NodeHub, Role: RolePeer, SubjectID: "branch"}

	assert.True(t, actx.IsPeer())
	assert.False(t, actx.CanCheckout())
	assert.False(t, actx.CanManageCatalog())
	assert.False(t, actx.CanViewReports())
}
