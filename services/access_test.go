package services

import (
	"testing"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	customer := Identity{UserID: 1, Role: models.RoleCustomer}
	seller := Identity{UserID: 2, Role: models.RoleSeller}
	admin := Identity{UserID: 3, Role: models.RoleAdmin}

	tests := []struct {
		op      Operation
		caller  Identity
		allowed bool
	}{
		{OpPlaceOrder, customer, true},
		{OpPlaceOrder, seller, false},
		{OpPlaceOrder, admin, false},
		{OpSubmitReview, customer, true},
		{OpSubmitReview, admin, false},
		{OpUpdateOrderStatus, customer, false},
		{OpUpdateOrderStatus, seller, true},
		{OpUpdateOrderStatus, admin, true},
		{OpListAllOrders, seller, false},
		{OpListAllOrders, admin, true},
		{OpCapturePayment, customer, true},
		{OpCapturePayment, seller, true},
		{OpManageCatalog, customer, false},
		{OpManageCatalog, seller, true},
		{OpManageUsers, seller, false},
		{OpReadProfile, seller, true},
		{OpManageBusiness, seller, true},
		{OpManageBusiness, admin, false},
		{OpReadBusinesses, customer, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.op)+"/"+string(tt.caller.Role), func(t *testing.T) {
			err := authorize(tt.caller, tt.op)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorizeAnonymousAndUnknown(t *testing.T) {
	assert.ErrorIs(t, authorize(Identity{Role: models.RoleAdmin}, OpReadOrders), ErrUnauthorized)
	assert.ErrorIs(t, authorize(Identity{UserID: 1, Role: models.RoleAdmin}, Operation("launch.rockets")), ErrForbidden)
	assert.ErrorIs(t, authorize(Identity{UserID: 1, Role: "intruder"}, OpReadOrders), ErrForbidden)
}

func TestAllowedRolesIsACopy(t *testing.T) {
	roles := AllowedRoles(OpPlaceOrder)
	roles[0] = models.RoleAdmin
	assert.Equal(t, []models.Role{models.RoleCustomer}, AllowedRoles(OpPlaceOrder))
}

func TestPageMeta(t *testing.T) {
	page := Page{Page: 2, Limit: 10}.normalize(15)
	assert.Equal(t, 10, page.offset())
	meta := newPageMeta(page, 25)
	assert.True(t, meta.HasPrevPage)
	assert.True(t, meta.HasNextPage)
	assert.Equal(t, 3, meta.NextPage)

	defaults := Page{}.normalize(15)
	assert.Equal(t, Page{Page: 1, Limit: 15}, defaults)
	assert.Equal(t, 100, Page{Limit: 500}.normalize(15).Limit)
}
