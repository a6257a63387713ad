package services

import (
	"fmt"
	"slices"

	"github.com/Kariqs/amexan-commerce/models"
)

// Identity is the authenticated caller of an operation.
type Identity struct {
	UserID uint
	Role   models.Role
}

func (i Identity) Is(roles ...models.Role) bool {
	return slices.Contains(roles, i.Role)
}

type Operation string

const (
	OpPlaceOrder        Operation = "order.place"
	OpReadOrders        Operation = "order.read"
	OpUpdateOrderStatus Operation = "order.status"
	OpListAllOrders     Operation = "order.list_all"
	OpCapturePayment    Operation = "payment.capture"
	OpReadPayments      Operation = "payment.read"
	OpSubmitReview      Operation = "review.submit"
	OpManageCart        Operation = "cart.manage"
	OpManageAddresses   Operation = "address.manage"
	OpManageCatalog     Operation = "catalog.manage"
	OpSellerDashboard   Operation = "dashboard.seller"
	OpAdminDashboard    Operation = "dashboard.admin"
	OpManageUsers       Operation = "users.manage"
	OpReadProfile       Operation = "profile.read"
	OpUpdateProfile     Operation = "profile.update"
	OpReadBusinesses    Operation = "business.read"
	OpManageBusiness    Operation = "business.manage"
)

var everyone = []models.Role{models.RoleCustomer, models.RoleSeller, models.RoleAdmin}

var policy = map[Operation][]models.Role{
	OpPlaceOrder:        {models.RoleCustomer},
	OpReadOrders:        everyone,
	OpUpdateOrderStatus: {models.RoleSeller, models.RoleAdmin},
	OpListAllOrders:     {models.RoleAdmin},
	OpCapturePayment:    everyone,
	OpReadPayments:      everyone,
	OpSubmitReview:      {models.RoleCustomer},
	OpManageCart:        {models.RoleCustomer},
	OpManageAddresses:   {models.RoleCustomer},
	OpManageCatalog:     {models.RoleSeller, models.RoleAdmin},
	OpSellerDashboard:   {models.RoleSeller, models.RoleAdmin},
	OpAdminDashboard:    {models.RoleAdmin},
	OpManageUsers:       {models.RoleAdmin},
	OpReadProfile:       everyone,
	OpUpdateProfile:     everyone,
	OpReadBusinesses:    everyone,
	OpManageBusiness:    {models.RoleSeller},
}

// AllowedRoles returns the roles permitted to run op.
func AllowedRoles(op Operation) []models.Role {
	return slices.Clone(policy[op])
}

func authorize(caller Identity, op Operation) error {
	if caller.UserID == 0 {
		return ErrUnauthorized
	}
	roles, ok := policy[op]
	if !ok {
		return fmt.Errorf("%w: no policy for %s", ErrForbidden, op)
	}
	if !slices.Contains(roles, caller.Role) {
		return fmt.Errorf("%w: role %q may not perform %s", ErrForbidden, caller.Role, op)
	}
	return nil
}
