package service

import (
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/google/uuid"
)

// AccessPolicy answers authorization questions for a single authenticated
// request. Handlers build one from the verified token claims and consult it
// before touching customer-scoped data. Admins see everything; customer
// accounts only their own records; drivers only their delivery work.
type AccessPolicy struct {
	Role       enum.UserRole
	UserID     uuid.UUID
	CustomerID *uuid.UUID
}

// CanViewCustomer reports whether the caller may read records scoped to the
// given customer
func (p AccessPolicy) CanViewCustomer(customerID uuid.UUID) bool {
	switch p.Role {
	case enum.UserRoleAdmin:
		return true
	case enum.UserRoleCustomer:
		return p.CustomerID != nil && *p.CustomerID == customerID
	default:
		return false
	}
}

// CanRecordFinancials reports whether the caller may record payments,
// short-delivery credits and credit applications
func (p AccessPolicy) CanRecordFinancials() bool {
	return p.Role == enum.UserRoleAdmin
}

// CanManageDeliveries reports whether the caller may update order status and
// view packing lists
func (p AccessPolicy) CanManageDeliveries() bool {
	return p.Role == enum.UserRoleAdmin || p.Role == enum.UserRoleDriver
}

// CanManageUsers reports whether the caller may create accounts
func (p AccessPolicy) CanManageUsers() bool {
	return p.Role == enum.UserRoleAdmin
}
