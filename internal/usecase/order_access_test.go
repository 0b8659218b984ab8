package usecase_test

import (
	"testing"

	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"
	"littlelemon/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestVisibleOrders(t *testing.T) {
	assert.Equal(t, repo.OrderListFilter{}, usecase.VisibleOrders(manager(1)))
	assert.Equal(t, repo.OrderListFilter{DeliveryCrewID: int64Ptr(2)}, usecase.VisibleOrders(deliveryCrew(2)))
	assert.Equal(t, repo.OrderListFilter{UserID: int64Ptr(3)}, usecase.VisibleOrders(customer(3)))
	assert.Equal(t, repo.OrderListFilter{None: true}, usecase.VisibleOrders(noRole(4)))
}

func TestAuthorizeOrderRead(t *testing.T) {
	order := model.Order{ID: 10, UserID: 3, DeliveryCrewID: int64Ptr(2)}

	tests := []struct {
		name    string
		p       model.Principal
		allowed bool
	}{
		{"manager", manager(1), true},
		{"assigned crew", deliveryCrew(2), true},
		{"other crew", deliveryCrew(5), false},
		{"owner", customer(3), true},
		{"other customer", customer(4), false},
		{"no role", noRole(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := usecase.AuthorizeOrderRead(tt.p, order)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, usecase.ErrForbidden)
		})
	}
}

func TestAuthorizeOrderRead_UnassignedOrderHiddenFromCrew(t *testing.T) {
	err := usecase.AuthorizeOrderRead(deliveryCrew(2), model.Order{ID: 1, UserID: 3})
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestAuthorizeOrderUpdate(t *testing.T) {
	order := model.Order{ID: 10, UserID: 3, DeliveryCrewID: int64Ptr(2)}

	tests := []struct {
		name    string
		p       model.Principal
		fields  []string
		allowed bool
	}{
		{"manager any field", manager(1), []string{"delivery_crew", "status", "total", "user"}, true},
		{"crew status only", deliveryCrew(2), []string{"status"}, true},
		{"crew no fields", deliveryCrew(2), nil, true},
		{"crew total", deliveryCrew(2), []string{"total"}, false},
		{"crew status and total", deliveryCrew(2), []string{"status", "total"}, false},
		{"crew not assigned", deliveryCrew(5), []string{"status"}, false},
		{"customer own order", customer(3), []string{"status"}, false},
		{"no role", noRole(6), []string{"status"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := usecase.AuthorizeOrderUpdate(tt.p, order, tt.fields)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, usecase.ErrForbidden)
		})
	}
}

func TestAuthorizeOrderDelete(t *testing.T) {
	assert.NoError(t, usecase.AuthorizeOrderDelete(manager(1)))
	assert.ErrorIs(t, usecase.AuthorizeOrderDelete(deliveryCrew(2)), usecase.ErrForbidden)
	assert.ErrorIs(t, usecase.AuthorizeOrderDelete(customer(3)), usecase.ErrForbidden)
	assert.ErrorIs(t, usecase.AuthorizeOrderDelete(noRole(4)), usecase.ErrForbidden)
}
