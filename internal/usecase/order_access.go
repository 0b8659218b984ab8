package usecase

import (
	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"
)

// 配達担当が変更できる項目
var deliveryCrewWritableFields = map[string]bool{
	"status": true,
}

// VisibleOrders はロールごとの注文一覧の絞り込み条件を返す。
func VisibleOrders(p model.Principal) repo.OrderListFilter {
	switch p.Role {
	case model.RoleManager:
		return repo.OrderListFilter{}
	case model.RoleDeliveryCrew:
		id := p.UserID
		return repo.OrderListFilter{DeliveryCrewID: &id}
	case model.RoleCustomer:
		id := p.UserID
		return repo.OrderListFilter{UserID: &id}
	default:
		return repo.OrderListFilter{None: true}
	}
}

// AuthorizeOrderRead は注文1件の閲覧可否。
func AuthorizeOrderRead(p model.Principal, o model.Order) error {
	switch p.Role {
	case model.RoleManager:
		return nil
	case model.RoleDeliveryCrew:
		if o.IsAssignedTo(p.UserID) {
			return nil
		}
	case model.RoleCustomer:
		if o.UserID == p.UserID {
			return nil
		}
	}
	return errForbidden("forbidden")
}

// AuthorizeOrderUpdate は注文の更新可否。
// 配達担当は自分の担当注文の status だけ変更できる。
func AuthorizeOrderUpdate(p model.Principal, o model.Order, changedFields []string) error {
	switch p.Role {
	case model.RoleManager:
		return nil
	case model.RoleDeliveryCrew:
		if !o.IsAssignedTo(p.UserID) {
			return errForbidden("forbidden")
		}
		for _, f := range changedFields {
			if !deliveryCrewWritableFields[f] {
				return errForbidden("delivery crew can only update status")
			}
		}
		return nil
	}
	return errForbidden("forbidden")
}

// AuthorizeOrderDelete はManagerだけ許可。
func AuthorizeOrderDelete(p model.Principal) error {
	if p.Is(model.RoleManager) {
		return nil
	}
	return errForbidden("forbidden")
}
