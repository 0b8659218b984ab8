package model

// ロール（グループ所属とsuperuserフラグから決まる）
type Role string

const (
	RoleManager      Role = "MANAGER"
	RoleDeliveryCrew Role = "DELIVERY_CREW"
	RoleCustomer     Role = "CUSTOMER"

	// どのロールにも当てはまらない（関係ないグループだけに所属）
	RoleNone Role = "NONE"
)

// 権限に使うグループ名
const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery Crew"
)

// ResolveRole は次の優先順でロールを1つ決める。
// superuser または Manager所属 → Manager
// Delivery Crew所属 → DeliveryCrew
// グループ所属なし → Customer
// それ以外 → None
func ResolveRole(isSuperuser bool, groups []string) Role {
	if isSuperuser || hasGroup(groups, GroupManager) {
		return RoleManager
	}
	if hasGroup(groups, GroupDeliveryCrew) {
		return RoleDeliveryCrew
	}
	if len(groups) == 0 {
		return RoleCustomer
	}
	return RoleNone
}

func hasGroup(groups []string, name string) bool {
	for _, g := range groups {
		if g == name {
			return true
		}
	}
	return false
}
