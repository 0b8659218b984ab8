package model

// Principal は認証済みリクエストの主体。
// middlewareがDBのユーザーから組み立て、usecaseはRoleだけを見て判定する。
type Principal struct {
	UserID      int64
	Username    string
	IsSuperuser bool
	Groups      []string
	Role        Role
}

func NewPrincipal(u User) Principal {
	groups := u.GroupNames()
	return Principal{
		UserID:      u.ID,
		Username:    u.Username,
		IsSuperuser: u.IsSuperuser,
		Groups:      groups,
		Role:        ResolveRole(u.IsSuperuser, groups),
	}
}

func (p Principal) Is(role Role) bool {
	return p.Role == role
}
