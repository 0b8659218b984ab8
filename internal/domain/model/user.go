package model

import "time"

type Group struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(150);not null;uniqueIndex" json:"name"`
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"type:varchar(255);not null;default:''" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	IsSuperuser  bool      `gorm:"not null;default:false" json:"is_superuser"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	Groups       []Group   `gorm:"many2many:user_groups;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 所属グループ名の一覧
func (u User) GroupNames() []string {
	names := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		names = append(names, g.Name)
	}
	return names
}

func (Group) TableName() string {
	return "auth_groups"
}
