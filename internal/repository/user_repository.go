package repository

import (
	"context"

	"littlelemon/internal/domain/model"
)

// 保存・取得を約束。取得したユーザーは Groups を読み込み済み
type UserRepository interface {
	//新規ユーザー作成（username重複は ErrDuplicate）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// usernameからユーザーを1件取得する。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// グループのメンバー一覧
	ListByGroup(ctx context.Context, groupName string) ([]model.User, error)
	// 既に所属していても成功
	AddToGroup(ctx context.Context, userID int64, groupName string) error
	// 所属していなくても成功
	RemoveFromGroup(ctx context.Context, userID int64, groupName string) error
}
