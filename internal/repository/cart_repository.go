package repository

import (
	"context"

	"littlelemon/internal/domain/model"
)

type CartRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)

	// 行ロック付きで取得（同じユーザーの注文確定を直列にする）
	LockByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)

	// (user, menuitem) の明細を行ロック付きで取得。無ければ ErrNotFound
	FindLineForUpdate(ctx context.Context, userID int64, menuItemID int64) (model.CartLine, error)

	// 同じ (user, menuitem) が既にあれば ErrDuplicate
	CreateLine(ctx context.Context, line model.CartLine) (model.CartLine, error)

	// 数量と小計を更新
	UpdateLine(ctx context.Context, line model.CartLine) error

	DeleteLine(ctx context.Context, userID int64, menuItemID int64) error

	// 全削除（0件でもエラーにしない）。削除件数を返す
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}
