package repository

import (
	"context"

	"littlelemon/internal/domain/model"
)

// メニューの永続化（保存・取得）だけを約束。
type MenuItemRepository interface {
	// title順
	List(ctx context.Context) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id int64) (model.MenuItem, error)
	// IDを指定してまとめて取得
	FindByIDs(ctx context.Context, ids []int64) ([]model.MenuItem, error)

	Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error)
	Update(ctx context.Context, m model.MenuItem) error

	// カート・注文明細から参照されている件数
	CountReferences(ctx context.Context, id int64) (int64, error)
	// 参照されていたら ErrReferenced
	Delete(ctx context.Context, id int64) error
}
