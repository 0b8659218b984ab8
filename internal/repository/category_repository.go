package repository

import (
	"context"

	"littlelemon/internal/domain/model"
)

type CategoryRepository interface {
	// ordering は title / slug / id（先頭 - で降順）。不明なら id 順
	List(ctx context.Context, ordering string) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	// (slug, title) が重複したら ErrDuplicate
	Create(ctx context.Context, c model.Category) (model.Category, error)
}
