package repository

import (
	"context"
	"strings"

	"littlelemon/internal/domain/model"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// 並び替えできる列
var categorySortColumns = map[string]string{
	"title": "title",
	"slug":  "slug",
	"id":    "id",
}

func (r *CategoryGormRepository) List(ctx context.Context, ordering string) ([]model.Category, error) {
	q := r.db.WithContext(ctx)

	ordering = strings.TrimSpace(ordering)
	col, ok := categorySortColumns[strings.TrimPrefix(ordering, "-")]
	switch {
	case !ok:
		q = q.Order("id asc")
	case strings.HasPrefix(ordering, "-"):
		q = q.Order(col + " desc").Order("id desc")
	default:
		q = q.Order(col + " asc").Order("id asc")
	}

	var list []model.Category
	if err := q.Find(&list).Error; err != nil {
		return []model.Category{}, err
	}
	return list, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}
