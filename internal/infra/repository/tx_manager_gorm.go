package repository

import (
	"context"

	repo "littlelemon/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	categories repo.CategoryRepository
	menuItems  repo.MenuItemRepository
	carts      repo.CartRepository
	orders     repo.OrderRepository
	orderLines repo.OrderLineRepository
	users      repo.UserRepository
}

func (r *txReposGorm) Categories() repo.CategoryRepository  { return r.categories }
func (r *txReposGorm) MenuItems() repo.MenuItemRepository   { return r.menuItems }
func (r *txReposGorm) Carts() repo.CartRepository           { return r.carts }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderLines() repo.OrderLineRepository { return r.orderLines }
func (r *txReposGorm) Users() repo.UserRepository           { return r.users }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			categories: NewCategoryGormRepository(tx),
			menuItems:  NewMenuItemGormRepository(tx),
			carts:      NewCartGormRepository(tx),
			orders:     NewOrderGormRepository(tx),
			orderLines: NewOrderLineGormRepository(tx),
			users:      NewUserGormRepository(tx),
		}
		return fn(r)
	})
}

var (
	_ repo.CategoryRepository  = (*CategoryGormRepository)(nil)
	_ repo.MenuItemRepository  = (*MenuItemGormRepository)(nil)
	_ repo.CartRepository      = (*CartGormRepository)(nil)
	_ repo.OrderRepository     = (*OrderGormRepository)(nil)
	_ repo.OrderLineRepository = (*OrderLineGormRepository)(nil)
	_ repo.UserRepository      = (*userGormRepository)(nil)
	_ repo.TransactionManager  = (*TxManagerGorm)(nil)
)
