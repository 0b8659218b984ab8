package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"

	"github.com/shopspring/decimal"
)

// メニュー一覧のキャッシュ。取得失敗はキャッシュなしとして扱う。
type MenuCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context)
}

// キャッシュを使わないとき
type NopMenuCache struct{}

func (NopMenuCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NopMenuCache) Set(context.Context, string, []byte)        {}
func (NopMenuCache) Invalidate(context.Context)                 {}

const menuItemsCacheKey = "menu-items"

// MenuUsecase はカテゴリとメニューの読み書き。
// 書き込みのロール確認（Managerのみ）はmiddlewareで行う。
type MenuUsecase struct {
	tx         repo.TransactionManager
	categories repo.CategoryRepository
	menuItems  repo.MenuItemRepository
	cache      MenuCache
}

// DI
func NewMenuUsecase(
	tx repo.TransactionManager,
	categories repo.CategoryRepository,
	menuItems repo.MenuItemRepository,
	cache MenuCache,
) *MenuUsecase {
	if cache == nil {
		cache = NopMenuCache{}
	}
	return &MenuUsecase{
		tx:         tx,
		categories: categories,
		menuItems:  menuItems,
		cache:      cache,
	}
}

type CategoryOutput struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type CreateCategoryInput struct {
	Slug  string
	Title string
}

type MenuItemOutput struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Featured bool   `json:"featured"`
	Category int64  `json:"category"`
}

// POST / PUT の入力（全項目）
type MenuItemInput struct {
	Title      string
	Price      decimal.Decimal
	Featured   bool
	CategoryID int64
}

// PATCH の入力（nil は変更しない）
type MenuItemPatch struct {
	Title      *string
	Price      *decimal.Decimal
	Featured   *bool
	CategoryID *int64
}

// ListCategories は ?ordering=（title / slug / id）に従った一覧。
func (u *MenuUsecase) ListCategories(ctx context.Context, ordering string) ([]CategoryOutput, error) {
	cs, err := u.categories.List(ctx, strings.TrimSpace(ordering))
	if err != nil {
		return nil, errDB(err)
	}
	out := make([]CategoryOutput, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryOutput(c))
	}
	return out, nil
}

func (u *MenuUsecase) CreateCategory(ctx context.Context, in CreateCategoryInput) (CategoryOutput, error) {
	slug := strings.TrimSpace(in.Slug)
	title := strings.TrimSpace(in.Title)
	if slug == "" || title == "" {
		return CategoryOutput{}, errValidation("slug and title are required")
	}

	c, err := u.categories.Create(ctx, model.Category{Slug: slug, Title: title})
	if errors.Is(err, repo.ErrDuplicate) {
		return CategoryOutput{}, errValidation("category already exists")
	}
	if err != nil {
		return CategoryOutput{}, errDB(err)
	}
	return toCategoryOutput(c), nil
}

// ListMenuItems はtitle順の一覧（キャッシュがあれば使う）。
func (u *MenuUsecase) ListMenuItems(ctx context.Context) ([]MenuItemOutput, error) {
	if b, ok := u.cache.Get(ctx, menuItemsCacheKey); ok {
		var cached []MenuItemOutput
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := u.menuItems.List(ctx)
	if err != nil {
		return nil, errDB(err)
	}
	out := make([]MenuItemOutput, 0, len(items))
	for _, m := range items {
		out = append(out, toMenuItemOutput(m))
	}

	if b, err := json.Marshal(out); err == nil {
		u.cache.Set(ctx, menuItemsCacheKey, b)
	}
	return out, nil
}

func (u *MenuUsecase) GetMenuItem(ctx context.Context, id int64) (MenuItemOutput, error) {
	m, err := u.findMenuItem(ctx, u.menuItems, id)
	if err != nil {
		return MenuItemOutput{}, err
	}
	return toMenuItemOutput(m), nil
}

func (u *MenuUsecase) CreateMenuItem(ctx context.Context, in MenuItemInput) (MenuItemOutput, error) {
	m := model.MenuItem{
		Title:      strings.TrimSpace(in.Title),
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	}
	if err := u.validateMenuItem(ctx, u.categories, m); err != nil {
		return MenuItemOutput{}, err
	}

	created, err := u.menuItems.Create(ctx, m)
	if errors.Is(err, repo.ErrReferenced) {
		return MenuItemOutput{}, errValidation("invalid category")
	}
	if err != nil {
		return MenuItemOutput{}, errDB(err)
	}

	u.cache.Invalidate(ctx)
	return toMenuItemOutput(created), nil
}

// ReplaceMenuItem は PUT（全項目を置き換える）。
func (u *MenuUsecase) ReplaceMenuItem(ctx context.Context, id int64, in MenuItemInput) (MenuItemOutput, error) {
	title := strings.TrimSpace(in.Title)
	return u.updateMenuItem(ctx, id, MenuItemPatch{
		Title:      &title,
		Price:      &in.Price,
		Featured:   &in.Featured,
		CategoryID: &in.CategoryID,
	})
}

// PatchMenuItem は PATCH（指定された項目だけ）。
func (u *MenuUsecase) PatchMenuItem(ctx context.Context, id int64, in MenuItemPatch) (MenuItemOutput, error) {
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	return u.updateMenuItem(ctx, id, in)
}

func (u *MenuUsecase) updateMenuItem(ctx context.Context, id int64, in MenuItemPatch) (MenuItemOutput, error) {
	var out MenuItemOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		m, err := u.findMenuItem(ctx, r.MenuItems(), id)
		if err != nil {
			return err
		}

		if in.Title != nil {
			m.Title = *in.Title
		}
		if in.Price != nil {
			m.Price = *in.Price
		}
		if in.Featured != nil {
			m.Featured = *in.Featured
		}
		if in.CategoryID != nil {
			m.CategoryID = *in.CategoryID
		}
		if err := u.validateMenuItem(ctx, r.Categories(), m); err != nil {
			return err
		}

		if err := r.MenuItems().Update(ctx, m); err != nil {
			if errors.Is(err, repo.ErrReferenced) {
				return errValidation("invalid category")
			}
			return errDB(err)
		}
		out = toMenuItemOutput(m)
		return nil
	})
	if err != nil {
		return MenuItemOutput{}, asUsecaseError(err)
	}

	u.cache.Invalidate(ctx)
	return out, nil
}

// DeleteMenuItem はカート・注文から参照されていたら削除しない。
func (u *MenuUsecase) DeleteMenuItem(ctx context.Context, id int64) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := u.findMenuItem(ctx, r.MenuItems(), id); err != nil {
			return err
		}

		refs, err := r.MenuItems().CountReferences(ctx, id)
		if err != nil {
			return errDB(err)
		}
		if refs > 0 {
			return errValidation("menu item is referenced by carts or orders")
		}

		if err := r.MenuItems().Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrReferenced) {
				return errValidation("menu item is referenced by carts or orders")
			}
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound("not found")
			}
			return errDB(err)
		}
		return nil
	})
	if err != nil {
		return asUsecaseError(err)
	}

	u.cache.Invalidate(ctx)
	return nil
}

func (u *MenuUsecase) findMenuItem(ctx context.Context, items repo.MenuItemRepository, id int64) (model.MenuItem, error) {
	if id <= 0 {
		return model.MenuItem{}, errNotFound("not found")
	}
	m, err := items.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, errNotFound("not found")
	}
	if err != nil {
		return model.MenuItem{}, errDB(err)
	}
	return m, nil
}

func (u *MenuUsecase) validateMenuItem(ctx context.Context, categories repo.CategoryRepository, m model.MenuItem) error {
	if m.Title == "" {
		return errValidation("title is required")
	}
	if m.Price.IsNegative() || !model.ValidMoney(m.Price) {
		return errValidation("invalid price")
	}
	if m.CategoryID <= 0 {
		return errValidation("invalid category")
	}

	_, err := categories.FindByID(ctx, m.CategoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return errValidation("invalid category")
	}
	if err != nil {
		return errDB(err)
	}
	return nil
}

func toCategoryOutput(c model.Category) CategoryOutput {
	return CategoryOutput{ID: c.ID, Slug: c.Slug, Title: c.Title}
}

func toMenuItemOutput(m model.MenuItem) MenuItemOutput {
	return MenuItemOutput{
		ID:       m.ID,
		Title:    m.Title,
		Price:    model.FormatMoney(m.Price),
		Featured: m.Featured,
		Category: m.CategoryID,
	}
}
