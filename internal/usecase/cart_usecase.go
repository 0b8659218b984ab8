package usecase

import (
	"context"
	"errors"

	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// ロールの確認（Customerのみ）はmiddlewareで済ませてから呼ばれます。
type CartUsecase struct {
	tx    repo.TransactionManager
	carts repo.CartRepository
}

// DI
func NewCartUsecase(tx repo.TransactionManager, carts repo.CartRepository) *CartUsecase {
	return &CartUsecase{tx: tx, carts: carts}
}

type CartLineOutput struct {
	ID            int64  `json:"id"`
	User          int64  `json:"user"`
	MenuItem      int64  `json:"menuitem"`
	MenuItemTitle string `json:"menuitem_title"`
	Quantity      int64  `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	Price         string `json:"price"`
}

type AddCartInput struct {
	MenuItemID int64
	Quantity   int64
}

// 同時追加でユニーク制約に当たったときの再試行回数
const cartInsertAttempts = 2

// List はユーザーのカート明細を返す。
func (u *CartUsecase) List(ctx context.Context, userID int64) ([]CartLineOutput, error) {
	if userID <= 0 {
		return nil, errUnauthenticated("unauthorized")
	}

	lines, err := u.carts.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errDB(err)
	}

	out := make([]CartLineOutput, 0, len(lines))
	for _, l := range lines {
		out = append(out, toCartLineOutput(l, l.MenuItem))
	}
	return out, nil
}

// Add はカートに追加する。同じメニューが既にあれば数量を足す。
func (u *CartUsecase) Add(ctx context.Context, userID int64, in AddCartInput) (CartLineOutput, error) {
	if userID <= 0 {
		return CartLineOutput{}, errUnauthenticated("unauthorized")
	}
	if in.MenuItemID <= 0 {
		return CartLineOutput{}, errValidation("invalid menuitem")
	}
	if in.Quantity < 1 || in.Quantity > model.MaxSmallInt {
		return CartLineOutput{}, errValidation("invalid quantity")
	}

	var out CartLineOutput
	var err error
	for i := 0; i < cartInsertAttempts; i++ {
		err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			var txErr error
			out, txErr = addOrMerge(ctx, r, userID, in)
			return txErr
		})
		//同時に同じ明細が作られたら、もう一度マージとしてやり直す
		if !errors.Is(err, repo.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return CartLineOutput{}, asUsecaseError(err)
	}
	return out, nil
}

func addOrMerge(ctx context.Context, r repo.TxRepos, userID int64, in AddCartInput) (CartLineOutput, error) {
	item, err := r.MenuItems().FindByID(ctx, in.MenuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartLineOutput{}, errValidation("invalid menuitem")
	}
	if err != nil {
		return CartLineOutput{}, errDB(err)
	}

	line, err := r.Carts().FindLineForUpdate(ctx, userID, in.MenuItemID)
	switch {
	case err == nil:
		line.Merge(in.Quantity)
		if err := checkCartLine(line); err != nil {
			return CartLineOutput{}, err
		}
		if err := r.Carts().UpdateLine(ctx, line); err != nil {
			return CartLineOutput{}, errDB(err)
		}
		return toCartLineOutput(line, &item), nil

	case errors.Is(err, repo.ErrNotFound):
		line = model.NewCartLine(userID, item, in.Quantity)
		if err := checkCartLine(line); err != nil {
			return CartLineOutput{}, err
		}
		created, err := r.Carts().CreateLine(ctx, line)
		if errors.Is(err, repo.ErrDuplicate) {
			return CartLineOutput{}, err
		}
		if err != nil {
			return CartLineOutput{}, errDB(err)
		}
		return toCartLineOutput(created, &item), nil

	default:
		return CartLineOutput{}, errDB(err)
	}
}

// 列の範囲に収まるか
func checkCartLine(l model.CartLine) error {
	if l.Quantity > model.MaxSmallInt {
		return errValidation("quantity too large")
	}
	if !model.ValidMoney(l.Price) {
		return errValidation("price too large")
	}
	return nil
}

// Clear はカートを空にする。空でもエラーにしない。
func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return errUnauthenticated("unauthorized")
	}
	if _, err := u.carts.DeleteByUserID(ctx, userID); err != nil {
		return errDB(err)
	}
	return nil
}

// Remove は1メニュー分の明細を削除。
func (u *CartUsecase) Remove(ctx context.Context, userID int64, menuItemID int64) error {
	if userID <= 0 {
		return errUnauthenticated("unauthorized")
	}
	if menuItemID <= 0 {
		return errValidation("invalid id")
	}

	err := u.carts.DeleteLine(ctx, userID, menuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("not found")
	}
	if err != nil {
		return errDB(err)
	}
	return nil
}

func toCartLineOutput(l model.CartLine, item *model.MenuItem) CartLineOutput {
	out := CartLineOutput{
		ID:        l.ID,
		User:      l.UserID,
		MenuItem:  l.MenuItemID,
		Quantity:  l.Quantity,
		UnitPrice: model.FormatMoney(l.UnitPrice),
		Price:     model.FormatMoney(l.Price),
	}
	if item != nil {
		out.MenuItemTitle = item.Title
	}
	return out
}
