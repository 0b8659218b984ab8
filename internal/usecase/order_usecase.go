package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"

	"github.com/shopspring/decimal"
)

// 日付の出力形式
const dateLayout = "2006-01-02"

// 現在時刻（テストで差し替える）
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type OrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	orderLines repo.OrderLineRepository
	users      repo.UserRepository
	clock      Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	orderLines repo.OrderLineRepository,
	users repo.UserRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		orders:     orders,
		orderLines: orderLines,
		users:      users,
		clock:      systemClock{},
	}
}

// WithClock は時刻の取得元を差し替える。
func (u *OrderUsecase) WithClock(c Clock) *OrderUsecase {
	u.clock = c
	return u
}

type OrderLineOutput struct {
	ID            int64  `json:"id"`
	MenuItem      int64  `json:"menuitem"`
	MenuItemTitle string `json:"menuitem_title"`
	Quantity      int64  `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	Price         string `json:"price"`
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	User         int64             `json:"user"`
	DeliveryCrew *int64            `json:"delivery_crew"`
	Status       int16             `json:"status"`
	Total        string            `json:"total"`
	Date         string            `json:"date"`
	Items        []OrderLineOutput `json:"orderitems"`
}

// Checkout はカートを注文に変換し、カートを空にする。
// 全体が1トランザクション。
func (u *OrderUsecase) Checkout(ctx context.Context, p model.Principal) (OrderOutput, error) {
	if p.UserID <= 0 {
		return OrderOutput{}, errUnauthenticated("unauthorized")
	}
	if !p.Is(model.RoleCustomer) {
		return OrderOutput{}, errForbidden("only customers can place orders")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート明細をロックして取得（同じユーザーの注文確定はここで直列になる）
		cartLines, err := r.Carts().LockByUserID(ctx, p.UserID)
		if err != nil {
			return errDB(err)
		}
		if len(cartLines) == 0 {
			return errEmptyCart()
		}

		//合計はカートの小計の合計
		total := decimal.Zero
		ids := make([]int64, 0, len(cartLines))
		for _, cl := range cartLines {
			total = total.Add(cl.Price)
			ids = append(ids, cl.MenuItemID)
		}
		if !model.ValidMoney(total) {
			return errValidation("total too large")
		}

		//明細の価格は現在のメニュー価格で計算する
		items, err := r.MenuItems().FindByIDs(ctx, ids)
		if err != nil {
			return errDB(err)
		}
		current := make(map[int64]model.MenuItem, len(items))
		for _, it := range items {
			current[it.ID] = it
		}

		lines := make([]model.OrderLine, 0, len(cartLines))
		for _, cl := range cartLines {
			item, ok := current[cl.MenuItemID]
			if !ok {
				return errValidation("invalid menuitem")
			}
			line := model.NewOrderLine(cl, item)
			if !model.ValidMoney(line.Price) {
				return errValidation("price too large")
			}
			lines = append(lines, line)
		}

		// 注文作成
		order, err := r.Orders().Create(ctx, model.Order{
			UserID: p.UserID,
			Status: model.OrderStatusPending,
			Total:  total,
			Date:   today(u.clock.Now()),
		})
		if err != nil {
			return errDB(err)
		}

		//注文明細一括作成
		if err := r.OrderLines().CreateBulk(ctx, order.ID, lines); err != nil {
			return errDB(err)
		}

		//カートを空にする
		if _, err := r.Carts().DeleteByUserID(ctx, p.UserID); err != nil {
			return errDB(err)
		}

		for i := range lines {
			it := current[lines[i].MenuItemID]
			lines[i].MenuItem = &it
		}
		out = toOrderOutput(order, lines)
		return nil
	})

	if err != nil {
		return OrderOutput{}, asUsecaseError(err)
	}
	return out, nil
}

// List はロールに応じた注文一覧。ordering は date / total / status（- で降順）。
// 一覧のクエリ（?ordering= と ?search=）
type ListOrdersInput struct {
	Ordering string
	Search   string
}

// List はロールで見える注文だけを返す。検索はその範囲の中で絞り込む。
func (u *OrderUsecase) List(ctx context.Context, p model.Principal, in ListOrdersInput) ([]OrderOutput, error) {
	if p.UserID <= 0 {
		return nil, errUnauthenticated("unauthorized")
	}

	filter := VisibleOrders(p)
	filter.Ordering = strings.TrimSpace(in.Ordering)
	filter.Search = strings.TrimSpace(in.Search)

	orders, err := u.orders.List(ctx, filter)
	if err != nil {
		return nil, errDB(err)
	}
	if len(orders) == 0 {
		return []OrderOutput{}, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	lines, err := u.orderLines.ListByOrderIDs(ctx, ids)
	if err != nil {
		return nil, errDB(err)
	}
	byOrder := make(map[int64][]model.OrderLine, len(orders))
	for _, l := range lines {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l)
	}

	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderOutput(o, byOrder[o.ID]))
	}
	return out, nil
}

// Get は注文1件（閲覧権限を確認）。
func (u *OrderUsecase) Get(ctx context.Context, p model.Principal, orderID int64) (OrderOutput, error) {
	if p.UserID <= 0 {
		return OrderOutput{}, errUnauthenticated("unauthorized")
	}

	order, err := u.findOrder(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	if err := AuthorizeOrderRead(p, order); err != nil {
		return OrderOutput{}, err
	}
	return u.buildOrderOutput(ctx, order)
}

// Update は注文の部分更新。patch はリクエストボディのJSONオブジェクト。
// Managerは user / delivery_crew / status / total、配達担当は status のみ。
// それ以外のキー（id, date など）は無視する。
func (u *OrderUsecase) Update(ctx context.Context, p model.Principal, orderID int64, patch map[string]json.RawMessage) (OrderOutput, error) {
	if p.UserID <= 0 {
		return OrderOutput{}, errUnauthenticated("unauthorized")
	}

	order, err := u.findOrder(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	if err := AuthorizeOrderUpdate(p, order, changedFields(patch)); err != nil {
		return OrderOutput{}, err
	}

	upd, err := u.decodeOrderUpdate(ctx, patch)
	if err != nil {
		return OrderOutput{}, err
	}

	if !upd.IsEmpty() {
		err = u.orders.Update(ctx, orderID, upd)
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, errNotFound("not found")
		}
		if errors.Is(err, repo.ErrReferenced) {
			return OrderOutput{}, errValidation("invalid user")
		}
		if err != nil {
			return OrderOutput{}, errDB(err)
		}
	}

	updated, err := u.findOrder(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	return u.buildOrderOutput(ctx, updated)
}

// Delete は注文を明細ごと削除（Managerのみ）。
func (u *OrderUsecase) Delete(ctx context.Context, p model.Principal, orderID int64) error {
	if p.UserID <= 0 {
		return errUnauthenticated("unauthorized")
	}
	if err := AuthorizeOrderDelete(p); err != nil {
		return err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return r.Orders().Delete(ctx, orderID)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("not found")
	}
	if err != nil {
		return errDB(err)
	}
	return nil
}

func (u *OrderUsecase) findOrder(ctx context.Context, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, errNotFound("not found")
	}
	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, errNotFound("not found")
	}
	if err != nil {
		return model.Order{}, errDB(err)
	}
	return order, nil
}

func (u *OrderUsecase) buildOrderOutput(ctx context.Context, order model.Order) (OrderOutput, error) {
	lines, err := u.orderLines.ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderOutput{}, errDB(err)
	}
	return toOrderOutput(order, lines), nil
}

// 変更しようとしている項目名（順序を固定）
func changedFields(patch map[string]json.RawMessage) []string {
	fields := make([]string, 0, len(patch))
	for k := range patch {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

func (u *OrderUsecase) decodeOrderUpdate(ctx context.Context, patch map[string]json.RawMessage) (repo.OrderUpdate, error) {
	var upd repo.OrderUpdate

	if raw, ok := patch["status"]; ok {
		n, err := decodeInt(raw)
		if err != nil || n < model.MinSmallInt || n > model.MaxSmallInt {
			return repo.OrderUpdate{}, errValidation("invalid status")
		}
		s := model.OrderStatus(n)
		upd.Status = &s
	}

	if raw, ok := patch["total"]; ok {
		var d decimal.Decimal
		if err := json.Unmarshal(raw, &d); err != nil || !model.ValidMoney(d) {
			return repo.OrderUpdate{}, errValidation("invalid total")
		}
		upd.Total = &d
	}

	if raw, ok := patch["user"]; ok {
		id, err := decodeInt(raw)
		if err != nil {
			return repo.OrderUpdate{}, errValidation("invalid user")
		}
		if err := u.ensureUser(ctx, id, "invalid user"); err != nil {
			return repo.OrderUpdate{}, err
		}
		upd.UserID = &id
	}

	if raw, ok := patch["delivery_crew"]; ok {
		upd.SetDeliveryCrew = true
		if !isNull(raw) {
			id, err := decodeInt(raw)
			if err != nil {
				return repo.OrderUpdate{}, errValidation("invalid delivery_crew")
			}
			if err := u.ensureUser(ctx, id, "invalid delivery_crew"); err != nil {
				return repo.OrderUpdate{}, err
			}
			upd.DeliveryCrewID = &id
		}
	}

	return upd, nil
}

func (u *OrderUsecase) ensureUser(ctx context.Context, userID int64, msg string) error {
	if userID <= 0 {
		return errValidation(msg)
	}
	_, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return errValidation(msg)
	}
	if err != nil {
		return errDB(err)
	}
	return nil
}

// 数値・数字の文字列どちらも受け付ける
func decodeInt(raw json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// 日付だけ（時刻は切り捨て）
func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toOrderOutput(o model.Order, lines []model.OrderLine) OrderOutput {
	items := make([]OrderLineOutput, 0, len(lines))
	for _, l := range lines {
		item := OrderLineOutput{
			ID:        l.ID,
			MenuItem:  l.MenuItemID,
			Quantity:  l.Quantity,
			UnitPrice: model.FormatMoney(l.UnitPrice),
			Price:     model.FormatMoney(l.Price),
		}
		if l.MenuItem != nil {
			item.MenuItemTitle = l.MenuItem.Title
		}
		items = append(items, item)
	}

	return OrderOutput{
		ID:           o.ID,
		User:         o.UserID,
		DeliveryCrew: o.DeliveryCrewID,
		Status:       int16(o.Status),
		Total:        model.FormatMoney(o.Total),
		Date:         o.Date.Format(dateLayout),
		Items:        items,
	}
}
