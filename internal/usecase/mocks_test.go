package usecase_test

import (
	"context"
	"strings"
	"testing"

	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	categories repo.CategoryRepository
	menuItems  repo.MenuItemRepository
	carts      repo.CartRepository
	orders     repo.OrderRepository
	orderLines repo.OrderLineRepository
	users      repo.UserRepository
}

func (r *TxReposMock) Categories() repo.CategoryRepository  { return r.categories }
func (r *TxReposMock) MenuItems() repo.MenuItemRepository   { return r.menuItems }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderLines() repo.OrderLineRepository { return r.orderLines }
func (r *TxReposMock) Users() repo.UserRepository           { return r.users }

// =====================
// Repository mocks
// =====================

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context, ordering string) ([]model.Category, error) {
	args := m.Called(ctx, ordering)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

type MenuItemRepoMock struct{ mock.Mock }

func (m *MenuItemRepoMock) List(ctx context.Context) ([]model.MenuItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *MenuItemRepoMock) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.MenuItem)
	return it, args.Error(1)
}

func (m *MenuItemRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.MenuItem, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *MenuItemRepoMock) Create(ctx context.Context, it model.MenuItem) (model.MenuItem, error) {
	args := m.Called(ctx, it)
	out, _ := args.Get(0).(model.MenuItem)
	return out, args.Error(1)
}

func (m *MenuItemRepoMock) Update(ctx context.Context, it model.MenuItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MenuItemRepoMock) CountReferences(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MenuItemRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *CartRepoMock) LockByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *CartRepoMock) FindLineForUpdate(ctx context.Context, userID int64, menuItemID int64) (model.CartLine, error) {
	args := m.Called(ctx, userID, menuItemID)
	l, _ := args.Get(0).(model.CartLine)
	return l, args.Error(1)
}

func (m *CartRepoMock) CreateLine(ctx context.Context, line model.CartLine) (model.CartLine, error) {
	args := m.Called(ctx, line)
	l, _ := args.Get(0).(model.CartLine)
	return l, args.Error(1)
}

func (m *CartRepoMock) UpdateLine(ctx context.Context, line model.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteLine(ctx context.Context, userID int64, menuItemID int64) error {
	args := m.Called(ctx, userID, menuItemID)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Update(ctx context.Context, orderID int64, u repo.OrderUpdate) error {
	args := m.Called(ctx, orderID, u)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type OrderLineRepoMock struct{ mock.Mock }

func (m *OrderLineRepoMock) CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	args := m.Called(ctx, orderID, lines)
	return args.Error(0)
}

func (m *OrderLineRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	args := m.Called(ctx, orderID)
	lines, _ := args.Get(0).([]model.OrderLine)
	return lines, args.Error(1)
}

func (m *OrderLineRepoMock) ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderLine, error) {
	args := m.Called(ctx, orderIDs)
	lines, _ := args.Get(0).([]model.OrderLine)
	return lines, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) ListByGroup(ctx context.Context, groupName string) ([]model.User, error) {
	args := m.Called(ctx, groupName)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) AddToGroup(ctx context.Context, userID int64, groupName string) error {
	args := m.Called(ctx, userID, groupName)
	return args.Error(0)
}

func (m *UserRepoMock) RemoveFromGroup(ctx context.Context, userID int64, groupName string) error {
	args := m.Called(ctx, userID, groupName)
	return args.Error(0)
}

var (
	_ repo.CategoryRepository  = (*CategoryRepoMock)(nil)
	_ repo.MenuItemRepository  = (*MenuItemRepoMock)(nil)
	_ repo.CartRepository      = (*CartRepoMock)(nil)
	_ repo.OrderRepository     = (*OrderRepoMock)(nil)
	_ repo.OrderLineRepository = (*OrderLineRepoMock)(nil)
	_ repo.UserRepository      = (*UserRepoMock)(nil)
	_ repo.TransactionManager  = (*TxManagerMock)(nil)
)

// =====================
// helpers
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func customer(id int64) model.Principal {
	return model.Principal{UserID: id, Username: "customer", Role: model.RoleCustomer}
}

func deliveryCrew(id int64) model.Principal {
	return model.Principal{UserID: id, Username: "crew", Groups: []string{model.GroupDeliveryCrew}, Role: model.RoleDeliveryCrew}
}

func manager(id int64) model.Principal {
	return model.Principal{UserID: id, Username: "manager", Groups: []string{model.GroupManager}, Role: model.RoleManager}
}

func noRole(id int64) model.Principal {
	return model.Principal{UserID: id, Username: "kitchen", Groups: []string{"Kitchen"}, Role: model.RoleNone}
}
