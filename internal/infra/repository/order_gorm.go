package repository

import (
	"context"
	"strconv"
	"strings"

	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 並び替えできる列
var orderSortColumns = map[string]string{
	"date":   "date",
	"total":  "total",
	"status": "status",
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	if f.None {
		return []model.Order{}, nil
	}

	q := r.db.WithContext(ctx).Model(&model.Order{})

	//注文者で絞り込み
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	//配達担当で絞り込み
	if f.DeliveryCrewID != nil {
		q = q.Where("delivery_crew_id = ?", *f.DeliveryCrewID)
	}

	//検索（ロールの条件とはANDでつながる）
	for _, term := range strings.Fields(f.Search) {
		q = applySearchTerm(q, term)
	}

	var orders []model.Order
	if err := applyOrdering(q, f.Ordering).Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// 既定は日付の新しい順。不明な列は無視する
func applyOrdering(q *gorm.DB, ordering string) *gorm.DB {
	desc := strings.HasPrefix(ordering, "-")
	col, ok := orderSortColumns[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return q.Order("date desc").Order("id desc")
	}
	if desc {
		return q.Order(col + " desc").Order("id desc")
	}
	return q.Order(col + " asc").Order("id asc")
}

// username に対するLIKE
const usernameLike = "SELECT id FROM users WHERE LOWER(username) LIKE ? ESCAPE '\\'"

// 1語分の条件: 注文者名 OR 配達担当名 OR status
func applySearchTerm(q *gorm.DB, term string) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	cond := "(user_id IN (" + usernameLike + ") OR delivery_crew_id IN (" + usernameLike + ")"
	args := []interface{}{pattern, pattern}

	if n, err := strconv.ParseInt(term, 10, 16); err == nil {
		cond += " OR status = ?"
		args = append(args, n)
	}
	return q.Where(cond+")", args...)
}

// LIKEのワイルドカードを文字として扱う
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error; err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&order).Error; err != nil {
		return model.Order{}, translate(err)
	}
	return order, nil
}

func (r *OrderGormRepository) Update(ctx context.Context, orderID int64, u repo.OrderUpdate) error {
	values := map[string]interface{}{}
	if u.UserID != nil {
		values["user_id"] = *u.UserID
	}
	if u.SetDeliveryCrew {
		values["delivery_crew_id"] = u.DeliveryCrewID
	}
	if u.Status != nil {
		values["status"] = *u.Status
	}
	if u.Total != nil {
		values["total"] = *u.Total
	}

	//変更なしでも存在確認だけはする
	if len(values) == 0 {
		_, err := r.FindByID(ctx, orderID)
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Updates(values)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を先に消してから注文を削除
func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderLine{}).Error; err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
