package model

// slug と title の組み合わせはユニーク
type Category struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug  string `gorm:"type:varchar(255);not null;uniqueIndex:idx_category_slug_title" json:"slug"`
	Title string `gorm:"type:varchar(255);not null;index;uniqueIndex:idx_category_slug_title" json:"title"`
}
