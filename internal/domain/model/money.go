package model

import "github.com/shopspring/decimal"

// decimal(6,2) に収まる上限（絶対値）
var maxMoney = decimal.NewFromInt(10000)

// 小数2桁以内かつ decimal(6,2) に収まるか
func ValidMoney(d decimal.Decimal) bool {
	if !d.Equal(d.Round(2)) {
		return false
	}
	return d.Abs().LessThan(maxMoney)
}

// smallint の範囲
const (
	MaxSmallInt = 32767
	MinSmallInt = -32768
)

// 画面・APIに出すときは常に小数2桁
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
