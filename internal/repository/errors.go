package repository

import "errors"

var (
	// 対象なし
	ErrNotFound = errors.New("not found")

	// ユニーク制約違反
	ErrDuplicate = errors.New("duplicate")

	// 他の行から参照されていて削除できない
	ErrReferenced = errors.New("referenced")
)
