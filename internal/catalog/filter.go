// Package catalog は取得済みの絵画一覧に対する検索・絞り込み。
// サーバーの GET /paintings とクライアントの両方から使う。
package catalog

import (
	"strings"

	"paintingstore/internal/domain/model"
)

// カテゴリ絞り込みなしを表す
const AllCategories = "All"

// タイトルか説明に検索語を含み（大文字小文字は区別しない）、
// かつカテゴリが一致するものを元の順序で返す。
// categoryが空または"All"ならカテゴリでは絞らない
func Filter(paintings []model.Painting, search, category string) []model.Painting {
	term := strings.ToLower(strings.TrimSpace(search))
	category = strings.TrimSpace(category)
	anyCategory := category == "" || category == AllCategories

	out := make([]model.Painting, 0, len(paintings))
	for _, p := range paintings {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if !anyCategory && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// 先頭は"All"、以降は初出順の重複なしカテゴリ
func Categories(paintings []model.Painting) []string {
	seen := make(map[string]struct{}, len(paintings))
	out := []string{AllCategories}
	for _, p := range paintings {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
