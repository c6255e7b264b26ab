// Package cart はクライアント側のカート集計。サーバーには保存しない。
package cart

import "paintingstore/internal/domain/model"

// カートに入れた時点の絵画情報
type Item struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
	Category string `json:"category,omitempty"`
}

func ItemFromPainting(p model.Painting) Item {
	return Item{
		ID:       p.ID,
		Title:    p.Title,
		Artist:   p.Artist,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category,
	}
}

// 1行 = 絵画1点と数量
type Line struct {
	Item
	Quantity int64 `json:"quantity"`
}

func (l Line) Subtotal() int64 {
	return l.Price * l.Quantity
}

// 絵画IDごとに1行。行の並びは追加順
type Cart struct {
	lines map[int64]*Line
	order []int64
}

// 保存済みの行から復元する。同じIDが複数あれば数量を足す
func New(lines ...Line) *Cart {
	c := &Cart{lines: make(map[int64]*Line)}
	for _, l := range lines {
		c.Add(l.Item, l.Quantity)
	}
	return c
}

func normalizeQty(qty int64) int64 {
	if qty < 1 {
		return 1
	}
	return qty
}

// 既にあれば数量を加算、なければ末尾に追加
func (c *Cart) Add(item Item, qty int64) {
	qty = normalizeQty(qty)
	if l, ok := c.lines[item.ID]; ok {
		l.Quantity += qty
		return
	}
	c.lines[item.ID] = &Line{Item: item, Quantity: qty}
	c.order = append(c.order, item.ID)
}

// 行ごと削除。なければfalse
func (c *Cart) Remove(id int64) bool {
	if _, ok := c.lines[id]; !ok {
		return false
	}
	delete(c.lines, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// 数量を上書き。1未満は1にする
func (c *Cart) UpdateQty(id int64, qty int64) bool {
	l, ok := c.lines[id]
	if !ok {
		return false
	}
	l.Quantity = normalizeQty(qty)
	return true
}

// 数量を減らす。0以下になった行は消す。なければfalse
func (c *Cart) Subtract(id int64, qty int64) bool {
	l, ok := c.lines[id]
	if !ok {
		return false
	}
	if l.Quantity <= qty {
		return c.Remove(id)
	}
	l.Quantity -= qty
	return true
}

func (c *Cart) Clear() {
	c.lines = make(map[int64]*Line)
	c.order = nil
}

func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.order)
}

// 毎回計算し直す
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}
