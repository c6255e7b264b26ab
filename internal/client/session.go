package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"paintingstore/internal/cart"
	"paintingstore/internal/domain/model"
	"paintingstore/internal/usecase"
	auth "paintingstore/internal/usecase/auth_usecase"
	"paintingstore/internal/validator"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrEmptyCart   = errors.New("cart is empty")
)

// ログイン情報とカートを持つ。変更はすべてstoreに保存される
type Session struct {
	mu    sync.Mutex
	store SessionStore
	token string
	user  *auth.UserOutput
	cart  *cart.Cart
}

// storeから復元する
func NewSession(store SessionStore) (*Session, error) {
	st, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{
		store: store,
		token: st.Token,
		user:  st.User,
		cart:  cart.New(st.Cart...),
	}, nil
}

// ロック中に呼ぶ
func (s *Session) persist() error {
	return s.store.Save(SessionState{
		Token: s.token,
		User:  s.user,
		Cart:  s.cart.Lines(),
	})
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) User() (auth.UserOutput, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return auth.UserOutput{}, false
	}
	return *s.user, true
}

func (s *Session) IsLoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.Role == model.RoleAdmin
}

func (s *Session) setAuth(out auth.AuthOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := out.User
	s.token = out.Token
	s.user = &u
	return s.persist()
}

func (s *Session) Login(ctx context.Context, c *Client, email, password string) error {
	out, err := c.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	return s.setAuth(out)
}

func (s *Session) Register(ctx context.Context, c *Client, req RegisterRequest) error {
	out, err := c.Register(ctx, req)
	if err != nil {
		return err
	}
	return s.setAuth(out)
}

// カートは残す
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return s.persist()
}

func (s *Session) AddToCart(p model.Painting, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(cart.ItemFromPainting(p), qty)
	return s.persist()
}

func (s *Session) RemoveFromCart(paintingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart.Remove(paintingID) {
		return nil
	}
	return s.persist()
}

func (s *Session) UpdateQty(paintingID int64, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart.UpdateQty(paintingID, qty) {
		return nil
	}
	return s.persist()
}

func (s *Session) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.persist()
}

func (s *Session) CartLines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *Session) CartTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// カートを注文にする。成功したときだけ注文した分をカートから外す
func (s *Session) Checkout(ctx context.Context, c *Client, addr model.ShippingAddress) (usecase.OrderOutput, error) {
	s.mu.Lock()
	token := s.token
	lines := s.cart.Lines()
	s.mu.Unlock()

	if token == "" {
		return usecase.OrderOutput{}, ErrNotLoggedIn
	}
	if len(lines) == 0 {
		return usecase.OrderOutput{}, ErrEmptyCart
	}
	if err := validator.ValidateShippingAddress(addr); err != nil {
		return usecase.OrderOutput{}, err
	}

	req := CreateOrderRequest{
		Items:           make([]OrderItemRequest, 0, len(lines)),
		ShippingAddress: addr,
	}
	for _, l := range lines {
		req.Items = append(req.Items, OrderItemRequest{PaintingID: l.ID, Quantity: l.Quantity})
	}

	out, err := c.CreateOrder(ctx, token, req)
	if err != nil {
		return usecase.OrderOutput{}, fmt.Errorf("checkout: %w", err)
	}

	if err := s.removeOrdered(lines); err != nil {
		return out, err
	}
	return out, nil
}

// 注文に載せた分だけカートから引く。送信中に足された分は残る
func (s *Session) removeOrdered(lines []cart.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range lines {
		s.cart.Subtract(l.ID, l.Quantity)
	}
	return s.persist()
}
