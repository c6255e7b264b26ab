package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paintingstore/internal/domain/model"
	"paintingstore/internal/usecase"
	auth "paintingstore/internal/usecase/auth_usecase"
)

// APIが返したエラー（{"error": "..."}）
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AdminCode string `json:"adminCode,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OrderItemRequest struct {
	PaintingID int64 `json:"paintingId"`
	Quantity   int64 `json:"quantity"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest    `json:"items"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
}

// ストアAPIの型付きクライアント
type Client struct {
	baseURL string
	http    *http.Client
}

// httpClientがnilなら10秒タイムアウトのものを使う
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (auth.AuthOutput, error) {
	var out auth.AuthOutput
	err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (auth.AuthOutput, error) {
	var out auth.AuthOutput
	err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &out)
	return out, err
}

func (c *Client) ListPaintings(ctx context.Context, search, category string) ([]model.Painting, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if category != "" {
		q.Set("category", category)
	}
	path := "/paintings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []model.Painting
	err := c.do(ctx, http.MethodGet, path, "", nil, &out)
	return out, err
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/paintings/categories", "", nil, &out)
	return out, err
}

func (c *Client) GetPainting(ctx context.Context, id int64) (model.Painting, error) {
	var out model.Painting
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/paintings/%d", id), "", nil, &out)
	return out, err
}

func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (usecase.OrderOutput, error) {
	var out usecase.OrderOutput
	err := c.do(ctx, http.MethodPost, "/orders", token, req, &out)
	return out, err
}

func (c *Client) MyOrders(ctx context.Context, token string) ([]usecase.OrderOutput, error) {
	var out []usecase.OrderOutput
	err := c.do(ctx, http.MethodGet, "/orders/me", token, nil, &out)
	return out, err
}

func (c *Client) MyOrder(ctx context.Context, token string, id int64) (usecase.OrderOutput, error) {
	var out usecase.OrderOutput
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/me/%d", id), token, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path, bearer string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var er struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &er) != nil || er.Error == "" {
			er.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: er.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
