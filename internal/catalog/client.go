package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadStatus   = errors.New("catalog bad status")
	ErrUnavailable = errors.New("catalog unavailable")
)

// Client talks to a running catalog service over HTTP. It satisfies Store, so
// callers can swap a remote catalog in for a MemStore.
type Client struct {
	BaseURL string
	Client  *http.Client
}

var _ Store = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) ListAll(ctx context.Context) ([]Product, error) {
	resp, err := c.do(ctx, http.MethodGet, BasePath, nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := statusErr(resp, http.StatusOK); err != nil {
		return nil, err
	}

	out := []Product{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return out, nil
}

func (c *Client) FindByID(ctx context.Context, id int) (Product, error) {
	resp, err := c.do(ctx, http.MethodGet, itemPath(id), nil)
	if err != nil {
		return Product{}, err
	}
	defer drain(resp)

	if err := statusErr(resp, http.StatusOK); err != nil {
		return Product{}, err
	}

	var p Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Product{}, fmt.Errorf("decode product: %w", err)
	}
	return p, nil
}

func (c *Client) Insert(ctx context.Context, p Product) (Product, error) {
	resp, err := c.do(ctx, http.MethodPost, BasePath, p)
	if err != nil {
		return Product{}, err
	}
	defer drain(resp)

	if err := statusErr(resp, http.StatusCreated); err != nil {
		return Product{}, err
	}

	var out Product
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Product{}, fmt.Errorf("decode product: %w", err)
	}
	return out, nil
}

func (c *Client) Replace(ctx context.Context, id int, p Product) error {
	resp, err := c.do(ctx, http.MethodPut, itemPath(id), p)
	if err != nil {
		return err
	}
	defer drain(resp)

	return statusErr(resp, http.StatusNoContent)
}

func (c *Client) Remove(ctx context.Context, id int) error {
	resp, err := c.do(ctx, http.MethodDelete, itemPath(id), nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	return statusErr(resp, http.StatusNoContent)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// statusErr maps the service's error statuses back onto the Store sentinels.
func statusErr(resp *http.Response, want int) error {
	switch resp.StatusCode {
	case want:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrInvalidProduct
	default:
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func itemPath(id int) string {
	return BasePath + "/" + strconv.Itoa(id)
}
