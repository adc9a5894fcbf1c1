// Package client is a typed Go client for the storefront HTTP API. It wraps
// the retrying HTTP client with a circuit breaker so storefront outages
// degrade gracefully instead of cascading into the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"
	"github.com/uzgnsodyum/shopping-site-2/pkg/httpclient"

	"github.com/uzgnsodyum/shopping-site-2/internal/domain"
	"github.com/uzgnsodyum/shopping-site-2/internal/service"
)

const serviceName = "storefront"

// Config holds the client settings.
type Config struct {
	BaseURL string
	UserID  string
	Timeout time.Duration
}

// Client is a storefront API client. All methods return typed domain values
// or an error mapped from the API's error envelope.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	userID  string
	logger  *slog.Logger
}

// New creates a storefront client.
func New(cfg Config, logger *slog.Logger) *Client {
	httpCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}
	inner := httpclient.New(httpCfg)
	cb := httpclient.NewCircuitBreakerClient(inner, httpclient.DefaultCircuitBreakerConfig(serviceName), logger)

	return &Client{
		http:    cb,
		baseURL: cfg.BaseURL,
		userID:  cfg.UserID,
		logger:  logger,
	}
}

// envelope mirrors the API's standard response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
}

// ProductDetail mirrors the API's product detail payload.
type ProductDetail struct {
	Product domain.Product       `json:"product"`
	Reviews []domain.Review      `json:"reviews"`
	Summary domain.ReviewSummary `json:"review_summary"`
}

// ReviewList mirrors the API's review listing payload.
type ReviewList struct {
	Reviews []domain.Review      `json:"reviews"`
	Summary domain.ReviewSummary `json:"summary"`
}

// CheckoutResult mirrors the API's checkout payload.
type CheckoutResult struct {
	Order                *domain.Order `json:"order"`
	ReviewableProductIDs []string      `json:"reviewable_product_ids,omitempty"`
}

// GetProducts fetches a catalog page. Empty search, sort, and order values
// are omitted from the query string.
func (c *Client) GetProducts(ctx context.Context, search, sortBy, order string, page, perPage int) (*ProductPage, error) {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	if sortBy != "" {
		q.Set("sort", sortBy)
	}
	if order != "" {
		q.Set("order", order)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}

	u := c.baseURL + "/api/v1/products"
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}

	var pageResp ProductPage
	if err := c.get(ctx, u, &pageResp); err != nil {
		return nil, err
	}
	return &pageResp, nil
}

// GetProduct fetches a single product with its reviews.
func (c *Client) GetProduct(ctx context.Context, productID string) (*ProductDetail, error) {
	var detail ProductDetail
	if err := c.get(ctx, c.baseURL+"/api/v1/products/"+url.PathEscape(productID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetCampaigns fetches all campaigns in creation order.
func (c *Client) GetCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	var campaigns []domain.Campaign
	if err := c.get(ctx, c.baseURL+"/api/v1/campaigns", &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// CreateCampaign creates a new campaign.
func (c *Client) CreateCampaign(ctx context.Context, input service.CreateCampaignInput) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := c.post(ctx, c.baseURL+"/api/v1/campaigns", input, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetReviews fetches a product's reviews with the aggregate summary.
func (c *Client) GetReviews(ctx context.Context, productID string) (*ReviewList, error) {
	var list ReviewList
	if err := c.get(ctx, c.baseURL+"/api/v1/products/"+url.PathEscape(productID)+"/reviews", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AddReview submits a review for a product.
func (c *Client) AddReview(ctx context.Context, productID string, input service.AddReviewInput) (*domain.Review, error) {
	var review domain.Review
	if err := c.post(ctx, c.baseURL+"/api/v1/products/"+url.PathEscape(productID)+"/reviews", input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// GetCart fetches the current cart.
func (c *Client) GetCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.get(ctx, c.baseURL+"/api/v1/cart", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds a product to the cart.
func (c *Client) AddCartItem(ctx context.Context, input service.AddItemInput) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.post(ctx, c.baseURL+"/api/v1/cart/items", input, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem updates a cart line's quantity and optionally its note.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, input service.UpdateItemInput) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/api/v1/cart/items/"+url.PathEscape(itemID), input, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem removes a line from the cart.
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodDelete, c.baseURL+"/api/v1/cart/items/"+url.PathEscape(itemID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart removes all items from the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/api/v1/cart", nil, nil)
}

// Quote prices the current cart.
func (c *Client) Quote(ctx context.Context) (*domain.Quote, error) {
	var quote domain.Quote
	if err := c.get(ctx, c.baseURL+"/api/v1/cart/quote", &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// Checkout completes the purchase of the current cart.
func (c *Client) Checkout(ctx context.Context) (*CheckoutResult, error) {
	var result CheckoutResult
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/v1/cart/checkout", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Transport helpers ---

func (c *Client) get(ctx context.Context, url string, out any) error {
	return c.do(ctx, http.MethodGet, url, nil, out)
}

func (c *Client) post(ctx context.Context, url string, in, out any) error {
	return c.do(ctx, http.MethodPost, url, in, out)
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("storefront request failed: %w: %w", apperrors.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return httpclient.ParseResponseError(resp, serviceName)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
