package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ardzk/smmpanel/internal/errs"
	"github.com/ardzk/smmpanel/internal/model"
)

// Client talks to one upstream reseller panel. The usual panel API is a
// single endpoint taking form-encoded key/action parameters and
// answering JSON with numbers quoted as strings.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type StatusInfo struct {
	Status     string
	StartCount *int
	Remains    *int
}

type ServiceInfo struct {
	ID   int64
	Name string
	Rate float64 // provider currency per 1000
	Min  int
	Max  int
}

type BalanceInfo struct {
	Balance  string
	Currency string
}

func (c *Client) call(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", errs.ErrUpstreamFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", errs.ErrUpstreamFailure, err)
	}

	return body, nil
}

// Submit registers an order upstream and returns the provider's id.
func (c *Client) Submit(ctx context.Context, serviceProviderID int64, link string, quantity int) (int64, error) {
	params := url.Values{}
	params.Set("action", "add")
	params.Set("service", strconv.FormatInt(serviceProviderID, 10))
	params.Set("link", link)
	params.Set("quantity", strconv.Itoa(quantity))

	body, err := c.call(ctx, params)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Order json.Number `json:"order"`
		Error string      `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: decode submit response: %v", errs.ErrUpstreamFailure, err)
	}
	if resp.Error != "" {
		return 0, fmt.Errorf("%w: %s", errs.ErrUpstreamFailure, resp.Error)
	}

	orderID, err := resp.Order.Int64()
	if err != nil || orderID == 0 {
		return 0, fmt.Errorf("%w: malformed order id %q", errs.ErrUpstreamFailure, resp.Order.String())
	}

	return orderID, nil
}

func (c *Client) Status(ctx context.Context, providerOrderID int64) (StatusInfo, error) {
	params := url.Values{}
	params.Set("action", "status")
	params.Set("order", strconv.FormatInt(providerOrderID, 10))

	body, err := c.call(ctx, params)
	if err != nil {
		return StatusInfo{}, err
	}

	var resp struct {
		Status     string      `json:"status"`
		StartCount json.Number `json:"start_count"`
		Remains    json.Number `json:"remains"`
		Error      string      `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return StatusInfo{}, fmt.Errorf("%w: decode status response: %v", errs.ErrUpstreamFailure, err)
	}
	if resp.Error != "" {
		return StatusInfo{}, fmt.Errorf("%w: %s", errs.ErrUpstreamFailure, resp.Error)
	}

	return StatusInfo{
		Status:     resp.Status,
		StartCount: numberToInt(resp.StartCount),
		Remains:    numberToInt(resp.Remains),
	}, nil
}

func (c *Client) Services(ctx context.Context) ([]ServiceInfo, error) {
	params := url.Values{}
	params.Set("action", "services")

	body, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp []struct {
		Service json.Number `json:"service"`
		Name    string      `json:"name"`
		Rate    json.Number `json:"rate"`
		Min     json.Number `json:"min"`
		Max     json.Number `json:"max"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode services response: %v", errs.ErrUpstreamFailure, err)
	}

	list := make([]ServiceInfo, 0, len(resp))
	for _, raw := range resp {
		id, err := raw.Service.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: malformed service id %q", errs.ErrUpstreamFailure, raw.Service.String())
		}
		rate, _ := raw.Rate.Float64()
		minQ := numberToInt(raw.Min)
		maxQ := numberToInt(raw.Max)
		info := ServiceInfo{ID: id, Name: raw.Name, Rate: rate}
		if minQ != nil {
			info.Min = *minQ
		}
		if maxQ != nil {
			info.Max = *maxQ
		}
		list = append(list, info)
	}

	return list, nil
}

func (c *Client) Balance(ctx context.Context) (BalanceInfo, error) {
	params := url.Values{}
	params.Set("action", "balance")

	body, err := c.call(ctx, params)
	if err != nil {
		return BalanceInfo{}, err
	}

	var resp struct {
		Balance  string `json:"balance"`
		Currency string `json:"currency"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return BalanceInfo{}, fmt.Errorf("%w: decode balance response: %v", errs.ErrUpstreamFailure, err)
	}
	if resp.Error != "" {
		return BalanceInfo{}, fmt.Errorf("%w: %s", errs.ErrUpstreamFailure, resp.Error)
	}

	return BalanceInfo{Balance: resp.Balance, Currency: resp.Currency}, nil
}

// PriceFromRate converts a provider rate (currency per 1000) to the
// panel's minor-unit price per 1000, rounded up.
func PriceFromRate(rate float64) int64 {
	// epsilon keeps float noise from bumping exact rates up a unit
	return int64(math.Ceil(rate*100 - 1e-9))
}

// MapStatus translates the provider's textual status vocabulary to the
// internal enum. ok is false for vocabulary the panel does not know;
// callers leave the order unchanged in that case.
func MapStatus(s string) (model.OrderStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return model.OrderPending, true
	case "in progress", "inprogress", "processing":
		return model.OrderProcessing, true
	case "partial":
		return model.OrderPartial, true
	case "completed":
		return model.OrderCompleted, true
	case "canceled", "cancelled":
		return model.OrderCanceled, true
	case "error", "fail", "failed":
		return model.OrderFailed, true
	default:
		return "", false
	}
}

func numberToInt(n json.Number) *int {
	if n.String() == "" {
		return nil
	}
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return nil
	}
	return &v
}
