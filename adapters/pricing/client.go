// Package pricing provides the market data API adapter.
// It fetches current quotes and hourly price history in batched requests.
package pricing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	corePricing "refining-profit/core/pricing"
	"refining-profit/internal/errors"
	"refining-profit/internal/logging"
)

// DefaultBaseURL is the public market data API
const DefaultBaseURL = "https://www.albion-online-data.com/api/v2"

// Config configures the market client
type Config struct {
	// BaseURL is the API root, without a trailing slash
	BaseURL string

	// Timeout bounds each HTTP request
	Timeout time.Duration

	// RequestsPerMinute caps outbound requests (0 = unlimited)
	RequestsPerMinute int

	// Quality is the item quality to query
	Quality int

	// UserAgent is sent with every request
	UserAgent string
}

// DefaultConfig returns production defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           30 * time.Second,
		RequestsPerMinute: 180,
		Quality:           1,
		UserAgent:         "refining-profit",
	}
}

// Client fetches market data over HTTP
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cfg        Config
	logger     *zap.Logger
}

var _ corePricing.Source = (*Client)(nil)

// NewClient creates a market client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Quality <= 0 {
		cfg.Quality = 1
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: gzhttp.Transport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(limit, 1),
		cfg:     cfg,
		logger:  logging.Or(logger),
	}
}

// FetchQuotes retrieves current minimum sell orders
func (c *Client) FetchQuotes(ctx context.Context, names, cities []string) ([]corePricing.Quote, error) {
	body, err := c.get(ctx, c.endpoint("prices", names, cities, nil))
	if err != nil {
		return nil, err
	}
	return parseQuotes(body)
}

// FetchAverages retrieves the most recent hourly average of each item/city series
func (c *Client) FetchAverages(ctx context.Context, names, cities []string) ([]corePricing.Average, error) {
	extra := url.Values{"time-scale": {"1"}}
	body, err := c.get(ctx, c.endpoint("history", names, cities, extra))
	if err != nil {
		return nil, err
	}
	return parseAverages(body)
}

func (c *Client) endpoint(kind string, names, cities []string, extra url.Values) string {
	escaped := make([]string, len(names))
	for i, name := range names {
		escaped[i] = url.PathEscape(name)
	}

	query := url.Values{
		"locations": {strings.Join(cities, ",")},
		"qualities": {strconv.Itoa(c.cfg.Quality)},
	}
	for k, v := range extra {
		query[k] = v
	}

	return fmt.Sprintf("%s/stats/%s/%s?%s", c.cfg.BaseURL, kind, strings.Join(escaped, ","), query.Encode())
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Network("rate limiter", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Internal("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Network("market request failed", err).WithContext("url", endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Network("failed to read market response", err).WithContext("url", endpoint)
	}

	c.logger.Debug("market request",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.TypeNetwork, "market API returned status %d", resp.StatusCode).
			WithContext("url", endpoint)
	}
	return body, nil
}

func parseArray(body []byte, source string) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Parsing(source+": invalid JSON", nil)
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, errors.Parsing(source+": expected a JSON array", nil)
	}
	return root.Array(), nil
}

// required returns field of v, failing when it is absent or null
func required(v gjson.Result, source, field string) (gjson.Result, error) {
	r := v.Get(field)
	if !r.Exists() || r.Type == gjson.Null {
		return r, errors.MissingField(source, field)
	}
	return r, nil
}

func requiredString(v gjson.Result, source, field string) (string, error) {
	r, err := required(v, source, field)
	if err != nil {
		return "", err
	}
	if r.Type != gjson.String {
		return "", errors.Parsing(fmt.Sprintf("%s: field %q is not a string", source, field), nil)
	}
	return r.Str, nil
}

func requiredInt(v gjson.Result, source, field string) (int64, error) {
	r, err := required(v, source, field)
	if err != nil {
		return 0, err
	}
	if r.Type != gjson.Number {
		return 0, errors.Parsing(fmt.Sprintf("%s: field %q is not a number", source, field), nil)
	}
	return r.Int(), nil
}

func parseQuotes(body []byte) ([]corePricing.Quote, error) {
	items, err := parseArray(body, "prices")
	if err != nil {
		return nil, err
	}

	quotes := make([]corePricing.Quote, 0, len(items))
	for i, item := range items {
		source := fmt.Sprintf("prices[%d]", i)

		name, err := requiredString(item, source, "item_id")
		if err != nil {
			return nil, err
		}
		city, err := requiredString(item, source, "city")
		if err != nil {
			return nil, err
		}
		sell, err := requiredInt(item, source, "sell_price_min")
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, corePricing.Quote{ItemName: name, City: city, SellPrice: sell})
	}
	return quotes, nil
}

func parseAverages(body []byte) ([]corePricing.Average, error) {
	items, err := parseArray(body, "history")
	if err != nil {
		return nil, err
	}

	averages := make([]corePricing.Average, 0, len(items))
	for i, item := range items {
		source := fmt.Sprintf("history[%d]", i)

		name, err := requiredString(item, source, "item_id")
		if err != nil {
			return nil, err
		}
		city, err := requiredString(item, source, "location")
		if err != nil {
			return nil, err
		}

		series := item.Get("data").Array()
		if len(series) == 0 {
			return nil, errors.MissingField(source, "data")
		}
		last := len(series) - 1
		avg, err := requiredInt(series[last], fmt.Sprintf("%s.data[%d]", source, last), "avg_price")
		if err != nil {
			return nil, err
		}

		averages = append(averages, corePricing.Average{ItemName: name, City: city, AveragePrice: avg})
	}
	return averages, nil
}
