package zenserp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
	"github.com/kitbuilder587/zenserp-go/internal/search"
)

const DefaultBaseURL = "https://app.zenserp.com/api/v2"

const (
	endpointStatus        = "/status"
	endpointSearch        = "/search"
	endpointHL            = "/hl"
	endpointGL            = "/gl"
	endpointLocations     = "/locations"
	endpointSearchEngines = "/search_engines"
)

var _ search.Client = (*Client)(nil)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	debug   bool
}

// New сразу возвращает domain.ErrNoAPIKey на пустой ключ, не дожидаясь отказа сервера.
func New(cfg Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.ErrNoAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	if c.debug {
		c.client = withDebugTransport(c.client, c.logger)
	}
	return c, nil
}

func (c *Client) Status(ctx context.Context) (*domain.Status, error) {
	var resp struct {
		RemainingRequests *int `json:"remaining_requests"`
	}
	if err := c.get(ctx, endpointStatus, nil, &resp); err != nil {
		return nil, err
	}
	if resp.RemainingRequests == nil {
		return nil, errors.New("status response: remaining_requests is missing")
	}
	return &domain.Status{RemainingRequests: *resp.RemainingRequests}, nil
}

// Search не валидирует in, это делает domain.SearchInput.Validate.
func (c *Client) Search(ctx context.Context, in domain.SearchInput) (domain.SERP, error) {
	var serp domain.SERP
	if err := c.get(ctx, endpointSearch, in.Params(), &serp); err != nil {
		return nil, err
	}
	return serp, nil
}

func (c *Client) HL(ctx context.Context) ([]domain.HL, error) {
	var hl []domain.HL
	if err := c.get(ctx, endpointHL, nil, &hl); err != nil {
		return nil, err
	}
	return hl, nil
}

func (c *Client) GL(ctx context.Context) ([]domain.GL, error) {
	var gl []domain.GL
	if err := c.get(ctx, endpointGL, nil, &gl); err != nil {
		return nil, err
	}
	return gl, nil
}

func (c *Client) Locations(ctx context.Context) ([]domain.Location, error) {
	var locations []domain.Location
	if err := c.get(ctx, endpointLocations, nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *Client) SearchEngines(ctx context.Context) ([]domain.SearchEngine, error) {
	var engines []domain.SearchEngine
	if err := c.get(ctx, endpointSearchEngines, nil, &engines); err != nil {
		return nil, err
	}
	return engines, nil
}

// get: запрос -> CheckResponse -> декодирование. Ретраев нет.
func (c *Client) get(ctx context.Context, endpoint string, params domain.Params, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	body, statusCode, err := doRequest(c.client, req)
	if err != nil {
		return err
	}

	c.logger.Debug("zenserp response",
		zap.String("endpoint", endpoint),
		zap.Int("status", statusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if err := CheckResponse(statusCode, body, req.Header.Get("apikey")); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", endpoint, err)
	}
	return nil
}

func doRequest(client *http.Client, req *http.Request) ([]byte, int, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}
