package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
	"github.com/kitbuilder587/zenserp-go/internal/search"
)

var _ search.Client = (*Client)(nil)

// Client - скриптуемый фейк Zenserp для тестов сервисов.
type Client struct {
	Remaining    int
	SERP         domain.SERP
	HLs          []domain.HL
	GLs          []domain.GL
	LocationList []domain.Location
	EngineList   []domain.SearchEngine
	Error        error
	Delay        time.Duration

	Calls     map[string]int
	LastInput domain.SearchInput
	AllInputs []domain.SearchInput

	mu sync.Mutex
}

func New() *Client {
	return &Client{
		SERP:  domain.SERP{},
		Calls: make(map[string]int),
	}
}

func (c *Client) WithSERP(serp domain.SERP) *Client {
	c.SERP = serp
	return c
}

func (c *Client) WithRemaining(n int) *Client {
	c.Remaining = n
	return c
}

func (c *Client) WithCatalog(cat domain.Catalog) *Client {
	c.HLs = cat.HL
	c.GLs = cat.GL
	c.LocationList = cat.Locations
	c.EngineList = cat.SearchEngines
	return c
}

func (c *Client) WithError(err error) *Client {
	c.mu.Lock()
	c.Error = err
	c.mu.Unlock()
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) CallCount(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls[method]
}

func (c *Client) Status(ctx context.Context) (*domain.Status, error) {
	if err := c.enter(ctx, "Status"); err != nil {
		return nil, err
	}
	return &domain.Status{RemainingRequests: c.Remaining}, nil
}

func (c *Client) Search(ctx context.Context, in domain.SearchInput) (domain.SERP, error) {
	c.mu.Lock()
	c.LastInput = in
	c.AllInputs = append(c.AllInputs, in)
	c.mu.Unlock()

	if err := c.enter(ctx, "Search"); err != nil {
		return nil, err
	}
	return c.SERP, nil
}

func (c *Client) HL(ctx context.Context) ([]domain.HL, error) {
	if err := c.enter(ctx, "HL"); err != nil {
		return nil, err
	}
	return c.HLs, nil
}

func (c *Client) GL(ctx context.Context) ([]domain.GL, error) {
	if err := c.enter(ctx, "GL"); err != nil {
		return nil, err
	}
	return c.GLs, nil
}

func (c *Client) Locations(ctx context.Context) ([]domain.Location, error) {
	if err := c.enter(ctx, "Locations"); err != nil {
		return nil, err
	}
	return c.LocationList, nil
}

func (c *Client) SearchEngines(ctx context.Context) ([]domain.SearchEngine, error) {
	if err := c.enter(ctx, "SearchEngines"); err != nil {
		return nil, err
	}
	return c.EngineList, nil
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = make(map[string]int)
	c.LastInput = domain.SearchInput{}
	c.AllInputs = nil
}

func (c *Client) enter(ctx context.Context, method string) error {
	c.mu.Lock()
	c.Calls[method]++
	delay := c.Delay
	err := c.Error
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
