package datagov

import (
	"context"
	"errors"
	"fmt"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/config"
	"mandi-service/internal/infrastructure/logging"
	"mandi-service/internal/infrastructure/metrics"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
)

const (
	ServiceName = "data.gov.in"
	MaxBackoff  = 5 * time.Second
)

// Client pages through the data.gov.in mandi price resource.
// It is stateless between FetchAll calls apart from the circuit breaker.
type Client struct {
	cfg     config.UpstreamConfig
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[[]entities.PriceRecord]
	logger  logging.ExternalAPILogger
}

var _ interfaces.PriceFetcher = (*Client)(nil)

// NewClient crea el cliente del feed con la configuración dada
func NewClient(cfg config.UpstreamConfig) *Client {
	defaults := config.GetDefaultConfig().Upstream
	if cfg.PageSize < 1 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.MaxPages < 1 {
		cfg.MaxPages = defaults.MaxPages
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	httpClient := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "mandi-service/1.0")

	c := &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logging.ExternalAPI(),
	}

	if cfg.CircuitBreaker.Enabled {
		c.breaker = newBreaker(cfg.CircuitBreaker)
	}

	return c
}

func newBreaker(cfg config.CircuitBreakerConfig) *gobreaker.CircuitBreaker[[]entities.PriceRecord] {
	return gobreaker.NewCircuitBreaker[[]entities.PriceRecord](gobreaker.Settings{
		Name:        ServiceName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		// only transport trouble trips the breaker, a 4xx is our fault
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrRetryableRequest)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpdateCircuitBreakerState(name, breakerStateValue(to))
			logging.Warn(context.Background(), "Upstream circuit breaker state changed", logging.Fields{
				logging.FieldExternalService: name,
				"from":                       from.String(),
				"to":                         to.String(),
			})
		},
	})
}

func breakerStateValue(state gobreaker.State) int {
	switch state {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// FetchAll downloads every page of the resource in order.
// Any page failure discards what was fetched so far.
func (c *Client) FetchAll(ctx context.Context) ([]entities.PriceRecord, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, &entities.ConfigError{
			Setting: "DATA_GOV_API_KEY",
			Message: "data.gov.in API key is not configured",
		}
	}

	all := make([]entities.PriceRecord, 0, c.cfg.PageSize)
	offset := 0

	for page := 1; page <= c.cfg.MaxPages; page++ {
		records, err := c.fetchPageWithRetry(ctx, page, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, records...)

		// última página
		if len(records) < c.cfg.PageSize {
			break
		}
		offset += c.cfg.PageSize
	}

	return all, nil
}

// fetchPageWithRetry applies retry policy and breaker to one page
func (c *Client) fetchPageWithRetry(ctx context.Context, page, offset int) ([]entities.PriceRecord, error) {
	var (
		records    []entities.PriceRecord
		lastStatus int
	)

	retryErr := retry.Do(
		func() error {
			recs, status, err := c.executePage(ctx, page, offset)
			lastStatus = status
			if err != nil {
				return err
			}
			records = recs
			return nil
		},
		retry.Attempts(uint(c.cfg.MaxAttempts)),
		retry.Delay(c.cfg.RetryDelay),
		retry.MaxDelay(MaxBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordUpstreamRetry(ServiceName, int(n+1))
			logging.Warn(ctx, "Upstream page retry attempt", logging.Fields{
				logging.FieldExternalService: ServiceName,
				logging.FieldPage:            page,
				"attempt":                    n + 1,
				"max_attempts":               c.cfg.MaxAttempts,
				logging.FieldError:           err.Error(),
			})
		}),
	)

	if retryErr != nil {
		return nil, &entities.UpstreamError{
			Page:       page,
			Offset:     offset,
			StatusCode: lastStatus,
			Err:        retryErr,
		}
	}

	return records, nil
}

// executePage runs one attempt, through the breaker when enabled
func (c *Client) executePage(ctx context.Context, page, offset int) ([]entities.PriceRecord, int, error) {
	if c.breaker == nil {
		return c.doPageRequest(ctx, page, offset)
	}

	var status int
	records, err := c.breaker.Execute(func() ([]entities.PriceRecord, error) {
		recs, code, reqErr := c.doPageRequest(ctx, page, offset)
		status = code
		return recs, reqErr
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, 0, fmt.Errorf("%w: %w", ErrNonRetryable, err)
	}
	return records, status, err
}

// doPageRequest performs the HTTP request for a single page
func (c *Client) doPageRequest(ctx context.Context, page, offset int) ([]entities.PriceRecord, int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	c.logger.PageRequested(ctx, ServiceName, page, offset, c.cfg.PageSize)

	start := time.Now()
	resp, err := c.http.R().
		SetContext(reqCtx).
		SetQueryParams(map[string]string{
			"api-key": c.cfg.APIKey,
			"format":  "json",
			"limit":   strconv.Itoa(c.cfg.PageSize),
			"offset":  strconv.Itoa(offset),
		}).
		Get(c.resourceURL())
	duration := time.Since(start)
	durationMs := float64(duration.Nanoseconds()) / 1e6

	if err != nil {
		metrics.RecordUpstreamPage(ServiceName, 0, duration.Seconds())
		c.logger.PageFailed(ctx, ServiceName, page, offset, 0, err, durationMs)
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrNonRetryable, err)
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrRetryableRequest, err)
	}

	status := resp.StatusCode()
	metrics.RecordUpstreamPage(ServiceName, status, duration.Seconds())

	if status == http.StatusTooManyRequests || status >= 500 {
		err := fmt.Errorf("%w: HTTP %d", ErrRetryableRequest, status)
		c.logger.PageFailed(ctx, ServiceName, page, offset, status, err, durationMs)
		return nil, status, err
	}

	if status < 200 || status >= 300 {
		err := fmt.Errorf("%w: HTTP %d", ErrNonRetryable, status)
		c.logger.PageFailed(ctx, ServiceName, page, offset, status, err, durationMs)
		return nil, status, err
	}

	records, err := decodePage(resp.Body())
	if err != nil {
		c.logger.PageFailed(ctx, ServiceName, page, offset, status, err, durationMs)
		return nil, status, fmt.Errorf("%w: %w", ErrRetryableRequest, err)
	}

	c.logger.PageFetched(ctx, ServiceName, page, len(records), status, durationMs)
	return records, status, nil
}

func (c *Client) resourceURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + c.cfg.ResourceID
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if errors.Is(err, ErrNonRetryable) {
		return false
	}
	return errors.Is(err, ErrRetryableRequest)
}
