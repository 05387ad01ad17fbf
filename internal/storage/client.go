package storage

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

	"github.com/sony/gobreaker"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/metrics"
)

// UploadInput is markdown content to pin on decentralized storage
type UploadInput struct {
	Content string `json:"content"`
	Title   string `json:"title,omitempty"`
}

// UploadResult identifies the stored bytes. The core keeps only these ids.
type UploadResult struct {
	CID      string `json:"cid"`
	PieceCID string `json:"pieceCid"`
	Size     int64  `json:"size"`
}

// Uploader stores content through the gateway
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
}

// Config configures the gateway client
type Config struct {
	GatewayURL string
	Token      string
	Timeout    time.Duration
}

// Client posts uploads to the storage gateway behind a circuit breaker
type Client struct {
	url     string
	token   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// gatewayRequest is the body the gateway expects
type gatewayRequest struct {
	Content     string `json:"content"`
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
}

type gatewayResponse struct {
	Success  bool   `json:"success"`
	CID      string `json:"cid"`
	PieceCID string `json:"pieceCid"`
	Size     int64  `json:"size"`
	Error    string `json:"error"`
}

// errGateway marks failures that count against the breaker
var errGateway = errors.New("storage gateway error")

// NewClient creates a gateway client. An empty GatewayURL yields a client
// whose uploads fail with ErrStorageNotConfigured.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:   strings.TrimRight(cfg.GatewayURL, "/"),
		token: cfg.Token,
		http:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        BreakerName,
			MaxRequests: BreakerMaxHalfOpen,
			Interval:    BreakerInterval,
			Timeout:     BreakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= BreakerFailureThreshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.StorageBreakerState.Set(float64(to))
				logger.Warn(LogMsgBreakerStateChange, "breaker", name, "from", from.String(), "to", to.String())
			},
			IsSuccessful: func(err error) bool {
				// rejected uploads are the caller's fault, not the gateway's
				return err == nil || !errors.Is(err, errGateway)
			},
		}),
	}
}

// State reports the breaker state
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if input.Content == "" {
		return nil, domain.ErrEmptyContent
	}
	if c.url == "" {
		return nil, domain.ErrStorageNotConfigured
	}
	if input.Title == "" {
		input.Title = DefaultTitle
	}
	log := logger.FromContext(ctx)

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, input)
	})
	if err != nil {
		metrics.StorageUploads.WithLabelValues(metrics.ResultFailure).Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Warn(LogMsgBreakerOpen, "state", c.breaker.State().String())
			return nil, domain.ErrStorageUnavailable
		}
		log.Error(LogMsgUploadFailed, "error", err)
		if errors.Is(err, errGateway) {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		return nil, err
	}

	result := res.(*UploadResult)
	metrics.StorageUploads.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info(LogMsgUploadComplete, "cid", result.CID, "piece_cid", result.PieceCID, "size", result.Size)
	return result, nil
}

func (c *Client) post(ctx context.Context, input UploadInput) (*UploadResult, error) {
	body, err := json.Marshal(gatewayRequest{
		Content:     input.Content,
		Title:       input.Title,
		ContentType: ContentTypeMD,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderContentType, "application/json")
	if c.token != "" {
		req.Header.Set(HeaderAuthorization, "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodyBytes))
		return nil, fmt.Errorf("%w: status %d: %s", errGateway, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodyBytes))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrStorageUploadRejected, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out gatewayResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", errGateway, err)
	}
	if out.PieceCID == "" && out.CID == "" {
		return nil, fmt.Errorf("%w: response carried no cid", errGateway)
	}

	cid := out.CID
	if cid == "" {
		cid = out.PieceCID
	}
	size := out.Size
	if size == 0 {
		size = int64(len(input.Content))
	}
	return &UploadResult{CID: cid, PieceCID: out.PieceCID, Size: size}, nil
}
