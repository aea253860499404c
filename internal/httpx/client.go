package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Client 外部服务专用 HTTP 客户端：每个外部服务一个实例，
// 连接池复用，超时完全交给调用方的 context 控制。
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// 附加到每个请求的固定头（如 Authorization）
	Headers map[string]string
}

// NewClient 创建客户端实例
func NewClient(baseURL string, headers map[string]string) *Client {
	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: httpClient, Headers: headers}
}

// Get 发起 GET 并返回响应体。非 2xx 视为错误。
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

// Post 发起 POST，body 为原始字节
func (c *Client) Post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, contentType, body)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	url := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// 传输层错误原样透出，不区分瞬时/永久
		return nil, fmt.Errorf("httpx: %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpx: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("httpx: %s %s returned status %s", method, url, resp.Status)
	}
	return data, nil
}
