package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/d60-Lab/schoolbooks/internal/httpx"
)

// Client 短信网关客户端。token 来自配置注入，不在代码里写死。
type Client struct {
	http   *httpx.Client
	sender string
}

func NewClient(baseURL, token, sender string) *Client {
	headers := map[string]string{"Authorization": "Bearer " + token}
	return &Client{http: httpx.NewClient(baseURL, headers), sender: sender}
}

type sendRequest struct {
	Sender  string `json:"sender"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send 发送一条短信，不重试
func (c *Client) Send(ctx context.Context, to, message string) error {
	payload, err := json.Marshal(sendRequest{Sender: c.sender, To: to, Message: message})
	if err != nil {
		return fmt.Errorf("sms: marshal request: %w", err)
	}
	if _, err := c.http.Post(ctx, "/messages", "application/json", bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("sms: send to %s: %w", to, err)
	}
	return nil
}
