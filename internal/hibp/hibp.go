package hibp

import (
	"context"
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/d60-Lab/schoolbooks/internal/httpx"
)

// Service 查询 Have I Been Pwned 的 k-匿名接口：
// 只上送 SHA-1 前 5 位，在返回的后缀清单里本地比对。
type Service struct {
	client *httpx.Client
}

func NewService(client *httpx.Client) *Service { return &Service{client: client} }

// CheckPassword 返回 true 表示密码未出现在泄露库（视为安全）
func (s *Service) CheckPassword(ctx context.Context, password string) (bool, error) {
	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(fmt.Sprintf("%x", sum))
	prefix, suffix := hash[:5], hash[5:]

	body, err := s.client.Get(ctx, "/range/"+prefix)
	if err != nil {
		return false, err
	}

	for _, line := range strings.Split(string(body), "\n") {
		candidate, _, found := strings.Cut(strings.TrimSpace(line), ":")
		if found && candidate == suffix {
			return false, nil
		}
	}
	return true, nil
}
