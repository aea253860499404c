package tld

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/schoolbooks/internal/httpx"
	"github.com/d60-Lab/schoolbooks/pkg/logger"
)

// CacheKey 顶级域名集合在 redis 里的 key（set 成员为小写 TLD）
const CacheKey = "tld:list"

// Refresher 定时拉取 IANA 顶级域名清单并写入 redis。
// 每次 tick 只跑一次，失败记日志、本轮不重试。
type Refresher struct {
	client   *httpx.Client
	cache    *redis.Client
	interval time.Duration
	ttl      time.Duration
}

func NewRefresher(client *httpx.Client, cache *redis.Client, interval, ttl time.Duration) *Refresher {
	if interval <= 0 {
		interval = 7 * 24 * time.Hour
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Refresher{client: client, cache: cache, interval: interval, ttl: ttl}
}

// Start 启动刷新循环；返回停止函数。启动时先刷一次。
func (r *Refresher) Start() func(context.Context) error {
	stop := make(chan struct{})
	go func() {
		if err := r.RefreshOnce(context.Background()); err != nil {
			logger.L().Warn("tld refresh failed", zap.Error(err))
		}
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := r.RefreshOnce(context.Background()); err != nil {
					logger.L().Warn("tld refresh failed", zap.Error(err))
				}
			}
		}
	}()
	return func(ctx context.Context) error { close(stop); return nil }
}

// RefreshOnce 拉取清单、解析并整体替换缓存
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	body, err := r.client.Get(ctx, "")
	if err != nil {
		return err
	}
	tlds := parse(string(body))
	if len(tlds) == 0 {
		return nil
	}

	pipe := r.cache.TxPipeline()
	pipe.Del(ctx, CacheKey)
	members := make([]interface{}, len(tlds))
	for i, t := range tlds {
		members[i] = t
	}
	pipe.SAdd(ctx, CacheKey, members...)
	pipe.Expire(ctx, CacheKey, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	logger.L().Info("tld list refreshed", zap.Int("count", len(tlds)))
	return nil
}

// parse IANA 文件格式：# 开头为注释，每行一个大写 TLD
func parse(body string) []string {
	var tlds []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tlds = append(tlds, strings.ToLower(line))
	}
	return tlds
}

// Valid 判断 tld 是否在缓存清单里。缓存缺失时放行（fail-open）。
func Valid(ctx context.Context, cache *redis.Client, tld string) bool {
	exists, err := cache.Exists(ctx, CacheKey).Result()
	if err != nil || exists == 0 {
		return true
	}
	ok, err := cache.SIsMember(ctx, CacheKey, strings.ToLower(tld)).Result()
	if err != nil {
		return true
	}
	return ok
}
