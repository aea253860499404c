package broadcast

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/schoolbooks/pkg/logger"
)

// Event 实时事件负载，推送到 user.{userID} 私有频道
type Event struct {
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

const channelPrefix = "user."

// Publish 向某用户的私有频道发布事件。fire-and-forget：
// 没有在线订阅者时消息直接丢弃，不确认、不重试。
func Publish(ctx context.Context, rdb *redis.Client, userID string, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, channelPrefix+userID, payload).Err()
}

// Hub 把 redis pub/sub 的事件分发给已连接的 websocket。
// 同一用户允许多个连接（多标签页）。
type Hub struct {
	rdb *redis.Client

	mu    sync.Mutex
	conns map[string][]*websocket.Conn // userID -> connections
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb, conns: make(map[string][]*websocket.Conn)}
}

// Start 订阅 user.* 并转发；返回停止函数
func (h *Hub) Start() func(context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	sub := h.rdb.PSubscribe(ctx, channelPrefix+"*")
	go func() {
		for msg := range sub.Channel() {
			userID := strings.TrimPrefix(msg.Channel, channelPrefix)
			h.deliver(userID, []byte(msg.Payload))
		}
	}()
	return func(context.Context) error {
		cancel()
		return sub.Close()
	}
}

func (h *Hub) deliver(userID string, payload []byte) {
	h.mu.Lock()
	conns := append([]*websocket.Conn(nil), h.conns[userID]...)
	h.mu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.L().Debug("websocket write failed, dropping connection",
				zap.String("user_id", userID), zap.Error(err))
			h.Detach(userID, conn)
			_ = conn.Close()
		}
	}
}

// Attach 注册一个用户连接
func (h *Hub) Attach(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userID] = append(h.conns[userID], conn)
}

// Detach 移除一个用户连接
func (h *Hub) Detach(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.conns[userID]
	for i, c := range list {
		if c == conn {
			h.conns[userID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// ConnCount 当前用户在线连接数（测试用）
func (h *Hub) ConnCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[userID])
}
