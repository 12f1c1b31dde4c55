package web

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/constants"
	"github.com/to404hanga/online_judge_contest/event"
)

const (
	notificationWriteWait  = 10 * time.Second
	notificationPingPeriod = 30 * time.Second
	notificationBuffer     = 16
)

// Notification 推送给浏览器的通知
type Notification struct {
	Topic     string `json:"topic"`
	ContestID int64  `json:"contest_id"`
	Payload   any    `json:"payload"`
}

type notifyClient struct {
	contestID int64 // 0 表示接收所有比赛的通知
	send      chan []byte
}

// NotificationHandler 订阅 redis 上的排行榜与气球通知, 转发给 websocket 连接
type NotificationHandler struct {
	rdb      redis.UniversalClient
	log      loggerv2.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*notifyClient]struct{}
}

var _ Handler = (*NotificationHandler)(nil)

func NewNotificationHandler(rdb redis.UniversalClient, log loggerv2.Logger) *NotificationHandler {
	return &NotificationHandler{
		rdb: rdb,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*notifyClient]struct{}),
	}
}

func (h *NotificationHandler) Register(r *gin.Engine) {
	r.GET(constants.NotificationPath, h.Serve)
}

// Run 订阅通知直到 ctx 结束
func (h *NotificationHandler) Run(ctx context.Context) error {
	sub := h.rdb.PSubscribe(ctx, event.RankChangedPattern, event.BalloonChangeTopic)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			h.Dispatch(msg.Channel, []byte(msg.Payload))
		}
	}
}

// Dispatch 把一条通知转发给关注该比赛的连接, 慢连接直接丢弃
func (h *NotificationHandler) Dispatch(topic string, payload []byte) {
	n := Notification{Topic: topic}
	if tid, ok := event.ParseRankChangedTopic(topic); ok {
		var msg event.RankChangedMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.log.Warn("Dispatch failed at unmarshal", logger.String("topic", topic), logger.Error(err))
			return
		}
		n.ContestID = tid
		n.Payload = &msg
	} else if topic == event.BalloonChangeTopic {
		var msg event.BalloonChangeMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.log.Warn("Dispatch failed at unmarshal", logger.String("topic", topic), logger.Error(err))
			return
		}
		n.ContestID = msg.ContestID
		n.Payload = &msg
	} else {
		return
	}

	data, err := json.Marshal(&n)
	if err != nil {
		h.log.Error("Dispatch failed at marshal", logger.String("topic", topic), logger.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.contestID != 0 && c.contestID != n.ContestID {
			continue
		}
		select {
		case c.send <- data:
		default:
			notificationDropped.Inc()
		}
	}
}

func (h *NotificationHandler) register(c *notifyClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	notificationConnections.Inc()
}

func (h *NotificationHandler) unregister(c *notifyClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	notificationConnections.Dec()
}

// clientCount 当前连接数
func (h *NotificationHandler) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *NotificationHandler) Serve(c *gin.Context) {
	var contestID int64
	if s := c.Query("contest_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id < 0 {
			c.Status(http.StatusBadRequest)
			return
		}
		contestID = id
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("Serve failed at upgrade", logger.Error(err))
		return
	}
	defer conn.Close()

	client := &notifyClient{contestID: contestID, send: make(chan []byte, notificationBuffer)}
	h.register(client)
	defer h.unregister(client)

	// 客户端不发送业务消息, 读循环只用于感知断开
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(notificationPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case data := <-client.send:
			conn.SetWriteDeadline(time.Now().Add(notificationWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.log.Debug("Serve failed at write", logger.Error(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(notificationWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
