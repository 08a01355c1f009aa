// Package feed receives table events over a websocket and hands them to the
// caller one by one, reconnecting when the connection drops.
package feed

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/palemoky/go-fish/internal/config"
	"github.com/palemoky/go-fish/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second
	maxBackoff       = 30 * time.Second // 最大退避时间
	sendBuffer       = 64
)

var (
	ErrClosed     = errors.New("feed closed")
	ErrBufferFull = errors.New("send buffer full")
)

// Client 事件流客户端
type Client struct {
	URL string

	tries    int
	interval time.Duration
	log      logrus.FieldLogger

	// 回调，均在后台协程中调用
	OnMessage      func(*protocol.Message)     // 收到事件
	OnError        func(error)                 // 连接异常断开
	OnReconnecting func(attempt, maxTries int) // 开始第 attempt 次重连
	OnReconnect    func()                      // 重连成功
	OnClose        func()                      // 重连次数用尽后

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool

	send         chan []byte
	done         chan struct{}
	reconnecting atomic.Bool
}

// New 创建客户端，连接参数来自配置
func New(cfg config.FeedConfig, log logrus.FieldLogger) *Client {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Client{
		URL:      cfg.URL,
		tries:    cfg.ReconnectTries,
		interval: cfg.ReconnectInterval(),
		log:      log.WithField("feed", cfg.URL),
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

// Connect 连接事件流并启动读写协程
func (c *Client) Connect(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	c.attach(conn)
	c.log.Info("Feed connected")
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.URL, nil)
	return conn, err
}

// attach starts the pumps of a fresh connection. stop is closed by the read
// pump when the connection is gone.
func (c *Client) attach(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	stop := make(chan struct{})
	go c.writePump(conn, stop)
	go c.readPump(conn, stop)
}

// Send 向上游发送一条消息（如错误回报）
func (c *Client) Send(msg *protocol.Message) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	data, err := msg.Encode()
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close 关闭连接，不再重连
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.mu.Unlock()
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
