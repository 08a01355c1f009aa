package feed

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// reconnect 指数退避重连，次数用尽后关闭客户端
func (c *Client) reconnect() {
	if !c.reconnecting.CompareAndSwap(false, true) {
		return
	}

	backoff := c.interval
	for attempt := 1; attempt <= c.tries; attempt++ {
		if c.OnReconnecting != nil {
			c.OnReconnecting(attempt, c.tries)
		}

		select {
		case <-time.After(backoff):
		case <-c.done:
			c.reconnecting.Store(false)
			return
		}
		backoff = min(backoff*2, maxBackoff)

		ctx, cancel := context.WithTimeout(context.Background(), handshakeTimeout)
		conn, err := c.dial(ctx)
		cancel()
		if err != nil {
			c.log.WithFields(logrus.Fields{
				"attempt": attempt,
				"error":   err,
			}).Warn("Feed reconnect failed")
			continue
		}
		if c.isClosed() {
			_ = conn.Close()
			c.reconnecting.Store(false)
			return
		}

		// 先清标志，新连接若立刻断开还能再次重连
		c.reconnecting.Store(false)
		c.attach(conn)
		c.log.WithField("attempt", attempt).Info("Feed reconnected")
		if c.OnReconnect != nil {
			c.OnReconnect()
		}
		return
	}

	c.log.WithField("tries", c.tries).Error("Feed reconnect gave up")
	c.reconnecting.Store(false)
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}
