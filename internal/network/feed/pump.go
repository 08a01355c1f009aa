package feed

import (
	"runtime/debug"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/go-fish/internal/protocol"
)

// readPump 读取事件
func (c *Client) readPump(conn *websocket.Conn, stop chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("stack", string(debug.Stack())).Errorf("readPump panic: %v", r)
		}
		close(stop)
		_ = conn.Close()

		if c.isClosed() {
			return
		}
		go c.reconnect()
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && !c.isClosed() {
				c.log.WithError(err).Warn("Feed connection lost")
				if c.OnError != nil {
					c.OnError(err)
				}
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			c.log.WithError(err).Warn("Dropped undecodable event")
			continue
		}
		if c.OnMessage != nil {
			c.OnMessage(msg)
		}
	}
}

// writePump 发送上游消息与心跳
func (c *Client) writePump(conn *websocket.Conn, stop chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("stack", string(debug.Stack())).Errorf("writePump panic: %v", r)
		}
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.WithError(err).Warn("Feed write failed")
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-stop:
			return

		case <-c.done:
			return
		}
	}
}
