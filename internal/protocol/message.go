package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 事件流 → 牌桌 消息类型
const (
	// 发牌
	MsgDeal       MessageType = "deal"        // 发明牌（本地玩家可见的牌值）
	MsgDealHidden MessageType = "deal_hidden" // 发暗牌（只知道张数）

	// 规则引擎的结果
	MsgTransfer MessageType = "transfer" // 一方把牌交给另一方
	MsgBook     MessageType = "book"     // 凑齐一套，放到书堆
	MsgAssign   MessageType = "assign"   // 揭示暗牌的牌值
	MsgReveal   MessageType = "reveal"   // 整手翻开
	MsgHide     MessageType = "hide"     // 整手扣下
)

// 牌桌 → 事件流 消息类型
const (
	MsgSnapshot MessageType = "snapshot" // 牌桌快照
	MsgError    MessageType = "error"    // 错误
)

// 座位别名，事件可以用它们代替玩家 ID
const (
	SeatLocal  = "local"
	SeatRemote = "remote"
)
