package protocol

import "github.com/palemoky/go-fish/internal/game/card"

// 牌值在 JSON 中以短格式出现，如 "7S"、"TD"，未知牌为 "??"

// DealPayload 发明牌
type DealPayload struct {
	PlayerID string       `json:"player_id"`
	Cards    []card.Value `json:"cards"`
}

// DealHiddenPayload 发暗牌
type DealHiddenPayload struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

// TransferPayload 转移牌
type TransferPayload struct {
	From       string       `json:"from"`
	To         string       `json:"to"`
	Cards      []card.Value `json:"cards"`
	Resolution string       `json:"resolution"` // identity/reverse_position
}

// BookPayload 凑齐一套
type BookPayload struct {
	PlayerID string    `json:"player_id"`
	Rank     card.Rank `json:"rank"`
}

// AssignPayload 按显示顺序写入牌值
type AssignPayload struct {
	PlayerID string       `json:"player_id"`
	Cards    []card.Value `json:"cards"`
}

// PlayerPayload 只针对一名玩家的操作（reveal/hide）
type PlayerPayload struct {
	PlayerID string `json:"player_id"`
}

// ErrorPayload 错误
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
