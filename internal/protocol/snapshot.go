package protocol

import "github.com/palemoky/go-fish/internal/game/card"

// TableSnapshot 牌桌快照，用于持久化与恢复
type TableSnapshot struct {
	TableID string         `json:"table_id"`
	Hands   []HandSnapshot `json:"hands"`
}

// HandSnapshot 一名玩家的手牌与书堆
type HandSnapshot struct {
	PlayerID string         `json:"player_id"`
	Name     string         `json:"name"`
	IsAI     bool           `json:"is_ai"`
	Cards    []CardSnapshot `json:"cards"` // 到达顺序
	Books    []BookSnapshot `json:"books"` // 完成顺序
}

// CardSnapshot 一张手牌
type CardSnapshot struct {
	Value  card.Value `json:"value"`
	FaceUp bool       `json:"face_up"`
}

// BookSnapshot 一套已完成的牌
type BookSnapshot struct {
	Rank  card.Rank    `json:"rank"`
	Cards []card.Value `json:"cards"`
}

// CardCount 快照中的总牌数（手牌 + 书堆）
func (s *TableSnapshot) CardCount() int {
	n := 0
	for _, h := range s.Hands {
		n += len(h.Cards)
		for _, b := range h.Books {
			n += len(b.Cards)
		}
	}
	return n
}
