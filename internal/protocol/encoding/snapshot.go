// Package encoding stores table snapshots in protobuf wire format.
//
// 字段编号（与 .proto 等价，未生成代码）:
//
//	TableSnapshot { 1: table_id string; 2: hands repeated Hand }
//	Hand          { 1: player_id string; 2: name string; 3: is_ai bool;
//	                4: cards repeated Card; 5: books repeated Book }
//	Card          { 1: value uint32; 2: face_up bool }
//	Book          { 1: rank uint32; 2: cards bytes (一字节一张) }
//
// 未知字段在解码时跳过，便于以后扩展。
package encoding

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/protocol"
)

// ErrMalformed is returned for truncated or mistyped input.
var ErrMalformed = errors.New("malformed snapshot")

// skip is returned by a field callback for fields it does not know.
const skip = math.MinInt

// MarshalSnapshot 将快照编码为 protobuf 字节
func MarshalSnapshot(s *protocol.TableSnapshot) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	b := *buf
	if s.TableID != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, s.TableID)
	}
	for i := range s.Hands {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, appendHand(nil, &s.Hands[i]))
	}
	*buf = b

	// 复制出池外
	return append([]byte(nil), b...)
}

func appendHand(b []byte, h *protocol.HandSnapshot) []byte {
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, h.PlayerID)
	if h.Name != "" {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, h.Name)
	}
	if h.IsAI {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	for _, c := range h.Cards {
		var cb []byte
		cb = protowire.AppendTag(cb, 1, protowire.VarintType)
		cb = protowire.AppendVarint(cb, uint64(c.Value))
		if c.FaceUp {
			cb = protowire.AppendTag(cb, 2, protowire.VarintType)
			cb = protowire.AppendVarint(cb, protowire.EncodeBool(true))
		}
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, cb)
	}
	for _, bk := range h.Books {
		var bb []byte
		bb = protowire.AppendTag(bb, 1, protowire.VarintType)
		bb = protowire.AppendVarint(bb, uint64(bk.Rank))
		raw := make([]byte, len(bk.Cards))
		for i, v := range bk.Cards {
			raw[i] = byte(v)
		}
		bb = protowire.AppendTag(bb, 2, protowire.BytesType)
		bb = protowire.AppendBytes(bb, raw)
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, bb)
	}
	return b
}

// UnmarshalSnapshot 从 protobuf 字节解码快照
func UnmarshalSnapshot(data []byte) (*protocol.TableSnapshot, error) {
	var s protocol.TableSnapshot
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			s.TableID = v
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			h, err := unmarshalHand(v)
			if err != nil {
				return 0, err
			}
			s.Hands = append(s.Hands, h)
			return n, nil
		}
		return skip, nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func unmarshalHand(data []byte) (protocol.HandSnapshot, error) {
	var h protocol.HandSnapshot
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			h.PlayerID = v
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			h.Name = v
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			h.IsAI = protowire.DecodeBool(v)
			return n, nil
		case num == 4 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			c, err := unmarshalCard(v)
			if err != nil {
				return 0, err
			}
			h.Cards = append(h.Cards, c)
			return n, nil
		case num == 5 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			bk, err := unmarshalBook(v)
			if err != nil {
				return 0, err
			}
			h.Books = append(h.Books, bk)
			return n, nil
		}
		return skip, nil
	})
	return h, err
}

func unmarshalCard(data []byte) (protocol.CardSnapshot, error) {
	var c protocol.CardSnapshot
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.VarintType || (num != 1 && num != 2) {
			return skip, nil
		}
		v, n := protowire.ConsumeVarint(b)
		if num == 1 {
			if v > 0xFF {
				return 0, fmt.Errorf("%w: card value %d out of range", ErrMalformed, v)
			}
			c.Value = card.Value(v)
		} else {
			c.FaceUp = protowire.DecodeBool(v)
		}
		return n, nil
	})
	return c, err
}

func unmarshalBook(data []byte) (protocol.BookSnapshot, error) {
	var bk protocol.BookSnapshot
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			bk.Rank = card.Rank(v)
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			for _, raw := range v {
				bk.Cards = append(bk.Cards, card.Value(raw))
			}
			return n, nil
		}
		return skip, nil
	})
	return bk, err
}

// walk iterates the fields of one message. field consumes the value and
// returns its length, or skip to have the field skipped as unknown.
func walk(data []byte, field func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		data = data[n:]

		m, err := field(num, typ, data)
		if err != nil {
			return err
		}
		if m == skip {
			m = protowire.ConsumeFieldValue(num, typ, data)
		}
		if m < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(m))
		}
		data = data[m:]
	}
	return nil
}
