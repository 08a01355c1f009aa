package card

import (
	"fmt"
	"strings"
)

// Value is the one-byte wire form of a card.
//
// 编码规则:
// - 高4位: 花色 (0:Spade, 1:Heart, 2:Club, 3:Diamond)
// - 低4位: 点数 (1:A, 2..9, 10:T, 11:J, 12:Q, 13:K), 0 表示未知
type Value byte

// ValueUnknown is a face-down card whose value was never disclosed.
const ValueUnknown Value = 0

// NewValue packs rank and suit.
func NewValue(r Rank, s Suit) Value {
	return Value(byte(s)<<4 | byte(r)&0x0F)
}

func (v Value) Rank() Rank {
	return Rank(v & 0x0F)
}

func (v Value) Suit() Suit {
	return Suit(v >> 4)
}

// Valid reports whether v names a real card.
func (v Value) Valid() bool {
	return v.Rank().Valid() && v.Suit() >= Spade && v.Suit() <= Diamond
}

func (v Value) String() string {
	if !v.Valid() {
		return "??"
	}
	return v.Rank().String() + v.Suit().String()
}

// suitChars 花色字母
var suitChars = map[rune]Suit{
	'S': Spade,
	'H': Heart,
	'C': Club,
	'D': Diamond,
}

// ParseValue parses the short form used in configs and logs, e.g. "7S",
// "TD" or "10H".
func ParseValue(s string) (Value, error) {
	s = strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(s, "10", "T")))
	runes := []rune(s)
	if len(runes) != 2 {
		return ValueUnknown, fmt.Errorf("invalid card %q", s)
	}
	rank, err := RankFromChar(runes[0])
	if err != nil {
		return ValueUnknown, err
	}
	suit, ok := suitChars[runes[1]]
	if !ok {
		return ValueUnknown, fmt.Errorf("unknown suit: %c", runes[1])
	}
	return NewValue(rank, suit), nil
}

// ParseValues parses a space or comma separated list.
func ParseValues(s string) ([]Value, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	values := make([]Value, 0, len(fields))
	for _, f := range fields {
		v, err := ParseValue(f)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// rankCodes/suitCodes are the ASCII forms accepted by ParseValue.
var (
	rankCodes = "?A23456789TJQK"
	suitCodes = "SHCD"
)

// Code returns the ASCII short form, e.g. "7S" or "TD".
func (v Value) Code() string {
	if !v.Valid() {
		return "??"
	}
	return string([]byte{rankCodes[v.Rank()], suitCodes[v.Suit()]})
}

// MarshalText encodes v in its short form so value lists stay readable in JSON.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.Code()), nil
}

// UnmarshalText accepts the short form; "??" decodes to ValueUnknown.
func (v *Value) UnmarshalText(text []byte) error {
	if string(text) == "??" {
		*v = ValueUnknown
		return nil
	}
	parsed, err := ParseValue(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
