package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/palemoky/go-fish/internal/game/geometry"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Color 返回花色对应的颜色
func (s Suit) Color() CardColor {
	if s == Heart || s == Diamond {
		return Red
	}
	return Black
}

// RankNone marks a card whose value is not known to this client yet.
const RankNone Rank = 0

const (
	RankA Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	RankNone: "?",
	RankA:    "A",
	Rank10:   "10",
	RankJ:    "J",
	RankQ:    "Q",
	RankK:    "K",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Valid reports whether r is a playable rank.
func (r Rank) Valid() bool {
	return r >= RankA && r <= RankK
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[rune]Rank{
	'A': RankA,
	'2': Rank2,
	'3': Rank3,
	'4': Rank4,
	'5': Rank5,
	'6': Rank6,
	'7': Rank7,
	'8': Rank8,
	'9': Rank9,
	'T': Rank10,
	'J': RankJ,
	'Q': RankQ,
	'K': RankK,
}

func RankFromChar(char rune) (Rank, error) {
	if rank, ok := charToRank[char]; ok {
		return rank, nil
	}
	return RankNone, fmt.Errorf("unknown rank: %c", char)
}

// ID indexes a card inside an Arena. The zero value means "no card".
type ID int

// NoID is the empty stacking parent.
const NoID ID = 0

// Card is one physical card on the table. Ownership and stacking are plain
// fields; the rendering layer keeps whatever it needs in Handle.
type Card struct {
	ID     ID
	Rank   Rank
	Suit   Suit
	FaceUp bool
	Owner  string

	// Parent anchors this card on top of another card of the same rank.
	// A card with a parent is not a displaying card of its owner.
	Parent ID
	Offset geometry.Vec2

	// Order is the display order index assigned with the card's value.
	Order int

	Handle any
}

// Value returns the wire value of the card.
func (c *Card) Value() Value {
	return NewValue(c.Rank, c.Suit)
}

// SetValue overwrites rank and suit from a wire value.
func (c *Card) SetValue(v Value) {
	c.Rank = v.Rank()
	c.Suit = v.Suit()
}

// Stacked reports whether the card is anchored to a stacking parent.
func (c *Card) Stacked() bool {
	return c.Parent != NoID
}

// Unstack clears the stacking relation.
func (c *Card) Unstack() {
	c.Parent = NoID
	c.Offset = geometry.Vec2{}
}

func (c *Card) String() string {
	if c.Rank == RankNone {
		return "??"
	}
	return c.Rank.String() + c.Suit.String()
}

// Deck 定义一副牌（按值表示，尚未放入 Arena）
type Deck []Value

// NewDeck returns the 52 standard values, suit by suit.
func NewDeck() Deck {
	deck := make(Deck, 0, 52)
	for s := Spade; s <= Diamond; s++ {
		for r := RankA; r <= RankK; r++ {
			deck = append(deck, NewValue(r, s))
		}
	}
	return deck
}

func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw removes and returns the top n values. It returns fewer when the deck
// runs out.
func (d *Deck) Draw(n int) []Value {
	if n > len(*d) {
		n = len(*d)
	}
	drawn := make([]Value, n)
	copy(drawn, (*d)[len(*d)-n:])
	*d = (*d)[:len(*d)-n]
	return drawn
}
