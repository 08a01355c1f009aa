package card

import "slices"

// BookSize is the number of same-rank cards that complete a book.
const BookSize = 4

// CountRanks 统计各 Rank 的数量，未知点数不计入
func CountRanks(cards []*Card) map[Rank]int {
	counts := make(map[Rank]int)
	for _, c := range cards {
		if c.Rank != RankNone {
			counts[c.Rank]++
		}
	}
	return counts
}

// CompleteRanks returns the ranks present at least BookSize times, ascending.
func CompleteRanks(cards []*Card) []Rank {
	var ranks []Rank
	for r, n := range CountRanks(cards) {
		if n >= BookSize {
			ranks = append(ranks, r)
		}
	}
	slices.Sort(ranks)
	return ranks
}

// FindByValue returns the index of the first card matching v, or -1.
func FindByValue(cards []*Card, v Value) int {
	return slices.IndexFunc(cards, func(c *Card) bool {
		return c.Rank == v.Rank() && c.Suit == v.Suit()
	})
}

// Values 提取牌值
func Values(cards []*Card) []Value {
	values := make([]Value, len(cards))
	for i, c := range cards {
		values[i] = c.Value()
	}
	return values
}
