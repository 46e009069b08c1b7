package browse

import (
	"sort"
	"strings"

	"github.com/five82/binder/internal/collection"
)

// Grouping selects the dimension the distribution is bucketed by.
type Grouping int

const (
	ByRarity Grouping = iota
	ByType
)

func (g Grouping) String() string {
	switch g {
	case ByType:
		return "type"
	default:
		return "rarity"
	}
}

// Next cycles to the following grouping.
func (g Grouping) Next() Grouping {
	if g == ByRarity {
		return ByType
	}
	return ByRarity
}

// ParseGrouping maps "rarity"/"type" to a Grouping, defaulting to ByRarity.
func ParseGrouping(value string) Grouping {
	if strings.EqualFold(strings.TrimSpace(value), "type") {
		return ByType
	}
	return ByRarity
}

// Bucket is one slice of the distribution: the summed quantity of the cards
// sharing Label.
type Bucket struct {
	Label string
	Count int
}

// Rarities lists the rarities in their canonical display order.
var Rarities = []string{"common", "uncommon", "rare", "mythic"}

// primaryTypes are matched in order against a card's type line.
var primaryTypes = []string{"Land", "Creature", "Planeswalker", "Battle", "Instant", "Sorcery", "Artifact", "Enchantment"}

const otherLabel = "other"

// Distribution buckets the summed quantity of cards by grouping. Rarity
// buckets follow the canonical order with unknown rarities appended
// alphabetically; type buckets are sorted by count, then label.
func Distribution(cards []collection.Card, by Grouping) []Bucket {
	counts := make(map[string]int)
	for _, card := range cards {
		counts[bucketLabel(card, by)] += card.Quantity
	}
	if len(counts) == 0 {
		return nil
	}

	buckets := make([]Bucket, 0, len(counts))
	if by == ByRarity {
		for _, rarity := range Rarities {
			if count, ok := counts[rarity]; ok {
				buckets = append(buckets, Bucket{Label: rarity, Count: count})
				delete(counts, rarity)
			}
		}
		rest := make([]string, 0, len(counts))
		for label := range counts {
			rest = append(rest, label)
		}
		sort.Strings(rest)
		for _, label := range rest {
			buckets = append(buckets, Bucket{Label: label, Count: counts[label]})
		}
		return buckets
	}

	for label, count := range counts {
		buckets = append(buckets, Bucket{Label: label, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

func bucketLabel(card collection.Card, by Grouping) string {
	if by == ByType {
		return primaryType(card.Type)
	}
	if card.Rarity == "" {
		return otherLabel
	}
	return card.Rarity
}

func primaryType(typeLine string) string {
	// Drop subtypes: "Legendary Creature - Dragon" -> "Legendary Creature".
	if i := strings.IndexAny(typeLine, "—-"); i >= 0 {
		typeLine = typeLine[:i]
	}
	words := strings.Fields(typeLine)
	for _, want := range primaryTypes {
		for _, word := range words {
			if strings.EqualFold(word, want) {
				return want
			}
		}
	}
	if len(words) == 0 {
		return otherLabel
	}
	return words[len(words)-1]
}
