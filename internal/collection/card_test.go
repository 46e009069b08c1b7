package collection

import (
	"errors"
	"testing"
)

func TestNormalize_CanonicalisesFields(t *testing.T) {
	cards, err := normalize([]Card{{
		ID:     1,
		Name:   "  Dragon Whelp ",
		Type:   " Creature ",
		Rarity: " Uncommon",
		Colors: []string{"Red", " red", "", "GREEN"},
	}})
	if err != nil {
		t.Fatalf("normalize returned error: %v", err)
	}
	got := cards[0]
	if got.Name != "Dragon Whelp" {
		t.Fatalf("Name = %q, want %q", got.Name, "Dragon Whelp")
	}
	if got.Rarity != "uncommon" {
		t.Fatalf("Rarity = %q, want uncommon", got.Rarity)
	}
	if len(got.Colors) != 2 || got.Colors[0] != "red" || got.Colors[1] != "green" {
		t.Fatalf("Colors = %v, want [red green]", got.Colors)
	}
}

func TestNormalize_RejectsInvalidCards(t *testing.T) {
	cases := []struct {
		name  string
		cards []Card
		want  error
	}{
		{"duplicate id", []Card{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}, ErrDuplicateID},
		{"negative quantity", []Card{{ID: 1, Name: "A", Quantity: -1}}, ErrNegativeQuantity},
		{"blank name", []Card{{ID: 1, Name: "  "}}, ErrMissingName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := normalize(tc.cards)
			if !errors.Is(err, tc.want) {
				t.Fatalf("normalize error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCard_FieldsAndColors(t *testing.T) {
	card := Card{Name: "Angel", Type: "Creature", Rarity: "rare", Colors: []string{"white"}, Set: "M21"}
	fields := card.Fields()
	if len(fields) != 5 || fields[0] != "Angel" || fields[4] != "M21" {
		t.Fatalf("Fields = %v", fields)
	}
	if !card.HasColor(" White ") {
		t.Fatalf("HasColor(White) = false, want true")
	}
	if card.HasColor("blue") {
		t.Fatalf("HasColor(blue) = true, want false")
	}
}

func TestCard_CostLabel(t *testing.T) {
	if got := (Card{Cost: 3}).CostLabel(); got != "{3}" {
		t.Fatalf("CostLabel = %q, want {3}", got)
	}
	if got := (Card{Cost: 2.5}).CostLabel(); got != "{2.5}" {
		t.Fatalf("CostLabel = %q, want {2.5}", got)
	}
}

func TestCloneCards_IsDeep(t *testing.T) {
	orig := []Card{{ID: 1, Name: "A", Colors: []string{"red"}}}
	dup := cloneCards(orig)
	dup[0].Colors[0] = "blue"
	dup[0].Name = "B"
	if orig[0].Colors[0] != "red" || orig[0].Name != "A" {
		t.Fatalf("cloneCards shares state with the original: %#v", orig[0])
	}
	if cloneCards(nil) != nil {
		t.Fatalf("cloneCards(nil) should be nil")
	}
}
