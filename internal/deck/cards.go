package deck

import "fmt"

// ParseCards parses a compact card string like "AsKh9d" into cards.
// Ranks are 2-9, T, J, Q, K, A and suits are s, h, d, c, both case
// insensitive.
func ParseCards(s string) ([]Card, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("card string %q has odd length", s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := parseRank(s[i])
		if err != nil {
			return nil, err
		}
		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, err
		}
		cards = append(cards, NewCard(suit, rank))
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on invalid input.
// Intended for tests and fixed fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(b byte) (Rank, error) {
	switch b {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(b - '0'), nil
	case 't', 'T':
		return Ten, nil
	case 'j', 'J':
		return Jack, nil
	case 'q', 'Q':
		return Queen, nil
	case 'k', 'K':
		return King, nil
	case 'a', 'A':
		return Ace, nil
	default:
		return 0, fmt.Errorf("invalid rank %q", string(b))
	}
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("invalid suit %q", string(b))
	}
}
