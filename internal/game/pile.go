package game

import (
	"fmt"
	"math/rand"
)

// Pile is an ordered collection of card instances. The top of the pile is the
// last element. Every change of pile membership goes through these methods so
// an instance is never held by two piles.
type Pile struct {
	cards []*CardInstance
}

// NewPile builds a pile from instances, first element at the bottom.
func NewPile(cards ...*CardInstance) *Pile {
	p := &Pile{cards: make([]*CardInstance, 0, len(cards))}
	p.cards = append(p.cards, cards...)
	return p
}

func (p *Pile) Size() int {
	return len(p.cards)
}

func (p *Pile) Empty() bool {
	return len(p.cards) == 0
}

// At returns the card at index i without removing it.
func (p *Pile) At(i int) (*CardInstance, error) {
	if i < 0 || i >= len(p.cards) {
		return nil, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, i, len(p.cards))
	}
	return p.cards[i], nil
}

// TopCard peeks at the top card.
func (p *Pile) TopCard() (*CardInstance, error) {
	if len(p.cards) == 0 {
		return nil, ErrEmptyPile
	}
	return p.cards[len(p.cards)-1], nil
}

// DrawTop removes and returns the top card.
func (p *Pile) DrawTop() (*CardInstance, error) {
	if len(p.cards) == 0 {
		return nil, ErrEmptyPile
	}
	c := p.cards[len(p.cards)-1]
	p.cards[len(p.cards)-1] = nil
	p.cards = p.cards[:len(p.cards)-1]
	return c, nil
}

// DrawAt removes and returns the card at index i.
func (p *Pile) DrawAt(i int) (*CardInstance, error) {
	if i < 0 || i >= len(p.cards) {
		return nil, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, i, len(p.cards))
	}
	c := p.cards[i]
	p.cards = append(p.cards[:i], p.cards[i+1:]...)
	return c, nil
}

// InsertTop places c on top of the pile.
func (p *Pile) InsertTop(c *CardInstance) {
	p.cards = append(p.cards, c)
}

// MoveTopTo moves the top card onto dst.
func (p *Pile) MoveTopTo(dst *Pile) (*CardInstance, error) {
	c, err := p.DrawTop()
	if err != nil {
		return nil, err
	}
	dst.InsertTop(c)
	return c, nil
}

// MoveAt moves the card at index i onto dst.
func (p *Pile) MoveAt(i int, dst *Pile) (*CardInstance, error) {
	c, err := p.DrawAt(i)
	if err != nil {
		return nil, err
	}
	dst.InsertTop(c)
	return c, nil
}

// TakeAllFrom appends every card of src, in src order, and empties src.
func (p *Pile) TakeAllFrom(src *Pile) {
	if p == src {
		return
	}
	p.cards = append(p.cards, src.cards...)
	src.cards = nil
}

// IndexOf returns the index of the first card named name, or -1.
func (p *Pile) IndexOf(name string) int {
	for i, c := range p.cards {
		if c.Card.Name == name {
			return i
		}
	}
	return -1
}

// IndexOfInstance returns the index of the instance ci, or -1.
func (p *Pile) IndexOfInstance(ci *CardInstance) int {
	for i, c := range p.cards {
		if c == ci {
			return i
		}
	}
	return -1
}

// MoveCard moves the instance ci onto dst.
func (p *Pile) MoveCard(ci *CardInstance, dst *Pile) error {
	i := p.IndexOfInstance(ci)
	if i < 0 {
		return fmt.Errorf("%w: %s not in pile", ErrIndexOutOfRange, ci)
	}
	_, err := p.MoveAt(i, dst)
	return err
}

// IndexWhere returns the index of the first card matching pred, or -1.
func (p *Pile) IndexWhere(pred func(*Card) bool) int {
	for i, c := range p.cards {
		if pred(c.Card) {
			return i
		}
	}
	return -1
}

// Cards returns a copy of the pile contents, bottom first.
func (p *Pile) Cards() []*CardInstance {
	out := make([]*CardInstance, len(p.cards))
	copy(out, p.cards)
	return out
}

// Names returns card names, bottom first.
func (p *Pile) Names() []string {
	names := make([]string, len(p.cards))
	for i, c := range p.cards {
		names[i] = c.Card.Name
	}
	return names
}

// Counts returns a card name → count map.
func (p *Pile) Counts() map[string]int {
	counts := make(map[string]int, len(p.cards))
	for _, c := range p.cards {
		counts[c.Card.Name]++
	}
	return counts
}

// Shuffle randomizes the pile order using r.
func (p *Pile) Shuffle(r *rand.Rand) {
	r.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
}
