package game

import (
	"errors"
	"math/rand"
	"testing"
)

func instances(names ...string) []*CardInstance {
	out := make([]*CardInstance, len(names))
	for i, n := range names {
		out[i] = &CardInstance{Card: LookupCard(n), ID: i + 1}
	}
	return out
}

func TestPileDrawTopIsLastElement(t *testing.T) {
	p := NewPile(instances("Copper", "Silver", "Gold")...)

	top, err := p.TopCard()
	if err != nil || top.Name() != "Gold" {
		t.Fatalf("TopCard = %v, %v; want Gold", top, err)
	}
	c, err := p.DrawTop()
	if err != nil || c.Name() != "Gold" {
		t.Fatalf("DrawTop = %v, %v; want Gold", c, err)
	}
	if p.Size() != 2 {
		t.Errorf("size = %d, want 2", p.Size())
	}
}

func TestPileEmptyErrors(t *testing.T) {
	p := NewPile()
	if _, err := p.DrawTop(); !errors.Is(err, ErrEmptyPile) {
		t.Errorf("DrawTop on empty: %v, want ErrEmptyPile", err)
	}
	if _, err := p.TopCard(); !errors.Is(err, ErrEmptyPile) {
		t.Errorf("TopCard on empty: %v, want ErrEmptyPile", err)
	}
	if _, err := p.MoveTopTo(NewPile()); !errors.Is(err, ErrEmptyPile) {
		t.Errorf("MoveTopTo on empty: %v, want ErrEmptyPile", err)
	}
}

func TestPileIndexOutOfRange(t *testing.T) {
	p := NewPile(instances("Copper")...)
	for _, i := range []int{-1, 1, 5} {
		if _, err := p.DrawAt(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("DrawAt(%d): %v, want ErrIndexOutOfRange", i, err)
		}
	}
	if p.Size() != 1 {
		t.Errorf("failed DrawAt changed the pile: size %d", p.Size())
	}
}

func TestPileMoveAtTransfersExactlyOne(t *testing.T) {
	src := NewPile(instances("Copper", "Estate", "Silver", "Moat")...)
	dst := NewPile()

	for src.Size() > 0 {
		before, beforeDst := src.Size(), dst.Size()
		c, err := src.MoveAt(src.Size()/2, dst)
		if err != nil {
			t.Fatalf("MoveAt: %v", err)
		}
		if src.Size() != before-1 || dst.Size() != beforeDst+1 {
			t.Fatalf("sizes src=%d dst=%d after moving %s", src.Size(), dst.Size(), c)
		}
		if top, _ := dst.TopCard(); top != c {
			t.Errorf("moved card %s is not on top of destination", c)
		}
		if src.IndexOfInstance(c) >= 0 {
			t.Errorf("%s still in source", c)
		}
	}
}

func TestPileTakeAllFromKeepsOrder(t *testing.T) {
	dst := NewPile(instances("Estate")...)
	src := NewPile(instances("Copper", "Silver")...)

	dst.TakeAllFrom(src)

	if !src.Empty() {
		t.Errorf("source not emptied: %v", src.Names())
	}
	want := []string{"Estate", "Copper", "Silver"}
	got := dst.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names = %v, want %v", got, want)
			break
		}
	}

	dst.TakeAllFrom(dst)
	if dst.Size() != 3 {
		t.Errorf("self transfer changed size to %d", dst.Size())
	}
}

func TestPileMoveCard(t *testing.T) {
	cards := instances("Copper", "Copper", "Gold")
	src := NewPile(cards...)
	dst := NewPile()

	if err := src.MoveCard(cards[1], dst); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}
	if src.IndexOfInstance(cards[1]) >= 0 || dst.IndexOfInstance(cards[1]) != 0 {
		t.Error("instance not moved")
	}
	if src.IndexOfInstance(cards[0]) != 0 {
		t.Error("the other Copper should stay put")
	}
	if err := src.MoveCard(cards[1], dst); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("moving a card not in the pile: %v", err)
	}
}

func TestPileShuffleIsSeeded(t *testing.T) {
	a := NewPile(instances("Copper", "Silver", "Gold", "Estate", "Duchy", "Province")...)
	b := NewPile(a.Cards()...)

	a.Shuffle(rand.New(rand.NewSource(7)))
	b.Shuffle(rand.New(rand.NewSource(7)))

	an, bn := a.Names(), b.Names()
	for i := range an {
		if an[i] != bn[i] {
			t.Fatalf("same seed gave %v and %v", an, bn)
		}
	}
	if a.Size() != 6 {
		t.Errorf("shuffle changed size to %d", a.Size())
	}
}

func TestPileCounts(t *testing.T) {
	p := NewPile(instances("Copper", "Copper", "Estate")...)
	counts := p.Counts()
	if counts["Copper"] != 2 || counts["Estate"] != 1 || len(counts) != 2 {
		t.Errorf("counts = %v", counts)
	}
	if p.IndexOf("Estate") != 2 || p.IndexOf("Gold") != -1 {
		t.Error("IndexOf mismatch")
	}
}
