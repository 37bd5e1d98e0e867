package grid

import "testing"

func TestNew_AllHidden(t *testing.T) {
	g := New(6)
	if g.SlotCount() != 6 {
		t.Fatalf("SlotCount() = %d, want 6", g.SlotCount())
	}
	for i := 0; i < 6; i++ {
		if g.Get(i) != Hidden {
			t.Errorf("slot %d = %v, want Hidden", i, g.Get(i))
		}
	}
}

func TestShowHide(t *testing.T) {
	g := New(6)

	g.Show(2)
	if g.Get(2) != Visible {
		t.Errorf("slot 2 = %v, want Visible", g.Get(2))
	}

	g.Hide(2)
	if g.Get(2) != Hidden {
		t.Errorf("slot 2 = %v, want Hidden", g.Get(2))
	}
}

func TestMarkHit(t *testing.T) {
	g := New(6)

	if g.MarkHit(1) {
		t.Error("hit on a hidden slot should not land")
	}

	g.Show(1)
	if !g.MarkHit(1) {
		t.Error("hit on a visible slot should land")
	}
	if g.Get(1) != Hit {
		t.Errorf("slot 1 = %v, want Hit", g.Get(1))
	}

	// Same appearance, second hit: no credit.
	if g.MarkHit(1) {
		t.Error("hit on an already-hit slot should not land")
	}
}

func TestHide_AfterHit(t *testing.T) {
	g := New(6)
	g.Show(4)
	g.MarkHit(4)

	// The hide timer clears the slot regardless of hit state.
	g.Hide(4)
	if g.Get(4) != Hidden {
		t.Errorf("slot 4 = %v, want Hidden", g.Get(4))
	}
}

func TestHideAll(t *testing.T) {
	g := New(6)
	g.Show(0)
	g.Show(5)
	g.MarkHit(5)

	g.HideAll()

	for i := 0; i < 6; i++ {
		if g.Get(i) != Hidden {
			t.Errorf("slot %d = %v, want Hidden", i, g.Get(i))
		}
	}
}

func TestOutOfRange(t *testing.T) {
	g := New(3)
	// None of these should panic.
	g.Show(-1)
	g.Show(3)
	g.Hide(99)
	if g.MarkHit(-1) || g.MarkHit(3) {
		t.Error("out-of-range hit should not land")
	}
	if g.Get(-1) != Hidden || g.Get(99) != Hidden {
		t.Error("out-of-range Get should report Hidden")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	g := New(3)
	g.Show(1)

	snap := g.Snapshot()
	if len(snap) != 3 || snap[1] != Visible {
		t.Fatalf("snapshot = %v, want [Hidden Visible Hidden]", snap)
	}

	snap[0] = Hit
	if g.Get(0) != Hidden {
		t.Error("mutating the snapshot must not touch the grid")
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{Hidden: "hidden", Visible: "visible", Hit: "hit"}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
