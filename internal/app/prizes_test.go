package app

import "testing"

func TestDefaultPrizeTable(t *testing.T) {
	table := DefaultPrizeTable()

	if table.Levels() != 15 {
		t.Fatalf("expected 15 levels, got %d", table.Levels())
	}
	if table.Top() != 1000000 {
		t.Fatalf("expected top prize 1000000, got %d", table.Top())
	}
	if table.Amount(0) != 100 || table.Amount(9) != 32000 {
		t.Fatalf("unexpected ladder amounts")
	}
}

func TestAmountClampsOutsideLadder(t *testing.T) {
	table := DefaultPrizeTable()

	if table.Amount(-1) != 0 {
		t.Fatalf("expected 0 below the ladder")
	}
	if table.Amount(99) != table.Top() {
		t.Fatalf("expected top above the ladder")
	}
}

func TestFireproofFloor(t *testing.T) {
	table := DefaultPrizeTable()

	cases := []struct {
		level int
		want  int64
	}{
		{0, 0},
		{3, 0},
		{4, 1000},
		{8, 1000},
		{9, 32000},
		{14, 1000000},
	}
	for _, tc := range cases {
		if got := table.FireproofFloor(tc.level); got != tc.want {
			t.Fatalf("floor(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestNewPrizeTableValidation(t *testing.T) {
	if _, err := NewPrizeTable(nil, nil); err == nil {
		t.Fatalf("expected error on empty ladder")
	}
	if _, err := NewPrizeTable([]int64{100, 200}, []int{5}); err == nil {
		t.Fatalf("expected error on fireproof outside the ladder")
	}
	if _, err := NewPrizeTable([]int64{100, 200, 300}, []int{1, 1}); err == nil {
		t.Fatalf("expected error on non-increasing fireproof levels")
	}
	if _, err := NewPrizeTable([]int64{100, 500, 300}, []int{1, 2}); err == nil {
		t.Fatalf("expected error on decreasing fireproof floors")
	}
}
