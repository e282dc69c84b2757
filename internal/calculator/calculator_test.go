package calculator

import (
	"errors"
	"testing"
)

func TestSolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  int
		wantMin int
		wantMax int
		wantErr error
	}{
		{name: "Zero", target: 0, wantMin: 0, wantMax: 0},
		{name: "SingleTypeA", target: 4, wantMin: 1, wantMax: 1},
		{name: "SingleTypeB", target: 6, wantMin: 1, wantMax: 1},
		{name: "TwoTypeA", target: 8, wantMin: 2, wantMax: 2},
		{name: "OneOfEach", target: 10, wantMin: 2, wantMax: 2},
		{name: "TwelveSplitsBothWays", target: 12, wantMin: 2, wantMax: 3},
		{name: "ResidueTwo", target: 14, wantMin: 3, wantMax: 3},
		{name: "ResidueFour", target: 16, wantMin: 3, wantMax: 4},
		{name: "LargeTarget", target: 1_000_000_000_000_000_000, wantMin: 166_666_666_666_666_667, wantMax: 250_000_000_000_000_000},
		{name: "Two", target: 2, wantErr: ErrCannotFulfill},
		{name: "One", target: 1, wantErr: ErrCannotFulfill},
		{name: "OddLarge", target: 999_999, wantErr: ErrCannotFulfill},
		{name: "Negative", target: -4, wantErr: ErrInvalidTarget},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := New().Solve(tc.target)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}

			if got.Min != tc.wantMin || got.Max != tc.wantMax {
				t.Fatalf("expected %d %d, got %s", tc.wantMin, tc.wantMax, got)
			}
			if got.MinMix.Cost() != tc.target || got.MaxMix.Cost() != tc.target {
				t.Fatalf("mixes %+v and %+v do not spend %d", got.MinMix, got.MaxMix, tc.target)
			}
		})
	}
}

func TestSolveMatchesExhaustiveSearch(t *testing.T) {
	t.Parallel()

	calc := New()
	for target := 0; target <= 2_000; target++ {
		mixes := Decompose(target)
		got, err := calc.Solve(target)

		if len(mixes) == 0 {
			if !errors.Is(err, ErrCannotFulfill) {
				t.Fatalf("target %d: expected ErrCannotFulfill, got %v (%s)", target, err, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("target %d: unexpected error: %v", target, err)
		}

		wantMin, wantMax := mixes[0].Crafts(), mixes[0].Crafts()
		for _, m := range mixes[1:] {
			wantMin = min(wantMin, m.Crafts())
			wantMax = max(wantMax, m.Crafts())
		}
		if got.Min != wantMin || got.Max != wantMax {
			t.Fatalf("target %d: expected %d %d, got %s", target, wantMin, wantMax, got)
		}
		if got.Min > got.Max {
			t.Fatalf("target %d: min %d exceeds max %d", target, got.Min, got.Max)
		}
		if got.MinMix.Cost() != target || got.MinMix.Crafts() != got.Min {
			t.Fatalf("target %d: bad min mix %+v", target, got.MinMix)
		}
		if got.MaxMix.Cost() != target || got.MaxMix.Crafts() != got.Max {
			t.Fatalf("target %d: bad max mix %+v", target, got.MaxMix)
		}
	}
}

func TestOddTargetsAreInfeasible(t *testing.T) {
	t.Parallel()

	for target := 1; target < 500; target += 2 {
		if _, err := New().Solve(target); !errors.Is(err, ErrCannotFulfill) {
			t.Fatalf("target %d: expected ErrCannotFulfill, got %v", target, err)
		}
	}
}

func TestDecompose(t *testing.T) {
	t.Parallel()

	got := Decompose(24)
	want := []Mix{{TypeA: 6}, {TypeA: 3, TypeB: 2}, {TypeB: 4}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v at %d, got %v", want[i], i, got[i])
		}
	}

	if mixes := Decompose(2); mixes != nil {
		t.Fatalf("expected no mixes for 2, got %v", mixes)
	}
	if mixes := Decompose(-6); mixes != nil {
		t.Fatalf("expected no mixes for negative target, got %v", mixes)
	}
}

func TestResultString(t *testing.T) {
	t.Parallel()

	if got := (Result{Min: 2, Max: 3}).String(); got != "2 3" {
		t.Fatalf("expected \"2 3\", got %q", got)
	}
}

func BenchmarkSolve(b *testing.B) {
	calc := New()
	for i := 0; i < b.N; i++ {
		if _, err := calc.Solve(1_000_000); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkDecompose(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Decompose(50_000)
	}
}
