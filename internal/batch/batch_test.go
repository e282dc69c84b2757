package batch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/craft-calculator/internal/calculator"
)

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		sum   Summary
	}{
		{
			name:  "SampleCases",
			input: "7\n1\n2\n4\n6\n8\n10\n12\n",
			want:  "-1\n-1\n1 1\n1 1\n2 2\n2 2\n2 3\n",
			sum:   Summary{Cases: 7, Feasible: 5, Infeasible: 2},
		},
		{
			name:  "TokensSplitAcrossLines",
			input: "3 24\n\n  7   1000000000000000000",
			want:  "4 6\n-1\n166666666666666667 250000000000000000\n",
			sum:   Summary{Cases: 3, Feasible: 2, Infeasible: 1},
		},
		{
			name:  "ZeroAndNegativeTargets",
			input: "2\n0\n-4\n",
			want:  "0 0\n-1\n",
			sum:   Summary{Cases: 2, Feasible: 1, Infeasible: 1},
		},
		{
			name:  "NoCases",
			input: "0\n",
			want:  "",
		},
		{
			name:  "TrailingTokensIgnored",
			input: "1\n4\n99\n",
			want:  "1 1\n",
			sum:   Summary{Cases: 1, Feasible: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got, err := Run(context.Background(), strings.NewReader(tc.input), &out, WithLogger(zaptest.NewLogger(t)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.String() != tc.want {
				t.Fatalf("expected output %q, got %q", tc.want, out.String())
			}
			if got != tc.sum {
				t.Fatalf("expected summary %+v, got %+v", tc.sum, got)
			}
		})
	}
}

func TestRunMalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Empty", input: "", want: ""},
		{name: "BadCount", input: "three\n4\n", want: ""},
		{name: "NegativeCount", input: "-1\n", want: ""},
		{name: "MissingCases", input: "3\n4\n6\n", want: "1 1\n1 1\n"},
		{name: "BadTarget", input: "2\n12\nx\n", want: "2 3\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			_, err := Run(context.Background(), strings.NewReader(tc.input), &out)
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("expected ErrMalformedInput, got %v", err)
			}
			if out.String() != tc.want {
				t.Fatalf("expected partial output %q, got %q", tc.want, out.String())
			}
		})
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	summary, err := Run(ctx, strings.NewReader("2\n4\n6\n"), &out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Cases != 0 || out.Len() != 0 {
		t.Fatalf("expected no cases answered, got %+v and %q", summary, out.String())
	}
}

type stubCalculator struct {
	calls []int
}

func (s *stubCalculator) Solve(target int) (calculator.Result, error) {
	s.calls = append(s.calls, target)
	return calculator.Result{Min: target, Max: target}, nil
}

func TestWithCalculatorPreservesOrder(t *testing.T) {
	t.Parallel()

	stub := &stubCalculator{}
	var out bytes.Buffer
	if _, err := Run(context.Background(), strings.NewReader("3 9 1 5"), &out, WithCalculator(stub)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "9 9\n1 1\n5 5\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
	if len(stub.calls) != 3 || stub.calls[0] != 9 || stub.calls[1] != 1 || stub.calls[2] != 5 {
		t.Fatalf("unexpected solve order: %v", stub.calls)
	}
}
