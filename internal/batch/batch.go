package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/eugenenazirov/craft-calculator/internal/calculator"
)

// Infeasible is printed for cases without an exact combination.
const Infeasible = "-1"

// ErrMalformedInput is returned when the input does not follow the case format.
var ErrMalformedInput = errors.New("malformed input")

// Summary counts the cases a run answered.
type Summary struct {
	Cases      int
	Feasible   int
	Infeasible int
}

// Option configures Run.
type Option func(*runner)

// WithLogger routes run diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *runner) {
		r.logger = logger
	}
}

// WithCalculator overrides the solver, primarily for tests.
func WithCalculator(calc calculator.Calculator) Option {
	return func(r *runner) {
		r.calc = calc
	}
}

type runner struct {
	calc   calculator.Calculator
	logger *zap.Logger
}

// Run reads the case count and targets from in and writes one answer per
// case to out. Answers produced before a parse error are still flushed.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts ...Option) (Summary, error) {
	r := runner{
		calc:   calculator.New(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&r)
	}

	w := bufio.NewWriter(out)
	summary, runErr := r.run(ctx, newScanner(in), w)
	if err := w.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush output: %w", err)
	}

	r.logger.Debug("batch finished",
		zap.Int("cases", summary.Cases),
		zap.Int("feasible", summary.Feasible),
		zap.Int("infeasible", summary.Infeasible),
		zap.Error(runErr),
	)
	return summary, runErr
}

func (r *runner) run(ctx context.Context, sc *bufio.Scanner, w *bufio.Writer) (Summary, error) {
	var summary Summary

	count, err := nextInt(sc)
	if err != nil {
		return summary, fmt.Errorf("read case count: %w", err)
	}
	if count < 0 {
		return summary, fmt.Errorf("%w: negative case count %d", ErrMalformedInput, count)
	}

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		target, err := nextInt(sc)
		if err != nil {
			return summary, fmt.Errorf("read case %d of %d: %w", i+1, count, err)
		}

		answer := r.answer(target)
		if answer == Infeasible {
			summary.Infeasible++
		} else {
			summary.Feasible++
		}
		summary.Cases++

		if _, err := w.WriteString(answer + "\n"); err != nil {
			return summary, fmt.Errorf("write answer: %w", err)
		}
	}

	return summary, nil
}

// answer formats the solver outcome for a single target.
func (r *runner) answer(target int) string {
	result, err := r.calc.Solve(target)
	if err != nil {
		if !errors.Is(err, calculator.ErrCannotFulfill) {
			r.logger.Debug("target rejected", zap.Int("target", target), zap.Error(err))
		}
		return Infeasible
	}
	return result.String()
}

func newScanner(in io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return sc
}

func nextInt(sc *bufio.Scanner) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("scan input: %w", err)
		}
		return 0, fmt.Errorf("%w: unexpected end of input", ErrMalformedInput)
	}
	token := sc.Text()
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid integer %q", ErrMalformedInput, token)
	}
	return value, nil
}
