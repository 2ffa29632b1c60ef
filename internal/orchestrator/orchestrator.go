package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 1

// Processor turns one input file into a result. Implementations must not
// share mutable state between calls; Run invokes them concurrently.
type Processor[T any] interface {
	Process(ctx context.Context, input string) (T, error)
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc[T any] func(ctx context.Context, input string) (T, error)

func (f ProcessorFunc[T]) Process(ctx context.Context, input string) (T, error) {
	return f(ctx, input)
}

// Run processes inputs with at most concurrency calls in flight and returns
// the results in input order. The first failure cancels the remaining inputs.
func Run[T any](ctx context.Context, inputs []string, concurrency int, p Processor[T]) ([]T, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files given")
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]T, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slog.InfoContext(ctx, "==> processing", "input", input, "index", i+1, "total", len(inputs))

			result, err := p.Process(ctx, input)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
