package sortbench

import (
	"context"

	"github.com/lanrat/sortbench/gen"
)

// Run validates cfg and performs a single benchmark run over the element
// type it names: ints for numeric runs, single character strings otherwise.
// Numeric runs offer all nine algorithms of the default registry, string
// runs the seven comparison sorts.
func Run(ctx context.Context, cfg *Config, opts ...Option) (*Report, error) {
	cfg = mergeConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.ElementType {
	case gen.String:
		return runHarness[string](ctx, cfg, OrderedAlgorithms[string](), gen.Strings, opts)
	default:
		return runHarness[int](ctx, cfg, IntegerAlgorithms[int](cfg.BucketCount), gen.Ints, opts)
	}
}

func runHarness[E int | string](ctx context.Context, cfg *Config, algorithms []Algorithm[E], generate GenerateFunc[E], opts []Option) (*Report, error) {
	h, err := New(cfg, algorithms, generate, opts...)
	if err != nil {
		return nil, err
	}
	var report *Report
	if err := h.Sort(ctx, func(r *Report) { report = r }); err != nil {
		return nil, err
	}
	return report, nil
}
