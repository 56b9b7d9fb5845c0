package sphergo

import "runtime"

type options struct {
	parallelism int
}

// Option configures the batch covering helpers.
type Option func(*options)

// WithParallelism bounds the number of concurrent queries a batch helper
// runs. Values < 1 fall back to the default, GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.parallelism = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
