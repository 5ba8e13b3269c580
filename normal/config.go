package normal

// Option configures New and Reset.
type Option func(*options)

type options struct {
	seed uint64 // 0: derive from the clock
}

// WithSeed fixes the seed so the generator reproduces the same streams.
// A zero seed keeps the clock-derived default.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
