package broker

// ListOption is a functional option for the list endpoints.
type ListOption func(*ListOptions)

// ListOptions holds the optional filters shared by the order, trade and
// transaction list endpoints.
type ListOptions struct {
	Count      int
	Instrument string
}

// WithCount limits the number of results. Values above 500 are clamped by
// the protocol; zero or negative values fall back to the default of 50.
func WithCount(count int) ListOption {
	return func(o *ListOptions) {
		o.Count = count
	}
}

// WithInstrument filters results to a single instrument.
func WithInstrument(instrument string) ListOption {
	return func(o *ListOptions) {
		o.Instrument = instrument
	}
}

func applyListOptions(opts ...ListOption) *ListOptions {
	o := &ListOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
