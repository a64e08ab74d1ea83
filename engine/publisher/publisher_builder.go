package publisher

// PublisherBuilderOption is a functional option for configuring a Publisher during construction.
type PublisherBuilderOption func(*publisher)

// WithBoundsFactor sets the edge length of the shared draw bounds in units of the object scale.
// The default of 3 encloses every level of a fractal with a 0.5 level scale base.
//
// Parameters:
//   - factor: the cube edge multiplier, values <= 0 are ignored
//
// Returns:
//   - PublisherBuilderOption: functional option to set the bounds factor
func WithBoundsFactor(factor float32) PublisherBuilderOption {
	return func(p *publisher) {
		if factor > 0 {
			p.boundsFactor = factor
		}
	}
}
