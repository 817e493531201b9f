package model

// Options configures the Builder. The public adapter in pkg/model constructs
// them and passes them into New.
type Options struct {
	// Labeler fills Label for fields that declare none.
	Labeler func(string) string
	// DefaultMaxSections applies to sections that omit maxSections.
	DefaultMaxSections int
}

func defaultOptions() Options {
	return Options{
		Labeler:            DefaultLabeler,
		DefaultMaxSections: 1,
	}
}
