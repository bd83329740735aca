package exec

// Option is a configuration function for an Executor.
type Option func(*Executor)

// WithEvaluator sets the evaluator used for expressions, list expansions,
// and code blocks. The default evaluator handles plain identifiers only.
func WithEvaluator(evaluator Evaluator) Option {
	return func(e *Executor) {
		if evaluator != nil {
			e.evaluator = evaluator
		}
	}
}
