package trace

// Validate checks the structural invariants of a sequence: every step has an
// array of length n, sets at most one of comparing and swapping, and
// references indices inside the array.
func Validate(seq Sequence, n int) error {
	for i, st := range seq {
		if len(st.Array) != n {
			return &StepError{Index: i, Wrapped: ErrInvalidStep}
		}
		if st.Comparing != nil && st.Swapping != nil {
			return &StepError{Index: i, Wrapped: ErrInvalidStep}
		}
		pair, kind := st.Highlight()
		if kind == KindNone {
			continue
		}
		for _, idx := range pair {
			if idx < 0 || idx >= n {
				return &StepError{Index: i, Wrapped: ErrInvalidStep}
			}
		}
	}
	return nil
}
