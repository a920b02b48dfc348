package petro

// bounded runs try up to maxAttempts times, calling advance after each
// rejected attempt. It returns the last value produced, the number of
// attempts actually made, and whether any attempt was accepted. Both
// the fit retry and the radius search run on this loop; each call owns
// its own attempt counter, so retry state never leaks between records.
func bounded[T any](maxAttempts int, try func() T, accept func(T) bool, advance func()) (T, int, bool) {
	var last T
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		last = try()
		if accept(last) {
			return last, attempt, true
		}
		advance()
	}
	return last, maxAttempts, false
}
