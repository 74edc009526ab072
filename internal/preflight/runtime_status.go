package preflight

// Summary counts passed and failed results.
func Summary(results []Result) (passed, failed int) {
	for _, result := range results {
		if result.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// AllPassed reports whether every result passed. An empty slice passes.
func AllPassed(results []Result) bool {
	_, failed := Summary(results)
	return failed == 0
}
