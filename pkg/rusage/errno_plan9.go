package rusage

func errnoOf(error) (uintptr, bool) {
	return 0, false
}
