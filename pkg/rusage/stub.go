package rusage

// StubBackend reports nothing: every recognized selector yields the
// all-unsupported snapshot. It is the native backend on platforms without
// process accounting.
type StubBackend struct{}

func (StubBackend) Strategy() Strategy { return StrategyStub }

func (StubBackend) Accepts(sel Selector) bool { return sel.Valid() }

func (StubBackend) Collect(Selector) (Snapshot, error) {
	return Unsupported(), nil
}
