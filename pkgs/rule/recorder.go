package rule

// Recorder is a Registrar that collects declarations in memory, in the
// order they were made. It is used by tests and by tools that print
// declarations instead of executing them.
type Recorder struct {
	Actions []Action
	Tests   []Test
	Suites  []Suite
}

var _ Registrar = (*Recorder)(nil)

func (r *Recorder) DeclareAction(a Action) error {
	r.Actions = append(r.Actions, a)
	return nil
}

func (r *Recorder) DeclareTest(t Test) error {
	r.Tests = append(r.Tests, t)
	return nil
}

func (r *Recorder) DeclareSuite(s Suite) error {
	r.Suites = append(r.Suites, s)
	return nil
}

// Empty reports whether nothing has been declared.
func (r *Recorder) Empty() bool {
	return len(r.Actions) == 0 && len(r.Tests) == 0 && len(r.Suites) == 0
}
