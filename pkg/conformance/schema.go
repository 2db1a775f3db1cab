package conformance

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Setup       string     `yaml:"setup,omitempty"` // program run before every case
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name          string      `yaml:"name"`
	Description   string      `yaml:"description,omitempty"`
	Skip          interface{} `yaml:"skip,omitempty"` // bool or string
	Source        string      `yaml:"source"`
	SkipTypecheck bool        `yaml:"skip_typecheck,omitempty"`
	Expect        Expectation `yaml:"expect"`
}

// Expectation defines what a run must produce. Unset fields are not checked,
// except that a case expecting no error fails on any error.
type Expectation struct {
	Stdout       *string  `yaml:"stdout,omitempty"`        // exact program output
	Diagnostics  []string `yaml:"diagnostics,omitempty"`   // checker output, in order
	Returned     *string  `yaml:"returned,omitempty"`      // rendered top-level return value
	RuntimeError string   `yaml:"runtime_error,omitempty"` // substring of the runtime error
	SyntaxError  string   `yaml:"syntax_error,omitempty"`  // substring of the syntax error
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
