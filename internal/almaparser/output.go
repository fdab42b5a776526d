package almaparser

// Output collects voucher rows grouped by output file, preserving the
// order in which files were first seen so writes are deterministic.
type Output struct {
	names []string
	rows  map[string][][]string
}

// NewOutput creates an empty output set.
func NewOutput() *Output {
	return &Output{rows: make(map[string][][]string)}
}

// Add appends rows for an output file.
func (o *Output) Add(name string, rows [][]string) {
	if _, ok := o.rows[name]; !ok {
		o.names = append(o.names, name)
	}
	o.rows[name] = append(o.rows[name], rows...)
}

// Merge appends every file's rows from another output set.
func (o *Output) Merge(other *Output) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		o.Add(name, other.rows[name])
	}
}

// Files returns the output file names in first-seen order.
func (o *Output) Files() []string {
	return o.names
}

// Rows returns the rows collected for an output file.
func (o *Output) Rows(name string) [][]string {
	return o.rows[name]
}

// Empty reports whether no rows were collected.
func (o *Output) Empty() bool {
	return len(o.names) == 0
}
