package record

// Record is an ordered mapping of metadata field names to formatted values.
// Field names are unique within a record; setting an existing name replaces
// the value in place without changing its position.
type Record struct {
	names  []string
	values map[string]string
}

// New returns an empty record.
func New() Record {
	return Record{values: make(map[string]string)}
}

// Set stores a field value. First-seen insertion order is preserved.
func (r *Record) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[name]; !exists {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Get returns the value for name, or the empty string when absent.
func (r Record) Get(name string) string {
	return r.values[name]
}

// Lookup returns the value for name and whether it is present.
func (r Record) Lookup(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns field names in first-seen order. The slice is a copy.
func (r Record) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.names)
}

// Empty reports whether the record has no fields.
func (r Record) Empty() bool {
	return len(r.names) == 0
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := Record{
		names:  make([]string, len(r.names)),
		values: make(map[string]string, len(r.values)),
	}
	copy(out.names, r.names)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}
