package models

// FeatureRecord is an ordered feature row. Its name order is the order the
// model consumes values in.
type FeatureRecord struct {
	names  []string
	values []float64
}

func NewFeatureRecord(names []string, values []float64) FeatureRecord {
	return FeatureRecord{
		names:  append([]string(nil), names...),
		values: append([]float64(nil), values...),
	}
}

func (r FeatureRecord) Len() int {
	return len(r.names)
}

func (r FeatureRecord) Names() []string {
	return append([]string(nil), r.names...)
}

func (r FeatureRecord) Values() []float64 {
	return append([]float64(nil), r.values...)
}

// Get returns the value stored under name.
func (r FeatureRecord) Get(name string) (float64, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return 0, false
}

// Map returns the record as an unordered map, handy for logging.
func (r FeatureRecord) Map() map[string]float64 {
	m := make(map[string]float64, len(r.names))
	for i, n := range r.names {
		m[n] = r.values[i]
	}
	return m
}
