package model

// RecordSet is an ordered, read-only sequence of records. Order is the
// source row order. A RecordSet is never modified after construction.
type RecordSet struct {
	records []Record
	source  string
	version string
}

// NewRecordSet copies records into a new set tagged with the source that
// produced it and a content version.
func NewRecordSet(records []Record, source, version string) *RecordSet {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &RecordSet{records: cp, source: source, version: version}
}

// Len returns the number of records. A nil set has length zero.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// At returns the i-th record.
func (s *RecordSet) At(i int) Record {
	return s.records[i]
}

// Records returns a copy of the records in order.
func (s *RecordSet) Records() []Record {
	if s == nil {
		return nil
	}
	cp := make([]Record, len(s.records))
	copy(cp, s.records)
	return cp
}

// Source names the table the set was loaded from.
func (s *RecordSet) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// Version is the fingerprint of the source content the set was built from.
func (s *RecordSet) Version() string {
	if s == nil {
		return ""
	}
	return s.version
}

// Filter returns a new set holding the records for which keep returns true,
// in the original order. Source and version are carried over.
func (s *RecordSet) Filter(keep func(Record) bool) *RecordSet {
	out := &RecordSet{source: s.Source(), version: s.Version()}
	if s == nil {
		return out
	}
	for _, r := range s.records {
		if keep(r) {
			out.records = append(out.records, r)
		}
	}
	return out
}

// Table is a raw tabular source: a header row followed by data rows. Rows
// may be shorter or longer than the header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}
