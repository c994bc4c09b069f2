package domain

import (
	"encoding/json"
	"time"
)

// Dataset is the ordered, immutable set of joined state records for one
// reporting year.
type Dataset struct {
	year     int
	records  []StateRecord
	loadedAt time.Time
}

// NewDataset wraps joined records. The slice is copied.
func NewDataset(year int, records []StateRecord) *Dataset {
	return &Dataset{
		year:     year,
		records:  append([]StateRecord(nil), records...),
		loadedAt: clock.Now().UTC(),
	}
}

// Year is the reporting year.
func (d *Dataset) Year() int { return d.year }

// LoadedAt is when the dataset was built.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Len is the number of records, including the national row when present.
func (d *Dataset) Len() int { return len(d.records) }

// At returns the record at index i in source order.
func (d *Dataset) At(i int) (StateRecord, bool) {
	if i < 0 || i >= len(d.records) {
		return StateRecord{}, false
	}
	return d.records[i], true
}

// Records returns a copy of the records in source order.
func (d *Dataset) Records() []StateRecord {
	return append([]StateRecord(nil), d.records...)
}

// Lookup finds a record by full state name.
func (d *Dataset) Lookup(name string) (StateRecord, bool) {
	for _, r := range d.records {
		if r.State == name {
			return r, true
		}
	}
	return StateRecord{}, false
}

// National returns the national total row. Exports without one get an
// aggregate summed over all records.
func (d *Dataset) National() StateRecord {
	if r, ok := d.Lookup(NationalName); ok {
		return r
	}
	return Aggregate(NationalName, d.records)
}

// MaxCrashes is the largest crash total among the non-national records.
func (d *Dataset) MaxCrashes() int {
	maxCrashes := 0
	for _, r := range d.records {
		if !r.IsNational() && r.TotalCrashes > maxCrashes {
			maxCrashes = r.TotalCrashes
		}
	}
	return maxCrashes
}

// MarshalJSON encodes the dataset with its metadata.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Year     int           `json:"year"`
		LoadedAt time.Time     `json:"loaded_at"`
		States   []StateRecord `json:"states"`
	}{d.year, d.loadedAt, d.records})
}

// Aggregate sums the counts of the given records category by category.
// Category labels come from the first record.
func Aggregate(name string, records []StateRecord) StateRecord {
	out := StateRecord{State: name}
	for _, r := range records {
		if r.IsNational() {
			continue
		}
		out.TotalCrashes += r.TotalCrashes
		out.TotalFatalities += r.TotalFatalities
		out.Crashes = sumCrashes(out.Crashes, r.Crashes)
		out.Fatalities = sumAges(out.Fatalities, r.Fatalities)
		out.BACLevels = sumBAC(out.BACLevels, r.BACLevels)
	}
	return out
}

func sumCrashes(acc, add []CrashCount) []CrashCount {
	if acc == nil {
		return append([]CrashCount(nil), add...)
	}
	for i := range acc {
		if i < len(add) {
			acc[i].Value += add[i].Value
		}
	}
	return acc
}

func sumAges(acc, add []AgeCount) []AgeCount {
	if acc == nil {
		return append([]AgeCount(nil), add...)
	}
	for i := range acc {
		if i < len(add) {
			acc[i].Value += add[i].Value
		}
	}
	return acc
}

func sumBAC(acc, add []BACCount) []BACCount {
	if acc == nil {
		return append([]BACCount(nil), add...)
	}
	for i := range acc {
		if i < len(add) {
			acc[i].Value += add[i].Value
		}
	}
	return acc
}
