package domain

// CrashCount is the number of fatal crashes for one first-harmful-event type.
type CrashCount struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// AgeCount is the number of persons killed in one age group.
type AgeCount struct {
	AgeGroup string `json:"age"`
	Value    int    `json:"value"`
}

// BACCount is the number of persons killed for one highest-driver BAC level.
type BACCount struct {
	Level string `json:"level"`
	Value int    `json:"value"`
}

// CrashRow is one mapped row of the crash export.
type CrashRow struct {
	State        string
	Abbreviation string
	TotalCrashes int
	Crashes      []CrashCount
}

// AgeRow is one mapped row of the age-group export.
type AgeRow struct {
	State           string
	Abbreviation    string
	TotalFatalities int
	Fatalities      []AgeCount
}

// BACRow is one mapped row of the BAC export.
type BACRow struct {
	State           string
	Abbreviation    string
	TotalFatalities int
	BACLevels       []BACCount
}

// Geo is a WGS-84 coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// StateRecord is the joined per-state record the dashboard renders.
type StateRecord struct {
	State           string       `json:"state"`
	Abbreviation    string       `json:"stateAbbreviation,omitempty"`
	TotalCrashes    int          `json:"totalCrashes"`
	Crashes         []CrashCount `json:"crashes"`
	TotalFatalities int          `json:"totalFatalities"`
	Fatalities      []AgeCount   `json:"fatalities"`
	BACLevels       []BACCount   `json:"BAClevels"`

	// Geocoding enrichment fields.
	Centroid  *Geo   `json:"centroid,omitempty"`
	GeoSource string `json:"geo_source,omitempty"` // "mapbox" or "failed"
}

// IsNational reports whether the record is the national total row.
func (r StateRecord) IsNational() bool {
	return r.State == NationalName
}

// AgeSum adds up the age-group counts.
func (r StateRecord) AgeSum() int {
	sum := 0
	for _, f := range r.Fatalities {
		sum += f.Value
	}
	return sum
}

// RawDocuments holds the four source documents as fetched.
type RawDocuments struct {
	Crashes   string
	Age       string
	BAC       string
	Geography []byte
}
