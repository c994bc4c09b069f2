package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Dataset names used in errors, logs and metrics.
const (
	DatasetCrashes = "crashes"
	DatasetAge     = "age"
	DatasetBAC     = "bac"
)

// Column counts of the three exports.
const (
	CrashColumns = 16
	AgeColumns   = 14
	BACColumns   = 10
)

// NumberPolicy decides what happens to a numeric cell that does not hold a
// non-negative integer.
type NumberPolicy string

const (
	// NumberPolicyReject fails the row with an *InvalidNumberError.
	NumberPolicyReject NumberPolicy = "reject"
	// NumberPolicyZero stores 0 and reports the cell back to the caller.
	NumberPolicyZero NumberPolicy = "zero"
)

// ParseNumberPolicy validates a policy name.
func ParseNumberPolicy(s string) (NumberPolicy, error) {
	switch p := NumberPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case NumberPolicyReject, NumberPolicyZero:
		return p, nil
	default:
		return "", fmt.Errorf("unknown number policy %q", s)
	}
}

type column struct {
	label string
	index int
}

var crashTypeColumns = []column{
	{"Motor Vehicle", 1},
	{"Nonmotorist", 3},
	{"Fixed Object", 5},
	{"Object Not Fixed", 7},
	{"Overturn", 9},
	{"Other", 11},
	{"Unknown Crashes", 13},
}

var ageGroupColumns = []column{
	{"<5", 1},
	{"5-9", 2},
	{"10-15", 3},
	{"16-20", 4},
	{"21-24", 5},
	{"25-34", 6},
	{"35-44", 7},
	{"45-54", 8},
	{"55-64", 9},
	{"65-74", 10},
	{">74", 11},
	{"Unknown", 12},
}

var bacLevelColumns = []column{
	{"0.00%", 1},
	{"0.01-0.07%", 3},
	{"0.08%+", 5},
	{"0.01%+", 7},
}

const (
	crashTotalColumn = 15
	ageTotalColumn   = 13
	bacTotalColumn   = 9
)

// MapCrashRow converts one crash export row.
func MapCrashRow(row []string, policy NumberPolicy) (CrashRow, []*InvalidNumberError, error) {
	c, err := newCellReader(DatasetCrashes, row, CrashColumns, policy)
	if err != nil {
		return CrashRow{}, nil, err
	}

	out := CrashRow{
		State:        c.state,
		Abbreviation: StateAbbreviations[c.state],
		TotalCrashes: c.count(crashTotalColumn),
		Crashes:      make([]CrashCount, len(crashTypeColumns)),
	}
	for i, col := range crashTypeColumns {
		out.Crashes[i] = CrashCount{Type: col.label, Value: c.count(col.index)}
	}
	if c.err != nil {
		return CrashRow{}, nil, c.err
	}
	return out, c.coerced, nil
}

// MapAgeRow converts one age-group export row.
func MapAgeRow(row []string, policy NumberPolicy) (AgeRow, []*InvalidNumberError, error) {
	c, err := newCellReader(DatasetAge, row, AgeColumns, policy)
	if err != nil {
		return AgeRow{}, nil, err
	}

	out := AgeRow{
		State:           c.state,
		Abbreviation:    StateAbbreviations[c.state],
		TotalFatalities: c.count(ageTotalColumn),
		Fatalities:      make([]AgeCount, len(ageGroupColumns)),
	}
	for i, col := range ageGroupColumns {
		out.Fatalities[i] = AgeCount{AgeGroup: col.label, Value: c.count(col.index)}
	}
	if c.err != nil {
		return AgeRow{}, nil, c.err
	}
	return out, c.coerced, nil
}

// MapBACRow converts one BAC export row.
func MapBACRow(row []string, policy NumberPolicy) (BACRow, []*InvalidNumberError, error) {
	c, err := newCellReader(DatasetBAC, row, BACColumns, policy)
	if err != nil {
		return BACRow{}, nil, err
	}

	out := BACRow{
		State:           c.state,
		Abbreviation:    StateAbbreviations[c.state],
		TotalFatalities: c.count(bacTotalColumn),
		BACLevels:       make([]BACCount, len(bacLevelColumns)),
	}
	for i, col := range bacLevelColumns {
		out.BACLevels[i] = BACCount{Level: col.label, Value: c.count(col.index)}
	}
	if c.err != nil {
		return BACRow{}, nil, c.err
	}
	return out, c.coerced, nil
}

// MapRows applies a row mapper to every row, collecting coerced cells.
// The first rejected row stops the mapping.
func MapRows[T any](rows [][]string, policy NumberPolicy, mapRow func([]string, NumberPolicy) (T, []*InvalidNumberError, error)) ([]T, []*InvalidNumberError, error) {
	out := make([]T, 0, len(rows))
	var coerced []*InvalidNumberError
	for i, row := range rows {
		rec, c, err := mapRow(row, policy)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, rec)
		coerced = append(coerced, c...)
	}
	return out, coerced, nil
}

// cellReader pulls counts out of a row and applies the number policy.
type cellReader struct {
	dataset string
	state   string
	row     []string
	policy  NumberPolicy
	coerced []*InvalidNumberError
	err     error
}

func newCellReader(dataset string, row []string, columns int, policy NumberPolicy) (*cellReader, error) {
	if len(row) < columns {
		state := ""
		if len(row) > 0 {
			state = row[0]
		}
		return nil, fmt.Errorf("%w: %s row %q has %d columns, want %d", ErrMalformedInput, dataset, state, len(row), columns)
	}
	if policy == "" {
		policy = NumberPolicyReject
	}
	return &cellReader{
		dataset: dataset,
		state:   strings.TrimSpace(row[0]),
		row:     row,
		policy:  policy,
	}, nil
}

func (c *cellReader) count(col int) int {
	if c.err != nil {
		return 0
	}
	if v, ok := parseCount(c.row[col]); ok {
		return v
	}

	invalid := &InvalidNumberError{Dataset: c.dataset, State: c.state, Column: col, Value: c.row[col]}
	if c.policy == NumberPolicyZero {
		c.coerced = append(c.coerced, invalid)
		return 0
	}
	c.err = invalid
	return 0
}

// parseCount parses a non-negative base-10 integer, allowing thousands
// separators ("1,234").
func parseCount(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
