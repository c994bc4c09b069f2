package domain

import "fmt"

// Join merges the three mapped exports into one record per state. Rows are
// matched on the state name; the output keeps the order of the crash export.
// The exports must have the same length and the same set of states.
func Join(crashes []CrashRow, ages []AgeRow, bacs []BACRow) ([]StateRecord, error) {
	if len(crashes) != len(ages) || len(crashes) != len(bacs) {
		return nil, fmt.Errorf("%w: crashes=%d age=%d bac=%d", ErrJoinLengthMismatch, len(crashes), len(ages), len(bacs))
	}

	ageByState, err := indexByState(DatasetAge, ages, func(r AgeRow) string { return r.State })
	if err != nil {
		return nil, err
	}
	bacByState, err := indexByState(DatasetBAC, bacs, func(r BACRow) string { return r.State })
	if err != nil {
		return nil, err
	}
	if _, err := indexByState(DatasetCrashes, crashes, func(r CrashRow) string { return r.State }); err != nil {
		return nil, err
	}

	out := make([]StateRecord, len(crashes))
	for i, c := range crashes {
		a, ok := ageByState[c.State]
		if !ok {
			return nil, fmt.Errorf("%w: %q missing from %s export", ErrStateIdentityMismatch, c.State, DatasetAge)
		}
		b, ok := bacByState[c.State]
		if !ok {
			return nil, fmt.Errorf("%w: %q missing from %s export", ErrStateIdentityMismatch, c.State, DatasetBAC)
		}

		out[i] = StateRecord{
			State:        c.State,
			Abbreviation: c.Abbreviation,
			TotalCrashes: c.TotalCrashes,
			Crashes:      c.Crashes,
			// Age and BAC both carry a total; BAC is merged last and wins.
			TotalFatalities: b.TotalFatalities,
			Fatalities:      a.Fatalities,
			BACLevels:       b.BACLevels,
		}
	}
	return out, nil
}

// FatalityMismatch records a state whose age and BAC exports report
// different fatality totals.
type FatalityMismatch struct {
	State    string
	AgeTotal int
	BACTotal int
}

// FatalityMismatches lists states whose two fatality totals disagree.
// Rows are matched by state name; unmatched rows are ignored.
func FatalityMismatches(ages []AgeRow, bacs []BACRow) []FatalityMismatch {
	bacTotals := make(map[string]int, len(bacs))
	for _, b := range bacs {
		bacTotals[b.State] = b.TotalFatalities
	}

	var out []FatalityMismatch
	for _, a := range ages {
		total, ok := bacTotals[a.State]
		if ok && total != a.TotalFatalities {
			out = append(out, FatalityMismatch{State: a.State, AgeTotal: a.TotalFatalities, BACTotal: total})
		}
	}
	return out
}

func indexByState[T any](dataset string, rows []T, state func(T) string) (map[string]T, error) {
	idx := make(map[string]T, len(rows))
	for _, r := range rows {
		name := state(r)
		if _, dup := idx[name]; dup {
			return nil, fmt.Errorf("%w: %q appears twice in %s export", ErrStateIdentityMismatch, name, dataset)
		}
		idx[name] = r
	}
	return idx, nil
}
