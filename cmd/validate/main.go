// Command validate checks the three FARS exports for consistency before they
// are served: every row must map, the exports must join state by state, the
// age and BAC fatality totals must agree, and the crash-type and age-group
// breakdowns must add up to their totals. With -geography it also checks every map feature resolves to a
// record.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -crashes data/dataset0.txt \
//	  -age data/dataset1.txt \
//	  -bac data/dataset2.txt \
//	  -geography data/us-10m.v1.json
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/couchcryptid/fars-dashboard/internal/pipeline"
	"github.com/mattn/go-runewidth"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	crashes := flag.String("crashes", "", "path to the crash export")
	age := flag.String("age", "", "path to the age-group export")
	bac := flag.String("bac", "", "path to the BAC export")
	geography := flag.String("geography", "", "optional path to the TopoJSON map")
	policy := flag.String("policy", "reject", "invalid number policy: reject or zero")
	flag.Parse()

	if *crashes == "" || *age == "" || *bac == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*crashes, *age, *bac, *geography, *policy); code != 0 {
		os.Exit(code)
	}
}

func run(crashesPath, agePath, bacPath, geoPath, policyName string) int {
	policy, err := domain.ParseNumberPolicy(policyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	raw, err := readDocuments(crashesPath, agePath, bacPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	fmt.Println("=== FARS Export Validation ===")
	fmt.Println()

	mapping := &phase{name: "Phase 1: Row mapping"}
	tables, err := pipeline.MapExports(raw, policy)
	if err != nil {
		mapping.errorf("%v", err)
		report([]*phase{mapping})
		return 1
	}
	for _, dataset := range []string{domain.DatasetCrashes, domain.DatasetAge, domain.DatasetBAC} {
		for _, c := range tables.Coerced[dataset] {
			mapping.errorf("%v (stored as 0)", c)
		}
	}

	joining := &phase{name: "Phase 2: State join"}
	records, err := domain.Join(tables.Crashes, tables.Ages, tables.BACs)
	if err != nil {
		joining.errorf("%v", err)
	}

	totals := &phase{name: "Phase 3: Fatality totals (age vs BAC)"}
	for _, m := range domain.FatalityMismatches(tables.Ages, tables.BACs) {
		totals.errorf("%s: age export %d, BAC export %d", m.State, m.AgeTotal, m.BACTotal)
	}

	breakdowns := &phase{name: "Phase 4: Breakdown sums"}
	checkBreakdowns(breakdowns, tables)

	phases := []*phase{mapping, joining, totals, breakdowns}
	if geoPath != "" {
		phases = append(phases, validateGeography(geoPath, len(records)))
	}

	if len(records) > 0 {
		printTable(records)
	}
	return report(phases)
}

func readDocuments(crashesPath, agePath, bacPath string) (domain.RawDocuments, error) {
	var raw domain.RawDocuments
	for _, f := range []struct {
		path string
		dst  *string
	}{
		{crashesPath, &raw.Crashes},
		{agePath, &raw.Age},
		{bacPath, &raw.BAC},
	} {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return raw, fmt.Errorf("read %s: %w", f.path, err)
		}
		*f.dst = string(data)
	}
	return raw, nil
}

func checkBreakdowns(p *phase, t pipeline.Tables) {
	for _, r := range t.Crashes {
		sum := 0
		for _, c := range r.Crashes {
			sum += c.Value
		}
		if sum != r.TotalCrashes {
			p.errorf("%s: crash types sum to %d, total is %d", r.State, sum, r.TotalCrashes)
		}
	}
	for _, r := range t.Ages {
		sum := 0
		for _, a := range r.Fatalities {
			sum += a.Value
		}
		if sum != r.TotalFatalities {
			p.errorf("%s: age groups sum to %d, total is %d", r.State, sum, r.TotalFatalities)
		}
	}
}

func validateGeography(path string, records int) *phase {
	p := &phase{name: "Phase 5: Map features"}
	data, err := os.ReadFile(path)
	if err != nil {
		p.errorf("read %s: %v", path, err)
		return p
	}
	geo, err := domain.ParseGeography(data)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	for _, id := range geo.StateIDs() {
		idx, ok := domain.IndexForFIPS(id)
		switch {
		case !ok:
			p.errorf("feature %q has no state mapping", id)
		case idx >= records:
			p.errorf("feature %q maps to record %d, only %d records", id, idx, records)
		}
	}
	return p
}

// printTable writes the joined records as an aligned table. State names are
// padded by display width.
func printTable(records []domain.StateRecord) {
	headers := []string{"State", "Code", "Crashes", "Fatalities (BAC)", "Age sum"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.State,
			r.Abbreviation,
			strconv.Itoa(r.TotalCrashes),
			strconv.Itoa(r.TotalFatalities),
			strconv.Itoa(r.AgeSum()),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) {
		out := make([]string, len(cells))
		for i, cell := range cells {
			if i < 2 {
				out[i] = runewidth.FillRight(cell, widths[i])
			} else {
				out[i] = runewidth.FillLeft(cell, widths[i])
			}
		}
		fmt.Println("  " + strings.Join(out, "  "))
	}

	line(headers)
	for _, row := range rows {
		line(row)
	}
	fmt.Println()
}

func report(phases []*phase) int {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %s %s\n", runewidth.FillRight(p.name, 42), status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}
