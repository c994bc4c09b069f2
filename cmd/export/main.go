// Command export runs the three FARS exports through the same mapping and
// join the dashboard uses and writes the joined dataset as JSON. The load
// timestamp is pinned so repeated runs produce identical fixtures.
//
// Usage:
//
//	go run ./cmd/export \
//	  -crashes data/dataset0.txt \
//	  -age data/dataset1.txt \
//	  -bac data/dataset2.txt \
//	  -out data/fixtures/dataset_2012.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/couchcryptid/fars-dashboard/internal/pipeline"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	crashes := flag.String("crashes", "", "path to the crash export")
	age := flag.String("age", "", "path to the age-group export")
	bac := flag.String("bac", "", "path to the BAC export")
	out := flag.String("out", "", "output path for the joined dataset JSON")
	year := flag.Int("year", 2012, "dataset year")
	policyName := flag.String("policy", "reject", "invalid number policy: reject or zero")
	flag.Parse()

	if *crashes == "" || *age == "" || *bac == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -crashes, -age, -bac, -out")
	}

	policy, err := domain.ParseNumberPolicy(*policyName)
	if err != nil {
		return err
	}

	// Set a fixed clock for a reproducible loaded_at.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(*year+1, time.December, 1, 0, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	raw := domain.RawDocuments{}
	for _, f := range []struct {
		path string
		dst  *string
	}{
		{*crashes, &raw.Crashes},
		{*age, &raw.Age},
		{*bac, &raw.BAC},
	} {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return fmt.Errorf("read %s: %w", f.path, err)
		}
		*f.dst = string(data)
	}

	tables, err := pipeline.MapExports(raw, policy)
	if err != nil {
		return err
	}
	for _, c := range coercedCells(tables) {
		log.Printf("%v (stored as 0)", c)
	}
	for _, m := range domain.FatalityMismatches(tables.Ages, tables.BACs) {
		log.Printf("%s: age export reports %d fatalities, BAC export %d", m.State, m.AgeTotal, m.BACTotal)
	}

	records, err := domain.Join(tables.Crashes, tables.Ages, tables.BACs)
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}
	ds := domain.NewDataset(*year, records)

	if err := writeJSON(*out, ds); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	log.Printf("wrote %d records to %s", ds.Len(), *out)

	national := ds.National()
	log.Printf("%s: %d crashes, %d fatalities", national.State, national.TotalCrashes, national.TotalFatalities)
	return nil
}

// coercedCells lists the zeroed cells in export order: crashes, age, BAC.
func coercedCells(t pipeline.Tables) []*domain.InvalidNumberError {
	var out []*domain.InvalidNumberError
	for _, dataset := range []string{domain.DatasetCrashes, domain.DatasetAge, domain.DatasetBAC} {
		out = append(out, t.Coerced[dataset]...)
	}
	return out
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
