package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datasetFixture() []StateRecord {
	return []StateRecord{
		{
			State: "Alabama", Abbreviation: "AL", TotalCrashes: 520, TotalFatalities: 574,
			Crashes:    []CrashCount{{Type: "Overturn", Value: 20}},
			Fatalities: []AgeCount{{AgeGroup: "<5", Value: 4}},
			BACLevels:  []BACCount{{Level: "0.00%", Value: 300}},
		},
		{
			State: "Alaska", Abbreviation: "AK", TotalCrashes: 54, TotalFatalities: 59,
			Crashes:    []CrashCount{{Type: "Overturn", Value: 5}},
			Fatalities: []AgeCount{{AgeGroup: "<5", Value: 1}},
			BACLevels:  []BACCount{{Level: "0.00%", Value: 30}},
		},
	}
}

func TestNewDataset(t *testing.T) {
	fixed := time.Date(2013, time.December, 1, 9, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	records := datasetFixture()
	ds := NewDataset(2012, records)

	assert.Equal(t, 2012, ds.Year())
	assert.Equal(t, fixed, ds.LoadedAt())
	assert.Equal(t, 2, ds.Len())

	records[0].State = "changed"
	got, ok := ds.At(0)
	require.True(t, ok)
	assert.Equal(t, "Alabama", got.State, "dataset must not alias the input slice")

	_, ok = ds.At(2)
	assert.False(t, ok)
	_, ok = ds.At(-1)
	assert.False(t, ok)
}

func TestDataset_National(t *testing.T) {
	t.Run("aggregate when no national row", func(t *testing.T) {
		ds := NewDataset(2012, datasetFixture())
		n := ds.National()

		assert.Equal(t, NationalName, n.State)
		assert.Equal(t, 574, n.TotalCrashes)
		assert.Equal(t, 633, n.TotalFatalities)
		assert.Equal(t, 25, n.Crashes[0].Value)
		assert.Equal(t, 5, n.Fatalities[0].Value)
		assert.Equal(t, 330, n.BACLevels[0].Value)

		first, _ := ds.At(0)
		assert.Equal(t, 20, first.Crashes[0].Value, "aggregation must not modify records")
	})

	t.Run("national row from the source", func(t *testing.T) {
		records := append(datasetFixture(), StateRecord{State: NationalName, TotalCrashes: 30800})
		ds := NewDataset(2012, records)

		assert.Equal(t, 30800, ds.National().TotalCrashes)
		assert.Equal(t, 520, ds.MaxCrashes(), "national row is excluded from the colour domain")
	})
}

func TestDataset_Lookup(t *testing.T) {
	ds := NewDataset(2012, datasetFixture())

	r, ok := ds.Lookup("Alaska")
	require.True(t, ok)
	assert.Equal(t, "AK", r.Abbreviation)

	_, ok = ds.Lookup("Puerto Rico")
	assert.False(t, ok)
}

func TestDataset_MarshalJSON(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2013, time.December, 1, 9, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	data, err := json.Marshal(NewDataset(2012, datasetFixture()[:1]))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"year": 2012,
		"loaded_at": "2013-12-01T09:00:00Z",
		"states": [{
			"state": "Alabama",
			"stateAbbreviation": "AL",
			"totalCrashes": 520,
			"crashes": [{"type": "Overturn", "value": 20}],
			"totalFatalities": 574,
			"fatalities": [{"age": "<5", "value": 4}],
			"BAClevels": [{"level": "0.00%", "value": 300}]
		}]
	}`, string(data))
}
