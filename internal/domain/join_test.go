package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinFixture(states ...string) ([]CrashRow, []AgeRow, []BACRow) {
	var crashes []CrashRow
	var ages []AgeRow
	var bacs []BACRow
	for i, s := range states {
		abbr := StateAbbreviations[s]
		crashes = append(crashes, CrashRow{State: s, Abbreviation: abbr, TotalCrashes: 100 + i, Crashes: []CrashCount{{Type: "Overturn", Value: i}}})
		ages = append(ages, AgeRow{State: s, Abbreviation: abbr, TotalFatalities: 10 + i, Fatalities: []AgeCount{{AgeGroup: "<5", Value: 10 + i}}})
		bacs = append(bacs, BACRow{State: s, Abbreviation: abbr, TotalFatalities: 10 + i, BACLevels: []BACCount{{Level: "0.00%", Value: 10 + i}}})
	}
	return crashes, ages, bacs
}

func TestJoin_AlignedSources(t *testing.T) {
	crashes, ages, bacs := joinFixture("Alabama", "Alaska", "Arizona")

	out, err := Join(crashes, ages, bacs)
	require.NoError(t, err)
	require.Len(t, out, len(crashes))

	for i := range out {
		assert.Equal(t, crashes[i].State, out[i].State)
		assert.Equal(t, ages[i].State, out[i].State)
		assert.Equal(t, bacs[i].State, out[i].State)
	}

	want := StateRecord{
		State:           "Alaska",
		Abbreviation:    "AK",
		TotalCrashes:    101,
		Crashes:         []CrashCount{{Type: "Overturn", Value: 1}},
		TotalFatalities: 11,
		Fatalities:      []AgeCount{{AgeGroup: "<5", Value: 11}},
		BACLevels:       []BACCount{{Level: "0.00%", Value: 11}},
	}
	if diff := cmp.Diff(want, out[1]); diff != "" {
		t.Errorf("joined record mismatch (-want +got):\n%s", diff)
	}
}

func TestJoin_ReorderedSourceIsMatchedByName(t *testing.T) {
	crashes, ages, bacs := joinFixture("Alabama", "Alaska", "Arizona")
	ages[0], ages[2] = ages[2], ages[0]

	out, err := Join(crashes, ages, bacs)
	require.NoError(t, err)

	assert.Equal(t, "Alabama", out[0].State)
	assert.Equal(t, 10, out[0].Fatalities[0].Value)
	assert.Equal(t, "Arizona", out[2].State)
	assert.Equal(t, 12, out[2].Fatalities[0].Value)
}

func TestJoin_LengthMismatch(t *testing.T) {
	crashes, ages, bacs := joinFixture("Alabama", "Alaska", "Arizona")

	_, err := Join(crashes, ages[:2], bacs)
	require.ErrorIs(t, err, ErrJoinLengthMismatch)
	assert.Contains(t, err.Error(), "age=2")
}

func TestJoin_StateIdentityMismatch(t *testing.T) {
	t.Run("missing state", func(t *testing.T) {
		crashes, ages, bacs := joinFixture("Alabama", "Alaska", "Arizona")
		bacs[1].State = "Alsaka"

		_, err := Join(crashes, ages, bacs)
		require.ErrorIs(t, err, ErrStateIdentityMismatch)
		assert.Contains(t, err.Error(), `"Alaska" missing from bac`)
	})

	t.Run("duplicate state", func(t *testing.T) {
		crashes, ages, bacs := joinFixture("Alabama", "Alaska", "Arizona")
		crashes[2].State = "Alabama"

		_, err := Join(crashes, ages, bacs)
		require.ErrorIs(t, err, ErrStateIdentityMismatch)
		assert.Contains(t, err.Error(), "twice in crashes")
	})
}

func TestJoin_BACTotalWins(t *testing.T) {
	crashes, ages, bacs := joinFixture("Alabama")
	ages[0].TotalFatalities = 40
	bacs[0].TotalFatalities = 41

	out, err := Join(crashes, ages, bacs)
	require.NoError(t, err)
	assert.Equal(t, 41, out[0].TotalFatalities)

	assert.Equal(t, []FatalityMismatch{{State: "Alabama", AgeTotal: 40, BACTotal: 41}}, FatalityMismatches(ages, bacs))
}

func TestJoin_Empty(t *testing.T) {
	out, err := Join(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
