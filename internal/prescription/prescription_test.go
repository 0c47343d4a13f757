package prescription

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsinham/medintel/internal/form"
	"github.com/mrsinham/medintel/internal/wizards"
)

func TestExtract(t *testing.T) {
	meds := Extract()
	require.Len(t, meds, 2)
	assert.Equal(t, "2 times/day", meds[0].Frequency())
	assert.Equal(t, "7 days", meds[1].Duration())
}

func TestCheck_AntibioticNote(t *testing.T) {
	notes := Check(Extract())
	require.Len(t, notes, 3)
	assert.Equal(t, SeverityInfo, notes[2].Severity)
	assert.Equal(t, "Amoxicillin is an antibiotic. Please complete the full 7-day course.", notes[2].Detail)

	assert.Len(t, Check(Extract()[:1]), 2)
}

func TestTimeline_SortedByClock(t *testing.T) {
	got := Timeline(Extract())
	var times []string
	for _, d := range got {
		times = append(times, d.Time)
	}
	want := []string{"06:00 AM", "07:00 AM", "02:00 PM", "07:00 PM", "10:00 PM"}
	if diff := cmp.Diff(want, times); diff != "" {
		t.Errorf("timeline (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Amoxicillin 250mg", got[0].Name)
}

func TestTimeline_UnparsableLast(t *testing.T) {
	got := Timeline([]Medication{{Name: "X", Times: []string{"noon", "08:00 AM"}}})
	require.Len(t, got, 2)
	assert.Equal(t, "08:00 AM", got[0].Time)
	assert.Equal(t, "noon", got[1].Time)
}

func TestFromManualEntry(t *testing.T) {
	d := form.New(wizards.ManualDefaults())
	d.Set(wizards.FieldMedName, " Paracetamol ")
	d.Set(wizards.FieldMedDosage, "500mg")
	wizards.AddReminder(d)

	got := FromManualEntry(d)
	want := Medication{
		Name:         "Paracetamol",
		Dose:         "500mg",
		TimesPerDay:  2,
		Times:        []string{"07:00 AM", "07:00 PM", "12:00 PM"},
		DurationDays: 5,
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Medication{}, "ID")); diff != "" {
		t.Errorf("FromManualEntry (-want +got):\n%s", diff)
	}
	assert.NotEmpty(t, got.ID)
}
