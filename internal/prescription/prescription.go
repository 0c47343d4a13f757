// Package prescription holds the content shown by the prescription capture
// wizard. Extraction is simulated: every scan yields the same demo result.
package prescription

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrsinham/medintel/internal/form"
	"github.com/mrsinham/medintel/internal/wizards"
)

// Medication is one line of an extracted or manually entered prescription.
type Medication struct {
	ID           string
	Name         string
	Dose         string
	TimesPerDay  int
	Times        []string
	DurationDays int
	Antibiotic   bool
}

// Frequency renders the daily count, e.g. "2 times/day".
func (m Medication) Frequency() string {
	return fmt.Sprintf("%d times/day", m.TimesPerDay)
}

// Duration renders the course length, e.g. "5 days".
func (m Medication) Duration() string {
	return fmt.Sprintf("%d days", m.DurationDays)
}

// Extract returns the medications recognized on a prescription.
func Extract() []Medication {
	return []Medication{
		{
			ID:           "paracetamol",
			Name:         "Paracetamol 500mg",
			Dose:         "1 pill",
			TimesPerDay:  2,
			Times:        []string{"07:00 AM", "07:00 PM"},
			DurationDays: 5,
		},
		{
			ID:           "amoxicillin",
			Name:         "Amoxicillin 250mg",
			Dose:         "1 capsule",
			TimesPerDay:  3,
			Times:        []string{"06:00 AM", "02:00 PM", "10:00 PM"},
			DurationDays: 7,
			Antibiotic:   true,
		},
	}
}

// Severity of a safety note.
type Severity string

const (
	SeverityOK   Severity = "ok"
	SeverityInfo Severity = "info"
)

// SafetyNote is one finding of the safety verification step.
type SafetyNote struct {
	Severity Severity
	Title    string
	Detail   string
}

// Check produces the safety findings for a set of medications.
func Check(meds []Medication) []SafetyNote {
	notes := []SafetyNote{
		{
			Severity: SeverityOK,
			Title:    "Safe Dosage",
			Detail:   "Dosages for all medications are within international medical standards.",
		},
		{
			Severity: SeverityOK,
			Title:    "No Negative Interactions",
			Detail:   "The combination of medications does not present known risks.",
		},
	}
	for _, m := range meds {
		if !m.Antibiotic {
			continue
		}
		name, _, _ := strings.Cut(m.Name, " ")
		notes = append(notes, SafetyNote{
			Severity: SeverityInfo,
			Title:    "Antibiotic Awareness",
			Detail: fmt.Sprintf("%s is an antibiotic. Please complete the full %d-day course.",
				name, m.DurationDays),
		})
	}
	return notes
}

// Dose is one entry of the generated daily schedule.
type Dose struct {
	Time string
	Name string
	Note string
}

const clockLayout = "03:04 PM"

// Timeline lists every dose of the day sorted by time. Entries whose time
// cannot be parsed sort last, in input order.
func Timeline(meds []Medication) []Dose {
	var doses []Dose
	for _, m := range meds {
		for _, t := range m.Times {
			doses = append(doses, Dose{Time: t, Name: m.Name, Note: m.Dose})
		}
	}
	slices.SortStableFunc(doses, func(a, b Dose) int {
		ta, errA := time.Parse(clockLayout, a.Time)
		tb, errB := time.Parse(clockLayout, b.Time)
		switch {
		case errA != nil && errB != nil:
			return 0
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		}
		return ta.Compare(tb)
	})
	return doses
}

// FromManualEntry builds a medication from the manual entry form.
func FromManualEntry(d *form.Data) Medication {
	times := d.Strings(wizards.FieldMedTimes)
	perDay := d.Int(wizards.FieldMedFreq)
	if perDay <= 0 {
		perDay = len(times)
	}
	return Medication{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(d.String(wizards.FieldMedName)),
		Dose:         strings.TrimSpace(d.String(wizards.FieldMedDosage)),
		TimesPerDay:  perDay,
		Times:        times,
		DurationDays: d.Int(wizards.FieldMedDuration),
	}
}
