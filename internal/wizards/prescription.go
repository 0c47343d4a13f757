package wizards

import (
	"github.com/mrsinham/medintel/internal/flow"
	"github.com/mrsinham/medintel/internal/form"
)

// PrescriptionStep is a step of prescription capture.
type PrescriptionStep string

const (
	PrescriptionUpload     PrescriptionStep = "upload"
	PrescriptionProcessing PrescriptionStep = "processing"
	PrescriptionAnalysis   PrescriptionStep = "analysis"
	PrescriptionSafety     PrescriptionStep = "safety"
	PrescriptionTimeline   PrescriptionStep = "timeline"
	PrescriptionSuccess    PrescriptionStep = "success"
)

var prescriptionProgress = map[PrescriptionStep]int{
	PrescriptionUpload:     20,
	PrescriptionProcessing: 40,
	PrescriptionAnalysis:   60,
	PrescriptionSafety:     80,
	PrescriptionTimeline:   95,
	PrescriptionSuccess:    100,
}

// Progress returns the completion percentage shown while on step.
func (s PrescriptionStep) Progress() int {
	return prescriptionProgress[s]
}

// PrescriptionDefinition returns the capture wizard. No step is gated; the
// processing step is a request started on entry, and backing out of the
// success step leaves the wizard like backing out of the first one.
func PrescriptionDefinition() flow.Definition[PrescriptionStep] {
	return flow.Definition[PrescriptionStep]{
		Name: "prescription",
		Steps: []PrescriptionStep{
			PrescriptionUpload,
			PrescriptionProcessing,
			PrescriptionAnalysis,
			PrescriptionSafety,
			PrescriptionTimeline,
			PrescriptionSuccess,
		},
		Submits:    map[PrescriptionStep]bool{PrescriptionProcessing: true},
		AutoSubmit: map[PrescriptionStep]bool{PrescriptionProcessing: true},
		Exits:      map[PrescriptionStep]bool{PrescriptionSuccess: true},
	}
}

// ManualStep is the single step of manual medication entry.
type ManualStep string

const ManualEntry ManualStep = "entry"

// ManualDefinition returns the manual medication entry form.
func ManualDefinition() flow.Definition[ManualStep] {
	return flow.Definition[ManualStep]{
		Name:  "manual-entry",
		Steps: []ManualStep{ManualEntry},
		Validators: map[ManualStep]form.Validator{
			ManualEntry: form.Required(FieldMedName, FieldMedTimes),
		},
	}
}

// ManualDefaults returns the initial manual entry fields.
func ManualDefaults() map[string]any {
	return map[string]any{
		FieldMedName:     "",
		FieldMedDosage:   "",
		FieldMedFreq:     "2",
		FieldMedTimes:    []string{"07:00 AM", "07:00 PM"},
		FieldMedDuration: "5",
	}
}

// DefaultReminderTime is appended when the user adds a reminder.
const DefaultReminderTime = "12:00 PM"

// AddReminder appends the default reminder time.
func AddReminder(d *form.Data) {
	d.Append(FieldMedTimes, DefaultReminderTime)
}

// RemoveReminder deletes the i-th reminder. The last remaining reminder
// cannot be removed.
func RemoveReminder(d *form.Data, i int) bool {
	if len(d.Strings(FieldMedTimes)) <= 1 {
		return false
	}
	return d.RemoveAt(FieldMedTimes, i) == nil
}

// SetReminder replaces the i-th reminder.
func SetReminder(d *form.Data, i int, value string) error {
	return d.SetAt(FieldMedTimes, i, value)
}
