// Package dashboard holds the home screen's medication list for the day.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/mrsinham/medintel/internal/nav"
)

// Status of a scheduled dose.
type Status string

const (
	StatusTaken    Status = "taken"
	StatusUpcoming Status = "upcoming"
	StatusMissed   Status = "missed"
)

// Medication is one scheduled dose shown on the dashboard.
type Medication struct {
	ID      string
	Name    string
	Dosage  string
	Time    string
	Status  Status
	NextDue string
}

// ErrUnknownMedication is returned by MarkTaken for an id not on the list.
var ErrUnknownMedication = errors.New("unknown medication")

// Seed returns the doses shown when the dashboard opens.
func Seed() []Medication {
	return []Medication{
		{ID: "1", Name: "Lisinopril", Dosage: "10mg", Time: "08:00 AM", Status: StatusTaken},
		{ID: "2", Name: "Metformin", Dosage: "500mg", Time: "12:00 PM", Status: StatusUpcoming, NextDue: "2 hours"},
		{ID: "3", Name: "Atorvastatin", Dosage: "20mg", Time: "06:00 PM", Status: StatusUpcoming, NextDue: "8 hours"},
	}
}

// Board is the state of one mounted dashboard. The role and user name are
// read-only inputs from the router.
type Board struct {
	Role     nav.Role
	UserName string
	meds     []Medication
}

// New opens a dashboard with the seeded medications.
func New(role nav.Role, userName string) *Board {
	return &Board{Role: role, UserName: userName, meds: Seed()}
}

// Medications returns a copy of the list.
func (b *Board) Medications() []Medication {
	out := make([]Medication, len(b.meds))
	copy(out, b.meds)
	return out
}

// MarkTaken sets the status of a dose to taken.
func (b *Board) MarkTaken(id string) error {
	for i := range b.meds {
		if b.meds[i].ID == id {
			b.meds[i].Status = StatusTaken
			return nil
		}
	}
	return fmt.Errorf("mark taken %q: %w", id, ErrUnknownMedication)
}

// Taken counts doses already taken.
func (b *Board) Taken() int {
	n := 0
	for _, m := range b.meds {
		if m.Status == StatusTaken {
			n++
		}
	}
	return n
}

// Progress returns the share of taken doses as a percentage in [0,100].
func (b *Board) Progress() float64 {
	if len(b.meds) == 0 {
		return 0
	}
	return float64(b.Taken()) / float64(len(b.meds)) * 100
}

// NextDose returns the first upcoming dose, if any.
func (b *Board) NextDose() (Medication, bool) {
	for _, m := range b.meds {
		if m.Status == StatusUpcoming {
			return m, true
		}
	}
	return Medication{}, false
}

// GreetingKey returns the message id of the greeting for an hour of the day.
func GreetingKey(hour int) string {
	switch {
	case hour < 12:
		return "GreetingMorning"
	case hour < 18:
		return "GreetingAfternoon"
	default:
		return "GreetingEvening"
	}
}
