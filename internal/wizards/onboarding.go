package wizards

import (
	"strconv"

	"github.com/mrsinham/medintel/internal/flow"
	"github.com/mrsinham/medintel/internal/form"
)

// PatientStep is a step of patient onboarding.
type PatientStep int

const (
	PatientBasics PatientStep = iota + 1
	PatientHealth
	PatientMetrics
	PatientRoutine
	PatientConfirm
)

var patientStepNames = map[PatientStep]string{
	PatientBasics:  "basics",
	PatientHealth:  "health",
	PatientMetrics: "metrics",
	PatientRoutine: "routine",
	PatientConfirm: "confirm",
}

func (s PatientStep) String() string {
	if n, ok := patientStepNames[s]; ok {
		return n
	}
	return "step-" + strconv.Itoa(int(s))
}

// PatientDefinition returns the five-step patient onboarding wizard. The
// final step submits the profile.
func PatientDefinition() flow.Definition[PatientStep] {
	steps := []PatientStep{PatientBasics, PatientHealth, PatientMetrics, PatientRoutine, PatientConfirm}
	validators := make(map[PatientStep]form.Validator, len(steps))
	for _, s := range steps {
		validators[s] = func(d *form.Data) bool { return IsPatientStepValid(s, d) }
	}
	return flow.Definition[PatientStep]{
		Name:       "patient-onboarding",
		Steps:      steps,
		Validators: validators,
		Submits:    map[PatientStep]bool{PatientConfirm: true},
	}
}

// PatientDefaults returns the initial patient profile for the given year.
func PatientDefaults(currentYear int) map[string]any {
	return map[string]any{
		FieldFullName:             "",
		FieldYearOfBirth:          currentYear - 30,
		FieldGender:               "",
		FieldHealthConditions:     []string{},
		FieldOtherCondition:       "",
		FieldAllergies:            []string{},
		FieldWeight:               "",
		FieldHeight:               "",
		FieldWakeUpTime:           "07:00",
		FieldSleepTime:            "22:00",
		FieldNotificationsEnabled: true,
		FieldAgreeToTerms:         false,
	}
}

// IsPatientStepValid gates each patient onboarding step.
func IsPatientStepValid(step PatientStep, d *form.Data) bool {
	switch step {
	case PatientBasics:
		return d.Filled(FieldFullName) && d.Filled(FieldYearOfBirth) && d.Filled(FieldGender)
	case PatientHealth:
		return true
	case PatientMetrics:
		return d.Filled(FieldWeight) && d.Filled(FieldHeight)
	case PatientRoutine:
		return d.Filled(FieldWakeUpTime) && d.Filled(FieldSleepTime)
	case PatientConfirm:
		return d.Bool(FieldAgreeToTerms)
	}
	return false
}

// CaregiverStep is a step of caregiver onboarding.
type CaregiverStep int

const (
	CaregiverSelf CaregiverStep = iota + 1
	CaregiverPatient
	CaregiverNotifications
)

func (s CaregiverStep) String() string {
	switch s {
	case CaregiverSelf:
		return "caregiver"
	case CaregiverPatient:
		return "patient"
	case CaregiverNotifications:
		return "notifications"
	}
	return "step-" + strconv.Itoa(int(s))
}

// CaregiverDefinition returns the three-step caregiver onboarding wizard.
func CaregiverDefinition() flow.Definition[CaregiverStep] {
	steps := []CaregiverStep{CaregiverSelf, CaregiverPatient, CaregiverNotifications}
	validators := make(map[CaregiverStep]form.Validator, len(steps))
	for _, s := range steps {
		validators[s] = func(d *form.Data) bool { return IsCaregiverStepValid(s, d) }
	}
	return flow.Definition[CaregiverStep]{
		Name:       "caregiver-onboarding",
		Steps:      steps,
		Validators: validators,
		Submits:    map[CaregiverStep]bool{CaregiverNotifications: true},
	}
}

// CaregiverDefaults returns the initial caregiver profile for the given year.
func CaregiverDefaults(currentYear int) map[string]any {
	return map[string]any{
		FieldCaregiverName:          "",
		FieldCaregiverEmail:         "",
		FieldCaregiverPhone:         "",
		FieldRelationship:           "",
		FieldPatientName:            "",
		FieldPatientYearOfBirth:     currentYear - 65,
		FieldPatientGender:          "",
		FieldNotifyMissedMedication: true,
		FieldNotifyLowReminders:     true,
		FieldNotifyAbnormalMetrics:  true,
		FieldContactMethod:          "sms",
	}
}

// IsCaregiverStepValid gates each caregiver onboarding step.
func IsCaregiverStepValid(step CaregiverStep, d *form.Data) bool {
	switch step {
	case CaregiverSelf:
		return d.Filled(FieldCaregiverName) && d.Filled(FieldCaregiverEmail) && d.Filled(FieldRelationship)
	case CaregiverPatient:
		return d.Filled(FieldPatientName) && d.Filled(FieldPatientYearOfBirth) && d.Filled(FieldPatientGender)
	case CaregiverNotifications:
		return true
	}
	return false
}
