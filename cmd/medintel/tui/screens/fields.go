package screens

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/mrsinham/medintel/internal/form"
	"github.com/mrsinham/medintel/internal/locale"
	"github.com/mrsinham/medintel/internal/wizards"
)

// stepTitles maps wizard/step to the message id of the step title.
var stepTitles = map[string]string{
	"sign-in/credentials":                "SignInTitle",
	"sign-up/account":                    "SignUpTitle",
	"sign-up/verify":                     "VerifyTitle",
	"patient-onboarding/basics":          "PatientBasicsTitle",
	"patient-onboarding/health":          "PatientHealthTitle",
	"patient-onboarding/metrics":         "PatientMetricsTitle",
	"patient-onboarding/routine":         "PatientRoutineTitle",
	"patient-onboarding/confirm":         "PatientConfirmTitle",
	"caregiver-onboarding/caregiver":     "CaregiverSelfTitle",
	"caregiver-onboarding/patient":       "CaregiverPatientTitle",
	"caregiver-onboarding/notifications": "CaregiverNotificationsTitle",
	"manual-entry/entry":                 "ManualTitle",
}

// refusalHints maps wizard/step to the hint shown when the gate refuses.
var refusalHints = map[string]string{
	"sign-up/account": "PasswordsDoNotMatch",
	"sign-up/verify":  "InvalidCode",
}

func stepKey(wizard, step string) string { return wizard + "/" + step }

func required(l *locale.Localizer) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(l.T("Required"))
		}
		return nil
	}
}

func yearValidator(l *locale.Localizer, currentYear int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New(l.T("YearNotANumber"))
		}
		if n < wizards.MinYearOfBirth || n > currentYear {
			return errors.New(l.TData("YearOutOfRange", map[string]any{
				"Min": wizards.MinYearOfBirth,
				"Max": currentYear,
			}))
		}
		return nil
	}
}

func clockValidator(l *locale.Localizer, layout string) func(string) error {
	return func(s string) error {
		if _, err := time.Parse(layout, strings.TrimSpace(s)); err != nil {
			return errors.New(l.TData("ClockFormat", map[string]any{"Layout": layout}))
		}
		return nil
	}
}

func choices(values []string) []huh.Option[string] {
	return huh.NewOptions(values...)
}

// buildFields returns the huh fields of one wizard step, bound through b.
func buildFields(wizard, step string, d *form.Data, l *locale.Localizer, b *binding, now time.Time) []huh.Field {
	year := now.Year()

	switch stepKey(wizard, step) {
	case "sign-in/credentials":
		return []huh.Field{
			huh.NewInput().Key(wizards.FieldEmail).Title(l.T("Email")).
				Value(b.str(d, wizards.FieldEmail)).Validate(required(l)),
			huh.NewInput().Key(wizards.FieldPassword).Title(l.T("Password")).
				EchoMode(huh.EchoModePassword).
				Value(b.str(d, wizards.FieldPassword)).Validate(required(l)),
			huh.NewNote().Description(l.T("SignUpLink")),
		}

	case "sign-up/account":
		return []huh.Field{
			huh.NewInput().Key(wizards.FieldEmail).Title(l.T("Email")).
				Value(b.str(d, wizards.FieldEmail)).Validate(required(l)),
			huh.NewInput().Key(wizards.FieldPassword).Title(l.T("Password")).
				EchoMode(huh.EchoModePassword).
				Value(b.str(d, wizards.FieldPassword)).Validate(required(l)),
			huh.NewInput().Key(wizards.FieldConfirmPassword).Title(l.T("ConfirmPassword")).
				EchoMode(huh.EchoModePassword).
				Value(b.str(d, wizards.FieldConfirmPassword)).Validate(required(l)),
		}

	case "sign-up/verify":
		return []huh.Field{
			huh.NewNote().Description(l.TData("VerifySubtitle", map[string]any{
				"Length": wizards.OTPLength,
				"Email":  d.String(wizards.FieldEmail),
			})),
			huh.NewInput().Key(wizards.FieldOTP).Title(l.T("VerificationCode")).
				Value(b.code(d, wizards.FieldOTP)),
		}

	case "patient-onboarding/basics":
		yob := b.num(d, wizards.FieldYearOfBirth)
		return []huh.Field{
			huh.NewInput().Key(wizards.FieldFullName).Title(l.T("FullName")).
				Value(b.str(d, wizards.FieldFullName)).Validate(required(l)),
			huh.NewInput().Key(wizards.FieldYearOfBirth).Title(l.T("YearOfBirth")).
				DescriptionFunc(func() string {
					n, _ := strconv.Atoi(strings.TrimSpace(*yob))
					return l.TData("Age", map[string]any{"Age": wizards.Age(year, n)})
				}, yob).
				Value(yob).Validate(yearValidator(l, year)),
			huh.NewSelect[string]().Key(wizards.FieldGender).Title(l.T("Gender")).
				Options(choices(wizards.Genders)...).
				Value(b.str(d, wizards.FieldGender)),
		}

	case "patient-onboarding/health":
		return []huh.Field{
			huh.NewMultiSelect[string]().Key(wizards.FieldHealthConditions).Title(l.T("HealthConditions")).
				Options(choices(wizards.HealthConditions)...).
				Accessor(b.list(d, wizards.FieldHealthConditions)),
			huh.NewInput().Key(wizards.FieldOtherCondition).Title(l.T("OtherCondition")).
				Value(b.str(d, wizards.FieldOtherCondition)),
			huh.NewMultiSelect[string]().Key(wizards.FieldAllergies).Title(l.T("Allergies")).
				Options(choices(wizards.Allergies)...).
				Accessor(b.list(d, wizards.FieldAllergies)),
		}

	case "patient-onboarding/metrics":
		return []huh.Field{
			huh.NewInput().Key(wizards.FieldWeight).Title(l.T("Weight")).
				Value(b.str(d, wizards.FieldWeight)).Validate(required(l)),
			huh.NewInput().Key(wizards.FieldHeight).Title(l.T("Height")).
				Value(b.str(d, wizards.FieldHeight)).Validate(required(l)),
		}

	case "patient-onboarding/routine":
		return []huh.Field{
			huh.NewInput().Key(wizards.FieldWakeUpTime).Title(l.T("WakeUpTime")).
				Value(b.str(d, wizards.FieldWakeUpTime)).Validate(clockValidator(l, "15:04")),
			huh.NewInput().Key(wizards.FieldSleepTime).Title(l.T("SleepTime")).
				Value(b.str(d, wizards.FieldSleepTime)).Validate(clockValidator(l, "15:04")),
			huh.NewConfirm().Key(wizards.FieldNotificationsEnabled).Title(l.T("NotificationsEnabled")).
				Value(b.flag(d, wizards.FieldNotificationsEnabled)),
		}

	case "patient-onboarding/confirm":
		return []huh.Field{
			huh.NewNote().Description(patientSummary(d, l, year)),
			huh.NewConfirm().Key(wizards.FieldAgreeToTerms).Title(l.T("AgreeToTerms")).
				Value(b.flag(d, wizards.FieldAgreeToTerms)),
		}

	case "caregiver-onboarding/caregiver":
		return []huh.Field{
			huh.NewInput().Key(wizards.FieldCaregiverName).Title(l.T("CaregiverName")).
				Value(b.str(d, wizards.FieldCaregiverName)).Validate(required(l)),
			huh.NewInput().Key(wizards.FieldCaregiverEmail).Title(l.T("CaregiverEmail")).
				Value(b.str(d, wizards.FieldCaregiverEmail)).Validate(required(l)),
			huh.NewInput().Key(wizards.FieldCaregiverPhone).Title(l.T("CaregiverPhone")).
				Value(b.str(d, wizards.FieldCaregiverPhone)),
			huh.NewSelect[string]().Key(wizards.FieldRelationship).Title(l.T("Relationship")).
				Options(choices(wizards.Relationships)...).
				Value(b.str(d, wizards.FieldRelationship)),
		}

	case "caregiver-onboarding/patient":
		return []huh.Field{
			huh.NewInput().Key(wizards.FieldPatientName).Title(l.T("PatientName")).
				Value(b.str(d, wizards.FieldPatientName)).Validate(required(l)),
			huh.NewInput().Key(wizards.FieldPatientYearOfBirth).Title(l.T("PatientYearOfBirth")).
				Value(b.num(d, wizards.FieldPatientYearOfBirth)).Validate(yearValidator(l, year)),
			huh.NewSelect[string]().Key(wizards.FieldPatientGender).Title(l.T("PatientGender")).
				Options(choices(wizards.Genders)...).
				Value(b.str(d, wizards.FieldPatientGender)),
		}

	case "caregiver-onboarding/notifications":
		return []huh.Field{
			huh.NewConfirm().Key(wizards.FieldNotifyMissedMedication).Title(l.T("NotifyMissedMedication")).
				Value(b.flag(d, wizards.FieldNotifyMissedMedication)),
			huh.NewConfirm().Key(wizards.FieldNotifyLowReminders).Title(l.T("NotifyLowReminders")).
				Value(b.flag(d, wizards.FieldNotifyLowReminders)),
			huh.NewConfirm().Key(wizards.FieldNotifyAbnormalMetrics).Title(l.T("NotifyAbnormalMetrics")).
				Value(b.flag(d, wizards.FieldNotifyAbnormalMetrics)),
			huh.NewSelect[string]().Key(wizards.FieldContactMethod).Title(l.T("ContactMethod")).
				Options(choices(wizards.ContactMethods)...).
				Value(b.str(d, wizards.FieldContactMethod)),
		}

	case "manual-entry/entry":
		fields := []huh.Field{
			huh.NewInput().Key(wizards.FieldMedName).Title(l.T("MedName")).
				Value(b.str(d, wizards.FieldMedName)).Validate(required(l)),
			huh.NewInput().Key(wizards.FieldMedDosage).Title(l.T("MedDosage")).
				Value(b.str(d, wizards.FieldMedDosage)),
			huh.NewInput().Key(wizards.FieldMedFreq).Title(l.T("MedFrequency")).
				Value(b.num(d, wizards.FieldMedFreq)),
		}
		for i, t := range b.reminders(d) {
			fields = append(fields, huh.NewInput().Key(wizards.FieldMedTimes).
				Title(fmt.Sprintf("%s #%d", l.T("MedTimes"), i+1)).
				Value(t).Validate(clockValidator(l, "03:04 PM")))
		}
		return append(fields,
			huh.NewInput().Key(wizards.FieldMedDuration).Title(l.T("MedDuration")).
				Value(b.num(d, wizards.FieldMedDuration)),
		)
	}
	return nil
}

func patientSummary(d *form.Data, l *locale.Localizer, year int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", l.T("FullName"), d.String(wizards.FieldFullName))
	fmt.Fprintf(&sb, "%s\n", l.TData("Age", map[string]any{"Age": wizards.Age(year, d.Int(wizards.FieldYearOfBirth))}))
	fmt.Fprintf(&sb, "%s: %s\n", l.T("Gender"), d.String(wizards.FieldGender))
	if c := d.Strings(wizards.FieldHealthConditions); len(c) > 0 {
		fmt.Fprintf(&sb, "%s: %s\n", l.T("HealthConditions"), strings.Join(c, ", "))
	}
	if a := d.Strings(wizards.FieldAllergies); len(a) > 0 {
		fmt.Fprintf(&sb, "%s: %s\n", l.T("Allergies"), strings.Join(a, ", "))
	}
	fmt.Fprintf(&sb, "%s / %s: %s kg, %s cm\n", l.T("Weight"), l.T("Height"),
		d.String(wizards.FieldWeight), d.String(wizards.FieldHeight))
	fmt.Fprintf(&sb, "%s: %s - %s", l.T("WakeUpTime"), d.String(wizards.FieldWakeUpTime), d.String(wizards.FieldSleepTime))
	return sb.String()
}
