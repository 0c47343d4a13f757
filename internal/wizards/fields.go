// Package wizards declares every multi-step flow of the application: its
// steps, its default field values and the validator gating each step.
package wizards

// Field keys shared by the wizard definitions and the screens rendering them.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldOTP             = "otp"

	FieldFullName             = "fullName"
	FieldYearOfBirth          = "yearOfBirth"
	FieldGender               = "gender"
	FieldHealthConditions     = "healthConditions"
	FieldOtherCondition       = "otherCondition"
	FieldAllergies            = "allergies"
	FieldWeight               = "weight"
	FieldHeight               = "height"
	FieldWakeUpTime           = "wakeUpTime"
	FieldSleepTime            = "sleepTime"
	FieldNotificationsEnabled = "notificationsEnabled"
	FieldAgreeToTerms         = "agreeToTerms"

	FieldCaregiverName          = "caregiverName"
	FieldCaregiverEmail         = "caregiverEmail"
	FieldCaregiverPhone         = "caregiverPhone"
	FieldRelationship           = "relationship"
	FieldPatientName            = "patientName"
	FieldPatientYearOfBirth     = "patientYearOfBirth"
	FieldPatientGender          = "patientGender"
	FieldNotifyMissedMedication = "notifyMissedMedication"
	FieldNotifyLowReminders     = "notifyLowReminders"
	FieldNotifyAbnormalMetrics  = "notifyAbnormalMetrics"
	FieldContactMethod          = "contactMethod"

	FieldMedName     = "name"
	FieldMedDosage   = "dosage"
	FieldMedFreq     = "frequency"
	FieldMedTimes    = "times"
	FieldMedDuration = "duration"
)

// Genders offered by both onboarding wizards.
var Genders = []string{"Male", "Female", "Other"}

// HealthConditions offered on patient step 2.
var HealthConditions = []string{
	"Hypertension",
	"Diabetes",
	"Heart disease",
	"Asthma",
	"Arthritis",
	"Thyroid disorder",
	"Kidney disease",
}

// Allergies offered on patient step 2.
var Allergies = []string{
	"Penicillin",
	"Aspirin",
	"Ibuprofen",
	"Acetaminophen",
	"Sulfonamides",
	"Cephalosporins",
	"Fluoroquinolones",
	"Macrolides",
}

// Relationships a caregiver can have with the patient.
var Relationships = []string{
	"Spouse",
	"Child",
	"Parent",
	"Sibling",
	"Friend",
	"Healthcare Professional",
	"Other",
}

// ContactMethods a caregiver can be reached by.
var ContactMethods = []string{"sms", "email", "call"}

// MinYearOfBirth is the earliest selectable birth year.
const MinYearOfBirth = 1924

// Age derives an age from a birth year. A zero year yields 0.
func Age(currentYear, yearOfBirth int) int {
	if yearOfBirth <= 0 || yearOfBirth > currentYear {
		return 0
	}
	return currentYear - yearOfBirth
}
