package help

// HelpText holds the message ids of the help shown for a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help for the form fields, keyed like the form data
var Texts = map[string]HelpText{
	"email":            {"HelpEmailTitle", "HelpEmailDescription", "HelpEmailDetails"},
	"password":         {"HelpPasswordTitle", "HelpPasswordDescription", "HelpPasswordDetails"},
	"confirmPassword":  {"HelpConfirmPasswordTitle", "HelpConfirmPasswordDescription", "HelpConfirmPasswordDetails"},
	"otp":              {"HelpOTPTitle", "HelpOTPDescription", "HelpOTPDetails"},
	"fullName":         {"HelpFullNameTitle", "HelpFullNameDescription", ""},
	"yearOfBirth":      {"HelpYearOfBirthTitle", "HelpYearOfBirthDescription", "HelpYearOfBirthDetails"},
	"gender":           {"HelpGenderTitle", "HelpGenderDescription", ""},
	"healthConditions": {"HelpHealthConditionsTitle", "HelpHealthConditionsDescription", "HelpHealthConditionsDetails"},
	"otherCondition":   {"HelpOtherConditionTitle", "HelpOtherConditionDescription", ""},
	"allergies":        {"HelpAllergiesTitle", "HelpAllergiesDescription", "HelpAllergiesDetails"},
	"weight":           {"HelpWeightTitle", "HelpWeightDescription", ""},
	"height":           {"HelpHeightTitle", "HelpHeightDescription", ""},
	"wakeUpTime":       {"HelpWakeUpTimeTitle", "HelpWakeUpTimeDescription", "HelpClock24Details"},
	"sleepTime":        {"HelpSleepTimeTitle", "HelpSleepTimeDescription", "HelpClock24Details"},
	"agreeToTerms":     {"HelpAgreeToTermsTitle", "HelpAgreeToTermsDescription", "HelpAgreeToTermsDetails"},
	"relationship":     {"HelpRelationshipTitle", "HelpRelationshipDescription", ""},
	"patientName":      {"HelpPatientNameTitle", "HelpPatientNameDescription", ""},
	"contactMethod":    {"HelpContactMethodTitle", "HelpContactMethodDescription", "HelpContactMethodDetails"},
	"name":             {"HelpMedNameTitle", "HelpMedNameDescription", ""},
	"times":            {"HelpTimesTitle", "HelpTimesDescription", "HelpTimesDetails"},
	"duration":         {"HelpDurationTitle", "HelpDurationDescription", ""},
}

// IDs returns every message id used by the help texts.
func IDs() []string {
	var ids []string
	for _, t := range Texts {
		ids = append(ids, t.Title, t.Description)
		if t.Details != "" {
			ids = append(ids, t.Details)
		}
	}
	return ids
}
