package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mrsinham/medintel/internal/config"
	"github.com/mrsinham/medintel/internal/dashboard"
	"github.com/mrsinham/medintel/internal/flow"
	"github.com/mrsinham/medintel/internal/nav"
	"github.com/mrsinham/medintel/internal/task"
	"github.com/mrsinham/medintel/internal/wizards"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }

func instant(string, string) task.Func { return task.Delay(0) }

func newRuntime(t *testing.T, work WorkFunc) *Runtime {
	t.Helper()
	if work == nil {
		work = instant
	}
	rt, err := New(context.Background(), Options{Now: fixedNow, Work: work})
	require.NoError(t, err)
	t.Cleanup(rt.Close)
	return rt
}

func next(t *testing.T, rt *Runtime) flow.Outcome {
	t.Helper()
	out, err := rt.Next()
	require.NoError(t, err)
	return out
}

func finishCarousel(t *testing.T, rt *Runtime) {
	t.Helper()
	require.Equal(t, nav.Welcome, rt.Screen())
	for rt.Screen() == nav.Welcome {
		next(t, rt)
	}
}

func signIn(t *testing.T, rt *Runtime) {
	t.Helper()
	require.Equal(t, nav.SignIn, rt.Screen())
	d := rt.Wizard().Data()
	d.Set(wizards.FieldEmail, "lan@example.com")
	d.Set(wizards.FieldPassword, "secret")
	assert.Equal(t, flow.OutcomeSubmitRequired, next(t, rt))
	assert.Equal(t, flow.RequestPending, rt.Wizard().Request())
	assert.Equal(t, flow.OutcomeCompleted, rt.RunJobs())
}

func onboardPatient(t *testing.T, rt *Runtime, name string) {
	t.Helper()
	require.Equal(t, nav.PatientOnboarding, rt.Screen())
	d := rt.Wizard().Data()
	d.Set(wizards.FieldFullName, name)
	d.Set(wizards.FieldGender, "female")
	d.Set(wizards.FieldWeight, "55")
	d.Set(wizards.FieldHeight, "160")
	d.Set(wizards.FieldAgreeToTerms, true)
	for i := 0; i < 4; i++ {
		assert.Equal(t, flow.OutcomeAdvanced, next(t, rt))
	}
	assert.Equal(t, flow.OutcomeSubmitRequired, next(t, rt))
	rt.RunJobs()
}

func TestRuntime_PatientJourney(t *testing.T) {
	rt := newRuntime(t, nil)

	finishCarousel(t, rt)
	signIn(t, rt)
	require.Equal(t, nav.RoleSelection, rt.Screen())
	assert.Nil(t, rt.Wizard())

	require.NoError(t, rt.SelectRole(nav.RolePatient))
	onboardPatient(t, rt, "  Mai  ")

	assert.Equal(t, nav.Dashboard, rt.Screen())
	assert.Equal(t, nav.RolePatient, rt.Role())
	assert.Equal(t, "Mai", rt.UserName())
	require.NotNil(t, rt.Board())
	assert.Equal(t, "Mai", rt.Board().UserName)
	assert.NoError(t, rt.Err())
}

func TestRuntime_DefaultUserNameFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultUserName = "Hoa"
	rt, err := New(context.Background(), Options{Config: cfg, Now: fixedNow, Work: instant})
	require.NoError(t, err)
	defer rt.Close()

	require.NoError(t, rt.Router().CompleteOnboarding(nav.Profile{Role: nav.RolePatient}))
	assert.Equal(t, nav.Dashboard, rt.Screen())
	assert.Equal(t, "Hoa", rt.UserName())
	assert.Equal(t, "Hoa", rt.Board().UserName)
}

func TestRuntime_PatientDefaultsFollowClock(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("patient-onboarding"))
	assert.Equal(t, 1996, rt.Wizard().Data().Int(wizards.FieldYearOfBirth))
	assert.Equal(t, flow.OutcomeRefused, next(t, rt))
}

func TestRuntime_CaregiverJourney(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("role-selection"))
	require.NoError(t, rt.SelectRole(nav.RoleCaregiver))
	require.Equal(t, nav.CaregiverOnboarding, rt.Screen())

	d := rt.Wizard().Data()
	d.Set(wizards.FieldCaregiverName, "Minh")
	d.Set(wizards.FieldCaregiverEmail, "minh@example.com")
	d.Set(wizards.FieldRelationship, "Son")
	assert.Equal(t, flow.OutcomeAdvanced, next(t, rt))
	assert.Equal(t, flow.OutcomeRefused, next(t, rt))
	d.Set(wizards.FieldPatientName, "Bà Lan")
	d.Set(wizards.FieldPatientGender, "female")
	assert.Equal(t, 1961, d.Int(wizards.FieldPatientYearOfBirth))
	assert.Equal(t, flow.OutcomeAdvanced, next(t, rt))
	assert.Equal(t, flow.OutcomeSubmitRequired, next(t, rt))
	rt.RunJobs()

	assert.Equal(t, nav.Dashboard, rt.Screen())
	assert.Equal(t, nav.RoleCaregiver, rt.Role())
	assert.Equal(t, "Minh", rt.UserName())
	assert.Equal(t, "Bà Lan", rt.Router().PatientName())
}

func TestRuntime_BackChain(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("prescription-flow"))

	want := []nav.Screen{nav.Dashboard, nav.RoleSelection, nav.SignIn, nav.Welcome, nav.Welcome}
	for _, s := range want {
		_, err := rt.Back()
		require.NoError(t, err)
		assert.Equal(t, s, rt.Screen())
	}
}

func TestRuntime_RemountRestartsWizard(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("patient-onboarding"))
	rt.Wizard().Data().Set(wizards.FieldFullName, "Mai")
	rt.Wizard().Data().Set(wizards.FieldGender, "female")
	require.Equal(t, flow.OutcomeAdvanced, next(t, rt))
	first := rt.MountID()

	_, err := rt.Back()
	require.NoError(t, err)
	_, err = rt.Back()
	require.NoError(t, err)
	require.Equal(t, nav.RoleSelection, rt.Screen())
	require.NoError(t, rt.SelectRole(nav.RolePatient))

	assert.NotEqual(t, first, rt.MountID())
	assert.Equal(t, 0, rt.Wizard().Index())
	assert.Equal(t, "", rt.Wizard().Data().String(wizards.FieldFullName))
}

func TestRuntime_LateResultAfterScreenChangeIsDropped(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("sign-in"))
	rt.Wizard().Data().Set(wizards.FieldEmail, "a@b.c")
	rt.Wizard().Data().Set(wizards.FieldPassword, "pw")
	require.Equal(t, flow.OutcomeSubmitRequired, next(t, rt))

	jobs := rt.TakeJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "sign-in", jobs[0].Wizard())

	require.NoError(t, rt.OpenSignUp())
	require.Equal(t, nav.SignUp, rt.Screen())

	err := jobs[0].Run()
	assert.ErrorIs(t, err, task.ErrClosed)
	assert.Equal(t, flow.OutcomeDisposed, rt.Finish(jobs[0], nil))
	assert.Equal(t, nav.SignUp, rt.Screen())
}

func TestRuntime_SubmitFailureThenRetry(t *testing.T) {
	boom := errors.New("server unavailable")
	work := task.FailFirst(1, 0, boom)
	rt := newRuntime(t, func(string, string) task.Func { return work })

	require.NoError(t, rt.Navigate("sign-in"))
	rt.Wizard().Data().Set(wizards.FieldEmail, "a@b.c")
	rt.Wizard().Data().Set(wizards.FieldPassword, "pw")

	require.Equal(t, flow.OutcomeSubmitRequired, next(t, rt))
	assert.Equal(t, flow.OutcomeFailed, rt.RunJobs())
	assert.Equal(t, nav.SignIn, rt.Screen())
	assert.Equal(t, flow.RequestFailed, rt.Wizard().Request())
	assert.ErrorIs(t, rt.Wizard().Err(), boom)

	require.NoError(t, rt.Submit())
	assert.Equal(t, flow.OutcomeCompleted, rt.RunJobs())
	assert.Equal(t, nav.RoleSelection, rt.Screen())
}

func TestRuntime_BusyWhilePending(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("sign-in"))
	rt.Wizard().Data().Set(wizards.FieldEmail, "a@b.c")
	rt.Wizard().Data().Set(wizards.FieldPassword, "pw")
	require.Equal(t, flow.OutcomeSubmitRequired, next(t, rt))

	assert.Equal(t, flow.OutcomeBusy, next(t, rt))
	out, err := rt.Back()
	require.NoError(t, err)
	assert.Equal(t, flow.OutcomeBusy, out)
	assert.ErrorIs(t, rt.Submit(), flow.ErrInFlight)
}

func TestRuntime_SignUpCancelReturnsToSignIn(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("sign-in"))
	require.NoError(t, rt.OpenSignUp())

	out, err := rt.Back()
	require.NoError(t, err)
	assert.Equal(t, flow.OutcomeCancelled, out)
	assert.Equal(t, nav.SignIn, rt.Screen())
}

func TestRuntime_SignUpVerifiesCode(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("sign-up"))
	d := rt.Wizard().Data()
	d.Set(wizards.FieldPassword, "pw")
	d.Set(wizards.FieldConfirmPassword, "other")
	assert.Equal(t, flow.OutcomeRefused, next(t, rt))

	d.Set(wizards.FieldConfirmPassword, "pw")
	require.Equal(t, flow.OutcomeSubmitRequired, next(t, rt))
	assert.Equal(t, flow.OutcomeAdvanced, rt.RunJobs())

	d = rt.Wizard().Data()
	d.Set(wizards.FieldOTP, "12345")
	assert.Equal(t, flow.OutcomeRefused, next(t, rt))
	d.Set(wizards.FieldOTP, "123456")
	require.Equal(t, flow.OutcomeSubmitRequired, next(t, rt))
	assert.Equal(t, flow.OutcomeCompleted, rt.RunJobs())
	assert.Equal(t, nav.RoleSelection, rt.Screen())
}

func TestRuntime_PrescriptionFlow(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("dashboard"))
	require.NoError(t, rt.AddPrescription())

	assert.Equal(t, flow.OutcomeAdvanced, next(t, rt))
	w := rt.Wizard()
	assert.Equal(t, string(wizards.PrescriptionProcessing), w.StepName())
	assert.Equal(t, flow.RequestPending, w.Request())

	assert.Equal(t, flow.OutcomeAdvanced, rt.RunJobs())
	assert.Equal(t, string(wizards.PrescriptionAnalysis), w.StepName())

	for _, step := range []wizards.PrescriptionStep{wizards.PrescriptionSafety, wizards.PrescriptionTimeline, wizards.PrescriptionSuccess} {
		assert.Equal(t, flow.OutcomeAdvanced, next(t, rt))
		assert.Equal(t, string(step), w.StepName())
	}
	assert.Equal(t, flow.OutcomeCompleted, next(t, rt))
	assert.Equal(t, nav.Dashboard, rt.Screen())
}

func TestRuntime_SkipProcessing(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("prescription-flow"))
	next(t, rt)

	assert.Equal(t, flow.OutcomeAdvanced, rt.Skip())
	assert.Equal(t, string(wizards.PrescriptionAnalysis), rt.Wizard().StepName())
	assert.Empty(t, rt.TakeJobs())
	assert.Equal(t, flow.OutcomeInert, rt.Skip())
}

func TestRuntime_SkipAfterJobTaken(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("prescription-flow"))
	next(t, rt)

	jobs := rt.TakeJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, flow.OutcomeAdvanced, rt.Skip())

	require.NoError(t, jobs[0].Run())
	assert.Equal(t, flow.OutcomeInert, rt.Finish(jobs[0], nil))
	assert.Equal(t, string(wizards.PrescriptionAnalysis), rt.Wizard().StepName())
}

func TestRuntime_PrescriptionBackFromSuccessLeaves(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("prescription-flow"))
	next(t, rt)
	rt.RunJobs()
	for rt.Wizard().StepName() != string(wizards.PrescriptionSuccess) {
		next(t, rt)
	}

	out, err := rt.Back()
	require.NoError(t, err)
	assert.Equal(t, flow.OutcomeCancelled, out)
	assert.Equal(t, nav.Dashboard, rt.Screen())
}

func TestRuntime_ManualEntry(t *testing.T) {
	rt := newRuntime(t, nil)
	require.NoError(t, rt.Navigate("prescription-flow"))
	require.NoError(t, rt.OpenManualEntry())
	require.True(t, rt.ManualEntryOpen())
	assert.Equal(t, "manual-entry", rt.Wizard().Name())

	assert.Equal(t, flow.OutcomeRefused, next(t, rt))

	out, err := rt.Back()
	require.NoError(t, err)
	assert.Equal(t, flow.OutcomeCancelled, out)
	assert.False(t, rt.ManualEntryOpen())
	assert.Equal(t, "prescription", rt.Wizard().Name())

	require.NoError(t, rt.OpenManualEntry())
	rt.Wizard().Data().Set(wizards.FieldMedName, "Vitamin D")
	rt.Wizard().Data().Set(wizards.FieldMedDosage, "1000IU")
	assert.Equal(t, flow.OutcomeCompleted, next(t, rt))

	assert.Equal(t, nav.Dashboard, rt.Screen())
	added := rt.Added()
	require.Len(t, added, 1)
	assert.Equal(t, "Vitamin D", added[0].Name)
	assert.Equal(t, []string{"07:00 AM", "07:00 PM"}, added[0].Times)
}

func TestRuntime_ManualEntryOnlyFromUpload(t *testing.T) {
	rt := newRuntime(t, nil)
	assert.ErrorIs(t, rt.OpenManualEntry(), ErrWrongScreen)

	require.NoError(t, rt.Navigate("prescription-flow"))
	next(t, rt)
	assert.ErrorIs(t, rt.OpenManualEntry(), ErrWrongScreen)
}

func TestRuntime_DashboardActions(t *testing.T) {
	rt := newRuntime(t, nil)
	assert.ErrorIs(t, rt.MarkTaken("2"), ErrWrongScreen)
	assert.ErrorIs(t, rt.Logout(), ErrWrongScreen)

	require.NoError(t, rt.Navigate("dashboard"))
	require.NoError(t, rt.MarkTaken("2"))
	assert.Equal(t, 2, rt.Board().Taken())
	assert.ErrorIs(t, rt.MarkTaken("99"), dashboard.ErrUnknownMedication)

	// A fresh mount reseeds the list.
	require.NoError(t, rt.AddPrescription())
	_, err := rt.Back()
	require.NoError(t, err)
	assert.Equal(t, 1, rt.Board().Taken())

	require.NoError(t, rt.Logout())
	assert.Equal(t, nav.Welcome, rt.Screen())
	assert.Equal(t, "", rt.UserName())
}

func TestRuntime_CarouselBackIsFixedPoint(t *testing.T) {
	rt := newRuntime(t, nil)
	first := rt.MountID()

	out, err := rt.Back()
	require.NoError(t, err)
	assert.Equal(t, flow.OutcomeCancelled, out)
	assert.Equal(t, nav.Welcome, rt.Screen())
	assert.NotEqual(t, first, rt.MountID())
	assert.Equal(t, 0, rt.Wizard().Index())
}

func TestRuntime_ActionsOnWrongScreen(t *testing.T) {
	rt := newRuntime(t, nil)
	assert.ErrorIs(t, rt.SelectRole(nav.RolePatient), ErrWrongScreen)
	assert.ErrorIs(t, rt.OpenSignUp(), ErrWrongScreen)
	assert.ErrorIs(t, rt.AddPrescription(), ErrWrongScreen)

	require.NoError(t, rt.Navigate("role-selection"))
	_, err := rt.Next()
	assert.ErrorIs(t, err, ErrNoWizard)
	assert.Error(t, rt.Navigate("settings"))
}

func TestRuntime_CloseCancelsRunningWork(t *testing.T) {
	rt, err := New(context.Background(), Options{
		Now:  fixedNow,
		Work: func(string, string) task.Func { return task.Delay(time.Hour) },
	})
	require.NoError(t, err)
	require.NoError(t, rt.Navigate("prescription-flow"))
	next(t, rt)
	jobs := rt.TakeJobs()
	require.Len(t, jobs, 1)

	done := make(chan error, 1)
	go func() { done <- jobs[0].Run() }()
	// Run may not have registered yet; either way it must end promptly.
	time.Sleep(10 * time.Millisecond)
	rt.Close()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("work did not stop after Close")
	}
}
