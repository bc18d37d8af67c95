package wizard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinition() *Definition {
	return &Definition{
		Name: "test",
		Steps: []Step{
			{
				Name:   "account",
				Fields: []string{"email"},
				Validate: func(data Data) FieldErrors {
					errs := FieldErrors{}
					if !strings.Contains(data["email"], "@") {
						errs["email"] = "Enter a valid email address"
					}
					return errs
				},
			},
			{
				Name:   "profile",
				Fields: []string{"name"},
				Validate: func(data Data) FieldErrors {
					errs := FieldErrors{}
					if data["name"] == "" {
						errs["name"] = "Name is required"
					}
					return errs
				},
			},
			{
				Name:   "review",
				Fields: []string{"acceptTerms"},
				Validate: func(data Data) FieldErrors {
					errs := FieldErrors{}
					if data["acceptTerms"] != "true" {
						errs["acceptTerms"] = "You must accept the terms"
					}
					return errs
				},
			},
		},
	}
}

func TestSessionStartsAtStepOne(t *testing.T) {
	session := newSession("s1", testDefinition(), time.Now())
	state := session.Snapshot()

	assert.Equal(t, 1, state.Step)
	assert.Equal(t, 3, state.TotalSteps)
	assert.Empty(t, state.Data)
	assert.Empty(t, state.Errors)
	assert.False(t, state.Completed)
}

func TestNextKeepsStepOnValidationFailure(t *testing.T) {
	session := newSession("s1", testDefinition(), time.Now())
	session.SetField("email", "not-an-email")

	done, errs := session.Next()

	assert.False(t, done)
	assert.Equal(t, "Enter a valid email address", errs["email"])

	state := session.Snapshot()
	assert.Equal(t, 1, state.Step, "step must not advance while the current step has errors")
	assert.Equal(t, "Enter a valid email address", state.Errors["email"])
}

func TestSetFieldClearsOnlyThatFieldError(t *testing.T) {
	def := testDefinition()
	// Make step 1 validate two fields so one error can survive
	def.Steps[0].Fields = []string{"email", "password"}
	def.Steps[0].Validate = func(data Data) FieldErrors {
		errs := FieldErrors{}
		if !strings.Contains(data["email"], "@") {
			errs["email"] = "Enter a valid email address"
		}
		if len(data["password"]) < 8 {
			errs["password"] = "Password is too short"
		}
		return errs
	}

	session := newSession("s1", def, time.Now())
	session.Next()
	state := session.Snapshot()
	require.Len(t, state.Errors, 2)

	session.SetField("email", "still-bad")
	state = session.Snapshot()

	assert.NotContains(t, state.Errors, "email", "writing a field clears its error even when the value is invalid")
	assert.Contains(t, state.Errors, "password")
	assert.Equal(t, "still-bad", state.Data["email"])
}

func TestNextValidatesOnlyCurrentStep(t *testing.T) {
	session := newSession("s1", testDefinition(), time.Now())
	session.SetField("email", "a@b.com")
	// Step 2 and 3 fields are still empty and invalid

	done, errs := session.Next()

	assert.False(t, done)
	assert.Empty(t, errs)
	assert.Equal(t, 2, session.Snapshot().Step)
}

func TestPreviousNeverValidates(t *testing.T) {
	session := newSession("s1", testDefinition(), time.Now())
	session.SetField("email", "a@b.com")
	session.Next()
	require.Equal(t, 2, session.Snapshot().Step)

	// Step 2 is invalid (name empty); Previous must still succeed
	session.Previous()
	assert.Equal(t, 1, session.Snapshot().Step)

	// At step 1 Previous is a no-op
	session.Previous()
	assert.Equal(t, 1, session.Snapshot().Step)
}

func TestDataSurvivesBackwardNavigation(t *testing.T) {
	session := newSession("s1", testDefinition(), time.Now())
	session.SetField("email", "a@b.com")
	session.Next()
	session.SetField("name", "Sarah")

	session.Previous()
	session.Next()

	state := session.Snapshot()
	assert.Equal(t, "Sarah", state.Data["name"], "entered data is kept when walking back and forth")
}

func TestPassingFinalStepCompletesSession(t *testing.T) {
	session := newSession("s1", testDefinition(), time.Now())
	session.SetField("email", "a@b.com")
	session.Next()
	session.SetField("name", "Sarah")
	session.Next()

	done, errs := session.Next()
	assert.False(t, done)
	assert.Contains(t, errs, "acceptTerms")

	session.SetField("acceptTerms", "true")
	done, errs = session.Next()

	assert.True(t, done)
	assert.Empty(t, errs)
	assert.True(t, session.Completed())
}

func TestDataCopyIsDetached(t *testing.T) {
	session := newSession("s1", testDefinition(), time.Now())
	session.SetField("email", "a@b.com")

	data := session.DataCopy()
	data["email"] = "tampered"

	assert.Equal(t, "a@b.com", session.Snapshot().Data["email"])
}

func TestStoreCreateGetDelete(t *testing.T) {
	store := NewStore(time.Minute, zerolog.Nop())
	defer store.Close()

	session := store.Create(testDefinition())
	require.NotEmpty(t, session.ID)

	got, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	store.Delete(session.ID)
	_, err = store.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteCancelsInFlightRequest(t *testing.T) {
	store := NewStore(time.Minute, zerolog.Nop())
	defer store.Close()

	session := store.Create(testDefinition())

	ctx, cancel := context.WithCancel(context.Background())
	session.SetCancel(cancel)

	store.Delete(session.ID)

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("deleting the session did not cancel the in-flight context")
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	store := NewStore(time.Minute, zerolog.Nop())
	defer store.Close()

	session := store.Create(testDefinition())

	store.sweep(time.Now().Add(2 * time.Minute))

	_, err := store.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
