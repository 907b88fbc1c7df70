package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sessionAtStep(step WizardStep) *WizardSession {
	s := NewWizardSession("test-session")
	s.CurrentStep = step
	return s
}

func TestNewWizardSession_StartsAtClientStep(t *testing.T) {
	s := NewWizardSession("abc")

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, StepClient, s.CurrentStep)
	assert.False(t, s.Submitting)
	assert.Nil(t, s.SelectedClient)
}

// ============================================================================
// TEST SUITE 1: FORWARD TRANSITIONS
// ============================================================================

func TestAdvance_Forward(t *testing.T) {
	s := sessionAtStep(StepClient)

	assert.NoError(t, s.Advance(StepCompany))
	assert.Equal(t, StepCompany, s.CurrentStep)

	assert.NoError(t, s.Advance(StepDocument))
	assert.NoError(t, s.Advance(StepForm))
	assert.NoError(t, s.Advance(StepSuccess))
	assert.Equal(t, StepSuccess, s.CurrentStep)
}

func TestAdvance_RejectsBackwardAndSameStep(t *testing.T) {
	s := sessionAtStep(StepForm)

	err := s.Advance(StepCompany)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = s.Advance(StepForm)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.Equal(t, StepForm, s.CurrentStep)
}

func TestAdvance_RejectsUnknownStep(t *testing.T) {
	s := sessionAtStep(StepClient)

	err := s.Advance(WizardStep("limbo"))
	assert.ErrorIs(t, err, ErrInvalidStep)
}

// ============================================================================
// TEST SUITE 2: BACKWARD NAVIGATION
// ============================================================================

func TestGoBack_FromAnyStepExceptSuccess(t *testing.T) {
	s := sessionAtStep(StepForm)
	s.SelectedClient = &ClientDto{ID: 501}
	s.ScannedData = &ProcessResult{Archivo: "poliza.pdf"}
	s.FormData = &PolizaForm{NumeroPoliza: "POL-1"}

	assert.NoError(t, s.GoBack(StepClient))
	assert.Equal(t, StepClient, s.CurrentStep)

	// Entered data survives backward navigation.
	assert.NotNil(t, s.SelectedClient)
	assert.NotNil(t, s.ScannedData)
	assert.NotNil(t, s.FormData)
}

func TestGoBack_RejectsLeavingSuccess(t *testing.T) {
	s := sessionAtStep(StepSuccess)

	err := s.GoBack(StepForm)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StepSuccess, s.CurrentStep)
}

func TestGoBack_RejectsForwardAndSameStep(t *testing.T) {
	s := sessionAtStep(StepCompany)

	assert.ErrorIs(t, s.GoBack(StepDocument), ErrInvalidTransition)
	assert.ErrorIs(t, s.GoBack(StepCompany), ErrInvalidTransition)
}

func TestGoBack_RejectsUnknownStep(t *testing.T) {
	s := sessionAtStep(StepForm)

	assert.ErrorIs(t, s.GoBack(WizardStep("limbo")), ErrInvalidStep)
}

// ============================================================================
// TEST SUITE 3: RESET AND COMPLETION
// ============================================================================

func TestReset_ClearsEverything(t *testing.T) {
	s := sessionAtStep(StepForm)
	s.SelectedClient = &ClientDto{ID: 501}
	s.SelectedCompany = &CompanyDto{ID: 1}
	s.SelectedSection = &SeccionDto{ID: 4}
	s.ScannedData = &ProcessResult{Archivo: "poliza.pdf"}
	s.FormData = &PolizaForm{NumeroPoliza: "POL-1"}
	s.MasterData = &MasterData{}
	s.DocumentObject = "obj/key"
	s.Submitting = true

	s.Reset()

	assert.Equal(t, StepClient, s.CurrentStep)
	assert.Nil(t, s.SelectedClient)
	assert.Nil(t, s.SelectedCompany)
	assert.Nil(t, s.SelectedSection)
	assert.Nil(t, s.ScannedData)
	assert.Nil(t, s.FormData)
	assert.Nil(t, s.MasterData)
	assert.Empty(t, s.DocumentObject)
	assert.False(t, s.Submitting)
	assert.Equal(t, "test-session", s.ID)
}

func TestIsStepComplete(t *testing.T) {
	s := NewWizardSession("x")
	assert.False(t, s.IsStepComplete(StepClient))
	assert.False(t, s.IsStepComplete(StepCompany))

	s.SelectedClient = &ClientDto{ID: 501}
	assert.True(t, s.IsStepComplete(StepClient))

	s.SelectedCompany = &CompanyDto{ID: 1}
	assert.False(t, s.IsStepComplete(StepCompany))
	s.SelectedSection = &SeccionDto{ID: 4}
	assert.True(t, s.IsStepComplete(StepCompany))

	s.ScannedData = &ProcessResult{}
	assert.True(t, s.IsStepComplete(StepDocument))

	s.FormData = &PolizaForm{}
	assert.True(t, s.IsStepComplete(StepForm))

	assert.False(t, s.IsStepComplete(StepSuccess))
}

func TestCanSubmit(t *testing.T) {
	s := NewWizardSession("x")
	assert.False(t, s.CanSubmit())

	s.SelectedClient = &ClientDto{ID: 501}
	s.SelectedCompany = &CompanyDto{ID: 1}
	s.SelectedSection = &SeccionDto{ID: 4}
	assert.False(t, s.CanSubmit())

	s.FormData = &PolizaForm{}
	assert.True(t, s.CanSubmit())
}
