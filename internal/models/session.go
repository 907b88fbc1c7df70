package models

import (
	"errors"
	"fmt"
	"time"
)

// WizardStep is one stage of the data-entry wizard.
type WizardStep string

const (
	StepClient   WizardStep = "client"
	StepCompany  WizardStep = "company"
	StepDocument WizardStep = "document"
	StepForm     WizardStep = "form"
	StepSuccess  WizardStep = "success"
)

var stepOrder = map[WizardStep]int{
	StepClient:   0,
	StepCompany:  1,
	StepDocument: 2,
	StepForm:     3,
	StepSuccess:  4,
}

var (
	ErrInvalidStep         = errors.New("unknown wizard step")
	ErrInvalidTransition   = errors.New("invalid wizard transition")
	ErrSubmissionInFlight  = errors.New("a submission is already in flight for this session")
	ErrSelectionIncomplete = errors.New("wizard selections are incomplete")
)

// WizardSession holds everything one user has entered so far. It advances
// strictly forward on explicit confirmations; going back never clears data
// already entered, only a full Reset does.
type WizardSession struct {
	ID string `json:"id"`

	SelectedClient  *ClientDto  `json:"selectedClient,omitempty"`
	SelectedCompany *CompanyDto `json:"selectedCompany,omitempty"`
	SelectedSection *SeccionDto `json:"selectedSection,omitempty"`

	ScannedData *ProcessResult `json:"scannedData,omitempty"`
	FormData    *PolizaForm    `json:"formData,omitempty"`
	MasterData  *MasterData    `json:"masterData,omitempty"`

	// Object key of the archived upload, when the archive succeeded.
	DocumentObject string `json:"documentObject,omitempty"`

	CurrentStep WizardStep `json:"currentStep"`
	Submitting  bool       `json:"submitting"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewWizardSession(id string) *WizardSession {
	now := time.Now()
	return &WizardSession{
		ID:          id,
		CurrentStep: StepClient,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Advance moves the session forward to the given step. Forward moves happen
// only through the confirmation operations on WizardService, which call this
// after the step's data is in place.
func (s *WizardSession) Advance(to WizardStep) error {
	toIdx, ok := stepOrder[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStep, to)
	}
	if toIdx <= stepOrder[s.CurrentStep] {
		return fmt.Errorf("%w: %s -> %s is not forward", ErrInvalidTransition, s.CurrentStep, to)
	}
	s.CurrentStep = to
	s.UpdatedAt = time.Now()
	return nil
}

// GoBack navigates to an earlier step. Always permitted except from the
// success step, and never clears entered data.
func (s *WizardSession) GoBack(to WizardStep) error {
	toIdx, ok := stepOrder[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStep, to)
	}
	if s.CurrentStep == StepSuccess {
		return fmt.Errorf("%w: cannot leave %s backwards", ErrInvalidTransition, StepSuccess)
	}
	if toIdx >= stepOrder[s.CurrentStep] {
		return fmt.Errorf("%w: %s -> %s is not backward", ErrInvalidTransition, s.CurrentStep, to)
	}
	s.CurrentStep = to
	s.UpdatedAt = time.Now()
	return nil
}

// Reset clears all selections, the extraction, the draft and the pinned
// masters, returning to the client step.
func (s *WizardSession) Reset() {
	s.SelectedClient = nil
	s.SelectedCompany = nil
	s.SelectedSection = nil
	s.ScannedData = nil
	s.FormData = nil
	s.MasterData = nil
	s.DocumentObject = ""
	s.Submitting = false
	s.CurrentStep = StepClient
	s.UpdatedAt = time.Now()
}

func (s *WizardSession) HasSelections() bool {
	return s.SelectedClient != nil && s.SelectedCompany != nil && s.SelectedSection != nil
}

func (s *WizardSession) IsStepComplete(step WizardStep) bool {
	switch step {
	case StepClient:
		return s.SelectedClient != nil
	case StepCompany:
		return s.SelectedCompany != nil && s.SelectedSection != nil
	case StepDocument:
		return s.ScannedData != nil
	case StepForm:
		return s.FormData != nil
	default:
		return false
	}
}

func (s *WizardSession) CanSubmit() bool {
	return s.HasSelections() && s.FormData != nil
}
