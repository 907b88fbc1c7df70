package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"poliza-service/internal/models"
)

// Collaborator slices the wizard needs. Concrete implementations live in
// internal/velneo, internal/azure, internal/repository, internal/database
// and internal/event; tests substitute fakes.

type VelneoAPI interface {
	SearchClients(ctx context.Context, filtro string) ([]models.ClientDto, error)
	GetCompanies(ctx context.Context) ([]models.CompanyDto, error)
	GetSecciones(ctx context.Context) ([]models.SeccionDto, error)
	CreatePoliza(ctx context.Context, request *models.PolizaCreateRequest) (*models.CreatePolizaResponse, error)
}

type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, filename string, file []byte) (*models.ProcessResult, error)
}

type SessionStore interface {
	Save(ctx context.Context, session *models.WizardSession) error
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Delete(ctx context.Context, sessionID string) error
}

type HistoryStore interface {
	Create(record *models.PolizaRecord) error
}

// DocumentArchive keeps a copy of every upload. Archiving is best-effort:
// a storage hiccup must not block data entry.
type DocumentArchive interface {
	StoreDocument(ctx context.Context, objectName string, data []byte) error
}

type Notifier interface {
	PublishPolizaCreada(ctx context.Context, event models.PolizaCreadaEvent) error
}

type CatalogLoader interface {
	Load(ctx context.Context) (*models.MasterData, error)
}

type PDFChecker interface {
	CheckDocument(filename string, data []byte) (int, error)
}

var ErrValidationFailed = errors.New("póliza validation failed")

// WizardService drives one user's multi-step data entry: selections,
// document processing, draft reconciliation and final submission.
type WizardService struct {
	sessions  SessionStore
	velneoAPI VelneoAPI
	processor DocumentProcessor
	catalog   CatalogLoader
	pdf       PDFChecker
	archive   DocumentArchive
	history   HistoryStore
	notifier  Notifier
}

func NewWizardService(
	sessions SessionStore,
	velneoAPI VelneoAPI,
	processor DocumentProcessor,
	catalog CatalogLoader,
	pdf PDFChecker,
	archive DocumentArchive,
	history HistoryStore,
	notifier Notifier,
) *WizardService {
	return &WizardService{
		sessions:  sessions,
		velneoAPI: velneoAPI,
		processor: processor,
		catalog:   catalog,
		pdf:       pdf,
		archive:   archive,
		history:   history,
		notifier:  notifier,
	}
}

// StartSession opens a fresh wizard session at the client step.
func (s *WizardService) StartSession(ctx context.Context) (*models.WizardSession, error) {
	session := models.NewWizardSession(uuid.NewString())
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	slog.Info("Started wizard session", "session_id", session.ID)
	return session, nil
}

func (s *WizardService) GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.sessions.Get(ctx, sessionID)
}

// ResetSession wipes everything the user entered and returns to the client
// step. The session id survives.
func (s *WizardService) ResetSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Reset()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	slog.Info("Reset wizard session", "session_id", sessionID)
	return session, nil
}

// GoBack navigates to an earlier step without clearing anything.
func (s *WizardService) GoBack(ctx context.Context, sessionID string, to models.WizardStep) (*models.WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.GoBack(to); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SearchClients proxies the client lookup for the first step.
func (s *WizardService) SearchClients(ctx context.Context, filtro string) ([]models.ClientDto, error) {
	return s.velneoAPI.SearchClients(ctx, filtro)
}

func (s *WizardService) ListCompanies(ctx context.Context) ([]models.CompanyDto, error) {
	return s.velneoAPI.GetCompanies(ctx)
}

func (s *WizardService) ListSecciones(ctx context.Context) ([]models.SeccionDto, error) {
	return s.velneoAPI.GetSecciones(ctx)
}

// SelectClient confirms the client choice and advances to the company step.
func (s *WizardService) SelectClient(ctx context.Context, sessionID string, client models.ClientDto) (*models.WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.SelectedClient = &client
	if session.CurrentStep == models.StepClient {
		if err := session.Advance(models.StepCompany); err != nil {
			return nil, err
		}
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	slog.Info("Client selected", "session_id", sessionID, "cliente_id", client.ID)
	return session, nil
}

// SelectCompany confirms compañía and sección together and advances to the
// document step.
func (s *WizardService) SelectCompany(ctx context.Context, sessionID string, company models.CompanyDto, section models.SeccionDto) (*models.WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedClient == nil {
		return nil, models.ErrSelectionIncomplete
	}
	session.SelectedCompany = &company
	session.SelectedSection = &section
	if session.CurrentStep == models.StepCompany {
		if err := session.Advance(models.StepDocument); err != nil {
			return nil, err
		}
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	slog.Info("Company and section selected",
		"session_id", sessionID, "compania_id", company.ID, "seccion_id", section.ID)
	return session, nil
}

// LoadMasters fetches the maestro snapshot and pins it to the session.
func (s *WizardService) LoadMasters(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	masters, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load maestros: %w", err)
	}
	session.MasterData = masters
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ProcessDocument runs the PDF pre-check, archives the upload, calls the
// extraction collaborator and reconciles a fresh draft. Replacing the
// document always drops the previous draft: its auto-mapped fields would be
// stale.
func (s *WizardService) ProcessDocument(ctx context.Context, sessionID, filename string, file []byte) (*models.WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasSelections() {
		return nil, models.ErrSelectionIncomplete
	}

	if _, err := s.pdf.CheckDocument(filename, file); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%s/%s-%s", sessionID, time.Now().Format("20060102T150405"), filename)
	if s.archive != nil {
		if err := s.archive.StoreDocument(ctx, objectName, file); err != nil {
			slog.Warn("Failed to archive upload, continuing", "session_id", sessionID, "error", err)
			objectName = ""
		}
	} else {
		objectName = ""
	}

	result, err := s.processor.ProcessDocument(ctx, filename, file)
	if err != nil {
		// The session keeps every confirmed selection; the user re-uploads.
		return nil, err
	}

	session.ScannedData = result
	session.DocumentObject = objectName
	session.FormData = nil

	if session.MasterData == nil {
		masters, err := s.catalog.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load maestros: %w", err)
		}
		session.MasterData = masters
	}

	session.FormData = Reconcile(result, s.selections(session), session.MasterData, nil)

	if session.CurrentStep == models.StepDocument {
		if err := session.Advance(models.StepForm); err != nil {
			return nil, err
		}
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	slog.Info("Document processed for session",
		"session_id", sessionID,
		"archivo", result.Archivo,
		"completitud", result.PorcentajeCompletitud)
	return session, nil
}

// UpdateForm replaces the draft with the user's edits. Fields are user-owned
// from here on.
func (s *WizardService) UpdateForm(ctx context.Context, sessionID string, form models.PolizaForm) (*models.WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ScannedData == nil {
		return nil, models.ErrSelectionIncomplete
	}
	session.FormData = &form
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit builds the creation request from the draft, validates it and pushes
// it to Velneo. Validation violations block the submission; collaborator
// failures leave every confirmed step intact for a user-initiated retry.
func (s *WizardService) Submit(ctx context.Context, sessionID string) (*models.CreatePolizaResponse, models.ValidationResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, models.ValidationResult{}, err
	}
	if !session.CanSubmit() {
		return nil, models.ValidationResult{}, models.ErrSelectionIncomplete
	}
	if session.Submitting {
		return nil, models.ValidationResult{}, models.ErrSubmissionInFlight
	}

	request := BuildCreateRequest(session.FormData, s.selections(session))

	validation := ValidateCreateRequest(request)
	if !validation.Valid {
		slog.Info("Submission blocked by validation",
			"session_id", sessionID, "violations", len(validation.Errors))
		return nil, validation, ErrValidationFailed
	}

	session.Submitting = true
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, validation, err
	}

	response, err := s.velneoAPI.CreatePoliza(ctx, request)
	if err != nil {
		session.Submitting = false
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			slog.Error("Failed to clear in-flight flag", "session_id", sessionID, "error", saveErr)
		}
		return nil, validation, err
	}

	s.recordHistory(session, request, response)
	s.notifyCreated(ctx, session, request)

	session.Submitting = false
	if session.CurrentStep != models.StepSuccess {
		if err := session.Advance(models.StepSuccess); err != nil {
			slog.Error("Failed to advance to success", "session_id", sessionID, "error", err)
		}
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		slog.Error("Failed to persist session after submit", "session_id", sessionID, "error", err)
	}

	slog.Info("Póliza created", "session_id", sessionID, "conpol", request.Conpol)
	return response, validation, nil
}

func (s *WizardService) selections(session *models.WizardSession) Selections {
	return Selections{
		Client:  session.SelectedClient,
		Company: session.SelectedCompany,
		Section: session.SelectedSection,
	}
}

func (s *WizardService) recordHistory(session *models.WizardSession, request *models.PolizaCreateRequest, response *models.CreatePolizaResponse) {
	if s.history == nil {
		return
	}
	archivo := ""
	if session.ScannedData != nil {
		archivo = session.ScannedData.Archivo
	}
	// Velneo may normalize the number it stored; prefer its answer.
	numero := request.Conpol
	if response != nil && response.NumeroPoliza != "" {
		numero = response.NumeroPoliza
	}
	record := &models.PolizaRecord{
		ID:             uuid.New(),
		NumeroPoliza:   numero,
		ClienteID:      request.Clinro,
		ClienteNombre:  request.Clinom,
		CompaniaID:     request.Comcod,
		CompaniaNombre: companyName(session),
		SeccionID:      request.Seccod,
		Estado:         "creada",
		MontoTotal:     request.Contot,
		Archivo:        archivo,
		ProcesadoConIA: request.ProcesadoConIA,
	}
	if err := s.history.Create(record); err != nil {
		// History is local bookkeeping; Velneo already accepted the póliza.
		slog.Warn("Failed to record póliza history", "conpol", request.Conpol, "error", err)
	}
}

func (s *WizardService) notifyCreated(ctx context.Context, session *models.WizardSession, request *models.PolizaCreateRequest) {
	if s.notifier == nil {
		return
	}
	event := models.PolizaCreadaEvent{
		SessionID:      session.ID,
		NumeroPoliza:   request.Conpol,
		ClienteID:      request.Clinro,
		ClienteNombre:  request.Clinom,
		CompaniaID:     request.Comcod,
		MontoTotal:     request.Contot,
		ProcesadoConIA: request.ProcesadoConIA,
		CreatedAt:      time.Now(),
	}
	if err := s.notifier.PublishPolizaCreada(ctx, event); err != nil {
		slog.Warn("Failed to publish póliza-created event", "conpol", request.Conpol, "error", err)
	}
}

func companyName(session *models.WizardSession) string {
	if session.SelectedCompany != nil {
		return session.SelectedCompany.Comnom
	}
	return ""
}
