package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"poliza-service/internal/config"
	"poliza-service/internal/models"
	"poliza-service/internal/velneo"
)

// Client calls the document-intelligence endpoint that turns a scanned
// policy PDF into the structured extraction the wizard reconciles. The
// OCR/ML behind it is not this service's concern.
type Client struct {
	baseURL string
	http    *http.Client
	token   velneo.TokenSource
}

func NewClient(cfg config.AzureAPIConfig, token velneo.TokenSource) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		token:   token,
	}
}

// ProcessDocument uploads the PDF and returns the structured extraction.
func (c *Client) ProcessDocument(ctx context.Context, filename string, file []byte) (*models.ProcessResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/azuredocument/process", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build process request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	slog.Info("Processing document", "archivo", filename, "size", len(file))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", velneo.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read process response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &velneo.ServiceError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result models.ProcessResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode process response: %w", err)
	}

	slog.Info("Document processed",
		"archivo", result.Archivo,
		"completitud", result.PorcentajeCompletitud,
		"campos_extraidos", result.CamposExtraidos)

	return &result, nil
}
