package velneo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"poliza-service/internal/config"
	"poliza-service/internal/models"
)

// TokenSource yields the current bearer token for outgoing calls. Token
// lifecycle lives in the auth layer; this client only attaches it.
type TokenSource func() string

// Client talks to the middleware fronting the Velneo backend. Every list
// endpoint is unwrapped from whatever envelope the backend uses ({data},
// {items} or a bare array) before it reaches the typed models.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

func NewClient(cfg config.VelneoAPIConfig, token TokenSource) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		token:   token,
	}
}

// listEnvelope tolerates the middleware's inconsistent list shapes.
type listEnvelope struct {
	Items json.RawMessage `json:"items"`
	Data  json.RawMessage `json:"data"`
}

// unwrapList picks the list payload out of an envelope, or returns the body
// untouched when it already is a bare array.
func unwrapList(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed
	}
	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err == nil {
		if len(env.Items) > 0 {
			return env.Items
		}
		if len(env.Data) > 0 {
			return env.Data
		}
	}
	return trimmed
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func getList[T any](c *Client, ctx context.Context, path string, query url.Values) ([]T, error) {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(unwrapList(body), &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return out, nil
}

// SearchClients looks clients up by free-text filter.
func (c *Client) SearchClients(ctx context.Context, filtro string) ([]models.ClientDto, error) {
	q := url.Values{"filtro": {filtro}}
	return getList[models.ClientDto](c, ctx, "/clientes/direct", q)
}

func (c *Client) GetCompanies(ctx context.Context) ([]models.CompanyDto, error) {
	return getList[models.CompanyDto](c, ctx, "/companies", nil)
}

func (c *Client) GetSecciones(ctx context.Context) ([]models.SeccionDto, error) {
	return getList[models.SeccionDto](c, ctx, "/secciones", nil)
}

// GetMappingOptions calls the combined maestros endpoint. The payload may
// omit tables; callers backfill those individually.
func (c *Client) GetMappingOptions(ctx context.Context) (*models.MasterData, error) {
	body, err := c.get(ctx, "/velneo/mapping-options", nil)
	if err != nil {
		return nil, err
	}
	// The combined endpoint wraps its object in {data: {...}} on some
	// deployments and serves it bare on others.
	var env struct {
		Data *models.MasterData `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		return env.Data, nil
	}
	var md models.MasterData
	if err := json.Unmarshal(body, &md); err != nil {
		return nil, fmt.Errorf("failed to decode mapping options: %w", err)
	}
	return &md, nil
}

func (c *Client) GetCategorias(ctx context.Context) ([]models.CategoriaDto, error) {
	return getList[models.CategoriaDto](c, ctx, "/categoria", nil)
}

func (c *Client) GetDestinos(ctx context.Context) ([]models.DestinoDto, error) {
	return getList[models.DestinoDto](c, ctx, "/destino", nil)
}

func (c *Client) GetCalidades(ctx context.Context) ([]models.CalidadDto, error) {
	return getList[models.CalidadDto](c, ctx, "/calidad", nil)
}

func (c *Client) GetCombustibles(ctx context.Context) ([]models.CombustibleDto, error) {
	return getList[models.CombustibleDto](c, ctx, "/combustible", nil)
}

func (c *Client) GetMonedas(ctx context.Context) ([]models.MonedaDto, error) {
	return getList[models.MonedaDto](c, ctx, "/moneda", nil)
}

func (c *Client) GetDepartamentos(ctx context.Context) ([]models.DepartamentoDto, error) {
	return getList[models.DepartamentoDto](c, ctx, "/departamento", nil)
}

func (c *Client) GetTarifas(ctx context.Context) ([]models.TarifaDto, error) {
	return getList[models.TarifaDto](c, ctx, "/tarifa", nil)
}

// CreatePoliza submits the assembled creation request. A non-2xx answer
// surfaces as *ServiceError carrying the server's error body.
func (c *Client) CreatePoliza(ctx context.Context, request *models.PolizaCreateRequest) (*models.CreatePolizaResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/poliza", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build create request: %w", err)
	}

	slog.Info("Submitting póliza to Velneo", "conpol", request.Conpol, "comcod", request.Comcod)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var out models.CreatePolizaResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode create response: %w", err)
	}
	return &out, nil
}
