package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HaciendaResponse is the relevant slice of the Hacienda electronic-invoice
// registry response. Raw keeps the full payload for the frontend.
type HaciendaResponse struct {
	Nombre string          `json:"nombre"`
	Raw    json.RawMessage `json:"raw"`
}

// HaciendaClient looks up taxpayer names by cédula against the public
// Hacienda API. The 3-second timeout is the only failure containment: the
// lookup is a convenience for the intake form, never on a critical path.
type HaciendaClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHaciendaClient(baseURL string) *HaciendaClient {
	return &HaciendaClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 3 * time.Second},
	}
}

// Consultar fetches the registered name for a cédula. Nombre comes back
// empty when the registry has no name for it.
func (c *HaciendaClient) Consultar(ctx context.Context, cedula string) (*HaciendaResponse, error) {
	u := fmt.Sprintf("%s?identificacion=%s", c.baseURL, url.QueryEscape(cedula))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("hacienda: crear request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hacienda: consulta: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hacienda: respuesta %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("hacienda: decodificar: %w", err)
	}

	var parsed struct {
		Nombre string `json:"nombre"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("hacienda: decodificar: %w", err)
	}
	return &HaciendaResponse{Nombre: parsed.Nombre, Raw: raw}, nil
}
