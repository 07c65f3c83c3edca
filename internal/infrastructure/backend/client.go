// Package backend adaptadores HTTP hacia el servicio backend que expone el catálogo de SKUs,
// la escritura masiva de HPP y los pedidos sincronizados del marketplace.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/hpp-api/pkg/config"
)

const maxResponseBytes = 16 << 20

// Client cliente REST del backend. Sin reintentos: la política la decide el llamador.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient construye el cliente. Un Timeout cero deja el límite al contexto de la petición.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// StatusError respuesta no 2xx del backend.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend: HTTP %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do ejecuta la petición y decodifica el cuerpo 2xx en out (si no es nil).
// Los cuerpos no 2xx se devuelven como *StatusError junto con el cuerpo crudo.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("backend: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("backend: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			se.Message = eb.Message
			if se.Message == "" {
				se.Message = eb.Error
			}
		}
		return raw, se
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return raw, fmt.Errorf("backend: deserializar %s: %w", path, err)
		}
	}
	return raw, nil
}

// flexTime acepta RFC 3339, "2006-01-02 15:04:05" o segundos unix; null o vacío = sin fecha.
type flexTime struct {
	t *time.Time
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` || s == "" {
		f.t = nil
		return nil
	}
	if s[0] != '"' {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("fecha %s inválida: %w", s, err)
		}
		if n <= 0 {
			f.t = nil
			return nil
		}
		t := time.Unix(n, 0).UTC()
		f.t = &t
		return nil
	}
	str, err := strconv.Unquote(s)
	if err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			f.t = &t
			return nil
		}
	}
	// Fecha no interpretable: el pedido queda sin fecha en lugar de fallar toda la lectura.
	f.t = nil
	return nil
}

func (f flexTime) value() time.Time {
	if f.t == nil {
		return time.Time{}
	}
	return *f.t
}
