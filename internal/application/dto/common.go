package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail detalle por campo o por SKU de un error.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	SKU     string `json:"sku,omitempty"`
	Message string `json:"message"`
}

// RawValue texto tal como lo escribió el usuario. Acepta número o string JSON;
// la validación numérica la hace el dominio, no el decodificador.
type RawValue string

// UnmarshalJSON acepta 12500, "12500" y "abc" (este último se rechaza luego como no numérico).
func (r *RawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RawValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("valor debe ser número o texto: %w", err)
	}
	*r = RawValue(n.String())
	return nil
}

// nullable convierte un NullDecimal en puntero para serializar null.
func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
