package costbasis

import (
	"io"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// SheetDecoder convierte un archivo subido (.xlsx / .csv) en filas con encabezado normalizado.
// Si el archivo no se puede leer como tabla devuelve *domain.ParseError.
type SheetDecoder interface {
	Decode(filename string, r io.Reader) ([]entity.SheetRow, error)
}

// TemplateWriter escribe la plantilla descargable de HPP para los SKUs dados.
type TemplateWriter interface {
	WriteTemplate(w io.Writer, records []entity.SkuRecord) error
}
