package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appcost "github.com/jhoicas/hpp-api/internal/application/costbasis"
	"github.com/jhoicas/hpp-api/internal/domain"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

var (
	errLegacyXLS = errors.New("formato .xls no soportado; guardar como .xlsx o .csv")
	errNoHeader  = errors.New("la hoja no tiene fila de encabezado")
	errNoSheets  = errors.New("el libro no tiene hojas")
	utf8BOM      = []byte{0xEF, 0xBB, 0xBF}
)

// Decoder implementa costbasis.SheetDecoder para .xlsx/.xlsm (primera hoja) y .csv.
type Decoder struct{}

var _ appcost.SheetDecoder = Decoder{}

// NewDecoder construye el decodificador.
func NewDecoder() Decoder { return Decoder{} }

// Decode lee el archivo completo según su extensión. Cualquier fallo de lectura es *domain.ParseError.
func (Decoder) Decode(filename string, r io.Reader) ([]entity.SheetRow, error) {
	var (
		raw [][]string
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		raw, err = readWorkbook(r)
	case ".csv":
		raw, err = readCSV(r)
	case ".xls":
		err = errLegacyXLS
	default:
		err = fmt.Errorf("extensión no soportada %q (.xlsx o .csv)", filepath.Ext(filename))
	}
	if err != nil {
		return nil, &domain.ParseError{Filename: filename, Err: err}
	}
	if len(raw) == 0 {
		return nil, &domain.ParseError{Filename: filename, Err: errNoHeader}
	}
	return FromTabular(raw), nil
}

// readWorkbook primera hoja con valores crudos: sin formato numérico de celda,
// así "12,500.00" llega como "12500".
func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir libro: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	return rows, nil
}

// readCSV acepta UTF-8 (con o sin BOM) y, si no es UTF-8 válido, Windows-1252
// (exportaciones de Excel en Windows). Separador coma o punto y coma según el encabezado.
func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		data, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decodificar windows-1252: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.Comma = sniffDelimiter(data)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return rows, nil
}

func sniffDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.IndexByte(first, ';') >= 0 && bytes.IndexByte(first, ',') < 0 {
		return ';'
	}
	return ','
}
