// Package spreadsheet lê as planilhas de atendimento e vendas enviadas pelos usuários.
package spreadsheet

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
)

var (
	ErrUnreadableFile = errors.New("arquivo não é uma planilha válida")
	ErrNoSheets       = errors.New("planilha sem abas")
)

// ReadFirstSheet lê a primeira aba, usando a primeira linha como cabeçalho.
func ReadFirstSheet(r io.Reader) ([]domain.Row, error) {
	f, err := open(r)
	if err != nil {
		return nil, err
	}
	defer closeFile(f)

	name := f.GetSheetName(0)
	if name == "" {
		return nil, ErrNoSheets
	}

	return readSheet(f, name)
}

// ReadWorkbook lê todas as abas na ordem do arquivo. O nome da aba identifica o vendedor.
func ReadWorkbook(r io.Reader) (domain.Workbook, error) {
	f, err := open(r)
	if err != nil {
		return nil, err
	}
	defer closeFile(f)

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, ErrNoSheets
	}

	workbook := make(domain.Workbook, 0, len(names))
	for _, name := range names {
		rows, err := readSheet(f, name)
		if err != nil {
			return nil, err
		}
		workbook = append(workbook, domain.Sheet{Name: name, Rows: rows})
	}

	return workbook, nil
}

func open(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}
	return f, nil
}

func closeFile(f *excelize.File) {
	if err := f.Close(); err != nil {
		log.L.WithError(err).Warn("Erro ao fechar planilha")
	}
}

func readSheet(f *excelize.File, sheet string) ([]domain.Row, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler a aba %q", sheet)
	}
	if len(rows) == 0 {
		return []domain.Row{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	result := make([]domain.Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := make(domain.Row, len(headers))
		empty := true

		for col, header := range headers {
			if header == "" {
				continue
			}
			if col >= len(rows[i]) {
				row[header] = nil
				continue
			}

			raw := rows[i][col]
			if strings.TrimSpace(raw) != "" {
				empty = false
			}
			row[header] = cellValue(f, sheet, col+1, i+1, raw)
		}

		if !empty {
			result = append(result, row)
		}
	}

	log.L.WithFields(log.Fields{"aba": sheet, "linhas": len(result)}).Debug("Aba lida")

	return result, nil
}

// cellValue devolve float64 para células numéricas (inclusive datas, que chegam como
// número serial) e string para o resto.
func cellValue(f *excelize.File, sheet string, col, row int, raw string) any {
	if raw == "" {
		return nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}

	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeBool:
		return raw
	}

	if number, err := strconv.ParseFloat(raw, 64); err == nil {
		return number
	}
	return raw
}
