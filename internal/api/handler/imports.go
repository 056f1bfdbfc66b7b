package handler

import (
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/spreadsheet"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/importing"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

// ImportOptions limita o upload e define o fuso da data de referência
type ImportOptions struct {
	MaxUploadSizeMB int64
	Location        *time.Location
}

func (o ImportOptions) maxBytes() int64 {
	if o.MaxUploadSizeMB <= 0 {
		return 20 << 20
	}
	return o.MaxUploadSizeMB << 20
}

// parseUpload lê o formulário multipart e a data de referência (hoje, quando ausente).
func parseUpload(w http.ResponseWriter, r *http.Request, opts ImportOptions) (time.Time, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, opts.maxBytes())
	if err := r.ParseMultipartForm(opts.maxBytes()); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("imports: formulário inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Envie a planilha como multipart/form-data dentro do limite de tamanho", nil)
		return time.Time{}, false
	}

	referenceDate, err := utils.ParseDate(r.FormValue("reference_date"), opts.Location)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return time.Time{}, false
	}
	if referenceDate == nil {
		loc := opts.Location
		if loc == nil {
			loc = time.Local
		}
		today := utils.Noon(time.Now().In(loc))
		referenceDate = &today
	}

	return *referenceDate, true
}

func readRows(r *http.Request, field string) ([]domain.Row, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, errors.Wrapf(spreadsheet.ErrUnreadableFile, "campo %s ausente", field)
	}
	defer file.Close()

	return spreadsheet.ReadFirstSheet(file)
}

func readWorkbook(r *http.Request, field string) (domain.Workbook, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, errors.Wrapf(spreadsheet.ErrUnreadableFile, "campo %s ausente", field)
	}
	defer file.Close()

	return spreadsheet.ReadWorkbook(file)
}

// PreviewAttendance conta os atendimentos por atendente sem gravar nada
func PreviewAttendance(service importing.Importer, opts ImportOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := parseUpload(w, r, opts); !ok {
			return
		}

		rows, err := readRows(r, "file")
		if err != nil {
			writeServiceError(w, r, err, "Erro ao ler planilha")
			return
		}

		counts, err := service.PreviewAttendance(r.Context(), rows)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao processar planilha de atendimentos")
			return
		}

		writeJSON(w, r, http.StatusOK, counts)
	}
}

func ImportLeads(service importing.Importer, opts ImportOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		referenceDate, ok := parseUpload(w, r, opts)
		if !ok {
			return
		}

		rows, err := readRows(r, "file")
		if err != nil {
			writeServiceError(w, r, err, "Erro ao ler planilha")
			return
		}

		report, err := service.ImportLeads(r.Context(), rows, referenceDate)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao importar leads")
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func ImportSales(service importing.Importer, opts ImportOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		referenceDate, ok := parseUpload(w, r, opts)
		if !ok {
			return
		}

		workbook, err := readWorkbook(r, "file")
		if err != nil {
			writeServiceError(w, r, err, "Erro ao ler planilha")
			return
		}

		report, err := service.ImportSales(r.Context(), workbook, referenceDate)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao importar vendas")
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

// ImportCombined recebe leads_file e sales_file e grava o resultado mesclado
func ImportCombined(service importing.Importer, opts ImportOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		referenceDate, ok := parseUpload(w, r, opts)
		if !ok {
			return
		}

		rows, err := readRows(r, "leads_file")
		if err != nil {
			writeServiceError(w, r, err, "Erro ao ler planilha de atendimentos")
			return
		}

		workbook, err := readWorkbook(r, "sales_file")
		if err != nil {
			writeServiceError(w, r, err, "Erro ao ler planilha de vendas")
			return
		}

		report, err := service.ImportCombined(r.Context(), rows, workbook, referenceDate)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao importar planilhas")
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}
