package main

import (
	"context"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/spreadsheet"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/importing"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type connector func(ctx context.Context) (importing.Importer, *time.Location, func(), error)

func dateFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "date",
		Usage: "Data de referência dos lançamentos (AAAA-MM-DD); padrão é hoje",
	}
}

func fileFlag(name, usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     name,
		Usage:    usage,
		Required: true,
	}
}

func newApp(out io.Writer, connect connector) *cli.App {
	return &cli.App{
		Name:      "importer",
		Usage:     "Importa planilhas de atendimentos e vendas para o dashboard",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:  "preview",
				Usage: "Conta os atendimentos por atendente e canal sem gravar nada",
				Flags: []cli.Flag{
					fileFlag("file", "Planilha de atendimentos (.xlsx)"),
					&cli.StringFlag{
						Name:    "aliases",
						Usage:   `Apelidos extras de canal, ex: "whatsapp=whatsapp|zap"`,
						EnvVars: []string{"IMPORT_EXTRA_CHANNEL_ALIASES"},
					},
				},
				Action: func(c *cli.Context) error {
					aliases, err := config.ParseChannelAliases(c.String("aliases"))
					if err != nil {
						return err
					}

					rows, err := readRows(c.String("file"))
					if err != nil {
						return err
					}

					counts, err := importing.NewChannelCatalog(aliases).ProcessAttendanceData(rows)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, counts)
				},
			},
			{
				Name:  "leads",
				Usage: "Importa a planilha de atendimentos como leads do dia",
				Flags: []cli.Flag{fileFlag("file", "Planilha de atendimentos (.xlsx)"), dateFlag()},
				Action: withImporter(connect, func(ctx context.Context, c *cli.Context, service importing.Importer, date time.Time) (*domain.ImportReport, error) {
					rows, err := readRows(c.String("file"))
					if err != nil {
						return nil, err
					}
					return service.ImportLeads(ctx, rows, date)
				}),
			},
			{
				Name:  "sales",
				Usage: "Importa a planilha de vendas (uma aba por vendedor)",
				Flags: []cli.Flag{fileFlag("file", "Planilha de vendas (.xlsx)"), dateFlag()},
				Action: withImporter(connect, func(ctx context.Context, c *cli.Context, service importing.Importer, date time.Time) (*domain.ImportReport, error) {
					workbook, err := readWorkbook(c.String("file"))
					if err != nil {
						return nil, err
					}
					return service.ImportSales(ctx, workbook, date)
				}),
			},
			{
				Name:  "combined",
				Usage: "Importa atendimentos e vendas juntos, mesclando por vendedor, canal e dia",
				Flags: []cli.Flag{
					fileFlag("leads-file", "Planilha de atendimentos (.xlsx)"),
					fileFlag("sales-file", "Planilha de vendas (.xlsx)"),
					dateFlag(),
				},
				Action: withImporter(connect, func(ctx context.Context, c *cli.Context, service importing.Importer, date time.Time) (*domain.ImportReport, error) {
					rows, err := readRows(c.String("leads-file"))
					if err != nil {
						return nil, err
					}
					workbook, err := readWorkbook(c.String("sales-file"))
					if err != nil {
						return nil, err
					}
					return service.ImportCombined(ctx, rows, workbook, date)
				}),
			},
		},
	}
}

type importAction func(ctx context.Context, c *cli.Context, service importing.Importer, date time.Time) (*domain.ImportReport, error)

// withImporter conecta ao banco, resolve a data de referência e imprime o relatório.
func withImporter(connect connector, action importAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := c.Context
		service, loc, closer, err := connect(ctx)
		if err != nil {
			return errors.Wrap(err, "erro ao preparar importação")
		}
		defer closer()

		if loc == nil {
			loc = time.Local
		}

		date, err := utils.ParseDate(c.String("date"), loc)
		if err != nil {
			return err
		}
		if date == nil {
			today := utils.Noon(time.Now().In(loc))
			date = &today
		}

		report, err := action(ctx, c, service, *date)
		if err != nil {
			return err
		}

		log.L.WithFields(log.Fields{
			"comando":   c.Command.Name,
			"criados":   report.Created,
			"alterados": report.Updated,
			"ignorados": report.Skipped,
		}).Info("Importação concluída")

		return printJSON(c.App.Writer, report)
	}
}

func readRows(path string) ([]domain.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir %s", path)
	}
	defer file.Close()

	return spreadsheet.ReadFirstSheet(file)
}

func readWorkbook(path string) (domain.Workbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir %s", path)
	}
	defer file.Close()

	return spreadsheet.ReadWorkbook(file)
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
