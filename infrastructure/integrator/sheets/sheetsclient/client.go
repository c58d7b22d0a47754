package sheetsclient

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client implementa as primitivas da planilha de destino sobre a API do
// Google Sheets: criar aba, ler linhas existentes e anexar linhas em bloco.
// O append é atômico na fronteira da chamada, o que sustenta a garantia de
// batch all-or-nothing do pipeline.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
}

type Config struct {
	SpreadsheetID   string
	CredentialsFile string
}

// NewClient abre a planilha de destino. Falhar aqui significa que o handle
// do destino não pôde ser aberto, o que é fatal para o processo.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	credentials, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler o arquivo de credenciais %s", cfg.CredentialsFile)
	}

	// o escopo restrito a planilhas evita que a service account carregue
	// permissões além do necessário
	jwtConfig, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar as credenciais da service account")
	}

	service, err := sheets.NewService(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar o serviço do Google Sheets")
	}

	// valida o acesso à planilha antes de qualquer escrita
	if _, err := service.Spreadsheets.Get(cfg.SpreadsheetID).Context(ctx).Do(); err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir a planilha %s", cfg.SpreadsheetID)
	}

	logrus.WithField("spreadsheet_id", cfg.SpreadsheetID).Info("sheets: planilha de destino aberta")

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// EnsureWorksheet cria a aba com a linha de cabeçalho quando ela ainda não
// existe. Idempotente.
func (c *Client) EnsureWorksheet(ctx context.Context, worksheet string, header []string) error {
	exists, err := c.worksheetExists(ctx, worksheet)
	if err != nil {
		return err
	}

	if !exists {
		request := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{
				{
					AddSheet: &sheets.AddSheetRequest{
						Properties: &sheets.SheetProperties{Title: worksheet},
					},
				},
			},
		}

		if _, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, request).Context(ctx).Do(); err != nil {
			return errors.Wrapf(err, "erro ao criar a aba %q", worksheet)
		}

		logrus.WithField("worksheet", worksheet).Info("sheets: aba criada")
	}

	return c.ensureHeader(ctx, worksheet, header)
}

// ReadRows lê todas as linhas da aba, incluindo o cabeçalho.
func (c *Client) ReadRows(ctx context.Context, worksheet string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, worksheet).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler as linhas da aba %q", worksheet)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, value := range resp.Values {
		row := make([]string, 0, len(value))
		for _, cell := range value {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// AppendRows anexa todas as linhas em uma única chamada.
func (c *Client) AppendRows(ctx context.Context, worksheet string, rows [][]interface{}) error {
	valueRange := &sheets.ValueRange{Values: rows}

	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, worksheet, valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "erro ao anexar %d linhas na aba %q", len(rows), worksheet)
	}

	return nil
}

func (c *Client) worksheetExists(ctx context.Context, worksheet string) (bool, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return false, errors.Wrap(err, "erro ao listar as abas da planilha")
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == worksheet {
			return true, nil
		}
	}

	return false, nil
}

func (c *Client) ensureHeader(ctx context.Context, worksheet string, header []string) error {
	resp, err := c.service.Spreadsheets.Values.
		Get(c.spreadsheetID, fmt.Sprintf("%s!1:1", worksheet)).
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "erro ao ler o cabeçalho da aba %q", worksheet)
	}

	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	row := make([]interface{}, len(header))
	for i, column := range header {
		row[i] = column
	}

	if err := c.AppendRows(ctx, worksheet, [][]interface{}{row}); err != nil {
		return err
	}

	logrus.WithField("worksheet", worksheet).Info("sheets: cabeçalho criado")
	return nil
}
