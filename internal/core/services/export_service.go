package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/apperrors"
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Transactions"

type exportService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	hub           string
	reporting     []string
}

// NewExportService creates a service that writes transaction reports. reporting is the full list
// of reporting currencies, hub first.
func NewExportService(repo portsrepo.ReportingRepository, hub string, reporting []string) portssvc.ExportService {
	return &exportService{
		reportingRepo: repo,
		hub:           hub,
		reporting:     reporting,
	}
}

var _ portssvc.ExportService = (*exportService)(nil)

func (s *exportService) ExportTransactions(ctx context.Context, from, to time.Time, format portssvc.ExportFormat, w io.Writer) error {
	if err := validateRange(from, to); err != nil {
		return err
	}
	if format != portssvc.ExportCSV && format != portssvc.ExportXLSX {
		return fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}

	txs, err := s.reportingRepo.ListTransactionsInRange(ctx, from, endOfDay(to))
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for export")
		return fmt.Errorf("failed to retrieve transactions for export: %w", err)
	}

	switch format {
	case portssvc.ExportXLSX:
		err = s.writeXLSX(txs, w)
	default:
		err = s.writeCSV(txs, w)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to write export", slog.String("format", string(format)))
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}

	s.LogInfo(ctx, "Transactions exported",
		slog.String("format", string(format)),
		slog.Int("rows", len(txs)))
	return nil
}

func (s *exportService) header() []string {
	h := []string{
		"Date", "Type", "Expense Type", "Status", "Category", "Comments",
		"Amount", "Currency", "Original Amount", "Original Currency",
		"Amount (" + s.hub + ")",
	}
	for _, code := range s.reporting {
		if code == s.hub {
			continue
		}
		h = append(h, "Amount ("+code+")")
	}
	return h
}

// cells returns the values of one export row. Amounts are decimal.NullDecimal so each writer
// can render a null as the placeholder instead of zero.
func (s *exportService) cells(tx domain.Transaction) []any {
	c := []any{
		tx.TransactionDate.Format(time.DateOnly),
		string(tx.TransactionType),
		tx.ExpenseType,
		tx.Status,
		tx.Category,
		tx.Comments,
		decimal.NewNullDecimal(tx.Amount),
		tx.CurrencyCode,
		decimal.NewNullDecimal(tx.OriginalAmount),
		tx.OriginalCurrency,
		tx.HubAmount,
	}
	for _, code := range s.reporting {
		if code == s.hub {
			continue
		}
		c = append(c, tx.ReportingAmounts[code])
	}
	return c
}

func csvRecord(cells []any) []string {
	record := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case decimal.NullDecimal:
			record[i] = utils.FormatNullableAmount(v)
		case string:
			record[i] = v
		default:
			record[i] = fmt.Sprint(v)
		}
	}
	return record
}

func (s *exportService) writeCSV(txs []domain.Transaction, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.header()); err != nil {
		return err
	}
	for _, tx := range txs {
		if err := cw.Write(csvRecord(s.cells(tx))); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *exportService) writeXLSX(txs []domain.Transaction, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return err
	}

	header := s.header()
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &headerRow); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheetName, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	twoPlaces, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	for i, tx := range txs {
		rowNum := i + 2
		cells := s.cells(tx)
		for j, c := range cells {
			if v, ok := c.(decimal.NullDecimal); ok {
				if v.Valid {
					cells[j] = v.Decimal.Round(utils.DisplayPrecision).InexactFloat64()
				} else {
					cells[j] = utils.NullAmountPlaceholder
				}
			}
		}

		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheetName, start, &cells); err != nil {
			return err
		}
	}

	if len(txs) > 0 {
		// Amount columns start at G.
		end, err := excelize.CoordinatesToCellName(len(header), len(txs)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(exportSheetName, "G2", end, twoPlaces); err != nil {
			return err
		}
	}

	return f.Write(w)
}
