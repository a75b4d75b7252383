// Package report builds spreadsheet exports of the trading ledgers.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// SaleRow is one exported sale line
type SaleRow struct {
	InvoiceNo    string
	CustomerName string
	CreatedAt    time.Time
	SubTotal     float64
	Discount     float64
	Total        float64
	Paid         float64
	Due          float64
	Profit       float64
}

// TxnRow is one exported mobile-banking line
type TxnRow struct {
	Sequence     int64
	Type         string
	Operator     string
	CreatedAt    time.Time
	Amount       float64
	Commission   float64
	BalanceAfter float64
}

// SummaryRow is the totals block at the top of the summary sheet
type SummaryRow struct {
	Label string
	Value float64
}

// BuildWorkbook renders the sales and banking ledgers of a period into a
// two-sheet xlsx workbook plus a summary sheet, returned as raw bytes.
func BuildWorkbook(title string, summary []SummaryRow, sales []SaleRow, txns []TxnRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(summarySheet, "A1", title)
	f.SetCellStyle(summarySheet, "A1", "A1", bold)
	for i, row := range summary {
		cell := fmt.Sprintf("A%d", i+3)
		f.SetCellValue(summarySheet, cell, row.Label)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+3), row.Value)
	}

	if err := writeSalesSheet(f, bold, sales); err != nil {
		return nil, err
	}
	if err := writeBankingSheet(f, bold, txns); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSalesSheet(f *excelize.File, headerStyle int, sales []SaleRow) error {
	const sheet = "Sales"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Invoice", "Customer", "Date", "Subtotal", "Discount", "Total", "Paid", "Due", "Profit"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, s := range sales {
		row := i + 2
		values := []interface{}{
			s.InvoiceNo,
			s.CustomerName,
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.SubTotal,
			s.Discount,
			s.Total,
			s.Paid,
			s.Due,
			s.Profit,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}
	return nil
}

func writeBankingSheet(f *excelize.File, headerStyle int, txns []TxnRow) error {
	const sheet = "Mobile Banking"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Seq", "Type", "Operator", "Date", "Amount", "Commission", "Balance"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, t := range txns {
		row := i + 2
		values := []interface{}{
			t.Sequence,
			t.Type,
			t.Operator,
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.Amount,
			t.Commission,
			t.BalanceAfter,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}
	return nil
}
