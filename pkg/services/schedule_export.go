package services

import (
	"bytes"
	"fmt"

	"pricegenie-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	scheduleSheet = "Schedule"
)

// ExportLoanWorkbook writes the loan summary and yearly balance schedule
// to an .xlsx workbook.
func ExportLoanWorkbook(summary *models.LoanSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Item", "Value", "Display"},
		{"Loan Amount", summary.ActualLoan, summary.Formatted["loan_amount"]},
		{"Down Payment", summary.DownPayment, summary.Formatted["down_payment"]},
		{"Interest Rate (%)", summary.InterestRate, summary.Formatted["interest_rate"]},
		{"Loan Tenure (Years)", summary.TenureYears, summary.Formatted["tenure"]},
		{"Monthly EMI", summary.MonthlyEMI, summary.Formatted["monthly_emi"]},
		{"Total Interest", summary.TotalInterest, summary.Formatted["total_interest"]},
		{"Total Payment", summary.TotalPayment, summary.Formatted["total_payment"]},
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(scheduleSheet); err != nil {
		return nil, fmt.Errorf("failed to create schedule sheet: %w", err)
	}
	scheduleRows := make([][]interface{}, 0, len(summary.Schedule)+1)
	scheduleRows = append(scheduleRows, []interface{}{"Year", "Interest Paid", "Principal Paid", "Outstanding Balance"})
	for _, row := range summary.Schedule {
		scheduleRows = append(scheduleRows, []interface{}{row.Year, row.InterestPaid, row.PrincipalPaid, row.OutstandingBalance})
	}
	if err := writeRows(f, scheduleSheet, scheduleRows); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(summarySheet, "A", "C", 22); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(scheduleSheet, "A", "D", 20); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
