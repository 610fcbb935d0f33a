package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportService renders scan results into downloadable report files
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExpiringContractsXLSX renders a tenant's current scan result as an XLSX
// workbook, most urgent contract first.
func (s *ExportService) ExpiringContractsXLSX(ctx context.Context, entries []ExpiringContract, now time.Time) ([]byte, string, error) {
	sorted := sortEntries(entries)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Kontrak PKWT"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Kontrak PKWT Segera Berakhir")
	_ = f.SetCellValue(sheet, "B1", now.Format("2006-01-02 15:04"))
	_ = f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	headers := []string{"Nama", "Posisi", "Departemen", "Atasan Langsung", "Tanggal Berakhir", "Sisa Hari", "Status PKWT", "Tingkat"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, e := range sorted {
		values := []interface{}{
			e.Contract.EmployeeName,
			e.Contract.Position,
			e.Contract.Department,
			e.Contract.Supervisor,
			e.Contract.EndDate.Format("02/01/2006"),
			e.DaysLeft,
			fmt.Sprintf("PKWT ke-%d", e.Contract.Cycle),
			Severity(e.DaysLeft),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+4)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write xlsx: %w", err)
	}

	filename := fmt.Sprintf("kontrak_pkwt_%s.xlsx", now.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
