// Package export gera planilhas XLSX a partir dos relatórios
package export

import (
	"bytes"
	"fmt"

	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX é o MIME type das planilhas geradas
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	SheetSummary     = "Ringkasan"
	SheetTopProducts = "Produk Terlaris"
	SheetExpenses    = "Pengeluaran"
)

// MonthlyFilename retorna o nome do arquivo do relatório, ex: laporan_2026_03.xlsx
func MonthlyFilename(r *report.Monthly) string {
	return fmt.Sprintf("laporan_%04d_%02d.xlsx", r.Year, r.Month)
}

type sheetWriter struct {
	f           *excelize.File
	headerStyle int
	moneyStyle  int
}

func (w *sheetWriter) headers(sheet string, headers ...string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheet, cell, cell, w.headerStyle); err != nil {
			return err
		}
	}
	return w.f.SetPanes(sheet, &excelize.Panes{Freeze: true, Split: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

// row grava os valores a partir da coluna A. Decimais viram números com
// formato de milhar.
func (w *sheetWriter) row(sheet string, rowNo int, values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNo)
		if err != nil {
			return err
		}
		if d, ok := v.(decimal.Decimal); ok {
			if err := w.f.SetCellValue(sheet, cell, d.InexactFloat64()); err != nil {
				return err
			}
			if err := w.f.SetCellStyle(sheet, cell, cell, w.moneyStyle); err != nil {
				return err
			}
			continue
		}
		if err := w.f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// MonthlyReport monta a planilha do relatório mensal com três abas:
// resumo, produtos mais vendidos e despesas por categoria
func MonthlyReport(r *report.Monthly) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, headerStyle: headerStyle, moneyStyle: moneyStyle}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	if err := w.headers(SheetSummary, r.Title(), "Nilai"); err != nil {
		return nil, err
	}

	summary := []struct {
		label string
		value interface{}
	}{
		{"Pendapatan", r.Revenue},
		{"HPP (Belanja Pasar)", r.COGS},
		{"Biaya Operasional", r.OperatingExpenses},
		{"Laba Kotor", r.GrossProfit},
		{"Laba Bersih", r.NetProfit},
		{"Margin Kotor (%)", r.GrossMargin.InexactFloat64()},
		{"Margin Bersih (%)", r.NetMargin.InexactFloat64()},
		{"Modal Masuk", r.Capital},
		{"Pesanan Lunas", r.PaidOrders},
		{"Rata-rata Pesanan", r.AvgOrderValue},
		{"Nilai Persediaan", r.InventoryValue},
	}
	for i, s := range summary {
		if err := w.row(SheetSummary, i+2, s.label, s.value); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetSummary, "B", "B", 18); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetTopProducts); err != nil {
		return nil, err
	}
	if err := w.headers(SheetTopProducts, "No", "Produk", "Qty", "Total"); err != nil {
		return nil, err
	}
	for i, p := range r.TopProducts {
		if err := w.row(SheetTopProducts, i+2, i+1, p.Name, p.Qty.InexactFloat64(), p.Total); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(SheetExpenses); err != nil {
		return nil, err
	}
	if err := w.headers(SheetExpenses, "Kategori", "Jumlah", "HPP"); err != nil {
		return nil, err
	}
	for i, c := range r.ExpenseCategories {
		cogs := "Tidak"
		if c.IsCOGS {
			cogs = "Ya"
		}
		if err := w.row(SheetExpenses, i+2, c.Category, c.Amount, cogs); err != nil {
			return nil, err
		}
	}
	if n := len(r.ExpenseCategories); n > 0 {
		if err := f.AutoFilter(SheetExpenses, fmt.Sprintf("A1:C%d", n+1), []excelize.AutoFilterOptions{}); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f.WriteToBuffer()
}
