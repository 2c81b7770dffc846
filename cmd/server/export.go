package main

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var priceListHeader = []interface{}{
	"service_id",
	"service",
	"category",
	"chair_time_cost",
	"doctor_fee",
	"materials_cost",
	"equipment_cost",
	"total_cost",
	"profit_percent",
	"price_before_vat",
	"vat_amount",
	"recommended_price",
	"current_price",
	"zone",
	"variance_percent",
	"error",
}

func (s *server) handlePriceListExport(w http.ResponseWriter, r *http.Request) {
	list, err := s.loadPriceList(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	buf, err := writePriceListWorkbook(list)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	fileName := fmt.Sprintf("price_list_%s.xlsx", s.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// writePriceListWorkbook renders list as a single-sheet workbook with one
// row per service and a summary block below.
func writePriceListWorkbook(list priceList) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := priceListHeader
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	row := 2
	for _, it := range list.Items {
		excelRow := []interface{}{it.ServiceID, it.ServiceName, it.CategoryName}
		if b := it.Breakdown; b != nil {
			excelRow = append(excelRow,
				b.ChairTimeCost,
				b.DoctorFee,
				b.MaterialsCost,
				b.EquipmentCost,
				b.TotalCost,
				b.ProfitPercent,
				b.PriceBeforeVAT,
				b.VATAmount,
				b.RoundedPrice,
			)
		} else {
			excelRow = append(excelRow, "", "", "", "", "", "", "", "", "")
		}

		if it.CurrentPrice != nil {
			excelRow = append(excelRow, *it.CurrentPrice)
		} else {
			excelRow = append(excelRow, "")
		}
		if it.Variance != nil {
			excelRow = append(excelRow, string(it.Variance.Zone), it.Variance.VariancePercent)
		} else {
			excelRow = append(excelRow, "", "")
		}
		excelRow = append(excelRow, it.ErrorKind)

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("resolve cell for row %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	row++
	summary := [][]interface{}{
		{"currency", list.Currency},
		{"total_services", list.Summary.TotalServices},
		{"underpriced", list.Summary.Underpriced},
		{"optimal", list.Summary.Optimal},
		{"overpriced", list.Summary.Overpriced},
		{"unclassified", list.Summary.Unclassified},
		{"failed", list.Failed},
		{"potential_revenue", list.Summary.PotentialRevenue},
	}
	for _, line := range summary {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("resolve cell for row %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return nil, fmt.Errorf("write summary row %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
