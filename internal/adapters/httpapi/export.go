package httpapi

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
)

// handleDebtsReportExport renders the debts report as an XLSX download.
func (s *Server) handleDebtsReportExport(w http.ResponseWriter, r *http.Request) {
	report, err := s.Debts.BuildReport(r.Context(), cutoffFromQuery(r))
	if err != nil {
		s.Log.Error("debts report export", "err", err)
		writeAppError(w, r, err)
		return
	}
	s.Metrics.ReportsGenerated.WithLabelValues("debts_export").Inc()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"member_id",
		"name",
		"category",
		"legal_id",
		"last_payment",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		s.Log.Error("debts export header", "err", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "failed to build export", nil)
		return
	}

	row := 2
	for _, d := range report.Rows {
		var legalID any
		if d.Member.LegalID != nil {
			legalID = *d.Member.LegalID
		}
		excelRow := []interface{}{
			string(d.Member.ID),
			toDomainMemberName(d.Member),
			string(d.Member.Category.Kind),
			legalID,
			d.LastPayment,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			s.Log.Error("debts export cell", "err", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL", "failed to build export", nil)
			return
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			s.Log.Error("debts export row", "err", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL", "failed to build export", nil)
			return
		}
		row++
	}

	filename := fmt.Sprintf("debts-%s.xlsx", report.Cutoff)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		s.Log.Error("debts export write", "err", err)
	}
}
