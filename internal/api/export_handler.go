package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobhub/assessment/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportResults downloads the results of a submitted attempt as a spreadsheet.
// @Summary      Export results
// @Description  Returns the results as an .xlsx workbook with a summary sheet and a per-question review sheet.
// @Tags         Results
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {file}    file
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "not submitted yet"
// @Failure      500        {object}  ErrorResponse
// @Router       /attempts/{attemptID}/results.xlsx [get]
func (h *Handler) exportResults(w http.ResponseWriter, r *http.Request) {
	attemptID := chi.URLParam(r, "attemptID")

	summary, err := h.exams.Results(attemptID)
	if h.handleServiceError(w, err) {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, summary); err != nil {
		h.logger.Error("failed to render results", "attempt_id", attemptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to export results")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="assessment-%s.xlsx"`, attemptID))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
