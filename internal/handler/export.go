package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/survey-api/internal/service"
)

// exportCSV writes rows as UTF-8 CSV with a BOM so spreadsheet apps detect the encoding
func exportCSV(c *gin.Context, rows [][]string, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write(service.ExportHeader); err != nil {
		log.Printf("[QuestionnaireHandler] CSV header write failed: %v", err)
		return
	}
	for _, row := range rows {
		if err := writer.Write(sanitizeRow(row)); err != nil {
			log.Printf("[QuestionnaireHandler] CSV row write failed: %v", err)
			return
		}
	}
}

// exportXLSX writes rows to a single-sheet workbook through excelize's StreamWriter
func exportXLSX(c *gin.Context, rows [][]string, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Responses"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Printf("[QuestionnaireHandler] Failed to rename sheet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuestionnaireHandler] Failed to create StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	if err := sw.SetRow("A1", toCells(service.ExportHeader)); err != nil {
		log.Printf("[QuestionnaireHandler] Failed to write header: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, toCells(sanitizeRow(row))); err != nil {
			log.Printf("[QuestionnaireHandler] Failed to write row %d: %v", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		log.Printf("[QuestionnaireHandler] Flush failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuestionnaireHandler] Failed to write workbook to response: %v", err)
	}
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

func sanitizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = sanitizeForExcel(v)
	}
	return out
}

// sanitizeForExcel escapes values that spreadsheet apps would evaluate as formulas
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
