package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"document-flow-api/config"
	"document-flow-api/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportDocumentRegister writes the clerk's document register (sổ đăng ký
// văn bản) for one year and kind as an Excel workbook.
func ExportDocumentRegister(c *gin.Context) {
	kind := c.DefaultQuery("kind", models.DocumentKindIncoming)
	if kind != models.DocumentKindIncoming && kind != models.DocumentKindOutgoing && kind != models.DocumentKindInternal {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid document kind"})
		return
	}

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid year"})
		return
	}

	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
	yearEnd := yearStart.AddDate(1, 0, 0)

	var documents []models.Document
	if err := config.DB.Preload("DocumentType").
		Where("document_kind = ? AND delete_at IS NULL", kind).
		Where("create_at >= ? AND create_at < ?", yearStart, yearEnd).
		Where("status_code <> ?", models.StatusDraft).
		Order("create_at ASC").
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch documents"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "So van ban"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"STT", "Số văn bản", "Trích yếu", "Loại văn bản", "Cơ quan ban hành", "Ngày văn bản", "Trạng thái"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, doc := range documents {
		values := []interface{}{
			row + 1,
			doc.DocumentNumber,
			doc.Title,
			"",
			"",
			"",
			doc.Status.DisplayName(),
		}
		if doc.DocumentType != nil {
			values[3] = doc.DocumentType.Name
		}
		if doc.IssuingAgency != nil {
			values[4] = *doc.IssuingAgency
		}
		if doc.IssuedDate != nil {
			values[5] = doc.IssuedDate.Format("02/01/2006")
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("so-van-ban-%s-%d.xlsx", kind, year)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to write workbook"})
	}
}
