package services

import (
	"encoding/json"
	"fmt"
	"time"

	"fleethvac/internal/models"

	"github.com/xuri/excelize/v2"
)

const auditSheet = "Audit Log"

var auditExportHeader = []string{
	"Timestamp",
	"Actor Email",
	"Actor Name",
	"Action",
	"Entity Type",
	"Entity ID",
	"Description",
	"Old Values",
	"New Values",
}

func renderAuditWorkbook(logs []*models.AuditLog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(auditSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range auditExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(auditSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(auditSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, l := range logs {
		row := []any{
			l.CreatedAt.UTC().Format(time.RFC3339),
			l.ActorEmail,
			l.ActorName,
			l.Action,
			l.EntityType,
			l.EntityID,
			l.Description,
			jsonCell(l.OldValues),
			jsonCell(l.NewValues),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(auditSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(auditSheet, "A", "A", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(auditSheet, "B", "G", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(auditSheet, "H", "I", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func jsonCell(v models.JSONB) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
