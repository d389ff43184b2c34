// Package xlsx exporta el libro de movimientos a una planilla Excel.
package xlsx

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/application/inventory"
)

// SheetName nombre de la hoja con los movimientos.
const SheetName = "Movimentos"

var header = []any{
	"Data", "Transação", "Produto", "Local", "Tipo", "Quantidade",
	"Estoque anterior", "Estoque novo", "Custo unitário", "Custo total", "Motivo", "Referência",
}

var _ inventory.MovementExporter = (*MovementExporter)(nil)

// MovementExporter implementa inventory.MovementExporter con excelize.
type MovementExporter struct{}

// NewMovementExporter construye el exportador.
func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

// ExportMovements escribe una fila por movimiento y una fila final con los totales de cantidad y costo.
func (e *MovementExporter) ExportMovements(rows []dto.MovementResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}

	qtyTotal, costTotal := decimal.Zero, decimal.Zero
	for i, m := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			m.MovementDate.Format("2006-01-02 15:04:05"),
			m.TransactionID,
			m.ProductID,
			m.Location,
			m.Type,
			m.Quantity.InexactFloat64(),
			m.PreviousStock.InexactFloat64(),
			m.NewStock.InexactFloat64(),
			m.UnitCost.InexactFloat64(),
			m.TotalCost.InexactFloat64(),
			m.Reason,
			referenceLabel(m),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
		qtyTotal = qtyTotal.Add(m.Quantity)
		costTotal = costTotal.Add(m.TotalCost)
	}

	last := len(rows) + 2
	totalCell, _ := excelize.CoordinatesToCellName(1, last)
	totals := []any{"TOTAL", nil, nil, nil, nil, qtyTotal.InexactFloat64(), nil, nil, nil, costTotal.InexactFloat64()}
	if err := f.SetSheetRow(SheetName, totalCell, &totals); err != nil {
		return nil, fmt.Errorf("xlsx: totales: %w", err)
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(SheetName, "A1", endHeader, bold); err != nil {
		return nil, err
	}
	endTotals, _ := excelize.CoordinatesToCellName(len(header), last)
	if err := f.SetCellStyle(SheetName, totalCell, endTotals, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", "B", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "K", "L", 30); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func referenceLabel(m dto.MovementResponse) string {
	if m.ReferenceID == "" {
		return m.Reference
	}
	return m.Reference + ":" + m.ReferenceID
}
