package infra

// pdf.go — comprobante interno de orden de servicio con go-pdf/fpdf.
// Formato media carta: encabezado del taller, folio y fecha, cliente y
// equipo, detalle de costos, pagos asentados y saldo pendiente.

import (
	"fmt"
	"os"
	"path/filepath"

	"repairsuite/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateComprobantePDF escribe el comprobante de una orden en storagePath y
// devuelve la ruta absoluta del archivo.
func GenerateComprobantePDF(orden *model.OrdenServicio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comprobante_%s.pdf", orden.Folio)
	filePath := filepath.Join(storagePath, fileName)

	// Media carta 140×216mm — cómodo para imprimir y engrampar a la orden física
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 140, Ht: 216},
	})
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Encabezado ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "RepairSuite", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Comprobante de Orden de Servicio", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, orden.Folio, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, orden.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Estado: "+string(orden.Estado), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Cliente y equipo ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Cliente: "+orden.ClienteNombre, "", 1, "L", false, 0, "")
	if orden.ClienteTelefono != "" {
		pdf.CellFormat(contentW, 5, "Teléfono: "+orden.ClienteTelefono, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, "Equipo: "+orden.EquipoEtiqueta, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(contentW, 4, "Falla reportada: "+orden.FallaReportada, "", "L", false)
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Costos ───────────────────────────────────────────────────────────────
	colLabel := contentW * 0.65
	colMonto := contentW * 0.35

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(colLabel, 5, "Diagnóstico:", "", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 5, "$"+orden.CostoDiagnostico.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(colLabel, 5, "Reparación:", "", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 5, "$"+orden.CostoReparacion.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colLabel, 6, "TOTAL:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 6, "$"+orden.CostoTotal().StringFixed(2), "T", 1, "R", false, 0, "")
	pdf.Ln(2)

	// ── Pagos ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, pago := range orden.Pagos {
		label := fmt.Sprintf("Pago %s (%s) — %s:", pago.Tipo, pago.Metodo, pago.CreatedAt.Format("02/01/2006"))
		pdf.CellFormat(colLabel, 4, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(colMonto, 4, "$"+pago.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colLabel, 5, "Total pagado:", "", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 5, "$"+orden.TotalPagado().StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(colLabel, 5, "Saldo pendiente:", "", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 5, "$"+orden.SaldoPendiente().StringFixed(2), "", 1, "R", false, 0, "")

	// ── Pie ──────────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "El equipo se entrega contra pago del saldo y presentación de este comprobante.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
