package report

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/airlink-admin/internal/models"
	"github.com/example/airlink-admin/internal/observability"
)

// placeholder rendered for joined values missing on LEFT JOIN (e.g. a viaje
// whose ruta was never set). Cells are never left blank.
const placeholder = "N/D"

const tripsQuery = `
	SELECT v.idViaje,
	       t1.nombre AS origen,
	       t2.nombre AS destino,
	       v.salida,
	       v.llegada,
	       e.nombreEmpresa AS empresa,
	       v.estado
	FROM viaje v
	LEFT JOIN ruta r ON v.idRuta = r.idRuta
	LEFT JOIN terminal t1 ON r.idTerminalOrigen = t1.idTerminal
	LEFT JOIN terminal t2 ON r.idTerminalDestino = t2.idTerminal
	LEFT JOIN empresa_equipo eq ON v.idEquipo = eq.idEquipo
	LEFT JOIN empresa e ON eq.idEmpresa = e.idEmpresa
	ORDER BY v.salida`

// Generator renders the trips report: one landscape table over viaje joined
// with ruta, both terminales, empresa_equipo and empresa.
type Generator struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewGenerator(db *sql.DB, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{db: db, logger: logger}
}

func (g *Generator) fetchRows(ctx context.Context) ([]models.TripReportRow, error) {
	rows, err := g.db.QueryContext(ctx, tripsQuery)
	if err != nil {
		return nil, fmt.Errorf("query trips report: %w", err)
	}
	defer rows.Close()

	var out []models.TripReportRow
	for rows.Next() {
		var r models.TripReportRow
		if err := rows.Scan(&r.TripID, &r.OriginName, &r.DestName, &r.Departure, &r.Arrival, &r.CompanyName, &r.Status); err != nil {
			return nil, fmt.Errorf("scan trips report row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TripsReport writes the paginated PDF to path. An empty viaje table still
// produces a valid document with the header and a zero count line. The
// output file is released on every path, including render errors.
func (g *Generator) TripsReport(ctx context.Context, path string) error {
	data, err := g.fetchRows(ctx)
	if err != nil {
		g.logger.Error("trips report query", "error", err)
		return err
	}

	if err := renderPDF(data, path); err != nil {
		g.logger.Error("trips report render", "path", path, "error", err)
		return fmt.Errorf("render trips report: %w", err)
	}

	observability.ReportsGenerated.Inc()
	g.logger.Info("trips report written", "path", path, "trips", len(data))
	return nil
}

func cell(v *string) string {
	if v == nil || *v == "" {
		return placeholder
	}
	return *v
}

func renderPDF(data []models.TripReportRow, path string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(64, 64, 64)
	pdf.CellFormat(0, 12, "Reporte de Viajes Airlink", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Column widths mirror the desktop report's proportions.
	widths := []float64{22, 46, 46, 50, 50, 46, 26}
	headers := []string{"ID", "Origen", "Destino", "Salida", "Llegada", "Empresa", "Estado"}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(211, 211, 211)
	pdf.SetTextColor(0, 0, 0)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, r := range data {
		row := []string{
			fmt.Sprintf("%d", r.TripID),
			cell(r.OriginName),
			cell(r.DestName),
			r.Departure.Format(time.DateTime),
			r.Arrival.Format(time.DateTime),
			cell(r.CompanyName),
			cell(r.Status),
		}
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total de viajes registrados: %d", len(data)), "", 1, "L", false, 0, "")

	// OutputFileAndClose closes the file even when rendering already failed.
	return pdf.OutputFileAndClose(path)
}
