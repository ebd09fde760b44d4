package ports

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// TraceCache caché de lectura de la consulta pública por QR.
// Get devuelve (nil, nil) cuando no hay entrada. Set asocia la entrada a las etiquetas de
// los registros editables de los que depende la cadena (fábrica y proveedores).
type TraceCache interface {
	Get(ctx context.Context, qrCodeID string) (*dto.TraceResponse, error)
	Set(ctx context.Context, qrCodeID string, trace *dto.TraceResponse, tags ...string) error
	TraceInvalidator
}

// TraceInvalidator descarta las cadenas cacheadas asociadas a las etiquetas.
type TraceInvalidator interface {
	Invalidate(ctx context.Context, tags ...string) error
}

// FactoryTraceTag etiqueta de caché de las cadenas producidas en la fábrica.
func FactoryTraceTag(factoryID string) string { return "factory:" + factoryID }

// SupplierTraceTag etiqueta de caché de las cadenas con insumos del proveedor.
func SupplierTraceTag(supplierID string) string { return "supplier:" + supplierID }

// TraceExporter serializa la cadena a un documento EPCIS y devuelve su digest canónico.
type TraceExporter interface {
	ExportEPCIS(ctx context.Context, trace *dto.TraceResponse) (doc []byte, digest string, err error)
}

// LabelRenderer genera la etiqueta imprimible (PDF) con el QR del lote.
type LabelRenderer interface {
	RenderLabel(ctx context.Context, trace *dto.TraceResponse, publicURL string) ([]byte, error)
}

// ReportRenderer genera el PDF de un reporte de cumplimiento.
type ReportRenderer interface {
	RenderReport(ctx context.Context, report *entity.ComplianceReport, company *entity.Company) ([]byte, error)
}
