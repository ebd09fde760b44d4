package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// DefaultReportTimeout tiempo máximo de espera al servicio de reportes.
const DefaultReportTimeout = 60 * time.Second

// ReportObserver recibe la duración y el resultado de cada generación (métricas).
type ReportObserver interface {
	ReportDone(reportType, result string, since time.Time)
}

// ReportUseCase orquesta la generación de reportes ESG. Las métricas y la narrativa las
// produce el servicio externo; aquí solo se valida el periodo y se persiste el resultado.
type ReportUseCase struct {
	repo        repository.ReportRepository
	companyRepo repository.CompanyRepository
	generator   ports.ReportGenerator
	renderer    ports.ReportRenderer
	timeout     time.Duration
	observer    ReportObserver
}

// NewReportUseCase construye el caso de uso. timeout <= 0 usa DefaultReportTimeout.
func NewReportUseCase(
	repo repository.ReportRepository,
	companyRepo repository.CompanyRepository,
	generator ports.ReportGenerator,
	renderer ports.ReportRenderer,
	timeout time.Duration,
	observer ReportObserver,
) *ReportUseCase {
	if timeout <= 0 {
		timeout = DefaultReportTimeout
	}
	return &ReportUseCase{
		repo:        repo,
		companyRepo: companyRepo,
		generator:   generator,
		renderer:    renderer,
		timeout:     timeout,
		observer:    observer,
	}
}

// Generate pide el reporte al servicio externo y lo guarda. Un fallo del servicio se
// devuelve envuelto en domain.ErrUpstream.
func (uc *ReportUseCase) Generate(ctx context.Context, companyID, userID string, in dto.GenerateReportRequest) (*dto.ReportResponse, error) {
	start, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	end, err := dto.ParseDate(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date no puede ser anterior a start_date", domain.ErrInvalidInput)
	}
	if in.ReportType != entity.ReportTypeGRI && in.ReportType != entity.ReportTypeCSDDD {
		return nil, fmt.Errorf("%w: report_type debe ser GRI o CSDDD", domain.ErrInvalidInput)
	}

	began := time.Now()
	genCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	generated, err := uc.generator.GenerateReport(genCtx, ports.ReportRequest{
		CompanyID:  companyID,
		ReportType: in.ReportType,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		uc.done(in.ReportType, "failed", began)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	report := &entity.ComplianceReport{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		ReportType:    in.ReportType,
		StartDate:     start,
		EndDate:       end,
		ReportContent: generated.ReportContent,
		Metrics:       generated.Metrics,
		GeneratedBy:   userID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, report); err != nil {
		uc.done(in.ReportType, "failed", began)
		return nil, err
	}
	uc.done(in.ReportType, "ok", began)
	return toReportResponse(report), nil
}

// List reportes de la empresa, más recientes primero, sin contenido.
func (uc *ReportUseCase) List(ctx context.Context, companyID string) (*dto.ReportListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReportSummary, 0, len(list))
	for _, r := range list {
		items = append(items, dto.ReportSummary{
			ID:         r.ID,
			ReportType: r.ReportType,
			StartDate:  dto.FormatDate(r.StartDate),
			EndDate:    dto.FormatDate(r.EndDate),
			CreatedAt:  r.CreatedAt,
		})
	}
	return &dto.ReportListResponse{Items: items}, nil
}

// GetByID reporte completo de la empresa.
func (uc *ReportUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ReportResponse, error) {
	report, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// RenderPDF genera el PDF de un reporte guardado.
func (uc *ReportUseCase) RenderPDF(ctx context.Context, companyID, id string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("generador de PDF no configurado")
	}
	report, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderReport(ctx, report, company)
}

func (uc *ReportUseCase) get(ctx context.Context, companyID, id string) (*entity.ComplianceReport, error) {
	report, err := uc.repo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	return report, nil
}

func (uc *ReportUseCase) done(reportType, result string, since time.Time) {
	if uc.observer != nil {
		uc.observer.ReportDone(reportType, result, since)
	}
}

func toReportResponse(r *entity.ComplianceReport) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:            r.ID,
		ReportType:    r.ReportType,
		StartDate:     dto.FormatDate(r.StartDate),
		EndDate:       dto.FormatDate(r.EndDate),
		ReportContent: r.ReportContent,
		Metrics:       r.Metrics,
		GeneratedBy:   r.GeneratedBy,
		CreatedAt:     r.CreatedAt,
	}
}
