package traceability

import (
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

func toRawMaterialResponse(b *entity.RawMaterialBatch) *dto.RawMaterialResponse {
	return &dto.RawMaterialResponse{
		ID:             b.ID,
		SupplierID:     b.SupplierID,
		MaterialName:   b.MaterialName,
		MaterialType:   b.MaterialType,
		BatchNumber:    b.BatchNumber,
		Quantity:       b.Quantity,
		Unit:           b.Unit,
		ReceivedDate:   dto.FormatDate(b.ReceivedDate),
		Certifications: b.Certifications,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
	}
}

func toProductionRunResponse(r *entity.ProductionRun, inputs []*entity.ProductionRunInput) *dto.ProductionRunResponse {
	out := &dto.ProductionRunResponse{
		ID:            r.ID,
		FactoryID:     r.FactoryID,
		RunNumber:     r.RunNumber,
		ProductType:   r.ProductType,
		StartDate:     dto.FormatDate(r.StartDate),
		EndDate:       dto.FormatDatePtr(r.EndDate),
		UnitsProduced: r.UnitsProduced,
		Notes:         r.Notes,
		Inputs:        make([]dto.ProductionRunInputResponse, 0, len(inputs)),
		CreatedAt:     r.CreatedAt,
	}
	for _, in := range inputs {
		out.Inputs = append(out.Inputs, dto.ProductionRunInputResponse{
			ID:                 in.ID,
			RawMaterialBatchID: in.RawMaterialBatchID,
			QuantityUsed:       in.QuantityUsed,
			Unit:               in.Unit,
		})
	}
	return out
}

func toFinishedGoodResponse(g *entity.FinishedGoodBatch) *dto.FinishedGoodResponse {
	return &dto.FinishedGoodResponse{
		ID:              g.ID,
		ProductionRunID: g.ProductionRunID,
		QRCodeID:        g.QRCodeID,
		ProductName:     g.ProductName,
		ProductSKU:      g.ProductSKU,
		Quantity:        g.Quantity,
		Unit:            g.Unit,
		ProductionDate:  dto.FormatDate(g.ProductionDate),
		Notes:           g.Notes,
		CreatedAt:       g.CreatedAt,
	}
}

// toTraceResponse una entrada de raw_materials por cada insumo de la corrida.
func toTraceResponse(c *repository.TraceChain) *dto.TraceResponse {
	out := &dto.TraceResponse{
		FinishedGood: dto.TraceFinishedGood{
			ID:              c.FinishedGood.ID,
			QRCodeID:        c.FinishedGood.QRCodeID,
			ProductionRunID: c.FinishedGood.ProductionRunID,
			ProductName:     c.FinishedGood.ProductName,
			ProductSKU:      c.FinishedGood.ProductSKU,
			Quantity:        c.FinishedGood.Quantity,
			Unit:            c.FinishedGood.Unit,
			ProductionDate:  dto.FormatDate(c.FinishedGood.ProductionDate),
		},
		ProductionRun: dto.TraceProductionRun{
			ID:            c.ProductionRun.ID,
			RunNumber:     c.ProductionRun.RunNumber,
			ProductType:   c.ProductionRun.ProductType,
			StartDate:     dto.FormatDate(c.ProductionRun.StartDate),
			EndDate:       dto.FormatDatePtr(c.ProductionRun.EndDate),
			UnitsProduced: c.ProductionRun.UnitsProduced,
			Factory: dto.TraceFactory{
				Name:    c.Factory.Name,
				City:    c.Factory.City,
				Country: c.Factory.Country,
			},
		},
		RawMaterials: make([]dto.TraceRawMaterial, 0, len(c.RawMaterials)),
	}
	for _, rm := range c.RawMaterials {
		out.RawMaterials = append(out.RawMaterials, dto.TraceRawMaterial{
			ID:           rm.BatchID,
			MaterialName: rm.MaterialName,
			MaterialType: rm.MaterialType,
			BatchNumber:  rm.BatchNumber,
			QuantityUsed: rm.QuantityUsed,
			Unit:         rm.Unit,
			ReceivedDate: dto.FormatDate(rm.ReceivedDate),
			Supplier: dto.TraceSupplier{
				Name:           rm.Supplier.Name,
				Country:        rm.Supplier.Country,
				Certifications: rm.Supplier.Certifications,
			},
		})
	}
	return out
}
