// Package epcis serializa la cadena de trazabilidad como documento GS1 EPCIS 2.0 (XML).
// Un ObjectEvent por lote de materia prima recibido y un TransformationEvent por la corrida
// que los consume y produce el lote terminado.
package epcis

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
)

var _ ports.TraceExporter = (*Exporter)(nil)

const (
	NamespaceEPCIS = "urn:epcglobal:epcis:xsd:2"
	SchemaVersion  = "2.0"

	BizStepReceiving     = "urn:epcglobal:cbv:bizstep:receiving"
	BizStepCommissioning = "urn:epcglobal:cbv:bizstep:commissioning"
	DispositionInProgress = "urn:epcglobal:cbv:disp:in_progress"
	DispositionActive    = "urn:epcglobal:cbv:disp:active"
)

// Exporter implementa ports.TraceExporter.
type Exporter struct {
	// prefix base de los identificadores (URN) de lotes y productos.
	prefix string
	now    func() time.Time
}

// NewExporter crea el exportador. prefix vacío usa "urn:trazabilidad".
func NewExporter(prefix string) *Exporter {
	if prefix == "" {
		prefix = "urn:trazabilidad"
	}
	return &Exporter{prefix: prefix, now: time.Now}
}

// WithClock fija el reloj de creationDate (tests).
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// ExportEPCIS devuelve el XML y su digest "sha-256=<base64>" sobre la forma canónica C14N.
func (e *Exporter) ExportEPCIS(_ context.Context, trace *dto.TraceResponse) ([]byte, string, error) {
	if trace == nil {
		return nil, "", fmt.Errorf("epcis: cadena vacía")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("epcis:EPCISDocument")
	root.CreateAttr("xmlns:epcis", NamespaceEPCIS)
	root.CreateAttr("schemaVersion", SchemaVersion)
	root.CreateAttr("creationDate", e.now().UTC().Format(time.RFC3339))

	events := root.CreateElement("EPCISBody").CreateElement("EventList")
	for _, rm := range trace.RawMaterials {
		e.objectEvent(events, rm)
	}
	e.transformationEvent(events, trace)

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, "", fmt.Errorf("epcis: serializar: %w", err)
	}

	canonical, err := canonicalizeXML(out.Bytes())
	if err != nil {
		return nil, "", fmt.Errorf("epcis: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return out.Bytes(), "sha-256=" + base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (e *Exporter) objectEvent(events *etree.Element, rm dto.TraceRawMaterial) {
	ev := events.CreateElement("ObjectEvent")
	ev.CreateElement("eventTime").SetText(dateTime(rm.ReceivedDate))
	ev.CreateElement("eventTimeZoneOffset").SetText("+00:00")
	ev.CreateElement("epcList")
	ev.CreateElement("action").SetText("ADD")
	ev.CreateElement("bizStep").SetText(BizStepReceiving)
	ev.CreateElement("disposition").SetText(DispositionInProgress)

	q := ev.CreateElement("quantityList").CreateElement("quantityElement")
	q.CreateElement("epcClass").SetText(e.lot(rm.ID))
	q.CreateElement("quantity").SetText(rm.QuantityUsed.String())
	q.CreateElement("uom").SetText(rm.Unit)

	src := ev.CreateElement("sourceList").CreateElement("source")
	src.CreateAttr("type", "urn:epcglobal:cbv:sdt:owning_party")
	src.SetText(rm.Supplier.Name)

	ilmd := ev.CreateElement("ilmd")
	ilmd.CreateElement("materialName").SetText(rm.MaterialName)
	ilmd.CreateElement("materialType").SetText(rm.MaterialType)
	ilmd.CreateElement("batchNumber").SetText(rm.BatchNumber)
	ilmd.CreateElement("supplierCountry").SetText(rm.Supplier.Country)
	if rm.Supplier.Certifications != "" {
		ilmd.CreateElement("certifications").SetText(rm.Supplier.Certifications)
	}
}

func (e *Exporter) transformationEvent(events *etree.Element, trace *dto.TraceResponse) {
	run, fg := trace.ProductionRun, trace.FinishedGood
	ev := events.CreateElement("TransformationEvent")
	ev.CreateElement("eventTime").SetText(dateTime(fg.ProductionDate))
	ev.CreateElement("eventTimeZoneOffset").SetText("+00:00")

	inputs := ev.CreateElement("inputQuantityList")
	for _, rm := range trace.RawMaterials {
		q := inputs.CreateElement("quantityElement")
		q.CreateElement("epcClass").SetText(e.lot(rm.ID))
		q.CreateElement("quantity").SetText(rm.QuantityUsed.String())
		q.CreateElement("uom").SetText(rm.Unit)
	}
	out := ev.CreateElement("outputQuantityList").CreateElement("quantityElement")
	out.CreateElement("epcClass").SetText(e.prefix + ":qr:" + fg.QRCodeID)
	out.CreateElement("quantity").SetText(fmt.Sprint(fg.Quantity))
	out.CreateElement("uom").SetText(fg.Unit)

	ev.CreateElement("transformationID").SetText(e.prefix + ":run:" + run.ID)
	ev.CreateElement("bizStep").SetText(BizStepCommissioning)
	ev.CreateElement("disposition").SetText(DispositionActive)

	loc := ev.CreateElement("bizLocation")
	loc.CreateElement("id").SetText(e.prefix + ":factory:" + run.Factory.Name)

	ilmd := ev.CreateElement("ilmd")
	ilmd.CreateElement("productName").SetText(fg.ProductName)
	ilmd.CreateElement("productSKU").SetText(fg.ProductSKU)
	ilmd.CreateElement("runNumber").SetText(run.RunNumber)
	ilmd.CreateElement("factoryCity").SetText(run.Factory.City)
	ilmd.CreateElement("factoryCountry").SetText(run.Factory.Country)
}

func (e *Exporter) lot(batchID string) string {
	return e.prefix + ":lot:" + batchID
}

// dateTime fecha YYYY-MM-DD a medianoche UTC; si no parsea se deja tal cual.
func dateTime(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.UTC().Format(time.RFC3339)
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
