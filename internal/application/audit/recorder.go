// Package audit registra en la bitácora cada request mutante exitoso. Es un efecto
// lateral: los fallos se loguean y se cuentan, nunca llegan al cliente.
package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

const apiPrefix = "/api/"

// sensitiveKeys se eliminan del after_value en cualquier nivel del JSON.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"token":         {},
	"access_token":  {},
}

// FailureObserver cuenta escrituras de auditoría fallidas.
type FailureObserver interface {
	AuditFailure()
}

// Entry lo observado de un request ya respondido.
type Entry struct {
	UserID    string
	CompanyID string
	Method    string
	Path      string
	Status    int
	Body      []byte
	IP        string
}

// Recorder escribe AuditLog a partir de requests respondidos.
type Recorder struct {
	repo     repository.AuditLogRepository
	log      *logger.Logger
	observer FailureObserver
}

// NewRecorder construye el recorder. observer puede ser nil.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger, observer FailureObserver) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{repo: repo, log: log, observer: observer}
}

// ShouldRecord POST/PUT/PATCH/DELETE 2xx bajo /api, fuera de /api/auth/, con usuario autenticado.
func ShouldRecord(method, path string, status int, userID string) bool {
	if userID == "" || status < 200 || status > 299 {
		return false
	}
	if verb(method) == "" {
		return false
	}
	if !strings.HasPrefix(path, apiPrefix) || strings.HasPrefix(path, apiPrefix+"auth/") {
		return false
	}
	return resource(path) != ""
}

// ActionType devuelve la acción (ej. CREATE_FACTORIES) y el tipo de recurso (factories).
// Un Caser no se comparte entre goroutines, por eso se crea en cada llamada.
func ActionType(method, path string) (action, resourceType string) {
	resourceType = resource(path)
	return cases.Upper(language.Und).String(verb(method) + "_" + resourceType), resourceType
}

// Record escribe el registro si corresponde. Nunca devuelve error.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	if !ShouldRecord(e.Method, e.Path, e.Status, e.UserID) {
		return
	}
	action, resourceType := ActionType(e.Method, e.Path)
	entry := &entity.AuditLog{
		ID:                 uuid.New().String(),
		UserID:             e.UserID,
		CompanyID:          e.CompanyID,
		ActionType:         action,
		TargetResourceID:   targetID(e.Body),
		TargetResourceType: resourceType,
		AfterValue:         sanitize(e.Body),
		IPAddress:          e.IP,
		CreatedAt:          time.Now().UTC(),
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		if r.observer != nil {
			r.observer.AuditFailure()
		}
		r.log.Warn().Err(err).
			Str("action_type", action).
			Str("company_id", e.CompanyID).
			Str("user_id", e.UserID).
			Msg("no se pudo registrar auditoría")
	}
}

func verb(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return ""
}

// resource primer segmento después de /api.
func resource(path string) string {
	rest := strings.TrimPrefix(path, apiPrefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func targetID(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	id := gjson.GetBytes(body, "id")
	switch id.Type {
	case gjson.String, gjson.Number:
		return id.String()
	}
	return ""
}

// sanitize decodifica la respuesta y quita las claves sensibles. Cuerpos que no son
// objeto JSON se guardan bajo "value".
func sanitize(body []byte) map[string]any {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	v = strip(v)
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{"value": v}
}

func strip(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if _, ok := sensitiveKeys[k]; ok {
				delete(t, k)
				continue
			}
			t[k] = strip(child)
		}
		return t
	case []any:
		for i := range t {
			t[i] = strip(t[i])
		}
		return t
	}
	return v
}
