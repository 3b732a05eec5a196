package admin

import (
	"net/http"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/api"
	"github.com/claudiu-carv/ats-mock-simulator/pkg/importer"
)

// ValidateTemplateRequest is the POST /templates/validate payload.
type ValidateTemplateRequest struct {
	Template string `json:"template"`
}

// ImportRequest is the POST /import/openapi payload. Format is json, yaml,
// or empty for auto-detection.
type ImportRequest struct {
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
}

// ImportResponse wraps the import result with the IDs of the records
// created in the store.
type ImportResponse struct {
	*api.ImportResult
	CreatedIDs []string `json:"created_ids"`
}

func (a *API) handleValidateTemplate(w http.ResponseWriter, r *http.Request) {
	var req ValidateTemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body")
		return
	}
	writeJSON(w, http.StatusOK, a.renderer.Validate(req.Template))
}

func (a *API) handleImportOpenAPI(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "empty_spec", "No specification content provided")
		return
	}

	format, err := parseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}

	result, err := a.importer.ImportSpec(r.Context(), req.Content, format)
	if err != nil {
		a.log.Error("OpenAPI import failed", "error", err)
		writeError(w, http.StatusBadRequest, "import_failed", err.Error())
		return
	}

	ids, err := a.storeImported(result.Endpoints)
	if err != nil {
		a.log.Error("storing imported endpoints failed", "error", err)
		writeError(w, http.StatusInternalServerError, "store_failed", "Failed to store imported endpoints")
		return
	}

	a.log.Info("OpenAPI spec imported",
		"endpoints", result.TotalEndpoints, "errors", len(result.Errors))
	writeJSON(w, http.StatusCreated, ImportResponse{
		ImportResult: result,
		CreatedIDs:   ids,
	})
}

// storeImported persists a batch of imported endpoints with their schemas
// and templates.
func (a *API) storeImported(endpoints []api.ImportedEndpoint) ([]string, error) {
	ids := make([]string, 0, len(endpoints))
	for _, imported := range endpoints {
		rec, err := a.store.CreateEndpoint(imported.Endpoint)
		if err != nil {
			return ids, err
		}
		if imported.Schema != nil {
			if _, err := a.store.CreateSchema(rec.ID, *imported.Schema); err != nil {
				return ids, err
			}
		}
		for _, tmpl := range imported.Templates {
			if _, err := a.store.CreateTemplate(rec.ID, tmpl); err != nil {
				return ids, err
			}
		}
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func parseFormat(s string) (importer.Format, error) {
	switch s {
	case "", "auto":
		return importer.FormatAuto, nil
	case "json":
		return importer.FormatJSON, nil
	case "yaml", "yml":
		return importer.FormatYAML, nil
	default:
		return importer.FormatAuto, &formatError{s}
	}
}

type formatError struct{ format string }

func (e *formatError) Error() string {
	return "unsupported format " + e.format + ": use json, yaml, or auto"
}
