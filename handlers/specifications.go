package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/services"
)

// specResponse is the JSON shape for a specification record.
type specResponse struct {
	ID                  string   `json:"id"`
	SortOrder           int      `json:"sort_order"`
	System              string   `json:"system_type"`
	SizeRange           string   `json:"size_range,omitempty"`
	ThicknessIn         float64  `json:"thickness_in"`
	Material            string   `json:"material"`
	Facing              string   `json:"facing,omitempty"`
	SpecialRequirements []string `json:"special_requirements,omitempty"`
	Location            string   `json:"location,omitempty"`
}

func specToResponse(r *core.Record) specResponse {
	spec := specFromRecord(r)
	return specResponse{
		ID:                  r.Id,
		SortOrder:           r.GetInt("sort_order"),
		System:              string(spec.System),
		SizeRange:           spec.SizeRange,
		ThicknessIn:         spec.ThicknessIn,
		Material:            spec.Material,
		Facing:              spec.Facing,
		SpecialRequirements: spec.SpecialRequirements,
		Location:            spec.Location,
	}
}

// HandleSpecList returns a project's specifications in matching order.
// Route: GET /api/estimator/projects/{projectId}/specifications
func HandleSpecList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"specifications", "project = {:projectId}", "sort_order", 0, 0,
			map[string]any{"projectId": projectID})
		if err != nil {
			log.Printf("specifications: list failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to list specifications")
		}

		out := make([]specResponse, 0, len(records))
		for _, r := range records {
			out = append(out, specToResponse(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// specRequest is the JSON body for creating a specification.
type specRequest struct {
	SortOrder           int      `json:"sort_order"`
	System              string   `json:"system_type"`
	SizeRange           string   `json:"size_range"`
	ThicknessIn         float64  `json:"thickness_in"`
	Material            string   `json:"material"`
	Facing              string   `json:"facing"`
	SpecialRequirements []string `json:"special_requirements"`
	Location            string   `json:"location"`
}

// HandleSpecCreate adds a specification to a project.
// Route: POST /api/estimator/projects/{projectId}/specifications
func HandleSpecCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		var req specRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		if services.ParseSystemType(req.System) == services.SystemUnknown {
			return jsonError(e, http.StatusBadRequest, "system_type must be duct, pipe, or equipment")
		}
		if req.ThicknessIn <= 0 {
			return jsonError(e, http.StatusBadRequest, "thickness_in must be positive")
		}
		if req.Material == "" {
			return jsonError(e, http.StatusBadRequest, "material is required")
		}

		col, err := app.FindCollectionByNameOrId("specifications")
		if err != nil {
			return jsonError(e, http.StatusInternalServerError, "Specifications collection not found")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("sort_order", req.SortOrder)
		record.Set("system_type", req.System)
		record.Set("size_range", req.SizeRange)
		record.Set("thickness_in", req.ThicknessIn)
		record.Set("material", req.Material)
		record.Set("facing", req.Facing)
		if len(req.SpecialRequirements) > 0 {
			record.Set("special_requirements", req.SpecialRequirements)
		}
		record.Set("location", req.Location)

		if err := app.Save(record); err != nil {
			log.Printf("specifications: create failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to create specification")
		}
		return e.JSON(http.StatusCreated, specToResponse(record))
	}
}

// HandleSpecDelete removes one specification.
// Route: DELETE /api/estimator/projects/{projectId}/specifications/{id}
func HandleSpecDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("specifications", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Specification not found")
		}
		if record.GetString("project") != e.Request.PathValue("projectId") {
			return jsonError(e, http.StatusNotFound, "Specification not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("specifications: delete failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete specification")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
