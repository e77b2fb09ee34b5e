package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/services"
)

// projectResponse is the JSON shape for a project record.
type projectResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	ReferenceNumber string                   `json:"reference_number"`
	Client          string                   `json:"client"`
	Location        string                   `json:"location"`
	Status          string                   `json:"status"`
	PricingSettings services.PricingSettings `json:"pricing_settings"`
}

func projectToResponse(r *core.Record) projectResponse {
	return projectResponse{
		ID:              r.Id,
		Name:            r.GetString("name"),
		ReferenceNumber: r.GetString("reference_number"),
		Client:          r.GetString("client"),
		Location:        r.GetString("location"),
		Status:          r.GetString("status"),
		PricingSettings: loadPricingSettings(r),
	}
}

// HandleProjectList returns all projects, newest first.
// Route: GET /api/estimator/projects
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("projects", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("projects: list failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to list projects")
		}

		out := make([]projectResponse, 0, len(records))
		for _, r := range records {
			out = append(out, projectToResponse(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// projectRequest is the JSON body for creating or updating a project.
type projectRequest struct {
	Name            string                    `json:"name"`
	ReferenceNumber string                    `json:"reference_number"`
	Client          string                    `json:"client"`
	Location        string                    `json:"location"`
	Status          string                    `json:"status"`
	PricingSettings *services.PricingSettings `json:"pricing_settings"`
}

// HandleProjectCreate creates a new project.
// Route: POST /api/estimator/projects
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req projectRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		if req.Name == "" {
			return jsonError(e, http.StatusBadRequest, "Project name is required")
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			return jsonError(e, http.StatusInternalServerError, "Projects collection not found")
		}

		record := core.NewRecord(col)
		record.Set("name", req.Name)
		record.Set("reference_number", req.ReferenceNumber)
		record.Set("client", req.Client)
		record.Set("location", req.Location)
		status := req.Status
		if status == "" {
			status = "draft"
		}
		record.Set("status", status)
		if req.PricingSettings != nil {
			record.Set("pricing_settings", req.PricingSettings)
		}

		if err := app.Save(record); err != nil {
			log.Printf("projects: create failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to create project")
		}

		return e.JSON(http.StatusCreated, projectToResponse(record))
	}
}

// HandleProjectView returns one project.
// Route: GET /api/estimator/projects/{id}
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}
		return e.JSON(http.StatusOK, projectToResponse(record))
	}
}

// HandleProjectSettingsSave stores per-project pricing settings.
// Route: PUT /api/estimator/projects/{id}/settings
func HandleProjectSettingsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		var settings services.PricingSettings
		if err := json.NewDecoder(e.Request.Body).Decode(&settings); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		if settings.MaterialMarkupPct < 0 || settings.LaborMarkupPct < 0 ||
			settings.OverheadProfitPct < 0 || settings.ContingencyPct < 0 ||
			settings.LaborAdjustmentFactor < 0 || settings.LaborRatePerHour < 0 {
			return jsonError(e, http.StatusBadRequest, "Pricing settings must be non-negative")
		}

		record.Set("pricing_settings", settings)
		if err := app.Save(record); err != nil {
			log.Printf("projects: settings save failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to save settings")
		}

		return e.JSON(http.StatusOK, settings)
	}
}

// HandleProjectDelete removes a project and, via cascade, everything under it.
// Route: DELETE /api/estimator/projects/{id}
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("projects: delete failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete project")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
