package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/services"
)

// measurementResponse is the JSON shape for a measurement record.
type measurementResponse struct {
	ID       string         `json:"id"`
	ItemID   string         `json:"item_id"`
	System   string         `json:"system_type"`
	Size     string         `json:"size"`
	LengthFt float64        `json:"length_ft"`
	Fittings map[string]int `json:"fittings,omitempty"`
	Location string         `json:"location,omitempty"`
	Notes    string         `json:"notes,omitempty"`
}

func measurementToResponse(r *core.Record) measurementResponse {
	fittings := make(map[string]int)
	for _, kind := range []string{"elbow", "tee", "reducer", "valve"} {
		if n := r.GetInt(kind + "s"); n > 0 {
			fittings[kind] = n
		}
	}
	return measurementResponse{
		ID:       r.Id,
		ItemID:   r.GetString("item_id"),
		System:   r.GetString("system_type"),
		Size:     r.GetString("size"),
		LengthFt: r.GetFloat("length_ft"),
		Fittings: fittings,
		Location: r.GetString("location"),
		Notes:    r.GetString("notes"),
	}
}

// HandleMeasurementList returns a project's measurements.
// Route: GET /api/estimator/projects/{projectId}/measurements
func HandleMeasurementList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"measurements", "project = {:projectId}", "item_id", 0, 0,
			map[string]any{"projectId": projectID})
		if err != nil {
			log.Printf("measurements: list failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to list measurements")
		}

		out := make([]measurementResponse, 0, len(records))
		for _, r := range records {
			out = append(out, measurementToResponse(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// measurementRequest is the JSON body for creating a measurement.
type measurementRequest struct {
	ItemID   string         `json:"item_id"`
	System   string         `json:"system_type"`
	Size     string         `json:"size"`
	LengthFt float64        `json:"length_ft"`
	Fittings map[string]int `json:"fittings"`
	Location string         `json:"location"`
	Notes    string         `json:"notes"`
}

// HandleMeasurementCreate adds a single measurement to a project.
// Route: POST /api/estimator/projects/{projectId}/measurements
func HandleMeasurementCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		var req measurementRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		if req.ItemID == "" || req.Size == "" {
			return jsonError(e, http.StatusBadRequest, "item_id and size are required")
		}
		if services.ParseSystemType(req.System) == services.SystemUnknown {
			return jsonError(e, http.StatusBadRequest, "system_type must be duct, pipe, or equipment")
		}
		if req.LengthFt < 0 {
			return jsonError(e, http.StatusBadRequest, "length_ft must be non-negative")
		}

		col, err := app.FindCollectionByNameOrId("measurements")
		if err != nil {
			return jsonError(e, http.StatusInternalServerError, "Measurements collection not found")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("item_id", req.ItemID)
		record.Set("system_type", req.System)
		record.Set("size", req.Size)
		record.Set("length_ft", req.LengthFt)
		for kind, n := range req.Fittings {
			if n > 0 {
				record.Set(kind+"s", n)
			}
		}
		record.Set("location", req.Location)
		record.Set("notes", req.Notes)

		if err := app.Save(record); err != nil {
			log.Printf("measurements: create failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to create measurement")
		}
		return e.JSON(http.StatusCreated, measurementToResponse(record))
	}
}

// HandleMeasurementDelete removes one measurement.
// Route: DELETE /api/estimator/projects/{projectId}/measurements/{id}
func HandleMeasurementDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("measurements", e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Measurement not found")
		}
		if record.GetString("project") != e.Request.PathValue("projectId") {
			return jsonError(e, http.StatusNotFound, "Measurement not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("measurements: delete failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete measurement")
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleMeasurementImport receives a takeoff file upload, validates it, and
// saves the valid rows. The validation summary is returned either way; rows
// with errors are never saved.
// Route: POST /api/estimator/projects/{projectId}/measurements/import
func HandleMeasurementImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "No file uploaded")
		}
		defer file.Close()

		result, err := services.ValidateMeasurementFile(file, header.Filename)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("measurements")
		if err != nil {
			return jsonError(e, http.StatusInternalServerError, "Measurements collection not found")
		}

		for _, item := range result.Items {
			record := core.NewRecord(col)
			record.Set("project", projectID)
			record.Set("item_id", item.ID)
			record.Set("system_type", string(item.System))
			record.Set("size", item.Size)
			record.Set("length_ft", item.LengthFt)
			for kind, n := range item.Fittings {
				record.Set(kind+"s", n)
			}
			record.Set("location", item.Location)
			if len(item.Notes) > 0 {
				record.Set("notes", item.Notes[0])
			}
			if err := app.Save(record); err != nil {
				log.Printf("measurements: import save %q failed: %v", item.ID, err)
				return jsonError(e, http.StatusInternalServerError,
					fmt.Sprintf("Failed to save measurement %q", item.ID))
			}
		}

		return e.JSON(http.StatusOK, result)
	}
}

// HandleMeasurementTemplateDownload serves the xlsx takeoff import template.
// Route: GET /api/estimator/measurements/template
func HandleMeasurementTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateImportTemplate("Measurements", services.MeasurementTemplateFields())
		if err != nil {
			log.Printf("measurements: template generation failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="measurement_template.xlsx"`)
		e.Response.Write(xlsxBytes)
		return nil
	}
}
