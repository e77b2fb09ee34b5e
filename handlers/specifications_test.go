package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"insulationestimator/testhelpers"
)

func TestHandleSpecCreate_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Spec Project")
	handler := HandleSpecCreate(app)

	body := `{"sort_order": 2, "system_type": "pipe", "size_range": "2.5\" and up", "thickness_in": 1.5, "material": "fiberglass", "facing": "ASJ", "special_requirements": ["mastic_coating"], "location": "outdoor"}`
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/estimator/projects/%s/specifications", proj.Id), strings.NewReader(body))
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp specResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Material != "fiberglass" || resp.Facing != "ASJ" {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.SpecialRequirements) != 1 || resp.SpecialRequirements[0] != "mastic_coating" {
		t.Errorf("special requirements = %v", resp.SpecialRequirements)
	}
}

func TestHandleSpecCreate_Invalid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Bad Spec Project")
	handler := HandleSpecCreate(app)

	tests := []struct {
		name string
		body string
	}{
		{"unknown system", `{"system_type": "conduit", "thickness_in": 1.5, "material": "fiberglass"}`},
		{"zero thickness", `{"system_type": "duct", "thickness_in": 0, "material": "fiberglass"}`},
		{"missing material", `{"system_type": "duct", "thickness_in": 1.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/estimator/projects/%s/specifications", proj.Id), strings.NewReader(tt.body))
			req.SetPathValue("projectId", proj.Id)
			rec := httptest.NewRecorder()
			if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleSpecList_SortedByOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Spec Order Project")

	// insert out of order; the list must come back by sort_order because the
	// engine takes the first matching spec
	for _, body := range []string{
		`{"sort_order": 2, "system_type": "pipe", "thickness_in": 1.5, "material": "fiberglass"}`,
		`{"sort_order": 1, "system_type": "pipe", "thickness_in": 1.0, "material": "elastomeric"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/estimator/projects/%s/specifications", proj.Id), strings.NewReader(body))
		req.SetPathValue("projectId", proj.Id)
		rec := httptest.NewRecorder()
		if err := HandleSpecCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/estimator/projects/%s/specifications", proj.Id), nil)
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	if err := HandleSpecList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("list error: %v", err)
	}

	var resp []specResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(resp))
	}
	if resp[0].Material != "elastomeric" || resp[1].Material != "fiberglass" {
		t.Errorf("order = %s, %s; want elastomeric first", resp[0].Material, resp[1].Material)
	}
}

func TestHandleSpecDelete_WrongProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	projA := testhelpers.CreateTestProject(t, app, "Spec Owner")
	projB := testhelpers.CreateTestProject(t, app, "Spec Other")
	spec := testhelpers.CreateTestSpec(t, app, projA.Id, "duct", "fiberglass", 1.5)
	handler := HandleSpecDelete(app)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/estimator/projects/%s/specifications/%s", projB.Id, spec.Id), nil)
	req.SetPathValue("projectId", projB.Id)
	req.SetPathValue("id", spec.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
