package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/collections"
	"insulationestimator/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Projects ─────────────────────────────────────────────
		se.Router.GET("/api/estimator/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/estimator/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/api/estimator/projects/{id}", handlers.HandleProjectView(app))
		se.Router.PUT("/api/estimator/projects/{id}/settings", handlers.HandleProjectSettingsSave(app))
		se.Router.DELETE("/api/estimator/projects/{id}", handlers.HandleProjectDelete(app))

		// ── Measurements ─────────────────────────────────────────
		se.Router.GET("/api/estimator/measurements/template", handlers.HandleMeasurementTemplateDownload(app))
		se.Router.GET("/api/estimator/projects/{projectId}/measurements", handlers.HandleMeasurementList(app))
		se.Router.POST("/api/estimator/projects/{projectId}/measurements", handlers.HandleMeasurementCreate(app))
		se.Router.POST("/api/estimator/projects/{projectId}/measurements/import", handlers.HandleMeasurementImport(app))
		se.Router.DELETE("/api/estimator/projects/{projectId}/measurements/{id}", handlers.HandleMeasurementDelete(app))

		// ── Specifications ───────────────────────────────────────
		se.Router.GET("/api/estimator/projects/{projectId}/specifications", handlers.HandleSpecList(app))
		se.Router.POST("/api/estimator/projects/{projectId}/specifications", handlers.HandleSpecCreate(app))
		se.Router.DELETE("/api/estimator/projects/{projectId}/specifications/{id}", handlers.HandleSpecDelete(app))

		// ── Price book ───────────────────────────────────────────
		se.Router.GET("/api/estimator/pricebook/template", handlers.HandlePriceBookTemplateDownload(app))
		se.Router.GET("/api/estimator/projects/{projectId}/pricebook", handlers.HandlePriceBookList(app))
		se.Router.POST("/api/estimator/projects/{projectId}/pricebook/import", handlers.HandlePriceBookImport(app))

		// ── Estimation and quotes ────────────────────────────────
		se.Router.POST("/api/estimator/projects/{projectId}/estimate", handlers.HandleEstimateRun(app))
		se.Router.GET("/api/estimator/projects/{projectId}/alternatives", handlers.HandleAlternatives(app))
		se.Router.GET("/api/estimator/projects/{projectId}/quotes", handlers.HandleQuoteList(app))
		se.Router.GET("/api/estimator/projects/{projectId}/quotes/{id}", handlers.HandleQuoteView(app))

		// ── Quote exports ────────────────────────────────────────
		se.Router.GET("/api/estimator/projects/{projectId}/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app))
		se.Router.GET("/api/estimator/projects/{projectId}/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
