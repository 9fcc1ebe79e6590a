package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/enkooo/video-game-sales/internal/api/middleware"
	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/go-openapi/spec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("schema").
			To(handler.Schema).
			Doc("JSON schema every game record is checked against").
			Metadata(restfulspec.KeyOpenAPITags, []string{"schema"}).
			Returns(200, "OK", nil))

	ws.
		Route(ws.POST("/validate").
			To(handler.Validate).
			Doc("Validate a single game record").
			Metadata(restfulspec.KeyOpenAPITags, []string{"validate"}).
			Param(ws.QueryParameter("record_id", "Record identifier echoed in the result (generated when empty)").DataType("string").Required(false)).
			Reads(models.GameRecord{}).
			Writes(models.ValidationResult{}).
			Returns(200, "Valid record", models.ValidationResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(422, "Invalid record", models.ValidationResult{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/validate/batch").
			To(handler.ValidateBatch).
			Doc("Validate an array of game records").
			Metadata(restfulspec.KeyOpenAPITags, []string{"validate"}).
			Reads([]models.GameRecord{}).
			Writes([]models.ValidationResult{}).
			Returns(200, "OK", []models.ValidationResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}

// RegisterDocs serves the OpenAPI document for every registered web service.
func RegisterDocs(container *restful.Container) {
	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
		PostBuildSwaggerObjectHandler: func(swo *spec.Swagger) {
			swo.Info = &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       "Video Game Sales Validator",
					Description: "Validates video-game sales records against a fixed schema",
					Version:     Version,
				},
			}
		},
	}))
}

// RegisterMetrics exposes gatherer on /metrics.
func RegisterMetrics(container *restful.Container, gatherer prometheus.Gatherer) {
	container.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

// NewContainer builds the API container with filters, routes, docs and metrics.
func NewContainer(handler *Handler, gatherer prometheus.Gatherer) *restful.Container {
	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)

	RegisterRoutes(container, handler)
	RegisterDocs(container)
	if gatherer != nil {
		RegisterMetrics(container, gatherer)
	}

	return container
}
