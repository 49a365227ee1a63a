package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/analysis"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/content"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/service"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/solar"
)

func Register(app *fiber.App, svcs *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	g := app.Group("/")

	g.Get("content/meta", func(c *fiber.Ctx) error { return c.JSON(content.SiteMeta()) })
	g.Get("content/features", func(c *fiber.Ctx) error { return c.JSON(content.Features()) })

	g.Get("devices", func(c *fiber.Ctx) error { return c.JSON(domain.Devices()) })
	g.Get("devices/:id", func(c *fiber.Ctx) error {
		d, err := domain.DeviceByID(c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(d)
	})

	g.Get("electrical-consumption", func(c *fiber.Ctx) error {
		return c.JSON(svcs.Pages.ElectricalConsumption(c.UserContext()))
	})
	g.Get("electrical-consumption/summary", func(c *fiber.Ctx) error {
		data := svcs.Pages.ElectricalConsumption(c.UserContext())
		return c.JSON(svcs.Consumption.Summarize(data.CasaDoma))
	})

	g.Get("prototype", func(c *fiber.Ctx) error {
		return c.JSON(svcs.Pages.Prototype(c.UserContext()))
	})
	g.Get("prototype/projection", func(c *fiber.Ctx) error {
		data := svcs.Pages.Prototype(c.UserContext())
		return c.JSON(fiber.Map{"proyecciones": solar.ProjectAll(data.Mediciones)})
	})
	g.Get("solar/scaling", func(c *fiber.Ctx) error { return c.JSON(solar.Factors) })

	a := app.Group("/analysis")
	a.Post("/montecarlo", func(c *fiber.Ctx) error {
		var in analysis.SimulationInput
		if err := c.BodyParser(&in); err != nil {
			return badBody(c, err)
		}
		out, err := svcs.Analysis.MonteCarlo(c.UserContext(), in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	})
	a.Post("/optimize/linear", func(c *fiber.Ctx) error {
		var in analysis.SolarSystemConfig
		if err := c.BodyParser(&in); err != nil {
			return badBody(c, err)
		}
		out, err := svcs.Analysis.OptimizeLinear(c.UserContext(), in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	})
	a.Post("/optimize/nonlinear", func(c *fiber.Ctx) error {
		var in analysis.SolarPanelConfig
		if err := c.BodyParser(&in); err != nil {
			return badBody(c, err)
		}
		out, err := svcs.Analysis.OptimizeNonLinear(c.UserContext(), in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	})
	a.Post("/forecast", func(c *fiber.Ctx) error {
		var in analysis.ForecastConfig
		if err := c.BodyParser(&in); err != nil {
			return badBody(c, err)
		}
		out, err := svcs.Analysis.Forecast(c.UserContext(), in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	})
	a.Get("/runs", func(c *fiber.Ctx) error {
		kind := c.Query("kind")
		if kind != "" && !service.IsRunKind(kind) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown run kind: " + kind})
		}
		runs, err := svcs.Analysis.Runs(c.UserContext(), kind)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(runs)
	})

	e := app.Group("/exports")
	e.Post("/:page", func(c *fiber.Ctx) error {
		snap, err := svcs.Export.Snapshot(c.UserContext(), c.Params("page"))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(snap)
	})
	e.Get("/:page", func(c *fiber.Ctx) error {
		keys, err := svcs.Export.List(c.UserContext(), c.Params("page"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"keys": keys})
	})
	e.Get("/:page/:name", func(c *fiber.Ctx) error {
		b, err := svcs.Export.Get(c.UserContext(), c.Params("page"), c.Params("name"))
		if err != nil {
			return fail(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(b)
	})
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body: " + err.Error()})
}

// fail maps service errors onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var (
		verr *analysis.ValidationError
		rerr *analysis.RemoteError
	)
	switch {
	case errors.As(err, &verr):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownDevice),
		errors.Is(err, service.ErrUnknownPage),
		errors.Is(err, service.ErrUnknownSnapshot):
		status = fiber.StatusNotFound
	case errors.As(err, &rerr):
		status = fiber.StatusBadGateway
	case errors.Is(err, service.ErrCloudDisabled),
		errors.Is(err, service.ErrAnalysisUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
