package app

import (
	"time"

	"github.com/cloudgov/console/cmd/console/app/api"
	"github.com/cloudgov/console/internal/middleware"
	"github.com/go-chi/chi"

	chiMiddleware "github.com/go-chi/chi/middleware"
)

func (c *Console) GetConsoleRoutes() *chi.Mux {
	router := chi.NewRouter()
	handlers := api.Handlers{
		Log:       c.log,
		Demo:      c.Demo,
		DemoData:  c.demoData,
		Findings:  c.findings,
		Resources: c.resources,
		Roles:     c.roles,
		Users:     c.users,
		Policies:  c.policies,
		Costs:     c.costs,
		Inventory: c.inventory,
	}

	// liveness probe outside the authenticated group
	check := api.Check{Log: c.log}
	router.Get("/api/v1/health", check.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.RequestID)
		r.Use(chiMiddleware.RealIP)
		r.Use(middleware.Logger(c.log.Desugar()))
		r.Use(chiMiddleware.Recoverer)
		r.Use(chiMiddleware.Timeout(10 * time.Second))
		r.Use(middleware.Tracing)
		r.Use(middleware.SimpleTokenAuth(c.Token))

		r.Get("/account", handlers.GetAccount)

		r.Route("/resources", func(r chi.Router) {
			r.Get("/", handlers.ListResources)
			r.Get("/{resourceID}", handlers.GetResource)
		})

		r.Get("/costs", handlers.GetCosts)

		r.Route("/iam", func(r chi.Router) {
			r.Route("/roles", func(r chi.Router) {
				r.Get("/", handlers.ListRoles)
				r.Post("/", handlers.CreateRole)
				r.Get("/{roleName}", handlers.GetRole)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", handlers.ListUsers)
				r.Post("/", handlers.CreateUser)
			})

			r.Get("/policies", handlers.ListPolicies)
		})

		r.Route("/security", func(r chi.Router) {
			r.Route("/findings", func(r chi.Router) {
				r.Get("/", handlers.ListFindings)
				r.Post("/", handlers.CreateFinding)
				r.Get("/{findingID}", handlers.GetFinding)
				r.Put("/{findingID}/status", handlers.SetFindingStatus)
			})

			r.Get("/compliance", handlers.GetCompliance)
			r.Get("/export", handlers.ExportFindings)
		})
	})

	return router
}
