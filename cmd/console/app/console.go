package app

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/cloudgov/console/pkg/costs"
	"github.com/cloudgov/console/pkg/demo"
	"github.com/cloudgov/console/pkg/inventory"
	"github.com/cloudgov/console/pkg/storage"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Console serves the dashboard REST API.
type Console struct {
	log       *zap.SugaredLogger
	tracer    trace.Tracer
	findings  storage.FindingStorage
	resources storage.ResourceStorage
	roles     storage.RoleStorage
	users     storage.UserStorage
	policies  storage.PolicyStorage
	costs     *costs.Generator
	demoData  *demo.Generator
	inventory *inventory.AWSInventory

	Host  string
	Token string
	Demo  bool

	// used to hold the server so that we can shut it down
	httpServer *http.Server
}

func New() *Console {
	return &Console{}
}

type ConsoleOptions struct {
	Logger          *zap.SugaredLogger
	Tracer          trace.Tracer
	FindingStorage  storage.FindingStorage
	ResourceStorage storage.ResourceStorage
	RoleStorage     storage.RoleStorage
	UserStorage     storage.UserStorage
	PolicyStorage   storage.PolicyStorage
	Costs           *costs.Generator
	DemoData        *demo.Generator
	Inventory       *inventory.AWSInventory
}

func (c *Console) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Host, "console-host", "0.0.0.0:14321", "the console hostname to listen on")
	fs.StringVar(&c.Token, "console-token", "", "static API token; requests must carry it in x-cloudgov-token (empty disables the check)")
	fs.BoolVar(&c.Demo, "demo", true, "serve synthetic data instead of reading a real AWS account")
}

func (c *Console) Start(opts *ConsoleOptions) error {
	c.log = opts.Logger
	c.tracer = opts.Tracer
	c.findings = opts.FindingStorage
	c.resources = opts.ResourceStorage
	c.roles = opts.RoleStorage
	c.users = opts.UserStorage
	c.policies = opts.PolicyStorage
	c.costs = opts.Costs
	c.demoData = opts.DemoData
	c.inventory = opts.Inventory

	c.log.With("console-host", c.Host, "demo", c.Demo).Info("starting CloudGov console")

	errorLog, _ := zap.NewStdLogAt(c.log.Desugar(), zap.ErrorLevel)

	server := &http.Server{
		Addr:     c.Host,
		ErrorLog: errorLog,
		Handler:  c.GetConsoleRoutes(),
	}

	c.httpServer = server

	go func() {
		err := server.ListenAndServe()
		if err != nil {
			if err != http.ErrServerClosed {
				c.log.Errorw("Could not start console HTTP server", zap.Error(err))
			}
		}
	}()

	return nil
}

func (c *Console) Close() error {
	if c.httpServer != nil {
		timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.httpServer.Shutdown(timeout); err != nil {
			c.log.With(zap.Error(err)).Fatal("failed to stop the console HTTP server")
		}
	}

	return nil
}
