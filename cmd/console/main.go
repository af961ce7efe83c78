package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	consoleApp "github.com/cloudgov/console/cmd/console/app"
	"github.com/cloudgov/console/internal/tracing"
	"github.com/cloudgov/console/pkg/costs"
	"github.com/cloudgov/console/pkg/demo"
	"github.com/cloudgov/console/pkg/ingest"
	"github.com/cloudgov/console/pkg/inventory"
	"github.com/cloudgov/console/pkg/service"
	"github.com/cloudgov/console/pkg/storage"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"
)

type ConsoleCommand struct {
	TracingFactory *tracing.TracingFactory
	StorageFactory *storage.Factory
	Console        *consoleApp.Console

	IngestQueueURL string
	AdminPort      int
}

func main() {
	cmd := NewConsoleCommand()

	if err := cmd.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func NewConsoleCommand() *ffcli.Command {
	c := ConsoleCommand{}

	c.TracingFactory = tracing.NewFactory()
	c.StorageFactory = storage.NewFactory()
	c.Console = consoleApp.New()

	fs := flag.NewFlagSet("cloudgov-console", flag.ExitOnError)

	// register CLI flags for other components
	c.TracingFactory.AddFlags(fs)
	c.StorageFactory.AddFlags(fs)
	c.Console.AddFlags(fs)

	fs.StringVar(&c.IngestQueueURL, "ingest-queue-url", "", "SQS queue to poll for scanner findings (empty disables ingestion)")
	fs.IntVar(&c.AdminPort, "admin-port", 10866, "the port to serve the health check and pprof endpoints on")

	return &ffcli.Command{
		Name:       "cloudgov-console",
		ShortUsage: "CloudGov console serves the cloud governance dashboard API",
		ShortHelp:  "Run the CloudGov console.",
		FlagSet:    fs,
		// allow setting environment variables to configure server settings
		Options:     []ff.Option{ff.WithEnvVarPrefix("CLOUDGOV")},
		Subcommands: []*ffcli.Command{NewReportCommand()},
		Exec:        c.Exec,
	}
}

func (c *ConsoleCommand) Exec(ctx context.Context, _ []string) error {
	svc := service.NewService(c.AdminPort)
	if err := svc.Start(); err != nil {
		return err
	}

	log := svc.Logger
	tracer, err := c.TracingFactory.InitializeTracer(ctx)
	if err != nil {
		return err
	}
	findings, err := c.StorageFactory.GetFindingStorage(ctx, &storage.FactorySetupOpts{Log: log})
	if err != nil {
		return err
	}

	gen := demo.New(nil)
	policies := gen.Policies()

	resourceStorage, err := c.StorageFactory.GetResourceStorage(ctx, gen.Resources(50), &storage.FactorySetupOpts{Log: log})
	if err != nil {
		return err
	}
	policyStorage := storage.NewInMemoryPolicyStorage(policies)
	roleStorage := storage.NewInMemoryRoleStorage(gen.Roles(policies))
	userStorage := storage.NewInMemoryUserStorage(gen.Users())

	if mem, ok := findings.(*storage.InMemoryFindingStorage); ok {
		mem.Seed(gen.Findings(25))
	}

	var inv *inventory.AWSInventory
	if !c.Console.Demo {
		inv, err = inventory.NewAWSInventory(ctx, log)
		if err != nil {
			return err
		}
	}

	var ingester *ingest.SQSIngester
	if c.IngestQueueURL != "" {
		ingester, err = ingest.NewSQSIngester(ctx, &ingest.SQSIngesterConfig{
			Log:      log,
			QueueUrl: c.IngestQueueURL,
			Findings: findings,
		})
		if err != nil {
			return err
		}
		ingester.Start(ctx)
	}

	if err := c.Console.Start(&consoleApp.ConsoleOptions{
		Logger:          log,
		Tracer:          tracer,
		FindingStorage:  findings,
		ResourceStorage: resourceStorage,
		RoleStorage:     roleStorage,
		UserStorage:     userStorage,
		PolicyStorage:   policyStorage,
		Costs:           costs.NewGenerator(nil),
		DemoData:        gen,
		Inventory:       inv,
	}); err != nil {
		return err
	}

	svc.RunAndThen(func() {
		if ingester != nil {
			ingester.Shutdown()
		}
		if err := c.Console.Close(); err != nil {
			log.Fatal("failed to close console", zap.Error(err))
		}
	})
	return nil
}
