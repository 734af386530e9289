package cli

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/throughput-go/internal/adapters/catalog"
	"github.com/andrescamacho/throughput-go/internal/adapters/logging"
	"github.com/andrescamacho/throughput-go/internal/adapters/metrics"
	"github.com/andrescamacho/throughput-go/internal/adapters/persistence"
	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/application/planner"
	"github.com/andrescamacho/throughput-go/internal/application/planner/commands"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
	"github.com/andrescamacho/throughput-go/internal/domain/shared"
	"github.com/andrescamacho/throughput-go/internal/infrastructure/config"
	"github.com/andrescamacho/throughput-go/internal/infrastructure/database"
)

// environment holds what every command needs: config, catalog, logger, metrics and the mediator.
// The history database is opened on first use.
type environment struct {
	cfg       *config.Config
	catalog   *production.Catalog
	logger    *logging.SlogLogger
	collector *metrics.PlannerMetricsCollector
	mediator  common.Mediator
	db        *gorm.DB
}

func newEnvironment(cfgPath, catalogOverride string, debug bool) (*environment, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if catalogOverride != "" {
		cfg.Catalog.Path = catalogOverride
	}
	if debug {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.NewSlogLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Close()
		return nil, err
	}

	e := &environment{
		cfg:     cfg,
		catalog: c,
		logger:  logger,
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		e.collector = metrics.NewPlannerMetricsCollector()
		if err := e.collector.Register(); err != nil {
			logger.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		e.collector.RecordCatalog(len(c.Items()), len(c.Producers()))
	}

	e.mediator = common.NewMediator()
	e.mediator.Use(common.LoggingMiddleware())
	err = commands.Register(e.mediator, commands.Handlers{
		Catalog:    c,
		Propagator: e.propagator(),
		Expander:   e.expander(),
		Batch:      e.batchPlanner(),
		History:    e.history,
	})
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	logger.Log(common.LevelDebug, "Catalog loaded", map[string]interface{}{
		"path":      cfg.Catalog.Path,
		"items":     len(c.Items()),
		"producers": len(c.Producers()),
	})

	return e, nil
}

// context attaches the logger to ctx for the application layer
func (e *environment) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, e.logger)
}

func (e *environment) propagator() *planner.ThroughputPropagator {
	p := planner.NewThroughputPropagator(e.catalog)
	p.SetMaxDepth(e.cfg.Catalog.MaxDepth)
	if e.collector != nil {
		p.SetMetricsRecorder(e.collector)
	}
	return p
}

func (e *environment) expander() *planner.RecipeExpander {
	x := planner.NewRecipeExpander(e.catalog)
	x.SetMaxDepth(e.cfg.Catalog.MaxDepth)
	if e.collector != nil {
		x.SetMetricsRecorder(e.collector)
	}
	return x
}

func (e *environment) batchPlanner() *planner.BatchPlanner {
	return planner.NewBatchPlanner(e.catalog, e.propagator(), e.cfg.Planner.Parallel)
}

// history opens the plan history database on first use
func (e *environment) history() (*planner.PlanHistory, error) {
	if e.db == nil {
		db, err := database.NewConnection(&e.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			database.Close(db)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		e.db = db
	}

	repo := persistence.NewGormPlanRepository(e.db)
	return planner.NewPlanHistory(repo, shared.NewRealClock()), nil
}

func (e *environment) close() error {
	var errs []error

	if e.collector != nil {
		errs = append(errs, metrics.WriteTextfile(e.cfg.Metrics.TextfilePath))
	}
	if e.db != nil {
		errs = append(errs, database.Close(e.db))
	}
	errs = append(errs, e.logger.Close())

	return errors.Join(errs...)
}
