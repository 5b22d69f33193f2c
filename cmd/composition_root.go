package cmd

import (
	"log/slog"
	"os"

	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/accountrepo"
	"fulfillment/internal/adapters/out/postgres/customerrepo"
	"fulfillment/internal/adapters/out/postgres/notifyrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateQuoteCommandHandler() commands.CreateQuoteCommandHandler {
	var f commands.QuoteUoWFactory = FuncQuoteUoWFactory(func() commands.QuoteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateQuoteCommandHandler(f,
		customerrepo.NewGormCustomerDirectory(c.gormDB),
		services.NewNumberSequence("QUO"),
		c.createNotifier())
}

func (c *CompositionRoot) CreateVendorReviewQuoteCommandHandler() commands.VendorReviewQuoteCommandHandler {
	var f commands.QuoteUoWFactory = FuncQuoteUoWFactory(func() commands.QuoteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVendorReviewQuoteCommandHandler(f, c.createIdentityProvider(), c.createNotifier())
}

func (c *CompositionRoot) CreateAdminReviewQuoteCommandHandler() commands.AdminReviewQuoteCommandHandler {
	var f commands.QuoteUoWFactory = FuncQuoteUoWFactory(func() commands.QuoteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdminReviewQuoteCommandHandler(f, c.createNotifier())
}

func (c *CompositionRoot) CreateConvertQuoteCommandHandler() commands.ConvertQuoteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewConvertQuoteCommandHandler(f, c.createIdentityProvider(),
		services.NewNumberSequence("ORD"), c.createNotifier(), c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.createIdentityProvider(),
		services.NewNumberSequence("ORD"), c.createNotifier())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.createWarehouseUoWFactory(), c.createNotifier())
}

func (c *CompositionRoot) CreateOpenPreparationCommandHandler() commands.OpenPreparationCommandHandler {
	return commands.NewOpenPreparationCommandHandler(c.createWarehouseUoWFactory(), c.createIdentityProvider())
}

func (c *CompositionRoot) CreateRecordProgressCommandHandler() commands.RecordProgressCommandHandler {
	return commands.NewRecordProgressCommandHandler(c.createWarehouseUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.createWarehouseUoWFactory(),
		c.createIdentityProvider(), c.createNotifier())
}

func (c *CompositionRoot) CreateReassignPreparationCommandHandler() commands.ReassignPreparationCommandHandler {
	return commands.NewReassignPreparationCommandHandler(c.createWarehouseUoWFactory(),
		c.createIdentityProvider(), c.createNotifier())
}

func (c *CompositionRoot) CreateAssignPendingCommandHandler() commands.AssignPendingCommandHandler {
	return commands.NewAssignPendingCommandHandler(c.createWarehouseUoWFactory(),
		c.createIdentityProvider(), c.createNotifier(), c.logger)
}

func (c *CompositionRoot) CreateGetPreparationQueryHandler() queries.GetPreparationQueryHandler {
	return queries.NewGetPreparationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWarehouseLoadQueryHandler() queries.GetWarehouseLoadQueryHandler {
	return queries.NewGetWarehouseLoadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSuggestRebalancingQueryHandler() queries.SuggestRebalancingQueryHandler {
	return queries.NewSuggestRebalancingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAssignPendingCommandHandler(), c.config.AssignRetryCron, c.logger)
}

func (c *CompositionRoot) createWarehouseUoWFactory() commands.WarehouseUoWFactory {
	return FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createIdentityProvider() *accountrepo.GormIdentityProvider {
	return accountrepo.NewGormIdentityProvider(c.gormDB)
}

func (c *CompositionRoot) createNotifier() commands.Notifier {
	return commands.NewNotifier(notifyrepo.NewGormNotificationSink(c.gormDB), c.logger)
}

type FuncQuoteUoWFactory func() commands.QuoteUoW

func (f FuncQuoteUoWFactory) Create() commands.QuoteUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncWarehouseUoWFactory func() commands.WarehouseUoW

func (f FuncWarehouseUoWFactory) Create() commands.WarehouseUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
