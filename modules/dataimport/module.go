package dataimport

import (
	"github.com/bookline-app/bookline/modules/dataimport/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/dataimport/presentation/controllers"
	"github.com/bookline-app/bookline/modules/dataimport/services"
	"github.com/bookline-app/bookline/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewImportService(
			persistence.NewImportBatchRepository(),
			persistence.NewPgTenantStore(),
			app.EventPublisher(),
		),
	)

	app.RegisterControllers(
		controllers.NewImportController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "dataimport"
}
