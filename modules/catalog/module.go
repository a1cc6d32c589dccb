package catalog

import (
	"github.com/bookline-app/bookline/modules/catalog/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/catalog/presentation/controllers"
	"github.com/bookline-app/bookline/modules/catalog/services"
	"github.com/bookline-app/bookline/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewCatalogService(persistence.NewServiceRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewServiceController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "catalog"
}
