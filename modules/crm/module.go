package crm

import (
	"github.com/bookline-app/bookline/modules/crm/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/crm/presentation/controllers"
	"github.com/bookline-app/bookline/modules/crm/services"
	"github.com/bookline-app/bookline/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewCustomerService(persistence.NewCustomerRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewCustomerController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "crm"
}
