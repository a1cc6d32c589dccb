package hrm

import (
	"github.com/bookline-app/bookline/modules/hrm/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/hrm/presentation/controllers"
	"github.com/bookline-app/bookline/modules/hrm/services"
	"github.com/bookline-app/bookline/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewEmployeeService(persistence.NewEmployeeRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewEmployeeController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "hrm"
}
