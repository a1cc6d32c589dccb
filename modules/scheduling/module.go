package scheduling

import (
	"github.com/bookline-app/bookline/modules/scheduling/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/scheduling/presentation/controllers"
	"github.com/bookline-app/bookline/modules/scheduling/services"
	"github.com/bookline-app/bookline/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewBookingService(persistence.NewBookingRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewBookingController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "scheduling"
}
