package modules

import (
	"github.com/bookline-app/bookline/modules/catalog"
	"github.com/bookline-app/bookline/modules/crm"
	"github.com/bookline-app/bookline/modules/dataimport"
	"github.com/bookline-app/bookline/modules/hrm"
	"github.com/bookline-app/bookline/modules/scheduling"
	"github.com/bookline-app/bookline/pkg/application"
)

var BuiltInModules = []application.Module{
	crm.NewModule(),
	catalog.NewModule(),
	hrm.NewModule(),
	scheduling.NewModule(),
	dataimport.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
