package app

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/x/cash"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/iov-one/weave-escrow/x/sigs"
	"github.com/iov-one/weave-escrow/x/token"
	"github.com/iov-one/weave-escrow/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Routes registers the handlers of all extensions on r. Every handler
// authenticates with the signatures verified by the sigs decorator.
func Routes(r weave.Registry) {
	auth := sigs.Authenticate{}
	bank := cash.NewController()
	tokens := token.NewController(bank)

	cash.RegisterRoutes(r, auth, bank)
	token.RegisterRoutes(r, auth, tokens)
	escrow.RegisterRoutes(r, auth, tokens, bank)
}

// Stack returns the handler every transaction goes through. Metrics are
// registered on reg, a nil reg disables them.
func Stack(reg prometheus.Registerer) (weave.Handler, error) {
	var metrics *utils.Metrics
	if reg != nil {
		m, err := utils.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	r := NewRouter()
	Routes(r)
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewSavepoint().OnCheck().OnDeliver(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
	).WithHandler(r), nil
}

// Queries lists the query routes of all extensions.
func Queries() []weave.QueryRegister {
	return []weave.QueryRegister{
		sigs.RegisterQuery,
		cash.RegisterQuery,
		token.RegisterQuery,
		escrow.RegisterQuery,
	}
}

// Initializer loads the genesis sections of all extensions.
func Initializer() weave.Initializer {
	return ChainInitializers(
		cash.Initializer{},
		token.Initializer{},
		escrow.Initializer{},
	)
}
