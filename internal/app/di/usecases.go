package di

import (
	companyadapters "gold_digger/internal/feature/companies/adapters"
	companyusecase "gold_digger/internal/feature/companies/usecase"
	optionadapters "gold_digger/internal/feature/options/adapters"
	optionusecase "gold_digger/internal/feature/options/usecase"
	priceadapters "gold_digger/internal/feature/prices/adapters"
	priceusecase "gold_digger/internal/feature/prices/usecase"
	"gold_digger/internal/platform/db"
	"gold_digger/internal/platform/externalapi/yahoo"
)

// Usecases bundles the three ingestion usecases.
type Usecases struct {
	Companies *companyusecase.CompanyUsecase
	Prices    *priceusecase.PriceUsecase
	Options   *optionusecase.OptionUsecase
}

// NewUsecases wires the usecases to provider and store. A nil store leaves
// every repository unset (a nil interface, not a nil pointer) so that only
// dry runs succeed.
func NewUsecases(provider *yahoo.Client, store *db.Store) Usecases {
	var (
		companyRepo companyusecase.CompanyRepository
		priceRepo   priceusecase.PriceRepository
		optionRepo  optionusecase.OptionRepository
	)
	if store != nil {
		companyRepo = companyadapters.NewCompanyRepository(store)
		priceRepo = priceadapters.NewPriceRepository(store)
		optionRepo = optionadapters.NewOptionRepository(store)
	}
	return Usecases{
		Companies: companyusecase.NewCompanyUsecase(provider, companyRepo),
		Prices:    priceusecase.NewPriceUsecase(provider, priceRepo),
		Options:   optionusecase.NewOptionUsecase(provider, optionRepo),
	}
}
