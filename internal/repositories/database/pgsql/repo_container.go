package pgsql

import (
	portsrepo "github.com/SscSPs/biz_finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		LookupRepo:       newPgxLookupRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
