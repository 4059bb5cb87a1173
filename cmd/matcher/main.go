// matcher recorre los ingresos bancarios sin conciliar y los intenta casar
// contra facturas finales abiertas. Pensado para correr tras cada
// sincronización bancaria (cron o hook).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturas-api/pkg/config"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().Str("app", cfg.App.Name).Msg("iniciando conciliación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	txnRepo := postgres.NewMoneyTransactionRepository(pool)
	matcher := billing.NewInvoiceMatchingService(txRunner, txnRepo)

	results, err := matcher.MatchAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("conciliación abortada")
	}

	matched := 0
	for _, r := range results {
		if r.Success {
			matched++
			log.Info().
				Str("transaction_id", r.TransactionID).
				Str("invoice_id", r.InvoiceID).
				Msg("transacción conciliada")
			continue
		}
		log.Debug().
			Str("transaction_id", r.TransactionID).
			Str("reason", r.Reason).
			Msg("transacción sin conciliar")
	}
	log.Info().
		Int("pending", len(results)).
		Int("matched", matched).
		Msg("conciliación terminada")
}
