// migrate aplica las migraciones del esquema y hace el bootstrap de la fila
// única de configuración (settings) desde las variables BILLING_*. La fila se
// crea explícitamente aquí; ningún otro componente la crea de forma implícita.
package main

import (
	"context"
	"os"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturas-api/pkg/config"
	"github.com/jhoicas/Facturas-api/pkg/logger"
	"github.com/shopspring/decimal"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	settingsRepo := postgres.NewSettingsRepository(pool)
	current, err := settingsRepo.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("leer configuración")
	}
	if current != nil {
		log.Info().Str("main_currency", current.MainCurrency).Msg("settings ya inicializados")
		return
	}

	vatRate, err := decimal.NewFromString(cfg.Billing.DefaultVATRate)
	if err != nil {
		log.Error().Err(err).Str("value", cfg.Billing.DefaultVATRate).Msg("BILLING_DEFAULT_VAT_RATE inválido")
		os.Exit(1)
	}
	settings := &entity.Settings{
		ID:             entity.SettingsID,
		CompanyName:    cfg.Billing.CompanyName,
		MainCurrency:   cfg.Billing.MainCurrency,
		DefaultVATRate: vatRate,
		IBAN:           cfg.Billing.IBAN,
		BIC:            cfg.Billing.BIC,
	}
	if err := settingsRepo.Save(settings); err != nil {
		log.Fatal().Err(err).Msg("bootstrap de settings")
	}
	log.Info().
		Str("company", settings.CompanyName).
		Str("main_currency", settings.MainCurrency).
		Msg("settings inicializados")
}
