package main

import (
	"os"
	"strings"

	"commander-backend/lib/browse"
	"commander-backend/lib/configutil"
	configlibsql "commander-backend/lib/configutil/libsql"
	"commander-backend/lib/serviceutil"
	"commander-backend/lib/telemetry"
	"commander-backend/services/api"
	"commander-backend/services/dolarg"
	"commander-backend/services/rentafija"
	"commander-backend/services/syncstore"
	"commander-backend/services/syncstore/db"

	"github.com/tmc/langchaingo/llms"
)

type Config struct {
	Port      int                 `json:"port"`
	ApiKey    string              `json:"api_key"`
	Database  configlibsql.Struct `json:"database"`
	Dolarg    dolarg.Config       `json:"dolarg"`
	RentaFija rentafija.Config    `json:"renta_fija"`
}

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(os.Getenv("DEBUG") != "")

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to load configuration", err)
	}
	if config.Port == 0 {
		config.Port = 3000
	}
	if config.Database.File == "" {
		config.Database.File = "commander.db"
	}

	tel, err := telemetry.SetupFromEnv(ctx, "commander")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	database, err := config.Database.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	_, err = database.Exec(db.Schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		serviceutil.Fatal("failed to apply schema", err)
	}
	store := syncstore.NewStore(database)

	browser, err := browse.NewClient(browse.ClientOptions{
		// the pdf cdn serves a broken certificate chain
		InsecureSkipVerify: true,
	})
	if err != nil {
		serviceutil.Fatal("failed to build http client", err)
	}

	var model llms.Model
	if config.RentaFija.GeminiApiKey != "" {
		model, err = rentafija.NewGeminiModel(ctx, config.RentaFija.GeminiApiKey, config.RentaFija.Model)
		if err != nil {
			serviceutil.Fatal("failed to build gemini client", err)
		}
	}

	router := api.NewRouter(api.Options{
		ApiKey:    config.ApiKey,
		Dolarg:    dolarg.NewService(config.Dolarg, store, browser),
		RentaFija: rentafija.NewService(config.RentaFija, store, browser, model),
	})
	go serviceutil.StartHttpServer(config.Port, router)

	<-ctx.Done()
}
