package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/validation"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/config"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg := config.Load()
	appLogger := logger.NewLogger(cfg.LogLevel)

	// Valores monetários saem como número no JSON
	decimal.MarshalJSONWithoutQuotes = true

	if err := validation.RegisterWithGin(); err != nil {
		log.Fatalf("Erro ao registrar validações: %v", err)
	}
	if cfg.JWTSecret == "" {
		appLogger.Warn("JWT_SECRET vazio: rotas administrativas vão recusar todas as requisições")
	}

	// Criar aplicação
	app, err := NewApp(cfg, appLogger)
	if err != nil {
		log.Fatalf("Erro ao iniciar aplicação: %v", err)
	}
	defer app.Close()

	// Iniciar o servidor
	if err := app.Run(); err != nil {
		appLogger.Error("servidor encerrado com erro", "error", err)
	}
}
