package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/database"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	path := flag.String("path", "migrations", "diretório com os arquivos .sql")
	force := flag.Int("force", -1, "marca a versão informada sem executar SQL")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	mg, err := database.NewMigrator(database.NewPostgresConfigFromEnv(), *path)
	if err != nil {
		log.Fatalf("Erro ao preparar migrações: %v", err)
	}
	defer mg.Close()

	if *force >= 0 {
		if err := mg.Force(*force); err != nil {
			log.Fatalf("Erro ao forçar versão: %v", err)
		}
		log.Printf("Versão forçada para %d", *force)
		return
	}

	switch command {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "version":
	default:
		log.Fatalf("Comando desconhecido %q (use up, down ou version)", command)
	}
	if err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		log.Fatalf("Erro ao ler versão: %v", err)
	}
	log.Printf("Migrações executadas com sucesso! versão=%d dirty=%v", version, dirty)
}
