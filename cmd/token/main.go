package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/jwt"
)

// Emite um token de operador para as rotas administrativas.
// O login fica em outro serviço; esta ferramenta serve para ambientes internos.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	userID := flag.String("user", "admin", "identificador do operador")
	role := flag.String("role", "admin", "papel gravado no token")
	ttl := flag.Duration("ttl", 24*time.Hour, "validade do token")
	flag.Parse()

	token, err := jwt.GenerateToken(*userID, *role, os.Getenv("JWT_SECRET"), *ttl)
	if err != nil {
		log.Fatalf("Erro ao gerar token: %v", err)
	}
	fmt.Println(token)
}
