package main

// @title           Pasarantar API
// @version         1.0
// @description     API de precificação (HPP), estoque, compras no mercado, pedidos e relatórios financeiros

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
