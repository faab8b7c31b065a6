package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator aplica e reverte as migrações SQL do diretório informado
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator cria o migrator a partir da configuração do banco
func NewMigrator(config *PostgresConfig, migrationsPath string) (*Migrator, error) {
	abs, err := filepath.Abs(migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao resolver caminho das migrações: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(abs), config.MigrationURL())
	if err != nil {
		return nil, fmt.Errorf("erro ao criar migrate: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up aplica todas as migrações pendentes
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	return nil
}

// Down reverte a última migração aplicada
func (mg *Migrator) Down() error {
	if err := mg.m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao reverter migração: %w", err)
	}
	return nil
}

// Version retorna a versão atual e se o banco está "sujo"
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Force marca a versão sem executar SQL (recuperação de estado sujo)
func (mg *Migrator) Force(version int) error {
	return mg.m.Force(version)
}

// Close libera as conexões do migrator
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// RunMigrations aplica as migrações pendentes e fecha o migrator
func RunMigrations(config *PostgresConfig, migrationsPath string) error {
	mg, err := NewMigrator(config, migrationsPath)
	if err != nil {
		return err
	}
	defer mg.Close()

	return mg.Up()
}
