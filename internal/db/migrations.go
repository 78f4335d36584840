package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS produtos (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			nome   TEXT NOT NULL,
			codigo TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS usuarios (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			nome TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS abastecimentos (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			produto_id     INTEGER NOT NULL REFERENCES produtos(id),
			usuario_id     INTEGER REFERENCES usuarios(id),
			quantidade     REAL NOT NULL DEFAULT 0,
			custo_unitario REAL NOT NULL DEFAULT 0,
			total_custo    REAL NOT NULL DEFAULT 0,
			observacao     TEXT NOT NULL DEFAULT '',
			created_at     TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_abastecimentos_created ON abastecimentos(created_at);
		CREATE INDEX IF NOT EXISTS idx_abastecimentos_produto ON abastecimentos(produto_id);
		CREATE INDEX IF NOT EXISTS idx_abastecimentos_usuario ON abastecimentos(usuario_id);
		CREATE INDEX IF NOT EXISTS idx_produtos_nome ON produtos(nome);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
