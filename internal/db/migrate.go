package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations, then seeds the reference tables.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := seedStatuses(db); err != nil {
		return fmt.Errorf("seeding status tables: %w", err)
	}
	return nil
}

// The column names mirror the frontend payload keys so the extraction
// queries stay readable next to the JSON they feed.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS societe (
		id             INTEGER PRIMARY KEY,
		raison_sociale TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS statut_projet (
		id  INTEGER PRIMARY KEY,
		nom TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS statut_tache (
		id  INTEGER PRIMARY KEY,
		nom TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS equipe (
		id             INTEGER PRIMARY KEY,
		nom            TEXT NOT NULL,
		responsable_id INTEGER
	)`,

	`CREATE TABLE IF NOT EXISTS agent (
		id     INTEGER PRIMARY KEY,
		nom    TEXT NOT NULL DEFAULT '',
		prenom TEXT NOT NULL DEFAULT '',
		email  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS projet (
		id                INTEGER PRIMARY KEY,
		nom_projet        TEXT NOT NULL,
		date_debut        TEXT,
		date_fin          TEXT,
		id_statut_projet  INTEGER REFERENCES statut_projet(id),
		budget            REAL NOT NULL DEFAULT 0,
		archived          INTEGER NOT NULL DEFAULT 0,
		id_societe        INTEGER REFERENCES societe(id),
		equipe_id         INTEGER REFERENCES equipe(id)
	)`,

	`CREATE TABLE IF NOT EXISTS tache_projet (
		id              INTEGER PRIMARY KEY,
		id_projet       INTEGER NOT NULL REFERENCES projet(id) ON DELETE CASCADE,
		date_debut      TEXT,
		date_fin        TEXT,
		id_statut_tache INTEGER REFERENCES statut_tache(id),
		assigne         TEXT NOT NULL DEFAULT '',
		titre           TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tache_projet_projet ON tache_projet(id_projet)`,
	`CREATE INDEX IF NOT EXISTS idx_projet_statut ON projet(id_statut_projet)`,
}

// seedStatuses inserts the fixed status vocabulary. Task status 3 marks
// a finished task; the delay predicates depend on these ids and labels.
func seedStatuses(db *sql.DB) error {
	projectStatuses := map[int]string{
		1: "En attente",
		2: "En cours",
		3: "Terminé",
	}
	for id, nom := range projectStatuses {
		if _, err := db.Exec(
			`INSERT INTO statut_projet (id, nom) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`, id, nom); err != nil {
			return fmt.Errorf("seeding statut_projet %d: %w", id, err)
		}
	}

	taskStatuses := map[int]string{
		1: "À faire",
		2: "En cours",
		3: "Terminé",
	}
	for id, nom := range taskStatuses {
		if _, err := db.Exec(
			`INSERT INTO statut_tache (id, nom) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`, id, nom); err != nil {
			return fmt.Errorf("seeding statut_tache %d: %w", id, err)
		}
	}
	return nil
}
