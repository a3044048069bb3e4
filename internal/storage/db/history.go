package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRecordNotFound is returned when no history row matches
var ErrRecordNotFound = errors.New("install record not found")

// Install kinds
const (
	KindModpack  = "modpack"
	KindRegister = "register"
)

// HistoryMod is one mod enabled by an install
type HistoryMod struct {
	Identity string
	FileName string
}

// InstallRecord is one completed install operation
type InstallRecord struct {
	ID          string
	Kind        string
	Source      string // modpack or archive file name
	SavePath    string
	Mods        []HistoryMod
	ModFiles    int
	ConfigFiles int
	InstalledAt time.Time
}

// SaveInstall records an install and the mods it enabled
func (d *DB) SaveInstall(rec *InstallRecord) (err error) {
	if rec.InstalledAt.IsZero() {
		rec.InstalledAt = time.Now()
	}

	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`
		INSERT INTO install_history (id, kind, source, save_path, mod_files, config_files, installed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Kind, rec.Source, rec.SavePath, rec.ModFiles, rec.ConfigFiles, rec.InstalledAt); err != nil {
		return fmt.Errorf("saving install record: %w", err)
	}

	for _, m := range rec.Mods {
		if _, err = tx.Exec(`
			INSERT INTO install_history_mods (history_id, identity, file_name)
			VALUES (?, ?, ?)
			ON CONFLICT(history_id, identity) DO UPDATE SET file_name = excluded.file_name
		`, rec.ID, m.Identity, m.FileName); err != nil {
			return fmt.Errorf("saving install mod %s: %w", m.Identity, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing install record: %w", err)
	}
	return nil
}

// ListInstalls returns install records newest first.
// An empty savePath lists every save; limit <= 0 means no limit.
func (d *DB) ListInstalls(savePath string, limit int) ([]InstallRecord, error) {
	query := `
		SELECT id, kind, source, save_path, mod_files, config_files, installed_at
		FROM install_history`
	var args []any
	if savePath != "" {
		query += ` WHERE save_path = ?`
		args = append(args, savePath)
	}
	query += ` ORDER BY installed_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying install history: %w", err)
	}

	var records []InstallRecord
	for rows.Next() {
		var rec InstallRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Source, &rec.SavePath, &rec.ModFiles, &rec.ConfigFiles, &rec.InstalledAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning install record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range records {
		mods, err := d.installMods(records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Mods = mods
	}

	return records, nil
}

// GetInstall retrieves a single install record
func (d *DB) GetInstall(id string) (*InstallRecord, error) {
	var rec InstallRecord
	err := d.QueryRow(`
		SELECT id, kind, source, save_path, mod_files, config_files, installed_at
		FROM install_history
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Kind, &rec.Source, &rec.SavePath, &rec.ModFiles, &rec.ConfigFiles, &rec.InstalledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying install record: %w", err)
	}

	rec.Mods, err = d.installMods(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (d *DB) installMods(historyID string) ([]HistoryMod, error) {
	rows, err := d.Query(`
		SELECT identity, file_name FROM install_history_mods
		WHERE history_id = ?
		ORDER BY identity
	`, historyID)
	if err != nil {
		return nil, fmt.Errorf("querying install mods: %w", err)
	}
	defer rows.Close()

	var mods []HistoryMod
	for rows.Next() {
		var m HistoryMod
		if err := rows.Scan(&m.Identity, &m.FileName); err != nil {
			return nil, fmt.Errorf("scanning install mod: %w", err)
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}
