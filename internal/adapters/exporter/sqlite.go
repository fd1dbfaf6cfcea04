package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"telegram-update-normalizer/internal/domain"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS updates (
	update_id    INTEGER PRIMARY KEY,
	kind         TEXT    NOT NULL,
	chat_id      INTEGER NOT NULL DEFAULT 0,
	chat_kind    TEXT    NOT NULL DEFAULT '',
	chat_title   TEXT    NOT NULL DEFAULT '',
	message_id   INTEGER NOT NULL DEFAULT 0,
	message_kind TEXT    NOT NULL DEFAULT '',
	from_id      INTEGER NOT NULL DEFAULT 0,
	date         INTEGER NOT NULL DEFAULT 0,
	text         TEXT    NOT NULL DEFAULT '',
	reply_depth  INTEGER NOT NULL DEFAULT 0,
	payload      TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_updates_chat ON updates (chat_id, message_id);
`

const upsertUpdate = `
INSERT INTO updates (update_id, kind, chat_id, chat_kind, chat_title, message_id, message_kind, from_id, date, text, reply_depth, payload)
VALUES (:update_id, :kind, :chat_id, :chat_kind, :chat_title, :message_id, :message_kind, :from_id, :date, :text, :reply_depth, :payload)
ON CONFLICT (update_id) DO UPDATE SET
	kind = excluded.kind,
	chat_id = excluded.chat_id,
	chat_kind = excluded.chat_kind,
	chat_title = excluded.chat_title,
	message_id = excluded.message_id,
	message_kind = excluded.message_kind,
	from_id = excluded.from_id,
	date = excluded.date,
	text = excluded.text,
	reply_depth = excluded.reply_depth,
	payload = excluded.payload`

// journalRow соответствует строке таблицы updates. Дата хранится в секундах Unix, как на проводе.
type journalRow struct {
	UpdateID    int64  `db:"update_id"`
	Kind        string `db:"kind"`
	ChatID      int64  `db:"chat_id"`
	ChatKind    string `db:"chat_kind"`
	ChatTitle   string `db:"chat_title"`
	MessageID   int64  `db:"message_id"`
	MessageKind string `db:"message_kind"`
	FromID      int64  `db:"from_id"`
	Date        int64  `db:"date"`
	Text        string `db:"text"`
	ReplyDepth  int    `db:"reply_depth"`
	Payload     string `db:"payload"`
}

func (r journalRow) summary() domain.UpdateSummary {
	s := domain.UpdateSummary{
		UpdateID:    r.UpdateID,
		Kind:        domain.UpdateKind(r.Kind),
		ChatID:      r.ChatID,
		ChatKind:    domain.ChatKind(r.ChatKind),
		ChatTitle:   r.ChatTitle,
		MessageID:   r.MessageID,
		MessageKind: domain.MessageKind(r.MessageKind),
		FromID:      r.FromID,
		Text:        r.Text,
		ReplyDepth:  r.ReplyDepth,
	}
	if r.Date != 0 {
		s.Date = time.Unix(r.Date, 0).UTC()
	}
	return s
}

// SQLiteExporter ведет журнал обновлений в SQLite. Повторный экспорт того же
// update_id перезаписывает строку.
type SQLiteExporter struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteExporter открывает базу и создает схему. Путь ":memory:" дает базу в памяти.
func NewSQLiteExporter(dbPath string, logger *slog.Logger) (*SQLiteExporter, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// SQLite не поддерживает параллельную запись.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(journalSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	logger.Info("update journal opened", "path", dbPath)
	return &SQLiteExporter{db: db, logger: logger.With("component", "sqlite_exporter")}, nil
}

// Export записывает обновления одной транзакцией.
func (e *SQLiteExporter) Export(updates []domain.Update) error {
	return e.ExportContext(context.Background(), updates)
}

// ExportContext работает как Export, но учитывает контекст.
func (e *SQLiteExporter) ExportContext(ctx context.Context, updates []domain.Update) error {
	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareNamedContext(ctx, upsertUpdate)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, u := range updates {
		payload, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("failed to encode update %d: %w", u.ID, err)
		}
		s := u.Summary()
		row := journalRow{
			UpdateID:    s.UpdateID,
			Kind:        string(s.Kind),
			ChatID:      s.ChatID,
			ChatKind:    string(s.ChatKind),
			ChatTitle:   s.ChatTitle,
			MessageID:   s.MessageID,
			MessageKind: string(s.MessageKind),
			FromID:      s.FromID,
			Text:        s.Text,
			ReplyDepth:  s.ReplyDepth,
			Payload:     string(payload),
		}
		if !s.Date.IsZero() {
			row.Date = s.Date.Unix()
		}
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return fmt.Errorf("failed to store update %d: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	e.logger.Debug("updates stored", "count", len(updates))
	return nil
}

// Summaries возвращает журнал по возрастанию update_id.
func (e *SQLiteExporter) Summaries(ctx context.Context) ([]domain.UpdateSummary, error) {
	var rows []journalRow
	if err := e.db.SelectContext(ctx, &rows, `SELECT * FROM updates ORDER BY update_id`); err != nil {
		return nil, fmt.Errorf("failed to query updates: %w", err)
	}
	out := make([]domain.UpdateSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.summary())
	}
	return out, nil
}

// Payload возвращает сохраненный JSON обновления.
func (e *SQLiteExporter) Payload(ctx context.Context, updateID int64) (json.RawMessage, error) {
	var payload string
	if err := e.db.GetContext(ctx, &payload, `SELECT payload FROM updates WHERE update_id = ?`, updateID); err != nil {
		return nil, fmt.Errorf("failed to load update %d: %w", updateID, err)
	}
	return json.RawMessage(payload), nil
}

// Close закрывает базу.
func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}
