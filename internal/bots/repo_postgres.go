package bots

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PostgresRepo is the durable store for deployments that must survive
// restarts. Schema lives in scripts/schema.sql.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) SaveBlueprint(ctx context.Context, blueprint *Blueprint) error {
	payload, err := json.Marshal(blueprint)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO bot_blueprints (bot_id, payload)
		VALUES ($1, $2)
		ON CONFLICT (bot_id) DO UPDATE SET payload = EXCLUDED.payload
	`, blueprint.BotID, payload)
	return err
}

func (r *PostgresRepo) GetBlueprint(ctx context.Context, botID string) (*Blueprint, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM bot_blueprints WHERE bot_id = $1
	`, botID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlueprintNotFound
	}
	if err != nil {
		return nil, err
	}

	var blueprint Blueprint
	if err := json.Unmarshal(payload, &blueprint); err != nil {
		return nil, err
	}
	return &blueprint, nil
}

func (r *PostgresRepo) AssignSession(ctx context.Context, botID, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bot_sessions (session_id, bot_id)
		VALUES ($1, $2)
		ON CONFLICT (session_id) DO UPDATE
		SET bot_id = EXCLUDED.bot_id, updated_at = now()
	`, sessionID, botID)
	return err
}

func (r *PostgresRepo) GetSessionState(ctx context.Context, sessionID string) (*SessionState, error) {
	var botID string
	err := r.db.QueryRowContext(ctx, `
		SELECT bot_id FROM bot_sessions WHERE session_id = $1
	`, sessionID).Scan(&botID)
	if errors.Is(err, sql.ErrNoRows) {
		return &SessionState{}, nil
	}
	if err != nil {
		return nil, err
	}

	state := &SessionState{}
	blueprint, err := r.GetBlueprint(ctx, botID)
	if err != nil && !errors.Is(err, ErrBlueprintNotFound) {
		return nil, err
	}
	state.Blueprint = blueprint

	state.History, err = r.GetHistory(ctx, botID, sessionID)
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (r *PostgresRepo) ResetHistory(ctx context.Context, botID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM bot_messages WHERE bot_id = $1
	`, botID)
	return err
}

func (r *PostgresRepo) AppendTurn(ctx context.Context, botID, sessionID string, turn ChatTurn) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bot_messages (bot_id, session_id, role, content)
		VALUES ($1, $2, $3, $4)
	`, botID, sessionID, turn.Role, turn.Content)
	return err
}

func (r *PostgresRepo) GetHistory(ctx context.Context, botID, sessionID string) ([]ChatTurn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT role, content
		FROM bot_messages
		WHERE bot_id = $1 AND session_id = $2
		ORDER BY created_at ASC, id ASC
	`, botID, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChatTurn
	for rows.Next() {
		var turn ChatTurn
		if err := rows.Scan(&turn.Role, &turn.Content); err != nil {
			return nil, err
		}
		out = append(out, turn)
	}
	return out, rows.Err()
}
