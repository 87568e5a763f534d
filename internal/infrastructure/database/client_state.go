package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"afisha/internal/ports/output"
)

var (
	_ output.ClientStateStorage = (*ClientStateRepository)(nil)
	_ output.ChangeWatcher      = (*ClientStateRepository)(nil)
)

// notifyChannel carries "<origin>|<key>" payloads for every write.
const notifyChannel = "client_state"

const (
	selectValueSQL = `SELECT value FROM client_state WHERE key = $1`
	upsertValueSQL = `INSERT INTO client_state (key, value, origin, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, origin = EXCLUDED.origin, updated_at = now()`
	notifySQL = `SELECT pg_notify($1, $2)`
)

// ClientStateRepository shares the client state between every client connected
// to the same PostgreSQL database. Writes are announced with NOTIFY so that
// other clients can refresh.
type ClientStateRepository struct {
	pool   *pgxpool.Pool
	origin string
}

// NewClientStateRepository creates a ClientStateRepository with a fresh origin id.
func NewClientStateRepository(pool *pgxpool.Pool) *ClientStateRepository {
	return &ClientStateRepository{pool: pool, origin: uuid.NewString()}
}

func (r *ClientStateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value pgtype.Text
	err := r.pool.QueryRow(ctx, selectValueSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get client state %q: %w", key, err)
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

func (r *ClientStateRepository) Set(ctx context.Context, key, value string) error {
	return r.write(ctx, key, pgtype.Text{String: value, Valid: true})
}

// Delete keeps a NULL tombstone so the deletion is announced like any write.
func (r *ClientStateRepository) Delete(ctx context.Context, key string) error {
	return r.write(ctx, key, pgtype.Text{})
}

func (r *ClientStateRepository) write(ctx context.Context, key string, value pgtype.Text) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, upsertValueSQL, key, value, r.origin); err != nil {
		return fmt.Errorf("write client state %q: %w", key, err)
	}
	if _, err := tx.Exec(ctx, notifySQL, notifyChannel, r.origin+"|"+key); err != nil {
		return fmt.Errorf("notify client state %q: %w", key, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit client state %q: %w", key, err)
	}
	return nil
}

// Watch holds a dedicated connection listening on the notification channel.
func (r *ClientStateRepository) Watch(ctx context.Context, onChange func(key string)) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return fmt.Errorf("listen %s: %w", notifyChannel, err)
	}
	defer func() {
		// the connection goes back to the pool
		_, _ = conn.Exec(context.Background(), "UNLISTEN "+notifyChannel)
	}()

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		origin, key, ok := strings.Cut(n.Payload, "|")
		if !ok {
			log.Printf("⚠️ Notification client_state ignorée: %q", n.Payload)
			continue
		}
		if origin == r.origin {
			continue
		}
		onChange(key)
	}
}
