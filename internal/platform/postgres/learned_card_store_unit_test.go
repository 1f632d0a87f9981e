package postgres

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearnedCardStoreMarkIsIdempotent(t *testing.T) {
	userID := uuid.New()
	cardID := uuid.New()

	// First mark inserts a row, the second hits the conflict target and
	// affects nothing, and a third loses a race outright. All succeed.
	conn := &scriptConn{execs: []execReply{
		{result: driver.RowsAffected(1)},
		{result: driver.RowsAffected(0)},
		{err: &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "learned_cards_pkey"}},
	}}
	learnedStore := NewLearnedCardStore(scriptDB(t, conn), nil)

	ctx := context.Background()
	require.NoError(t, learnedStore.Mark(ctx, userID, cardID))
	require.NoError(t, learnedStore.Mark(ctx, userID, cardID))
	require.NoError(t, learnedStore.Mark(ctx, userID, cardID))

	require.Len(t, conn.calls, 3)
	for _, call := range conn.calls {
		assert.Contains(t, call.query, "ON CONFLICT (user_id, card_id) DO NOTHING")
		assert.Equal(t, userID.String(), call.args[0])
		assert.Equal(t, cardID.String(), call.args[1])
	}
}

func TestLearnedCardStoreMarkMapsForeignKeyViolation(t *testing.T) {
	conn := &scriptConn{execs: []execReply{
		{err: &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "learned_cards_card_id_fkey"}},
	}}
	learnedStore := NewLearnedCardStore(scriptDB(t, conn), nil)

	err := learnedStore.Mark(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestLearnedCardStoreCount(t *testing.T) {
	userID := uuid.New()
	conn := &scriptConn{queries: []queryReply{
		{rows: &scriptRows{cols: []string{"count"}, data: [][]driver.Value{{int64(4)}}}},
	}}
	learnedStore := NewLearnedCardStore(scriptDB(t, conn), nil)

	count, err := learnedStore.Count(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	require.Len(t, conn.calls, 1)
	assert.Equal(t, []driver.Value{userID.String()}, conn.calls[0].args)
}
