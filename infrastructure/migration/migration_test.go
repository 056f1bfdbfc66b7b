package migration

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQueryer guarda os comandos executados; existing simula canais já cadastrados.
type recordingQueryer struct {
	statements []string
	args       [][]interface{}
	existing   map[string]bool
	failOn     string
}

func (q *recordingQueryer) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	if q.failOn != "" && strings.Contains(query, q.failOn) {
		return nil, errors.New("falhou")
	}
	q.statements = append(q.statements, query)
	q.args = append(q.args, args)

	if len(args) == 2 {
		name, _ := args[1].(string)
		if q.existing[name] {
			return driver.RowsAffected(0), nil
		}
	}
	return driver.RowsAffected(1), nil
}

func (q *recordingQueryer) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("não suportado")
}

func (q *recordingQueryer) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func TestMigrate(t *testing.T) {
	t.Run("cria as tabelas na ordem das chaves estrangeiras", func(t *testing.T) {
		q := &recordingQueryer{}

		require.NoError(t, Migrate(context.Background(), q))
		require.Len(t, q.statements, len(schema))

		tables := []string{"sellers", "channels", "releases", "finances", "seller_ranking", "users"}
		position := func(table string) int {
			for i, statement := range q.statements {
				if strings.Contains(statement, "CREATE TABLE IF NOT EXISTS "+table+" (") {
					return i
				}
			}
			return -1
		}
		for _, table := range tables {
			assert.GreaterOrEqual(t, position(table), 0, table)
		}
		assert.Less(t, position("sellers"), position("releases"))
		assert.Less(t, position("channels"), position("releases"))
		assert.Contains(t, q.statements[position("releases")], "UNIQUE (seller_id, channel_id, date_release)")
		assert.Contains(t, q.statements[position("seller_ranking")], "UNIQUE (seller_id, month)")
	})

	t.Run("interrompe no primeiro erro", func(t *testing.T) {
		q := &recordingQueryer{failOn: "channels"}

		err := Migrate(context.Background(), q)
		assert.Error(t, err)
		assert.Len(t, q.statements, 1)
	})
}

func TestSeedChannels(t *testing.T) {
	q := &recordingQueryer{existing: map[string]bool{"Facebook": true}}

	inserted, err := SeedChannels(context.Background(), q, []string{"Facebook", "Google", "Tel 0800"})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	require.Len(t, q.statements, 3)
	assert.Contains(t, q.statements[0], "ON CONFLICT (name) DO NOTHING")

	ids := map[string]bool{}
	for _, args := range q.args {
		id, _ := args[0].(string)
		assert.NotEmpty(t, id)
		ids[id] = true
	}
	assert.Len(t, ids, 3)
}
