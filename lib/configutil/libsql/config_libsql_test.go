package configlibsql

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchema = `CREATE TABLE IF NOT EXISTS things (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);`

func TestOpenDBFile(t *testing.T) {
	config := Struct{File: filepath.Join(t.TempDir(), "test.db")}

	db, err := config.OpenDB(testSchema)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO things (name) VALUES ('a')`)
	require.NoError(t, err)
	db.Close()

	// reopening applies the schema again without complaint
	db, err = config.OpenDB(testSchema)
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM things`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestOpenDBMissingPath(t *testing.T) {
	_, err := Struct{}.OpenDB(testSchema)
	require.Error(t, err)
}
