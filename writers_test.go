package main

import (
    "database/sql"
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/require"
)

var snapshot_rows []Rib_row = []Rib_row{
    {asn: 1, prefix: "10.0.0.0/8", as_path: []uint32{1, 2}},
    {asn: 2, prefix: "10.0.0.0/8", as_path: []uint32{2}},
}

func TestWriteRibsCsv (t *testing.T) {
    filename := filepath.Join (t.TempDir (), "output.csv")
    require.NoError (t, write_ribs_csv (snapshot_rows, filename))

    content, err := os.ReadFile (filename)
    require.NoError (t, err)
    expected := "asn,prefix,as_path\n" +
        "1,10.0.0.0/8,\"(1, 2)\"\n" +
        "2,10.0.0.0/8,\"(2)\"\n"
    require.Equal (t, expected, string (content))
}

func TestWriteRibsSqlite (t *testing.T) {
    filename := filepath.Join (t.TempDir (), "output.db")
    require.NoError (t, write_ribs_sqlite (snapshot_rows, filename))

    database, err := sql.Open ("sqlite3", filename)
    require.NoError (t, err)
    defer database.Close ()

    var count int
    require.NoError (t, database.QueryRow ("SELECT COUNT(*) FROM ribs").Scan (&count))
    require.Equal (t, 2, count)

    var as_path string
    require.NoError (t, database.QueryRow ("SELECT as_path FROM ribs WHERE asn = 1").Scan (&as_path))
    require.Equal (t, "(1, 2)", as_path)
}

func TestFormatAsPath (t *testing.T) {
    require.Equal (t, "(1)", format_as_path ([]uint32{1}))
    require.Equal (t, "(3, 2, 1)", format_as_path ([]uint32{3, 2, 1}))
}
