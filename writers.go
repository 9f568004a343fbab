/* ==================================================================================== *\
    writers.go

    Writes the RIB snapshot:
    - CSV, header asn,prefix,as_path, AS paths rendered "(a1, a2, ..., ak)"
    - optionally a sqlite database (table ribs), for downstream tooling
    The rows come in already sorted (ascending ASN, then ascending prefix).
\* ==================================================================================== */

package main

import (
    "bufio"
    "database/sql"
    "os"
    "strconv"
    _ "github.com/mattn/go-sqlite3"
)
// the underscore import is used for the side-effect of registering the sqlite3 driver
// as a database driver in the init() function, without importing any other functions

/**
 * One line of the RIB snapshot: the route selected by 'asn' towards
 * 'prefix'. as_path[0] is asn itself, the last element the origin.
 */
type Rib_row struct {
    asn uint32;
    prefix string;
    as_path []uint32;
}

// -------------------------------------------------------------------------------
func write_ribs_csv (rows []Rib_row, filename string) error {
    f, err := os.Create (filename) // If the file already exists, it is truncated
    if err != nil {
        return err
    }
    defer f.Close ()

    w := bufio.NewWriter (f)
    if _, err = w.WriteString ("asn,prefix,as_path\n"); err != nil {
        return err
    }
    for _, row := range rows {
        line := strconv.FormatUint (uint64 (row.asn), 10) + "," + row.prefix + ",\"" + format_as_path (row.as_path) + "\"\n"
        if _, err = w.WriteString (line); err != nil {
            return err
        }
    }
    return w.Flush ()
}

// -------------------------------------------------------------------------------
func write_ribs_sqlite (rows []Rib_row, filename string) error {
    os.Remove (filename) // Start from a fresh database

    database, err := sql.Open ("sqlite3", filename)
    if err != nil {
        return err
    }
    defer database.Close ()

    _, err = database.Exec ("CREATE TABLE ribs (asn INTEGER NOT NULL, prefix TEXT NOT NULL, as_path TEXT NOT NULL)")
    if err != nil {
        return err
    }

    tx, err := database.Begin ()
    if err != nil {
        return err
    }
    stmt, err := tx.Prepare ("INSERT INTO ribs (asn, prefix, as_path) VALUES (?, ?, ?)")
    if err != nil {
        tx.Rollback ()
        return err
    }
    defer stmt.Close ()

    for _, row := range rows {
        if _, err = stmt.Exec (int64 (row.asn), row.prefix, format_as_path (row.as_path)); err != nil {
            tx.Rollback ()
            return err
        }
    }
    return tx.Commit ()
}
