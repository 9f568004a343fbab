/* ==================================================================================== *\
     caida_file_readers.go

     Reads the simulation inputs:
     - CAIDA as-rel files (asn1|asn2|rel, '#' comments)
     - announcement CSV files (seed_asn,prefix,rov_invalid)
     - ROV ASN files (one ASN per line)

     Malformed lines and rows are skipped and counted, never fatal; a
     non-zero count is logged after each file.
\* ==================================================================================== */

package main

import (
    "bufio"
    "compress/bzip2"
    "compress/gzip"
    "encoding/csv"
    "errors"
    "io"
    "log"
    "os"
    "strconv"
    "strings"
)

/**
 * One announcement to be seeded: (origin ASN, prefix, ROV validity flag).
 */
type Seed struct {
    asn uint32;
    prefix string;
    rov_invalid bool;
}

/* ------------------------------------------------------------------------------- *\
                             Readers
\* ------------------------------------------------------------------------------- */

/**
 * Reads a CAIDA as-rel file into the topology.
 * Format:
 * <provider-as>|<customer-as>|0
 * <peer-as>|<peer-as>|-1
 * Lines starting with '#' are comments; trailing fields are ignored. In
 * strict mode, a self-loop or two contradictory relationship codes for the
 * same pair abort the load; by default both are resolved silently (reject,
 * respectively last write wins).
 */
func read_as_rel (filename string, topology *Topology, strict bool) error {
    r := NewCompressedReader (filename)
    if err := r.Open (); err != nil {
        return err
    }
    scanner := r.Scanner ()
    defer r.Close ()

    skipped := 0
    for scanner.Scan () {
        line := strings.TrimSpace (scanner.Text ())
        if line == "" || strings.HasPrefix (line, "#") {
            continue
        }
        s := strings.Split (line, "|")
        if len (s) < 3 {
            skipped++
            continue
        }
        asn1, err1 := strconv.ParseUint (s[0], 10, 32)
        asn2, err2 := strconv.ParseUint (s[1], 10, 32)
        if err1 != nil || err2 != nil {
            skipped++
            continue
        }
        var rel_code int
        switch s[2] {
            case "0": rel_code = Rel_provider_customer
            case "-1": rel_code = Rel_peer
            default:
                skipped++
                continue
        }

        if strict {
            if asn1 == asn2 {
                log.Print ("[read_as_rel]: self-loop: " + line)
                return err_invalid_topology
            }
            if contradicts (topology, uint32 (asn1), uint32 (asn2), rel_code) {
                log.Print ("[read_as_rel]: contradictory relationship: " + line)
                return err_invalid_topology
            }
        }
        topology.add_relationship (uint32 (asn1), uint32 (asn2), rel_code)
    }
    if err := scanner.Err (); err != nil {
        return err
    }
    if skipped > 0 {
        log.Println ("Skipped", skipped, "malformed as-rel lines")
    }
    return nil
}

/**
 * Returns true if the pair (a, b) is already linked with a relationship
 * different from the one 'rel_code' would record.
 */
func contradicts (topology *Topology, a, b uint32, rel_code int) bool {
    as_a, ok1 := topology.get (a)
    as_b, ok2 := topology.get (b)
    if !ok1 || !ok2 {
        return false
    }
    current := topology.relationship (as_a, as_b)
    if current == -1 {
        return false
    }
    if rel_code == Rel_provider_customer {
        return current != Customer
    }
    return current != Peer
}

// -------------------------------------------------------------------------------
/**
 * Reads an announcements CSV file. The header row is mandatory and must
 * carry the columns seed_asn, prefix and rov_invalid (in any order);
 * rov_invalid is matched case-insensitively against "true". Bad rows are
 * skipped and counted.
 */
func read_announcements (filename string) ([]*Seed, error) {
    r := NewCompressedReader (filename)
    if err := r.Open (); err != nil {
        return nil, err
    }
    defer r.Close ()

    reader := csv.NewReader (r.Reader ())
    reader.FieldsPerRecord = -1
    reader.TrimLeadingSpace = true

    header, err := reader.Read ()
    if err != nil {
        return nil, errors.New ("[read_announcements]: missing header row: " + filename)
    }
    columns := make (map[string]int, len (header))
    for i, name := range header {
        columns[strings.ToLower (strings.TrimSpace (name))] = i
    }
    asn_col, ok1 := columns["seed_asn"]
    prefix_col, ok2 := columns["prefix"]
    rov_col, ok3 := columns["rov_invalid"]
    if !ok1 || !ok2 || !ok3 {
        return nil, errors.New ("[read_announcements]: header must carry seed_asn, prefix and rov_invalid: " + filename)
    }

    seeds := make ([]*Seed, 0, 1024)
    skipped := 0
    for {
        row, err := reader.Read ()
        if err == io.EOF {
            break
        }
        if err != nil {
            skipped++
            continue
        }
        if len (row) <= asn_col || len (row) <= prefix_col || len (row) <= rov_col {
            skipped++
            continue
        }
        asn, err := strconv.ParseUint (strings.TrimSpace (row[asn_col]), 10, 32)
        if err != nil {
            skipped++
            continue
        }
        prefix := strings.TrimSpace (row[prefix_col])
        if prefix == "" {
            skipped++
            continue
        }
        seeds = append (seeds, &Seed{
            asn: uint32 (asn),
            prefix: prefix,
            rov_invalid: strings.EqualFold (strings.TrimSpace (row[rov_col]), "true"),
        })
    }
    if skipped > 0 {
        log.Println ("Skipped", skipped, "malformed announcement rows")
    }
    return seeds, nil
}

// -------------------------------------------------------------------------------
/**
 * Reads a ROV ASNs file: one ASN per line, '#' comments and blank lines
 * ignored.
 */
func read_rov_asns (filename string) ([]uint32, error) {
    r := NewCompressedReader (filename)
    if err := r.Open (); err != nil {
        return nil, err
    }
    scanner := r.Scanner ()
    defer r.Close ()

    asns := make ([]uint32, 0, 128)
    skipped := 0
    for scanner.Scan () {
        line := strings.TrimSpace (scanner.Text ())
        if line == "" || strings.HasPrefix (line, "#") {
            continue
        }
        asn, err := strconv.ParseUint (line, 10, 32)
        if err != nil {
            skipped++
            continue
        }
        asns = append (asns, uint32 (asn))
    }
    if err := scanner.Err (); err != nil {
        return nil, err
    }
    if skipped > 0 {
        log.Println ("Skipped", skipped, "malformed ROV ASN lines")
    }
    return asns, nil
}

/* ------------------------------------------------------- *\
 *               Compressed File Reader
\* ------------------------------------------------------- */

// CAIDA publishes its as-rel snapshots bz2-compressed; accept plain, gz and
// bz2 files transparently.
type CompressedReader struct{
    filename string;
    fp io.ReadCloser;
    decompressed io.Reader;
    to_close io.ReadCloser; // All because bzip2.Reader has no Close method --'
}

func NewCompressedReader (filename string) *CompressedReader {
    return &CompressedReader{
        filename: filename,
    }
}

func (r *CompressedReader) Open () error {
    var err error
    r.fp, err = os.Open (r.filename) // Read only
    if err != nil {
        return errors.New ("[CompressedReader]: " + err.Error () + " " + r.filename)
    }

    if strings.HasSuffix (r.filename, ".gz") {
        r.to_close, _ = gzip.NewReader (r.fp)
        r.decompressed = r.to_close
    } else if strings.HasSuffix (r.filename, ".bz2") {
        r.decompressed = bzip2.NewReader (r.fp)
    } else {
        r.decompressed = r.fp
    }
    return nil
}

func (r *CompressedReader) Scanner () *bufio.Scanner {
    return bufio.NewScanner (r.decompressed)
}

func (r *CompressedReader) Reader () io.Reader {
    return r.decompressed
}

func (r *CompressedReader) Close () {
    r.fp.Close ()
    if r.to_close != nil {
        r.to_close.Close ()
    }
}
