/* ============================================================= *\
   analysis.go

   Functions to further analyse either:
   - the AS graph given to the simulator
     -> 'components': connected components and graph composition
   - a RIB snapshot produced by the simulator
     -> 'path_tree': tree of the propagation paths of one prefix
   (see overlays_processing.go for the 'overlays' analysis)
\* ============================================================= */

package main

import (
    "encoding/csv"
    "errors"
    "io"
    "log"
    "os"
    "strconv"
    "strings"
    graph "github.com/Emeline-1/basic_graph"
    tree "github.com/Emeline-1/bgp_rov_simulator/tree"
)

/* ---------------------------------- *\
        CONNECTED COMPONENTS
\* ---------------------------------- */

/**
 * Reads an as-rel file and reports the composition of the AS graph: number
 * of ASes and links, transit/stub breakdown, ASes without providers
 * (tier-1 candidates), and the connected components.
 */
func analyse_components (as_rel_file string) {
    topology := new_topology ()
    if err := read_as_rel (as_rel_file, topology, false); err != nil {
        log.Fatal ("Error: " + err.Error ())
    }

    /* --- Graph composition --- */
    nb_links, nb_peer_ends, nb_stubs, nb_no_provider := 0, 0, 0, 0
    for _, as := range topology.ases {
        nb_links += len (as.customers)
        nb_peer_ends += len (as.peers) // Each peer link is listed at both ends
        if len (as.customers) == 0 {
            nb_stubs++
        }
        if len (as.providers) == 0 {
            nb_no_provider++
        }
    }
    nb_links += nb_peer_ends / 2
    log.Println ("Nb ASes:", topology.nb_ases ())
    log.Println ("Nb links:", nb_links)
    log.Println ("Nb stub ASes (no customers):", nb_stubs)
    log.Println ("Nb ASes without providers:", nb_no_provider)

    /* --- Connected components --- */
    g := graph.New ()
    for _, as := range topology.ases {
        for _, neighbor := range as.customers {
            g.Add_edge (format_asn (as.asn), format_asn (topology.ases[neighbor].asn))
        }
        for _, neighbor := range as.peers {
            g.Add_edge (format_asn (as.asn), format_asn (topology.ases[neighbor].asn))
        }
    }
    nb_components, largest := 0, 0
    g.Set_iterator ()
    for g.Next_connected_component () {
        connected_component := g.Connected_component ()
        nb_components++
        if len (connected_component) > largest {
            largest = len (connected_component)
        }
    }
    log.Println ("Nb connected components:", nb_components)
    log.Println ("Largest component:", largest, "ASes")
}

/* ---------------------------------- *\
           PROPAGATION TREE
\* ---------------------------------- */

/**
 * Prints the tree of all selected paths towards one prefix: the paths are
 * reversed so that the origin is the root and every leaf is an AS that
 * selected the route.
 */
func analyse_path_tree (rib_file, prefix string) {
    rows, err := read_rib_csv (rib_file)
    if err != nil {
        log.Fatal ("Error: " + err.Error ())
    }

    path_tree := tree.Tree{}
    nb_paths := 0
    for _, row := range rows {
        if row.prefix != prefix {
            continue
        }
        path := make ([]string, 0, len (row.as_path))
        for _, asn := range row.as_path {
            path = append (path, format_asn (asn))
        }
        reverse (path) // Origin first
        path_tree.Add (path)
        nb_paths++
    }
    if nb_paths == 0 {
        log.Fatal ("No RIB entry for prefix " + prefix + " in " + rib_file)
    }
    log.Println (nb_paths, "paths towards", prefix)
    path_tree.Fprint (os.Stdout, true, "")
}

/* ---------------------------------- *\
           RIB SNAPSHOT READER
\* ---------------------------------- */

/**
 * Reads back a RIB snapshot written by write_ribs_csv.
 */
func read_rib_csv (filename string) ([]Rib_row, error) {
    r := NewCompressedReader (filename)
    if err := r.Open (); err != nil {
        return nil, err
    }
    defer r.Close ()

    reader := csv.NewReader (r.Reader ())
    header, err := reader.Read ()
    if err != nil || len (header) < 3 || header[0] != "asn" {
        return nil, errors.New ("[read_rib_csv]: not a RIB snapshot: " + filename)
    }

    rows := make ([]Rib_row, 0, 1024)
    skipped := 0
    for {
        record, err := reader.Read ()
        if err == io.EOF {
            break
        }
        if err != nil || len (record) < 3 {
            skipped++
            continue
        }
        asn, err := strconv.ParseUint (record[0], 10, 32)
        if err != nil {
            skipped++
            continue
        }
        as_path, ok := parse_as_path (record[2])
        if !ok {
            skipped++
            continue
        }
        rows = append (rows, Rib_row{asn: uint32 (asn), prefix: record[1], as_path: as_path})
    }
    if skipped > 0 {
        log.Println ("Skipped", skipped, "malformed RIB rows")
    }
    return rows, nil
}

/**
 * Parses the "(a1, a2, ..., ak)" rendering back into a path.
 */
func parse_as_path (s string) ([]uint32, bool) {
    s = strings.TrimSpace (s)
    if !strings.HasPrefix (s, "(") || !strings.HasSuffix (s, ")") {
        return nil, false
    }
    fields := strings.Split (s[1:len (s)-1], ",")
    as_path := make ([]uint32, 0, len (fields))
    for _, field := range fields {
        asn, err := strconv.ParseUint (strings.TrimSpace (field), 10, 32)
        if err != nil {
            return nil, false
        }
        as_path = append (as_path, uint32 (asn))
    }
    return as_path, true
}

func format_asn (asn uint32) string {
    return strconv.FormatUint (uint64 (asn), 10)
}
