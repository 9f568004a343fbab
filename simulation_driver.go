/* ==================================================================================== *\
     simulation_driver.go

     Implements the _BGP/ROV Simulation_.

     Wires the whole run together: reads the AS graph, deploys ROV, seeds
     the announcements, launches the selected propagation scheduling and
     writes the resulting RIB snapshot.
\* ==================================================================================== */

package main

import (
    "log"
    "os"
    "time"
)

/**
 * Launches the simulation with the parameters collected in g_args.
 */
func launch_simulation () {

    /* ---------------------------------- *\
            READING SIMULATION DATA
    \* ---------------------------------- */
    check_input_file ("AS relationships", g_args.as_rel_file)
    check_input_file ("Announcements", g_args.announcements_file)
    if g_args.rov_asns_file != "" {
        check_input_file ("ROV ASNs", g_args.rov_asns_file)
    }
    if g_args.simulation_mode < 0 || g_args.simulation_mode >= len (propagation_modes) {
        log.Fatal ("Error: unknown simulation mode")
    }

    start := time.Now ()
    log.Println ("Building AS graph from", g_args.as_rel_file)
    topology := new_topology ()
    if err := read_as_rel (g_args.as_rel_file, topology, g_args.strict); err != nil {
        log.Fatal ("Error: " + err.Error ())
    }
    log.Println ("  Created", topology.nb_ases (), "ASes")

    if g_args.rov_asns_file != "" {
        rov_asns, err := read_rov_asns (g_args.rov_asns_file)
        if err != nil {
            log.Fatal ("Error: " + err.Error ())
        }
        for _, asn := range rov_asns {
            topology.get_or_create (asn).policy = Policy_rov // ASNs not in the graph become stub ASes
        }
        log.Println ("  Deployed ROV on", len (rov_asns), "ASes")
    }

    seeds, err := read_announcements (g_args.announcements_file)
    if err != nil {
        log.Fatal ("Error: " + err.Error ())
    }
    log.Println ("  Seeded", len (seeds), "announcements")
    log.Printf ("Parsing input files took %s", time.Since (start))

    /* ----------------------- *\
             SIMULATION
    \* ----------------------- */
    start = time.Now ()
    log.Println ("Running BGP propagation...")
    rows, err := propagation_modes[g_args.simulation_mode] (topology, seeds, g_args.nb_workers)
    if err != nil {
        log.Fatal ("Error during simulation: " + err.Error ())
    }
    log.Printf ("Propagation took %s", time.Since (start))

    /* ----------------------- *\
           WRITE RESULTS
    \* ----------------------- */
    if err := write_ribs_csv (rows, g_args.output_file); err != nil {
        log.Fatal ("Error: " + err.Error ())
    }
    if g_args.sqlite_file != "" {
        if err := write_ribs_sqlite (rows, g_args.sqlite_file); err != nil {
            log.Fatal ("Error: " + err.Error ())
        }
    }
    log.Println ("Simulation complete! Results written to", g_args.output_file)
}

func check_input_file (label, filename string) {
    if filename == "" {
        log.Fatal ("Error: " + label + " file not given")
    }
    if _, err := os.Stat (filename); err != nil {
        log.Fatal ("Error: " + label + " file not found: " + filename)
    }
}
