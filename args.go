/* ==================================================================================== *\
    args.go

    Program arguments handling
\* ==================================================================================== */

package main

import (
  "flag"
  "os"
)

// Global structure holding all necessary data files and parameters.
type Args struct{
    /* simulation-data */
    as_rel_file string;
    announcements_file string;
    rov_asns_file string;
    /* outputs */
    output_file string;
    sqlite_file string;
    /* simulation-parameters */
    simulation_mode int;
    nb_workers int;
    strict bool;
}

var ( // Global Parameters
    g_args Args
)

/* --------------------------------------- *\
 *          SIMULATION
\* --------------------------------------- */

/**
 * Handle the args for the simulation.
 */
func handle_args_simulation (args []string) {
  cmd := flag.NewFlagSet("simulation", flag.ExitOnError)

  cmd.StringVar(&g_args.as_rel_file, "as-rel", "", "CAIDA file containing the relationships between ASes")
  cmd.StringVar(&g_args.announcements_file, "announcements", "", "CSV file containing the announcements to seed (columns: seed_asn,prefix,rov_invalid)")
  cmd.StringVar(&g_args.rov_asns_file, "rov-asns", "", "File containing the ASNs deploying ROV (one per line)")
  cmd.StringVar(&g_args.output_file, "output", "output.csv", "The output file for the RIB snapshot")
  cmd.StringVar(&g_args.sqlite_file, "sqlite", "", "Additionally write the RIB snapshot to this sqlite database")

  cmd.IntVar(&g_args.simulation_mode, "m", 0, "The simulation mode (0: sequential, 1: parallel per prefix)")
  cmd.IntVar(&g_args.nb_workers, "workers", 8, "The number of workers for the parallel mode")
  cmd.BoolVar(&g_args.strict, "strict", false, "Abort on self-loops or contradictory relationships in the as-rel file")

  cmd.Parse(args)
}

/* --------------------------------------- *\
 *          ANALYSIS
\* --------------------------------------- */

/**
 * Handle the args for the components analysis.
 */
func handle_args_analysis_components (args []string) (_relfile string) {
  if len (args) <= 0 {
    println ("Missing arguments")
    os.Exit (-1)
  }
  cmd := flag.NewFlagSet(args[0], flag.ExitOnError)

  cmd.StringVar(&_relfile, "r", "", "The file containing all ASes relationships")

  cmd.Parse(args[1:])
  return
}

/**
 * Handle the args for the overlays analysis.
 */
func handle_args_analysis_overlays (args []string) (_ribfile string) {
  if len (args) <= 0 {
    println ("Missing arguments")
    os.Exit (-1)
  }
  cmd := flag.NewFlagSet(args[0], flag.ExitOnError)

  cmd.StringVar(&_ribfile, "o", "", "The RIB snapshot written by the simulation")

  cmd.Parse(args[1:])
  return
}

/**
 * Handle the args for the path tree analysis.
 */
func handle_args_analysis_path_tree (args []string) (_ribfile, _prefix string) {
  if len (args) <= 0 {
    println ("Missing arguments")
    os.Exit (-1)
  }
  cmd := flag.NewFlagSet(args[0], flag.ExitOnError)

  cmd.StringVar(&_ribfile, "o", "", "The RIB snapshot written by the simulation")
  cmd.StringVar(&_prefix, "p", "", "The prefix whose propagation paths must be displayed")

  cmd.Parse(args[1:])
  return
}
