package main

import (
    "log"
    "os"
    "strings"
)

func usage () {
    println ("\nUsage of the BGP/ROV simulator:\n")
    println ("  ./bgp_rov_simulator -as-rel <file> -announcements <file> [-rov-asns <file>] [-output <file>]")
    println ("")
    println ("Computes, for each AS of the graph, the route it selects to each seeded")
    println ("prefix under Gao-Rexford policies, with optional ROV filtering.")
    println ("")
    println ("The simulator has an additional mode:")
    println ("  - analysis: to analyse the AS graph or a RIB snapshot produced by a simulation.")
    println ("Type")
    println ("  ./bgp_rov_simulator analysis")
    println ("for further information.\n")
}

func main () {
    log.SetFlags(0)
    if len (os.Args) == 1 {
        usage ()
        os.Exit (1)
    }
    switch command := os.Args[1]; command {

        /* --------------------------- *\
                  SIMULATION
        \* --------------------------- */
        case "simulation":
            handle_args_simulation (os.Args[2:])
            launch_simulation ()

        /* --------------------------- *\
                      Misc.
        \* --------------------------- */
        /* --- Various analysis and processing of the data. --- */
        case "analysis":
            analysis (os.Args[2:])
        case "-h":
            usage ()
        case "--help":
            usage ()
        default:
            if strings.HasPrefix (command, "-") { // Bare flags: run a simulation
                handle_args_simulation (os.Args[1:])
                launch_simulation ()
                return
            }
            log.Println("Unknown command:", command)
            log.Println("Type './bgp_rov_simulator -h' for help")
            os.Exit (1)
    }
}

// --------------------------------------------------------------------------------
func analysis (args []string) {
    usage_analysis_f := func () {
        println ("Usage of analysis:")
        println ("")
        println ("  ./bgp_rov_simulator analysis components -r <as_rel_file>: composition and connected components of the AS graph.")
        println ("  ./bgp_rov_simulator analysis overlays -o <rib_snapshot>: overlay prefixes (more-specifics routed like their aggregate) per AS.")
        println ("  ./bgp_rov_simulator analysis path_tree -o <rib_snapshot> -p <prefix>: tree of the propagation paths of a prefix.\n")
    }

    if len (args) == 0 {
        usage_analysis_f ()
        return
    }
    switch command := args[0]; command {
        case "components":
            analyse_components (handle_args_analysis_components (args))
        case "overlays":
            analyse_overlays (handle_args_analysis_overlays (args))
        case "path_tree":
            analyse_path_tree (handle_args_analysis_path_tree (args))
        case "-h":
            usage_analysis_f ()
        default:
            log.Println ("Unknown sub-command:", command)
            os.Exit (1)
    }
}
