/* ==================================================================================== *\
    propagation_parallel.go

    Alternative scheduling for the propagation:
    -------------------------------------------
    Prefixes are independent routing keys (selection and export never cross
    prefixes), so the seed set is sharded by prefix and every shard is
    driven to its fixed point by its own simulation instance, over the
    shared read-only topology. The shards are distributed over a worker
    pool, and the per-prefix snapshots are merged into a single one.

    Produces byte-identical output to the sequential scheduling.
\* ==================================================================================== */

package main

import (
    "errors"
    "sort"
    pool "github.com/Emeline-1/pool"
)

type propagate_fn func (*Topology, []*Seed, int) ([]Rib_row, error)

/**
 * Array holding the propagation schedulings (selected with -m).
 */
var propagation_modes []propagate_fn = []propagate_fn {
    propagate_sequential,
    propagate_parallel,
}

// -------------------------------------------------------------------------------
/**
 * Mode 0: one simulation instance carrying all seeds.
 */
func propagate_sequential (topology *Topology, seeds []*Seed, _ int) ([]Rib_row, error) {
    sim := new_simulation (topology)
    for _, seed := range seeds {
        sim.add_announcement (seed.asn, seed.prefix, seed.rov_invalid)
    }
    if err := sim.propagate (); err != nil {
        return nil, err
    }
    return sim.get_ribs ()
}

// -------------------------------------------------------------------------------
/**
 * Mode 1: per-prefix sharding over a worker pool.
 */
func propagate_parallel (topology *Topology, seeds []*Seed, nb_workers int) ([]Rib_row, error) {

    /* --- Shard the seeds by prefix, keeping the seeding order per shard --- */
    prefix_seeds := make (map[string][]*Seed)
    prefixes := make ([]string, 0, len (seeds))
    for _, seed := range seeds {
        if _, present := prefix_seeds[seed.prefix]; !present {
            prefixes = append (prefixes, seed.prefix)
        }
        prefix_seeds[seed.prefix] = append (prefix_seeds[seed.prefix], seed)
    }

    /* --- Workers must never mutate the shared topology --- */
    for _, seed := range seeds {
        topology.get_or_create (seed.asn)
    }
    topology.freeze ()

    results := create_safeset ()
    failures := create_safeset ()
    f := generate_prefix_propagation (topology, prefix_seeds, results, failures)
    pool.Launch_pool (max (nb_workers, 1), prefixes, f)

    for prefix, message_i := range failures.set {
        message, _ := message_i.(string)
        return nil, errors.New (message + " (prefix " + prefix + ")")
    }

    /* --- Merge the per-prefix snapshots --- */
    rows := make ([]Rib_row, 0, 1024)
    for _, shard_i := range results.set {
        shard, _ := shard_i.([]Rib_row)
        rows = append (rows, shard...)
    }
    sort.Slice (rows, func (i, j int) bool {
        if rows[i].asn != rows[j].asn {
            return rows[i].asn < rows[j].asn
        }
        return rows[i].prefix < rows[j].prefix
    })
    return rows, nil
}

/**
 * Generates the worker function propagating the seeds of a single prefix.
 */
func generate_prefix_propagation (topology *Topology, prefix_seeds map[string][]*Seed, results, failures *SafeSet) func (string) {
    return func (prefix string) {
        defer recovery_function ()

        sim := new_simulation (topology)
        for _, seed := range prefix_seeds[prefix] {
            sim.add_announcement (seed.asn, seed.prefix, seed.rov_invalid)
        }
        if err := sim.propagate (); err != nil {
            failures.add (prefix, err.Error ())
            return
        }
        rows, err := sim.get_ribs ()
        if err != nil {
            failures.add (prefix, err.Error ())
            return
        }
        results.add (prefix, rows)
    }
}

func max (a, b int) int {
    if a > b {
        return a
    }
    return b
}
