/* ==================================================================================== *\
    propagation.go

    The BGP propagation engine.

    A simulation instance owns the per-AS Local-RIBs over a shared, frozen
    topology. Propagation runs three strictly-ordered phases, one per
    Gao-Rexford export direction:
        1. every AS exports its eligible routes to its providers,
        2. then to its peers,
        3. then to its customers.
    Each phase repeats rounds until a round produces no RIB change. Within a
    round, exports read the RIB state of the end of the previous round and
    deliveries are buffered per receiving AS, so the processing of a round
    never observes its own writes. A worklist of (AS, prefix) entries that
    changed in the previous round drives the exports, so quiescent parts of
    the graph are not rescanned.

    A phase is capped at one round per AS in the topology; exceeding the cap
    means the selection order is not converging and is a hard error.
\* ==================================================================================== */

package main

import (
    "errors"
    "sort"
)

var (
    err_not_run = errors.New ("[get_ribs]: propagation has not been run")
    err_oscillation = errors.New ("[propagate]: round cap exceeded, propagation is oscillating")
    err_invalid_topology = errors.New ("[read_as_rel]: invalid topology")
)

type Simulation struct {
    topology *Topology;
    ribs []Local_rib;     // Indexed like topology.ases; maps created on first use
    ran bool;
}

func new_simulation (topology *Topology) *Simulation {
    return &Simulation{
        topology: topology,
        ribs: make ([]Local_rib, topology.nb_ases ()),
    }
}

func (sim *Simulation) rib_of (index int) Local_rib {
    for index >= len (sim.ribs) { // The topology may have grown during seeding
        sim.ribs = append (sim.ribs, nil)
    }
    if sim.ribs[index] == nil {
        sim.ribs[index] = make (Local_rib)
    }
    return sim.ribs[index]
}

/**
 * Installs an announcement directly into the origin's Local-RIB, before any
 * propagation. An origin ASN absent from the topology is created on the
 * fly. Seeding the same (prefix, origin) pair twice overwrites the previous
 * seed (last write wins).
 */
func (sim *Simulation) seed_announcement (origin_asn uint32, ann *Announcement) {
    as := sim.topology.get_or_create (origin_asn)
    sim.rib_of (as.index)[ann.prefix] = ann
}

/**
 * Builds and seeds the announcement originating 'prefix' at 'origin_asn'.
 */
func (sim *Simulation) add_announcement (origin_asn uint32, prefix string, rov_invalid bool) {
    sim.seed_announcement (origin_asn, new_seed_announcement (origin_asn, prefix, rov_invalid))
}

/**
 * Drives the seeded announcements to the Gao-Rexford fixed point.
 */
func (sim *Simulation) propagate () error {
    if !sim.topology.frozen {
        sim.topology.freeze ()
    }
    for len (sim.ribs) < sim.topology.nb_ases () {
        sim.ribs = append (sim.ribs, nil)
    }

    /* --- The three export phases, in the no-valley order --- */
    // neighbor kind exported to, relationship of the sender at the receiver
    phases := [][2]int {
        {Provider, Customer}, // An export to a provider is received from a customer
        {Peer, Peer},
        {Customer, Provider},
    }
    for _, phase := range phases {
        if err := sim.run_phase (phase[0], phase[1]); err != nil {
            return err
        }
    }
    sim.ran = true
    return nil
}

/**
 * Runs rounds of exports towards the neighbors of the given kind until no
 * Local-RIB changes anymore.
 */
func (sim *Simulation) run_phase (neighbor_kind, relation_at_receiver int) error {
    nb_ases := sim.topology.nb_ases ()

    /* --- On phase entry, every held route is a candidate for export --- */
    changed := make ([]map[string]struct{}, nb_ases)
    for i, rib := range sim.ribs {
        if len (rib) == 0 {
            continue
        }
        changed[i] = make (map[string]struct{}, len (rib))
        for prefix := range rib {
            changed[i][prefix] = struct{}{}
        }
    }

    rounds := 0
    for {
        /* --- Export: deliver changed eligible routes into per-AS inboxes --- */
        inboxes := make ([][]*Announcement, nb_ases)
        delivered := false
        for _, index := range sim.topology.sorted_indices {
            if len (changed[index]) == 0 {
                continue
            }
            as := sim.topology.ases[index]
            var neighbors []int
            switch neighbor_kind {
                case Provider: neighbors = as.providers
                case Peer: neighbors = as.peers
                case Customer: neighbors = as.customers
            }
            if len (neighbors) == 0 {
                continue
            }
            for prefix := range changed[index] {
                ann := sim.ribs[index][prefix]
                if !exportable_to (ann.received_from, neighbor_kind) {
                    continue
                }
                for _, neighbor := range neighbors {
                    inboxes[neighbor] = append (inboxes[neighbor], ann)
                    delivered = true
                }
            }
        }
        if !delivered {
            return nil
        }
        rounds++
        if rounds > nb_ases {
            return err_oscillation
        }

        /* --- Process: each AS folds its inbox into its Local-RIB --- */
        any_change := false
        next_changed := make ([]map[string]struct{}, nb_ases)
        for index, inbox := range inboxes {
            if len (inbox) == 0 {
                continue
            }
            as := sim.topology.ases[index]
            rib := sim.rib_of (index)
            for _, wire := range inbox {
                if !accepts (as, wire) {
                    continue
                }
                candidate := wire.accept_at (as.asn, relation_at_receiver)
                if rib.install (candidate) {
                    if next_changed[index] == nil {
                        next_changed[index] = make (map[string]struct{})
                    }
                    next_changed[index][candidate.prefix] = struct{}{}
                    any_change = true
                }
            }
        }
        if !any_change {
            return nil
        }
        changed = next_changed
    }
}

/**
 * Snapshot of all Local-RIBs as (asn, prefix, as_path) triples, in
 * ascending ASN order then ascending prefix order. ASes with an empty RIB
 * do not appear.
 */
func (sim *Simulation) get_ribs () ([]Rib_row, error) {
    if !sim.ran {
        return nil, err_not_run
    }
    rows := make ([]Rib_row, 0, 1024)
    for _, as := range sim.topology.iter_ases () {
        if as.index >= len (sim.ribs) || len (sim.ribs[as.index]) == 0 {
            continue
        }
        rib := sim.ribs[as.index]
        prefixes := make ([]string, 0, len (rib))
        for prefix := range rib {
            prefixes = append (prefixes, prefix)
        }
        sort.Strings (prefixes)
        for _, prefix := range prefixes {
            rows = append (rows, Rib_row{asn: as.asn, prefix: prefix, as_path: rib[prefix].as_path})
        }
    }
    return rows, nil
}
