package main

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func topology_from (edges [][3]int) *Topology {
    topology := new_topology ()
    for _, e := range edges {
        topology.add_relationship (uint32 (e[0]), uint32 (e[1]), e[2])
    }
    return topology
}

func run_rows (t *testing.T, topology *Topology, seeds []*Seed) []Rib_row {
    t.Helper ()
    rows, err := propagate_sequential (topology, seeds, 0)
    require.NoError (t, err)
    check_rib_invariants (t, rows)
    return rows
}

/**
 * Invariants that must hold for every snapshot: loop-free paths, and the
 * leftmost path element is the AS holding the entry.
 */
func check_rib_invariants (t *testing.T, rows []Rib_row) {
    t.Helper ()
    for _, row := range rows {
        require.NotEmpty (t, row.as_path)
        require.Equal (t, row.asn, row.as_path[0], "leftmost path element must be the RIB owner")
        seen := make (map[uint32]struct{})
        for _, asn := range row.as_path {
            _, duplicated := seen[asn]
            require.False (t, duplicated, "duplicated ASN in path of %d for %s", row.asn, row.prefix)
            seen[asn] = struct{}{}
        }
    }
}

func entries_of (rows []Rib_row, prefix string) map[uint32][]uint32 {
    m := make (map[uint32][]uint32)
    for _, row := range rows {
        if row.prefix == prefix {
            m[row.asn] = row.as_path
        }
    }
    return m
}

// -------------------------------------------------------------------------------

// S1: a customer route climbs to its provider.
func TestTwoASCustomerChain (t *testing.T) {
    topology := topology_from ([][3]int{{1, 2, 0}})
    rows := run_rows (t, topology, []*Seed{{asn: 2, prefix: "10.0.0.0/8"}})

    require.Equal (t, []Rib_row{
        {asn: 1, prefix: "10.0.0.0/8", as_path: []uint32{1, 2}},
        {asn: 2, prefix: "10.0.0.0/8", as_path: []uint32{2}},
    }, rows)
}

// S2: a route learned from a peer is not re-exported to another peer.
func TestPeerDoesNotReexportToPeer (t *testing.T) {
    topology := topology_from ([][3]int{{1, 2, -1}, {2, 3, -1}})
    rows := run_rows (t, topology, []*Seed{{asn: 1, prefix: "10.0.0.0/8"}})

    entries := entries_of (rows, "10.0.0.0/8")
    require.Equal (t, []uint32{1}, entries[1])
    require.Equal (t, []uint32{2, 1}, entries[2])
    _, present := entries[3]
    require.False (t, present, "AS 3 must not learn a route its peer learned from a peer")
}

// S3: a route learned from a provider goes to customers only.
func TestProviderRouteNotReexportedUpward (t *testing.T) {
    topology := topology_from ([][3]int{{1, 2, 0}, {2, 3, 0}, {2, 4, -1}})
    rows := run_rows (t, topology, []*Seed{{asn: 1, prefix: "10.0.0.0/8"}})

    entries := entries_of (rows, "10.0.0.0/8")
    require.Equal (t, []uint32{1}, entries[1])
    require.Equal (t, []uint32{2, 1}, entries[2])
    require.Equal (t, []uint32{3, 2, 1}, entries[3])
    _, present := entries[4]
    require.False (t, present, "AS 4 peers with AS 2 and must not receive a provider route")
}

// S4: an ROV AS drops an invalid announcement, and nothing propagates past it.
func TestROVDropsInvalidOrigin (t *testing.T) {
    topology := topology_from ([][3]int{{1, 2, -1}, {2, 3, -1}})
    as, ok := topology.get (2)
    require.True (t, ok)
    as.policy = Policy_rov

    rows := run_rows (t, topology, []*Seed{{asn: 3, prefix: "10.0.0.0/8", rov_invalid: true}})

    entries := entries_of (rows, "10.0.0.0/8")
    require.Equal (t, []uint32{3}, entries[3], "the origin keeps its own announcement")
    _, present := entries[2]
    require.False (t, present)
    _, present = entries[1]
    require.False (t, present)
}

// ROV lets valid announcements through untouched.
func TestROVAcceptsValidOrigin (t *testing.T) {
    topology := topology_from ([][3]int{{1, 2, -1}, {2, 3, -1}})
    as, _ := topology.get (2)
    as.policy = Policy_rov

    rows := run_rows (t, topology, []*Seed{{asn: 3, prefix: "10.0.0.0/8"}})

    entries := entries_of (rows, "10.0.0.0/8")
    require.Equal (t, []uint32{2, 3}, entries[2])
}

// S5: a customer route beats a peer route regardless of path length.
func TestCustomerPreferenceOverPeer (t *testing.T) {
    topology := topology_from ([][3]int{{1, 10, 0}, {1, 20, -1}})
    rows := run_rows (t, topology, []*Seed{
        {asn: 10, prefix: "10.0.0.0/8"},
        {asn: 20, prefix: "10.0.0.0/8"},
    })

    entries := entries_of (rows, "10.0.0.0/8")
    require.Equal (t, []uint32{1, 10}, entries[1], "the route through the customer must win")
}

// S6: equal relationship and path length fall through to the lowest next hop.
func TestPathLengthThenLowestNextHopTiebreak (t *testing.T) {
    topology := topology_from ([][3]int{{100, 7, 0}, {100, 5, 0}})
    rows := run_rows (t, topology, []*Seed{
        {asn: 7, prefix: "10.0.0.0/8"},
        {asn: 5, prefix: "10.0.0.0/8"},
    })

    entries := entries_of (rows, "10.0.0.0/8")
    require.Equal (t, []uint32{100, 5}, entries[100])
}

// A shorter path wins before the next-hop tiebreak is reached.
func TestShorterPathPreferred (t *testing.T) {
    // 9 announces; AS 1 hears it over a long customer chain (via 8) and over
    // a direct customer link (via 9 itself).
    topology := topology_from ([][3]int{{1, 8, 0}, {8, 9, 0}, {1, 9, 0}})
    rows := run_rows (t, topology, []*Seed{{asn: 9, prefix: "10.0.0.0/8"}})

    entries := entries_of (rows, "10.0.0.0/8")
    require.Equal (t, []uint32{1, 9}, entries[1])
}

// -------------------------------------------------------------------------------

func TestGetRibsBeforePropagate (t *testing.T) {
    sim := new_simulation (topology_from ([][3]int{{1, 2, 0}}))
    sim.add_announcement (2, "10.0.0.0/8", false)
    _, err := sim.get_ribs ()
    require.ErrorIs (t, err, err_not_run)
}

func TestSeedOnUnknownASN (t *testing.T) {
    topology := topology_from ([][3]int{{1, 2, 0}})
    rows := run_rows (t, topology, []*Seed{{asn: 99, prefix: "10.0.0.0/8"}})

    // The unknown origin is created on the fly; it has no neighbors, so the
    // route stays local.
    require.Equal (t, []Rib_row{{asn: 99, prefix: "10.0.0.0/8", as_path: []uint32{99}}}, rows)
}

func TestDuplicateSeedLastWriteWins (t *testing.T) {
    topology := topology_from ([][3]int{{1, 2, -1}})
    as, _ := topology.get (1)
    as.policy = Policy_rov

    sim := new_simulation (topology)
    sim.add_announcement (2, "10.0.0.0/8", true)
    sim.add_announcement (2, "10.0.0.0/8", false) // Overrides the invalid seed
    require.NoError (t, sim.propagate ())

    rows, err := sim.get_ribs ()
    require.NoError (t, err)
    entries := entries_of (rows, "10.0.0.0/8")
    require.Equal (t, []uint32{1, 2}, entries[1], "the ROV peer must accept the re-seeded valid announcement")
}

func TestReseedingIsIdempotent (t *testing.T) {
    edges := [][3]int{{1, 2, 0}, {2, 3, 0}, {1, 4, -1}}
    seeds := []*Seed{{asn: 3, prefix: "10.0.0.0/8"}}

    once := run_rows (t, topology_from (edges), seeds)

    sim := new_simulation (topology_from (edges))
    for i := 0; i < 3; i++ {
        sim.add_announcement (3, "10.0.0.0/8", false)
    }
    require.NoError (t, sim.propagate ())
    twice, err := sim.get_ribs ()
    require.NoError (t, err)

    require.Equal (t, once, twice)
}

func TestMultipleOriginsCompete (t *testing.T) {
    // Anycast: 10 and 20 both announce the prefix; 1 is provider of both.
    topology := topology_from ([][3]int{{1, 10, 0}, {1, 20, 0}})
    rows := run_rows (t, topology, []*Seed{
        {asn: 20, prefix: "10.0.0.0/8"},
        {asn: 10, prefix: "10.0.0.0/8"},
    })

    entries := entries_of (rows, "10.0.0.0/8")
    require.Equal (t, []uint32{1, 10}, entries[1], "equal routes tie-break on the lowest next hop")
    require.Equal (t, []uint32{10}, entries[10])
    require.Equal (t, []uint32{20}, entries[20], "an origin keeps its own announcement")
}

// -------------------------------------------------------------------------------

/**
 * A diamond with competing relationships, two prefixes and partial ROV,
 * used by the determinism and scheduling-equivalence tests.
 */
func diamond_fixture () ([][3]int, []*Seed, []uint32) {
    edges := [][3]int{
        {1, 2, 0}, {1, 3, 0},     // 1 provides 2 and 3
        {2, 4, 0}, {3, 4, 0},     // 4 is multihomed under 2 and 3
        {2, 3, -1},               // 2 and 3 also peer
        {5, 1, 0},                // 5 provides 1
        {3, 6, -1},               // 6 peers with 3
    }
    seeds := []*Seed{
        {asn: 4, prefix: "10.0.0.0/8"},
        {asn: 6, prefix: "172.16.0.0/12", rov_invalid: true},
        {asn: 4, prefix: "192.168.0.0/16"},
    }
    rov := []uint32{2}
    return edges, seeds, rov
}

func build_diamond () (*Topology, []*Seed) {
    edges, seeds, rov := diamond_fixture ()
    topology := topology_from (edges)
    for _, asn := range rov {
        topology.get_or_create (asn).policy = Policy_rov
    }
    return topology, seeds
}

func TestDeterministicOutput (t *testing.T) {
    dir := t.TempDir ()
    var contents [][]byte
    for i := 0; i < 2; i++ {
        topology, seeds := build_diamond ()
        rows, err := propagate_sequential (topology, seeds, 0)
        require.NoError (t, err)
        filename := filepath.Join (dir, "run.csv")
        require.NoError (t, write_ribs_csv (rows, filename))
        content, err := os.ReadFile (filename)
        require.NoError (t, err)
        contents = append (contents, content)
    }
    require.Equal (t, string (contents[0]), string (contents[1]))
}

func TestParallelMatchesSequential (t *testing.T) {
    topology_a, seeds_a := build_diamond ()
    sequential, err := propagate_sequential (topology_a, seeds_a, 0)
    require.NoError (t, err)

    topology_b, seeds_b := build_diamond ()
    parallel, err := propagate_parallel (topology_b, seeds_b, 4)
    require.NoError (t, err)

    require.Equal (t, sequential, parallel)
    check_rib_invariants (t, parallel)
}

func TestSnapshotOrdering (t *testing.T) {
    topology, seeds := build_diamond ()
    rows, err := propagate_sequential (topology, seeds, 0)
    require.NoError (t, err)
    require.NotEmpty (t, rows)

    for i := 1; i < len (rows); i++ {
        if rows[i-1].asn != rows[i].asn {
            assert.Less (t, rows[i-1].asn, rows[i].asn)
        } else {
            assert.Less (t, rows[i-1].prefix, rows[i].prefix)
        }
    }
}

func TestNoValleyInvariant (t *testing.T) {
    // Every RIB entry of the diamond respects Gao-Rexford: rebuild the
    // sender relationship along each path and check the export rule.
    topology, seeds := build_diamond ()
    rows, err := propagate_sequential (topology, seeds, 0)
    require.NoError (t, err)

    for _, row := range rows {
        // Walk the path from the origin: each hop must have been allowed to
        // export the route to the next one.
        path := row.as_path
        relation := Origin
        for i := len (path) - 1; i > 0; i-- {
            exporter, ok := topology.get (path[i])
            require.True (t, ok)
            receiver, ok := topology.get (path[i-1])
            require.True (t, ok)
            neighbor_kind := topology.relationship (exporter, receiver)
            require.NotEqual (t, -1, neighbor_kind, "consecutive path elements must be neighbors")
            require.True (t, exportable_to (relation, neighbor_kind),
                "AS %d exported a %s route to its %s %d", exporter.asn,
                relation_string (relation), relation_string (neighbor_kind), receiver.asn)
            relation = topology.relationship (receiver, exporter)
        }
    }
}
