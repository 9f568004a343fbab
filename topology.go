/* ==================================================================================== *\
    topology.go

    The AS-level topology: ASes and their typed neighbor relations
    (customers, providers, peers).

    ASes are stored in a dense array and referenced by index; a secondary
    asn -> index map resolves external ASNs. Neighbor lists are slices of
    indices, sorted by neighbor ASN once the topology is frozen.
    The topology is immutable during propagation.
\* ==================================================================================== */

package main

import (
    "sort"
)

/* --- Relationship codes of the input tuples (asn1, asn2, rel) --- */
const (
    Rel_provider_customer = 0  // asn1 is a provider of asn2
    Rel_peer = -1
)

type AS_node struct {
    asn uint32;
    index int;            // Position in the dense array
    customers []int;      // Indices of neighbor ASes
    providers []int;
    peers []int;
    policy int;           // One of Policy_bgp, Policy_rov
}

type Topology struct {
    ases []*AS_node;
    asn_to_index map[uint32]int;
    sorted_indices []int;  // Indices in ascending ASN order, built by freeze()
    frozen bool;
}

func new_topology () *Topology {
    return &Topology{
        ases: make ([]*AS_node, 0, 1024),
        asn_to_index: make (map[uint32]int),
    }
}

/**
 * Returns the AS with the given ASN, creating it (with the default BGP
 * policy and empty neighbor sets) if it does not exist yet.
 */
func (t *Topology) get_or_create (asn uint32) *AS_node {
    if index, present := t.asn_to_index[asn]; present {
        return t.ases[index]
    }
    as := &AS_node{asn: asn, index: len (t.ases), policy: Policy_bgp}
    t.ases = append (t.ases, as)
    t.asn_to_index[asn] = as.index
    t.frozen = false
    return as
}

func (t *Topology) get (asn uint32) (*AS_node, bool) {
    index, present := t.asn_to_index[asn]
    if !present {
        return nil, false
    }
    return t.ases[index], true
}

func (t *Topology) nb_ases () int {
    return len (t.ases)
}

/**
 * Records a relationship between a and b. Self-loops are rejected silently.
 * The graph is a simple graph: if the same pair appears again, the previous
 * relationship between the two ASes is discarded first (last write wins).
 */
func (t *Topology) add_relationship (a, b uint32, rel_code int) {
    if a == b {
        return
    }
    as_a := t.get_or_create (a)
    as_b := t.get_or_create (b)

    t.unlink (as_a, as_b)
    switch rel_code {
        case Rel_provider_customer:
            as_a.customers = append (as_a.customers, as_b.index)
            as_b.providers = append (as_b.providers, as_a.index)
        case Rel_peer:
            as_a.peers = append (as_a.peers, as_b.index)
            as_b.peers = append (as_b.peers, as_a.index)
    }
    t.frozen = false
}

/**
 * Returns the relationship currently recorded between a and b (from a's
 * viewpoint: "b is a <relation> of a"), or -1 if the two are not linked.
 */
func (t *Topology) relationship (a, b *AS_node) int {
    if find_int_index (a.customers, b.index) != -1 {
        return Customer
    }
    if find_int_index (a.peers, b.index) != -1 {
        return Peer
    }
    if find_int_index (a.providers, b.index) != -1 {
        return Provider
    }
    return -1
}

func (t *Topology) unlink (a, b *AS_node) {
    a.customers = remove_int (a.customers, b.index)
    a.providers = remove_int (a.providers, b.index)
    a.peers = remove_int (a.peers, b.index)
    b.customers = remove_int (b.customers, a.index)
    b.providers = remove_int (b.providers, a.index)
    b.peers = remove_int (b.peers, a.index)
}

/**
 * Sorts every neighbor list by neighbor ASN and builds the ascending-ASN
 * iteration order. Must be called after the last mutation and before
 * propagation, so that every traversal of the topology is deterministic.
 */
func (t *Topology) freeze () {
    by_asn := func (indices []int) {
        sort.Slice (indices, func (i, j int) bool {
            return t.ases[indices[i]].asn < t.ases[indices[j]].asn
        })
    }
    for _, as := range t.ases {
        by_asn (as.customers)
        by_asn (as.providers)
        by_asn (as.peers)
    }
    t.sorted_indices = make ([]int, len (t.ases))
    for i := range t.sorted_indices {
        t.sorted_indices[i] = i
    }
    by_asn (t.sorted_indices)
    t.frozen = true
}

/**
 * Returns the ASes in ascending ASN order.
 */
func (t *Topology) iter_ases () []*AS_node {
    if !t.frozen {
        t.freeze ()
    }
    ases := make ([]*AS_node, 0, len (t.ases))
    for _, index := range t.sorted_indices {
        ases = append (ases, t.ases[index])
    }
    return ases
}

func find_int_index (slice []int, element int) int {
    for i, v := range slice {
        if v == element {
            return i
        }
    }
    return -1
}

func remove_int (slice []int, element int) []int {
    i := find_int_index (slice, element)
    if i == -1 {
        return slice
    }
    return append (slice[:i], slice[i+1:]...)
}
