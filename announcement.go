/* ==================================================================================== *\
    announcement.go

    The unit of routing information exchanged between ASes, together with the
    Gao-Rexford relationship constants, the local-preference order and the
    export eligibility rules.
\* ==================================================================================== */

package main

import (
    "strconv"
    "strings"
)

/**
 * Relationship of the sender of an announcement, seen from the receiver.
 * Origin marks a seed announcement installed directly at its origin AS.
 * The order matters: for the routes of a given prefix, a lower value is
 * preferred (customer > peer > provider).
 */
const (
    Origin = iota
    Customer
    Peer
    Provider
)

func relation_string (relation int) string {
    switch relation {
        case Origin: return "origin"
        case Customer: return "customer"
        case Peer: return "peer"
        case Provider: return "provider"
        default: return "unknown"
    }
}

/**
 * An immutable announcement. Derived announcements (on acceptance by a
 * neighbor) are new values; an announcement is never modified once built.
 * - as_path: leftmost element is the most recent hop, rightmost the origin.
 * - next_hop_asn: the neighbor that advertised this announcement (the origin
 *   itself for a seed).
 * - rov_invalid: set at origination, carried through unchanged.
 */
type Announcement struct {
    prefix string;
    as_path []uint32;
    next_hop_asn uint32;
    received_from int;
    rov_invalid bool;
}

/**
 * Builds the seed announcement installed at an origin AS: a path containing
 * only the origin itself.
 */
func new_seed_announcement (origin_asn uint32, prefix string, rov_invalid bool) *Announcement {
    return &Announcement{
        prefix: prefix,
        as_path: []uint32{origin_asn},
        next_hop_asn: origin_asn,
        received_from: Origin,
        rov_invalid: rov_invalid,
    }
}

/**
 * Derives the announcement stored at a receiving AS: the receiver prepends
 * its own ASN to the path it was advertised. The advertised path already
 * starts with the exporter, so the exporter becomes the next hop.
 * 'relation' is the relationship of the exporter from the receiver's
 * viewpoint (an export to a provider is received from a customer, etc.).
 */
func (ann *Announcement) accept_at (asn uint32, relation int) *Announcement {
    path := make ([]uint32, 0, len (ann.as_path) + 1)
    path = append (path, asn)
    path = append (path, ann.as_path...)
    return &Announcement{
        prefix: ann.prefix,
        as_path: path,
        next_hop_asn: ann.as_path[0],
        received_from: relation,
        rov_invalid: ann.rov_invalid,
    }
}

func (ann *Announcement) String () string {
    return ann.prefix + " " + format_as_path (ann.as_path) + " from " + relation_string (ann.received_from)
}

func (ann *Announcement) contains_asn (asn uint32) bool {
    for _, a := range ann.as_path {
        if a == asn {
            return true
        }
    }
    return false
}

/**
 * Local preference of a route based on the relationship it was received
 * over. A route originated locally is treated as a customer route.
 */
func relation_preference (relation int) int {
    if relation == Origin {
        return Customer
    }
    return relation
}

/**
 * Gao-Rexford export rule: a route learned from a customer (or originated
 * locally) is exported to everybody; a route learned from a peer or a
 * provider is exported to customers only.
 */
func exportable_to (received_from, neighbor_kind int) bool {
    if neighbor_kind == Customer {
        return true
    }
    return received_from == Origin || received_from == Customer
}

/**
 * Renders an AS path in the output format: "(a1, a2, ..., ak)", a1 being the
 * most recent hop and ak the origin.
 */
func format_as_path (as_path []uint32) string {
    var str strings.Builder
    str.WriteString ("(")
    for i, asn := range as_path {
        if i != 0 {
            str.WriteString (", ")
        }
        str.WriteString (strconv.FormatUint (uint64 (asn), 10))
    }
    str.WriteString (")")
    return str.String ()
}
