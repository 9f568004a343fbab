/* ==================================================================================== *\
    rib.go

    The Local-RIB (per AS, the currently best announcement for each prefix)
    and the route selection procedure.

    Selection is a chain of strictly-ordered criteria, applied until one of
    them can discriminate the two routes:
    1. Local preference by relationship (customer > peer > provider,
       locally-originated routes count as customer routes).
    2. Shortest AS path.
    3. Lowest next-hop ASN.
    A candidate equal to the incumbent on all three criteria loses: the
    first route seen wins at equality, which makes the outcome independent
    of the order in which announcements are processed within a round.
\* ==================================================================================== */

package main

/**
 * Mapping from prefix to the current best announcement. Entries are
 * overwritten when a strictly-better route arrives, never deleted during
 * propagation.
 */
type Local_rib map[string]*Announcement

/**
 * A selection_fn compares a candidate route against the incumbent for the
 * same prefix. It returns (preferred, decided): 'decided' is false when the
 * criterion cannot discriminate the two routes and the next criterion must
 * be applied.
 */
type selection_fn func (candidate, incumbent *Announcement) (bool, bool)

/**
 * Array holding the selection criteria, in application order.
 */
var selection_chain []selection_fn = []selection_fn {
    prefer_relationship,
    prefer_shorter_path,
    prefer_lowest_next_hop,
}

func prefer_relationship (candidate, incumbent *Announcement) (bool, bool) {
    c := relation_preference (candidate.received_from)
    i := relation_preference (incumbent.received_from)
    if c == i {
        return false, false
    }
    return c < i, true
}

func prefer_shorter_path (candidate, incumbent *Announcement) (bool, bool) {
    if len (candidate.as_path) == len (incumbent.as_path) {
        return false, false
    }
    return len (candidate.as_path) < len (incumbent.as_path), true
}

func prefer_lowest_next_hop (candidate, incumbent *Announcement) (bool, bool) {
    if candidate.next_hop_asn == incumbent.next_hop_asn {
        return false, false
    }
    return candidate.next_hop_asn < incumbent.next_hop_asn, true
}

/**
 * Returns true if the candidate is strictly preferred over the incumbent.
 */
func better_route (candidate, incumbent *Announcement) bool {
    for _, criterion := range selection_chain {
        if preferred, decided := criterion (candidate, incumbent); decided {
            return preferred
        }
    }
    return false // Full tie: keep the incumbent.
}

/**
 * Installs the candidate if the prefix is new to this RIB or if the
 * candidate is strictly better than the incumbent. Returns whether the RIB
 * changed.
 */
func (rib Local_rib) install (candidate *Announcement) bool {
    incumbent, present := rib[candidate.prefix]
    if present && !better_route (candidate, incumbent) {
        return false
    }
    rib[candidate.prefix] = candidate
    return true
}
