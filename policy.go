/* ==================================================================================== *\
    policy.go

    Per-AS route acceptance policies. Two policies exist: default BGP and
    ROV. Selection and export rules are shared; policies differ only in the
    accept filter, so a policy is a tag and a single accept function rather
    than a type hierarchy.
\* ==================================================================================== */

package main

const (
    Policy_bgp = iota
    Policy_rov
)

type accept_fn func (*AS_node, *Announcement) bool

/**
 * Array holding the accept filter of each policy, indexed by the policy tag
 * carried on the AS.
 */
var policy_accept []accept_fn = []accept_fn {
    accept_bgp,
    accept_rov,
}

/**
 * Default BGP acceptance: refuse a route whose path already contains the
 * receiving AS (loop prevention).
 */
func accept_bgp (as *AS_node, ann *Announcement) bool {
    return !ann.contains_asn (as.asn)
}

/**
 * ROV acceptance: drop announcements flagged invalid at origination,
 * otherwise behave like default BGP.
 */
func accept_rov (as *AS_node, ann *Announcement) bool {
    if ann.rov_invalid {
        return false
    }
    return accept_bgp (as, ann)
}

func accepts (as *AS_node, ann *Announcement) bool {
    return policy_accept[as.policy] (as, ann)
}
