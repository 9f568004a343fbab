/* =============================================== *\
                Overlay Computation
\* =============================================== */

package main

import (
    "fmt"
    "log"
    "net"
    "sort"
    "strconv"
    "strings"
    radix "github.com/Emeline-1/radix"
)

/**
 * Input: a RIB snapshot produced by the simulator
 * Output: for every AS, the overlay groups of its table, i.e. an aggregate
 * prefix and the more-specific prefixes that are routed over the exact same
 * AS path. Such more-specifics carry no routing information of their own.
 *
 * One line per overlay pair on stdout: asn aggregate more_specific
 */
func analyse_overlays (rib_file string) {
    rows, err := read_rib_csv (rib_file)
    if err != nil {
        log.Fatal ("Error: " + err.Error ())
    }

    /* --- Group the snapshot per AS --- */
    as_rows := make (map[uint32][]Rib_row)
    asns := make ([]uint32, 0, 1024)
    for _, row := range rows {
        if _, present := as_rows[row.asn]; !present {
            asns = append (asns, row.asn)
        }
        as_rows[row.asn] = append (as_rows[row.asn], row)
    }
    sort.Slice (asns, func (i, j int) bool { return asns[i] < asns[j] })

    /* --- Per AS: build a radix tree of its table and walk it --- */
    nb_overlays := 0
    for _, asn := range asns {
        t := radix.New ()
        for _, row := range as_rows[asn] {
            binary_prefix, ok := get_binary_string (row.prefix)
            if !ok { // Not an IPv4 CIDR prefix: an opaque routing key cannot overlay
                continue
            }
            t.Insert (binary_prefix, format_as_path (row.as_path))
        }
        walk := generate_walk_radix_tree (asn, &nb_overlays)
        t.Walk_post (walk)
    }
    log.Println ("Nb overlay pairs:", nb_overlays)
}

/**
 * Function performing an action during the post-order walk of a radix tree:
 * reports every direct more-specific routed exactly like its aggregate.
 */
func generate_walk_radix_tree (asn uint32, nb_overlays *int) radix.WalkFnPost {
    return func (parent *radix.LeafNode, children []*radix.LeafNode) {
        aggregate_prefix := get_prefix_from_binary (parent.Key)
        aggregate_aspath, _ := parent.Val.(string)

        for _, more_specific := range children {
            more_specific_aspath, _ := more_specific.Val.(string)
            if more_specific_aspath == aggregate_aspath {
                fmt.Println (format_asn (asn), aggregate_prefix, get_prefix_from_binary (more_specific.Key))
                *nb_overlays++
            }
        }
    }
}

/* =============================================== *\
            Binary prefix representation
\* =============================================== */

/**
 * Returns the prefix as a binary string, cut at mask length.
 * ex: 1.0.4.0/22 -> "0000000100000000000001"
 */
func get_binary_string (prefix string) (string, bool) {
    _, network, err := net.ParseCIDR (prefix)
    if err != nil || network.IP.To4 () == nil {
        return "", false
    }
    ip := network.IP.To4 ()
    ip_string := fmt.Sprintf ("%08b%08b%08b%08b", ip[0], ip[1], ip[2], ip[3])
    l, _ := network.Mask.Size ()
    return ip_string[:l], true
}

/**
 * Does the reverse operation of get_binary_string
 */
func get_prefix_from_binary (binary string) string {
    mask := len (binary)
    binary += strings.Repeat ("0", 32 - mask)

    r := ""
    for start := 0; start <= 24; start += 8 {
        c, _ := strconv.ParseUint (binary[start:start+8], 2, 8)
        r += strconv.Itoa (int (c)) + "."
    }
    return r[:len (r)-1] + "/" + strconv.Itoa (mask)
}
