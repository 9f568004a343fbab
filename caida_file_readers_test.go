package main

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/require"
)

func write_temp_file (t *testing.T, name, content string) string {
    t.Helper ()
    filename := filepath.Join (t.TempDir (), name)
    require.NoError (t, os.WriteFile (filename, []byte (content), 0644))
    return filename
}

func TestReadAsRel (t *testing.T) {
    content := `# source: CAIDA serial-1
# format: <provider-as>|<customer-as>|0 or <peer-as>|<peer-as>|-1
1|2|0|bgp
2|3|-1|bgp
4|5|0
garbage
6|7
8|9|2
x|10|0
`
    topology := new_topology ()
    require.NoError (t, read_as_rel (write_temp_file (t, "as-rel.txt", content), topology, false))

    // The three well-formed data lines, 3-field and 4-field alike.
    require.Equal (t, 5, topology.nb_ases ())
    as1, _ := topology.get (1)
    as2, _ := topology.get (2)
    require.Equal (t, Customer, topology.relationship (as1, as2))
    as3, _ := topology.get (3)
    require.Equal (t, Peer, topology.relationship (as2, as3))
    as4, _ := topology.get (4)
    as5, _ := topology.get (5)
    require.Equal (t, Customer, topology.relationship (as4, as5))
    _, present := topology.get (8)
    require.False (t, present, "unknown rel codes are skipped")
}

func TestReadAsRelStrictSelfLoop (t *testing.T) {
    topology := new_topology ()
    err := read_as_rel (write_temp_file (t, "as-rel.txt", "5|5|0\n"), topology, true)
    require.ErrorIs (t, err, err_invalid_topology)
}

func TestReadAsRelStrictContradiction (t *testing.T) {
    content := "1|2|0\n1|2|-1\n"
    topology := new_topology ()
    err := read_as_rel (write_temp_file (t, "as-rel.txt", content), topology, true)
    require.ErrorIs (t, err, err_invalid_topology)

    // The same pair repeated with the same code is fine.
    topology = new_topology ()
    require.NoError (t, read_as_rel (write_temp_file (t, "ok.txt", "1|2|0\n1|2|0\n"), topology, true))
}

func TestReadAsRelMissingFile (t *testing.T) {
    topology := new_topology ()
    require.Error (t, read_as_rel ("/nonexistent/as-rel.txt", topology, false))
}

// -------------------------------------------------------------------------------

func TestReadAnnouncements (t *testing.T) {
    content := `seed_asn,prefix,rov_invalid
3,1.2.0.0/16,False
7,10.0.0.0/8,TRUE
bad,10.1.0.0/16,false
11,10.2.0.0/16,false
`
    seeds, err := read_announcements (write_temp_file (t, "anns.csv", content))
    require.NoError (t, err)
    require.Equal (t, []*Seed{
        {asn: 3, prefix: "1.2.0.0/16", rov_invalid: false},
        {asn: 7, prefix: "10.0.0.0/8", rov_invalid: true},
        {asn: 11, prefix: "10.2.0.0/16", rov_invalid: false},
    }, seeds)
}

func TestReadAnnouncementsColumnOrder (t *testing.T) {
    content := `prefix,rov_invalid,seed_asn
1.2.0.0/16,true,3
`
    seeds, err := read_announcements (write_temp_file (t, "anns.csv", content))
    require.NoError (t, err)
    require.Equal (t, []*Seed{{asn: 3, prefix: "1.2.0.0/16", rov_invalid: true}}, seeds)
}

func TestReadAnnouncementsBadHeader (t *testing.T) {
    _, err := read_announcements (write_temp_file (t, "anns.csv", "asn,prefix\n1,10.0.0.0/8\n"))
    require.Error (t, err)
}

// -------------------------------------------------------------------------------

func TestReadRovAsns (t *testing.T) {
    content := `# ROV deployment
1

2
not_an_asn
174
`
    asns, err := read_rov_asns (write_temp_file (t, "rov.txt", content))
    require.NoError (t, err)
    require.Equal (t, []uint32{1, 2, 174}, asns)
}
