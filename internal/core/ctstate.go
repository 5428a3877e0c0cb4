package core

import "strings"

// CTState is the set of connection-tracking flags the engine assigns to a
// packet.
type CTState uint32

const (
	StateNew         CTState = 1 << iota // connection not seen before
	StateEstablished                     // part of a known connection
	StateRelated                         // related to a known connection
	StateReplyDir                        // flowing in the reply direction
	StateInvalid                         // could not be classified
	StateTracked                         // went through the tracker
	StateSrcNAT                          // source address/port rewritten
	StateDstNAT                          // destination address/port rewritten
)

var ctStateNames = []struct {
	flag CTState
	name string
}{
	{StateNew, "new"},
	{StateEstablished, "est"},
	{StateRelated, "rel"},
	{StateReplyDir, "rpl"},
	{StateInvalid, "inv"},
	{StateTracked, "trk"},
	{StateSrcNAT, "snat"},
	{StateDstNAT, "dnat"},
}

// String formats the state as a pipe-delimited list of flag names.
func (s CTState) String() string {
	var names []string
	for _, f := range ctStateNames {
		if s&f.flag != 0 {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}
