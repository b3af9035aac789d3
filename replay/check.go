package replay

import "fmt"

// Check reports violations of the ordering assumptions the viewer relies
// on. The dataset is still usable when problems are found; callers log them.
func (d *Dataset) Check() []string {
	var out []string
	if d.Duration < 0 {
		out = append(out, fmt.Sprintf("negative duration %v", d.Duration))
	}
	for i := 1; i < len(d.Events); i++ {
		if d.Events[i].At() < d.Events[i-1].At() {
			out = append(out, fmt.Sprintf("event %d (%s) at %.3f precedes event %d at %.3f",
				i, d.Events[i].Kind(), d.Events[i].At(), i-1, d.Events[i-1].At()))
		}
	}
	lastSeq := map[int]int64{}
	for i, m := range d.Moves {
		if prev, ok := lastSeq[m.Player]; ok && m.Seq < prev {
			out = append(out, fmt.Sprintf("move %d: player %d seq %d after %d", i, m.Player, m.Seq, prev))
		}
		lastSeq[m.Player] = m.Seq
		if m.Player < 0 || m.Player >= len(d.Players) {
			out = append(out, fmt.Sprintf("move %d: unknown player %d", i, m.Player))
		}
	}
	for _, id := range d.Impostors {
		if id < 0 || id >= len(d.Players) {
			out = append(out, fmt.Sprintf("impostor id %d outside roster", id))
		}
	}
	if len(out) > 32 {
		n := len(out)
		out = append(out[:32], fmt.Sprintf("... %d more", n-32))
	}
	return out
}
