package edit

import (
	"strconv"
	"strings"
)

// Range is an inclusive span of point indices.
type Range struct {
	From int
	To   int
}

func (r Range) Len() int { return r.To - r.From + 1 }

// ResolvePoint turns a point token into an index. A token is "start",
// "end", a zero-based index or an HH:MM:SS offset from the start time.
func (e *Editor) ResolvePoint(tok string) (int, error) {
	n := e.trk.Len()
	if n == 0 {
		return 0, invalidArg(tok, "the track is empty")
	}

	switch tok {
	case "start":
		return 0, nil
	case "end":
		return n - 1, nil
	}

	if strings.Contains(tok, ":") {
		offset, err := parseOffset(tok)
		if err != nil {
			return 0, err
		}
		start := e.trk.StartTime
		for i := 0; i < n; i++ {
			if int(e.trk.At(i).Timestamp-start) == offset {
				return i, nil
			}
		}
		return 0, invalidArg(tok, "no point at this time offset")
	}

	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, invalidArg(tok, "not a point index, time offset, start or end")
	}
	if idx < 0 || idx >= n {
		return 0, invalidArg(tok, "index out of range [0, %d]", n-1)
	}
	return idx, nil
}

// parseOffset converts HH:MM:SS into seconds.
func parseOffset(tok string) (int, error) {
	parts := strings.Split(tok, ":")
	if len(parts) != 3 {
		return 0, invalidArg(tok, "time offsets use the HH:MM:SS format")
	}
	var hms [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, invalidArg(tok, "time offsets use the HH:MM:SS format")
		}
		hms[i] = v
	}
	if hms[1] > 59 || hms[2] > 59 {
		return 0, invalidArg(tok, "minutes and seconds must be within 0-59")
	}
	return hms[0]*3600 + hms[1]*60 + hms[2], nil
}

// ResolveRange resolves an optional <from> <to> token pair. No tokens
// selects the whole track.
func (e *Editor) ResolveRange(toks []string) (Range, error) {
	switch len(toks) {
	case 0:
		if e.trk.Len() == 0 {
			return Range{}, invalidArg("", "the track is empty")
		}
		return Range{From: 0, To: e.trk.Len() - 1}, nil
	case 2:
	default:
		return Range{}, invalidArg(strings.Join(toks, " "), "a range is two points: <from> <to>")
	}

	from, err := e.ResolvePoint(toks[0])
	if err != nil {
		return Range{}, err
	}
	to, err := e.ResolvePoint(toks[1])
	if err != nil {
		return Range{}, err
	}
	if from > to {
		return Range{}, invalidArg(toks[1], "range end precedes its start (%d > %d)", from, to)
	}
	return Range{From: from, To: to}, nil
}
