package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/sortviz/internal/trace"
)

// ErrMalformedSteps indicates a steps CSV that cannot be decoded.
var ErrMalformedSteps = errors.New("storage: malformed steps csv")

// WriteStepsCSV writes one row per step: step, kind, i, j, then the array.
// i and j are empty for steps without a highlight.
func WriteStepsCSV(w io.Writer, seq trace.Sequence) error {
	cw := csv.NewWriter(w)

	n := 0
	if seq.Len() > 0 {
		n = len(seq[0].Array)
	}
	header := []string{"step", "kind", "i", "j"}
	for k := 0; k < n; k++ {
		header = append(header, fmt.Sprintf("v%d", k))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for idx, st := range seq {
		pair, kind := st.Highlight()
		row := []string{strconv.Itoa(idx), kind.String(), "", ""}
		if kind != trace.KindNone {
			row[2] = strconv.Itoa(pair[0])
			row[3] = strconv.Itoa(pair[1])
		}
		for _, v := range st.Array {
			row = append(row, strconv.Itoa(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadStepsCSV decodes the format written by WriteStepsCSV.
func ReadStepsCSV(r io.Reader) (trace.Sequence, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return trace.Sequence{}, nil
	}

	seq := make(trace.Sequence, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) < 4 {
			return nil, fmt.Errorf("%w: line %d", ErrMalformedSteps, line+2)
		}
		st := trace.Step{Array: make([]int, 0, len(record)-4)}
		for _, field := range record[4:] {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedSteps, line+2, err)
			}
			st.Array = append(st.Array, v)
		}

		switch record[1] {
		case "comparing", "swapping":
			i, errI := strconv.Atoi(record[2])
			j, errJ := strconv.Atoi(record[3])
			if errI != nil || errJ != nil {
				return nil, fmt.Errorf("%w: line %d: bad indices", ErrMalformedSteps, line+2)
			}
			p := &trace.Pair{i, j}
			if record[1] == "comparing" {
				st.Comparing = p
			} else {
				st.Swapping = p
			}
		case "none":
		default:
			return nil, fmt.Errorf("%w: line %d: kind %q", ErrMalformedSteps, line+2, record[1])
		}
		seq = append(seq, st)
	}
	return seq, nil
}
