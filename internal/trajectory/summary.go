package trajectory

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/RMahshie/nonflow/internal/thermo"
)

// Range is the closed interval covered by one state variable.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary holds the min → max ranges of T, P and v along a trajectory.
type Summary struct {
	Points int   `json:"points"`
	T      Range `json:"T"`
	P      Range `json:"P"`
	V      Range `json:"v"`
}

// Summarize computes the ranges of points.
func Summarize(points []thermo.StatePoint) Summary {
	s := Summary{Points: len(points)}
	if len(points) == 0 {
		return s
	}
	s.T = Range{Min: math.Inf(1), Max: math.Inf(-1)}
	s.P, s.V = s.T, s.T
	for _, p := range points {
		s.T = s.T.extend(p.T)
		s.P = s.P.extend(p.P)
		s.V = s.V.extend(p.V)
	}
	return s
}

func (r Range) extend(x float64) Range {
	return Range{Min: math.Min(r.Min, x), Max: math.Max(r.Max, x)}
}

// CSVHeader is the column order written by WriteCSV.
var CSVHeader = []string{"T", "P", "v", "s"}

// WriteCSV writes points as T,P,v,s rows with a header line.
func WriteCSV(w io.Writer, points []thermo.StatePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.T, 'g', -1, 64),
			strconv.FormatFloat(p.P, 'g', -1, 64),
			strconv.FormatFloat(p.V, 'g', -1, 64),
			strconv.FormatFloat(p.S, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
