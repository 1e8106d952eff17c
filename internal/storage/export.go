package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sortviz/internal/trace"
)

type ExportData struct {
	ID        string             `json:"id,omitempty"`
	Algorithm string             `json:"algorithm"`
	Size      int                `json:"size"`
	Steps     int                `json:"steps"`
	Input     []int              `json:"input"`
	Metrics   map[string]float64 `json:"metrics"`
	Trace     trace.Sequence     `json:"trace"`
}

// ExportJSON writes a trace as indented JSON to w.
func ExportJSON(w io.Writer, id string, alg trace.Algorithm, input []int, seq trace.Sequence, metrics map[string]float64) error {
	data := ExportData{
		ID:        id,
		Algorithm: string(alg),
		Size:      len(input),
		Steps:     seq.Len(),
		Input:     input,
		Metrics:   metrics,
		Trace:     seq,
	}
	if data.Trace == nil {
		data.Trace = trace.Sequence{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSONFile writes a trace as JSON to path.
func ExportJSONFile(path string, id string, alg trace.Algorithm, input []int, seq trace.Sequence, metrics map[string]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, id, alg, input, seq, metrics)
}
