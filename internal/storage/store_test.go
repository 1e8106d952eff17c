package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/sortviz/internal/trace"
)

func saveSample(t *testing.T, st *Store) (string, []int, trace.Sequence) {
	t.Helper()
	input := []int{5, 3, 1}
	seq := trace.BubbleSort(input)
	runID, err := st.Save(context.Background(), trace.Bubble, "random", 42, input, seq, map[string]float64{"swaps": 3})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	return runID, input, seq
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, input, seq := saveSample(t, st)
	if !strings.HasPrefix(runID, "bubble_") {
		t.Errorf("expected bubble_ prefix, got %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Algorithm != "bubble" {
		t.Errorf("expected algorithm bubble, got %s", meta.Algorithm)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Steps != 9 {
		t.Errorf("expected 9 steps, got %d", meta.Steps)
	}
	if !reflect.DeepEqual(meta.Input, input) {
		t.Errorf("expected input %v, got %v", input, meta.Input)
	}
	if meta.Metrics["swaps"] != 3 {
		t.Errorf("expected 3 swaps, got %f", meta.Metrics["swaps"])
	}

	loaded, err := st.LoadSteps(runID)
	if err != nil {
		t.Fatalf("load steps failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, seq) {
		t.Errorf("steps differ after reload:\n%v\n%v", seq, loaded)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	saveSample(t, st)
	saveSample(t, st)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID == runs[1].ID {
		t.Error("expected distinct run ids")
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, _, _ := saveSample(t, st)

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "steps.csv")); os.IsNotExist(err) {
		t.Error("steps.csv not created")
	}
}

func TestStoreRemove(t *testing.T) {
	st := New(t.TempDir())
	runID, _, _ := saveSample(t, st)

	if err := st.Remove(runID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := st.Load(runID); err == nil {
		t.Error("expected load to fail after remove")
	}
	if err := st.Remove("nope"); err == nil {
		t.Error("expected error removing unknown trace")
	}
}

func TestStepsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStepsCSV(&buf, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	seq, err := ReadStepsCSV(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(seq) != 0 {
		t.Errorf("expected empty sequence, got %d", len(seq))
	}
}

func TestStepsCSVMalformed(t *testing.T) {
	tests := []string{
		"step,kind,i,j,v0\n0,comparing,x,1,5\n",
		"step,kind,i,j,v0\n0,sliding,,,5\n",
		"step,kind,i,j,v0\n0,none,,,five\n",
		"step,kind\n0,none\n",
	}
	for _, in := range tests {
		_, err := ReadStepsCSV(strings.NewReader(in))
		if !errors.Is(err, ErrMalformedSteps) {
			t.Errorf("%q: expected ErrMalformedSteps, got %v", in, err)
		}
	}
}

func TestStepsCSVRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStepsCSV(&buf, trace.BubbleSort([]int{2, 1})); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	want := "step,kind,i,j,v0,v1\n0,comparing,0,1,2,1\n1,swapping,0,1,2,1\n2,none,,,1,2\n"
	if buf.String() != want {
		t.Errorf("expected\n%s\ngot\n%s", want, buf.String())
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	input := []int{2, 1}
	seq := trace.BubbleSort(input)

	if err := ExportJSON(&buf, "bubble_abc", trace.Bubble, input, seq, map[string]float64{"swaps": 1}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.Steps != 3 || len(data.Trace) != 3 {
		t.Errorf("expected 3 steps, got %d/%d", data.Steps, len(data.Trace))
	}
	if data.Trace[0].Comparing == nil || data.Trace[0].Swapping != nil {
		t.Errorf("unexpected first step %+v", data.Trace[0])
	}
	if !strings.Contains(buf.String(), `"swapping": null`) {
		t.Error("expected explicit null highlight fields")
	}
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	if err := ExportJSONFile(path, "", trace.Quick, []int{1}, nil, nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), `"trace": []`) {
		t.Errorf("expected empty trace array, got %s", data)
	}
}
