package telemetry

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecorderWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	if err := rec.Write(Record{Generation: 0, Population: 5}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Write(Record{Generation: 1, Population: 5, Births: 2, Deaths: 2}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", buf.String())
	}
	if lines[0] != "seed,generation,population,births,deaths" {
		t.Fatalf("header = %q", lines[0])
	}

	got, err := ReadRecords(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Births != 2 || got[1].Generation != 1 {
		t.Fatalf("records = %+v", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	if err := rec.Write(Record{}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	rec, err := Create("")
	if err != nil || rec != nil {
		t.Fatalf("Create(\"\") = %v, %v", rec, err)
	}
}

func TestCreateMakesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "a.csv")
	rec, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Write(Record{Seed: 3}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "seed,") {
		t.Fatalf("file contents = %q", data)
	}
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{Seed: 9, Generation: 0, Population: 2},
		{Seed: 9, Generation: 1, Population: 4},
		{Seed: 9, Generation: 2, Population: 6},
	}
	s := Summarize(records)
	if s.Seed != 9 || s.Generations != 2 || s.PeakPopulation != 6 || s.FinalPopulation != 6 {
		t.Fatalf("summary = %+v", s)
	}
	if math.Abs(s.MeanPopulation-4) > 1e-9 {
		t.Fatalf("mean = %v", s.MeanPopulation)
	}
	// Sample standard deviation of {2,4,6}.
	if math.Abs(s.StdDevPopulation-2) > 1e-9 {
		t.Fatalf("stddev = %v", s.StdDevPopulation)
	}

	if (Summarize(nil) != Summary{}) {
		t.Fatal("empty input should give zero summary")
	}
	one := Summarize(records[:1])
	if one.StdDevPopulation != 0 || one.MeanPopulation != 2 {
		t.Fatalf("single record summary = %+v", one)
	}
}
