package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// Summary condenses one run's records.
type Summary struct {
	Seed             int64
	Generations      int
	PeakPopulation   int
	FinalPopulation  int
	MeanPopulation   float64
	StdDevPopulation float64
}

// Summarize computes population statistics over records, which are expected
// to come from a single run in generation order.
func Summarize(records []Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	pops := make([]float64, len(records))
	var s Summary
	for i, r := range records {
		pops[i] = float64(r.Population)
		if r.Population > s.PeakPopulation {
			s.PeakPopulation = r.Population
		}
	}
	last := records[len(records)-1]
	s.Seed = last.Seed
	s.Generations = last.Generation
	s.FinalPopulation = last.Population
	s.MeanPopulation, s.StdDevPopulation = stat.MeanStdDev(pops, nil)
	if len(pops) == 1 {
		s.StdDevPopulation = 0
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("seed", s.Seed),
		slog.Int("generations", s.Generations),
		slog.Int("peak", s.PeakPopulation),
		slog.Int("final", s.FinalPopulation),
		slog.Float64("mean", s.MeanPopulation),
		slog.Float64("stddev", s.StdDevPopulation),
	)
}
