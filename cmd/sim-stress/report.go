package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plus3/nihilchroma/game"
)

type Report struct {
	// Configuration
	Frames  int
	Workers int
	Seed    uint64
	TPS     int

	// Results
	Results       []WorkerResult
	TotalTime     time.Duration
	Totals        WorkerResult
	Systems       []SystemTotals
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// WorkerResult summarises every session one worker ran.
type WorkerResult struct {
	Seed         uint64
	Frames       int
	Sessions     int
	GameOvers    int
	BestScore    int
	TotalScore   int
	Bosses       int
	Purged       int
	PeakEntities int
	UpdateTime   Stats

	systems []SystemTotals
}

type SystemTotals struct {
	Name       string
	Executions int64
	Total      time.Duration
	Max        time.Duration
}

func (s SystemTotals) Avg() time.Duration {
	if s.Executions == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Executions)
}

// absorb folds a finished or abandoned session into the result.
func (r *WorkerResult) absorb(s *game.Session) {
	if s.Reason() == game.GameOver {
		r.GameOvers++
	}
	if s.BossSpawned() {
		r.Bosses++
	}
	r.TotalScore += s.Score()
	r.BestScore = max(r.BestScore, s.Score())

	for _, sys := range s.Scheduler.GetStats().Systems {
		r.systems = mergeSystem(r.systems, SystemTotals{
			Name:       sys.Name,
			Executions: sys.ExecutionCount,
			Total:      sys.TotalDuration,
			Max:        sys.MaxDuration,
		})
	}
}

// mergeSystem adds s to the entry with the same name, keeping first-seen order.
func mergeSystem(list []SystemTotals, s SystemTotals) []SystemTotals {
	i := slices.IndexFunc(list, func(t SystemTotals) bool { return t.Name == s.Name })
	if i < 0 {
		return append(list, s)
	}
	list[i].Executions += s.Executions
	list[i].Total += s.Total
	list[i].Max = max(list[i].Max, s.Max)
	return list
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// Finalize aggregates the worker results into Totals and Systems.
func (r *Report) Finalize() {
	var t WorkerResult
	for _, res := range r.Results {
		t.Frames += res.Frames
		t.Sessions += res.Sessions
		t.GameOvers += res.GameOvers
		t.TotalScore += res.TotalScore
		t.Bosses += res.Bosses
		t.Purged += res.Purged
		t.BestScore = max(t.BestScore, res.BestScore)
		t.PeakEntities = max(t.PeakEntities, res.PeakEntities)
		t.UpdateTime.Samples = append(t.UpdateTime.Samples, res.UpdateTime.Samples...)
		for _, sys := range res.systems {
			r.Systems = mergeSystem(r.Systems, sys)
		}
	}
	t.UpdateTime.Finalize()
	r.Totals = t
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Nihil Chroma Stress Report

## Configuration
- **Frames per worker:** {{.Frames}} at {{.TPS}} TPS
- **Workers:** {{.Workers}} (base seed {{.Seed}})

## Gameplay
- **Sessions:** {{.Totals.Sessions}} ({{.Totals.GameOvers}} game overs)
- **Score:** best {{.Totals.BestScore}}, total {{.Totals.TotalScore}}
- **Bosses spawned:** {{.Totals.Bosses}}
- **Entities:** peak {{.Totals.PeakEntities}}, purged {{.Totals.Purged}}

## Performance Results
- **Total Frames:** {{.Totals.Frames}}
- **Total Test Time:** {{.TotalTime}}
- **Step Time (Frame):**
  - **Avg:** {{.Totals.UpdateTime.Avg}}
  - **P99:** {{.Totals.UpdateTime.P99}}
  - **Min:** {{.Totals.UpdateTime.Min}}
  - **Max:** {{.Totals.UpdateTime.Max}}

## Systems
| System | Executions | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.Executions}} | {{.Avg}} | {{.Max}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause Total: {{.MemStatsEnd.PauseTotalNs | ns}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

type yamlSystem struct {
	Name       string `yaml:"name"`
	Executions int64  `yaml:"executions"`
	Avg        string `yaml:"avg"`
	Max        string `yaml:"max"`
}

type yamlReport struct {
	Frames       int          `yaml:"frames_per_worker"`
	Workers      int          `yaml:"workers"`
	Seed         uint64       `yaml:"seed"`
	TPS          int          `yaml:"tps"`
	Took         string       `yaml:"took"`
	Sessions     int          `yaml:"sessions"`
	GameOvers    int          `yaml:"game_overs"`
	BestScore    int          `yaml:"best_score"`
	TotalScore   int          `yaml:"total_score"`
	Bosses       int          `yaml:"bosses"`
	PeakEntities int          `yaml:"peak_entities"`
	Purged       int          `yaml:"purged"`
	StepAvg      string       `yaml:"step_avg"`
	StepP99      string       `yaml:"step_p99"`
	StepMax      string       `yaml:"step_max"`
	HeapDelta    int64        `yaml:"heap_delta_bytes"`
	NumGC        uint32       `yaml:"num_gc"`
	Systems      []yamlSystem `yaml:"systems"`
}

// WriteYAML writes a machine-readable summary of the report.
func (r *Report) WriteYAML(w io.Writer) error {
	out := yamlReport{
		Frames:       r.Frames,
		Workers:      r.Workers,
		Seed:         r.Seed,
		TPS:          r.TPS,
		Took:         r.TotalTime.String(),
		Sessions:     r.Totals.Sessions,
		GameOvers:    r.Totals.GameOvers,
		BestScore:    r.Totals.BestScore,
		TotalScore:   r.Totals.TotalScore,
		Bosses:       r.Totals.Bosses,
		PeakEntities: r.Totals.PeakEntities,
		Purged:       r.Totals.Purged,
		StepAvg:      r.Totals.UpdateTime.Avg.String(),
		StepP99:      r.Totals.UpdateTime.P99.String(),
		StepMax:      r.Totals.UpdateTime.Max.String(),
		HeapDelta:    int64(r.MemStatsEnd.HeapAlloc) - int64(r.MemStatsStart.HeapAlloc),
		NumGC:        r.MemStatsEnd.NumGC - r.MemStatsStart.NumGC,
	}
	for _, s := range r.Systems {
		out.Systems = append(out.Systems, yamlSystem{
			Name:       s.Name,
			Executions: s.Executions,
			Avg:        s.Avg().String(),
			Max:        s.Max.String(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
