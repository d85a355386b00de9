package isv

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iems-lab/isv-cli/internal/model"
)

// Config carries the caller-supplied computation parameters. Nothing is
// inferred from the data: the depth set, threshold and minimum run length
// all come from the caller.
type Config struct {
	// Threshold is the moisture value below which a day counts toward a
	// dry spell, in the same units as the readings.
	Threshold float64
	// MinRunLength is the minimum number of consecutive below-threshold
	// days for a run to qualify as an event.
	MinRunLength int
	// Depths lists the depth-tagged column names to compute, e.g.
	// U20, U40, U60. Sites missing a column are skipped for that depth.
	Depths []string
	// DateColumn names the date column; the first column is used when no
	// column matches.
	DateColumn string
	// Concurrency bounds the number of (site, depth) tasks computed in
	// parallel. Values below 1 mean sequential.
	Concurrency int
}

// Runner drives the full pipeline across every site and depth and merges
// the per-partition rows into one result table.
type Runner struct {
	cfg Config
}

// NewRunner creates a Runner for the given parameters.
func NewRunner(cfg Config) *Runner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Runner{cfg: cfg}
}

// partitionKey identifies one independent unit of computation within a
// (site, depth) series.
type partitionKey struct {
	cycleYear int
	period    model.Period
}

// task is one (site, depth) slice of the batch.
type task struct {
	dataset *model.Dataset
	depth   string
}

// Run computes the full result table for the given site datasets. Sites
// missing a configured depth column contribute no rows for that depth.
// An all-empty outcome is reported through ResultSet.Empty, not an error;
// Run only fails when the context is cancelled.
func (r *Runner) Run(ctx context.Context, sites map[string]*model.Dataset) (*model.ResultSet, error) {
	siteNames := make([]string, 0, len(sites))
	for name := range sites {
		siteNames = append(siteNames, name)
	}
	sort.Strings(siteNames)

	var tasks []task
	for _, name := range siteNames {
		ds := sites[name]
		if ds == nil {
			continue
		}
		for _, depth := range r.cfg.Depths {
			if ds.ColumnIndex(depth) < 0 {
				zap.L().Debug("batch: depth column absent, skipping",
					zap.String("site", name),
					zap.String("depth", depth),
				)
				continue
			}
			tasks = append(tasks, task{dataset: ds, depth: depth})
		}
	}

	// Partitions share no state, so each (site, depth) series computes
	// independently; the indexed slice keeps collection lock-free.
	perTask := make([][]model.Result, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perTask[i] = r.computeDepth(t.dataset, t.depth)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rs := &model.ResultSet{}
	for _, rows := range perTask {
		rs.Rows = append(rs.Rows, rows...)
	}
	rs.Sort()
	return rs, nil
}

// computeDepth runs normalize → aggregate → partition → detect → index for
// one (site, depth) series.
func (r *Runner) computeDepth(ds *model.Dataset, depth string) []model.Result {
	readings := Normalize(ds, r.cfg.DateColumn, depth)
	records := AggregateDaily(readings)
	if len(records) == 0 {
		return nil
	}

	partitions := make(map[partitionKey][]model.DailyRecord)
	for _, rec := range records {
		key := partitionKey{cycleYear: rec.CycleYear, period: rec.Period}
		// Records arrive date-sorted, so appending keeps each partition
		// chronological.
		partitions[key] = append(partitions[key], rec)
	}

	keys := make([]partitionKey, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].cycleYear != keys[j].cycleYear {
			return keys[i].cycleYear < keys[j].cycleYear
		}
		return keys[i].period == model.PeriodWet && keys[j].period == model.PeriodDry
	})

	rows := make([]model.Result, 0, len(keys))
	for _, key := range keys {
		events := DetectEvents(partitions[key], r.cfg.Threshold, r.cfg.MinRunLength)
		nver, dmax, dver := Summarize(events)
		rows = append(rows, model.Result{
			Site:      ds.Site,
			Depth:     depth,
			CycleYear: key.cycleYear,
			Period:    key.period,
			NVer:      nver,
			DMax:      dmax,
			DVer:      dver,
			ISV:       Index(nver, dmax, dver),
		})
	}
	return rows
}
