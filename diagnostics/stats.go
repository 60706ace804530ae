/*Package diagnostics computes post-exchange summary statistics over a
LevelData, mirroring guppy's own sim_stats.go / scripts/sim_stats.go
"Confirm" style cross-checks of converted output using aggregate statistics
rather than an exhaustive comparison.
*/
package diagnostics

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/haloflow/fab"
	"github.com/phil-mansfield/haloflow/geom"
	"github.com/phil-mansfield/haloflow/leveldata"
)

// SummaryStats is the mean and sample (n-1 normalised) standard deviation
// of a component sampled over some set of cells.
type SummaryStats struct {
	Mean, Stddev float64
	N            int
}

// ComponentStats summarises component comp of f's cells within region,
// which must lie inside f's box (including its ghost cells, so callers can
// check a ghost region's statistics against the interior it was filled
// from).
func ComponentStats[T fab.Numeric](f *fab.BaseFab[T], region geom.Box, comp int) SummaryStats {
	vals := sampleRegion(f, region, comp)
	if len(vals) == 0 {
		return SummaryStats{}
	}
	mean, std := stat.MeanStdDev(vals, nil)
	return SummaryStats{Mean: mean, Stddev: std, N: len(vals)}
}

// LevelStats summarises component comp across every cell of every
// locally-owned (unghosted) box in ld: a coarse post-exchange sanity check
// that a field's aggregate statistics look right, in the spirit of guppy's
// Confirm mode.
func LevelStats[T fab.Numeric](ld *leveldata.LevelData[T], comp int) SummaryStats {
	dbl := ld.DBL()
	var vals []float64
	it := dbl.DataIter()
	for it.Next() {
		f := ld.At(it.Index())
		vals = append(vals, sampleRegion(f, dbl.Box(it.Index().Global), comp)...)
	}
	if len(vals) == 0 {
		return SummaryStats{}
	}
	mean, std := stat.MeanStdDev(vals, nil)
	return SummaryStats{Mean: mean, Stddev: std, N: len(vals)}
}

// BoxStats is one locally-owned box's summary statistics together with its
// location, for pinpointing which box an outlier in LevelStats came from.
type BoxStats struct {
	Global           int
	SmallEnd, BigEnd geom.IntVect
	Center           geom.IntVect
	Stats            SummaryStats
}

// PerBoxStats breaks LevelStats down box by box, labelling each entry with
// its box's corners and center so a caller can locate the box behind an
// outlier without re-walking the DataIterator itself.
func PerBoxStats[T fab.Numeric](ld *leveldata.LevelData[T], comp int) []BoxStats {
	dbl := ld.DBL()
	var out []BoxStats
	it := dbl.DataIter()
	for it.Next() {
		global := it.Index().Global
		box := dbl.Box(global)
		f := ld.At(it.Index())
		vals := sampleRegion(f, box, comp)

		var s SummaryStats
		if len(vals) > 0 {
			mean, std := stat.MeanStdDev(vals, nil)
			s = SummaryStats{Mean: mean, Stddev: std, N: len(vals)}
		}
		out = append(out, BoxStats{
			Global:   global,
			SmallEnd: box.SmallEnd(),
			BigEnd:   box.BigEnd(),
			Center:   box.Center(),
			Stats:    s,
		})
	}
	return out
}

func sampleRegion[T fab.Numeric](f *fab.BaseFab[T], region geom.Box, comp int) []float64 {
	region = geom.Intersect(region, f.Box())
	if region.IsEmpty() {
		return nil
	}
	vals := make([]float64, 0, region.Size())
	lo, hi := region.Lo(), region.Hi()
	v := lo
	for {
		vals = append(vals, float64(f.At(v, comp)))
		axis := 0
		for axis < geom.SpaceDim {
			v[axis]++
			if v[axis] <= hi[axis] {
				break
			}
			v[axis] = lo[axis]
			axis++
		}
		if axis == geom.SpaceDim {
			return vals
		}
	}
}

// CorrelationMatrix builds the ncomp x ncomp Pearson correlation matrix
// across ld's components, sampled over every cell of every locally-owned
// box, for multi-component debugging dumps.
func CorrelationMatrix[T fab.Numeric](ld *leveldata.LevelData[T]) *mat.Dense {
	ncomp := ld.NComp()
	dbl := ld.DBL()

	series := make([][]float64, ncomp)
	for c := 0; c < ncomp; c++ {
		var vals []float64
		it := dbl.DataIter()
		for it.Next() {
			f := ld.At(it.Index())
			vals = append(vals, sampleRegion(f, dbl.Box(it.Index().Global), c)...)
		}
		series[c] = vals
	}

	corr := mat.NewDense(ncomp, ncomp, nil)
	for i := 0; i < ncomp; i++ {
		for j := i; j < ncomp; j++ {
			r := 1.0
			if i != j {
				r = stat.Correlation(series[i], series[j], nil)
			}
			corr.Set(i, j, r)
			corr.Set(j, i, r)
		}
	}
	return corr
}
