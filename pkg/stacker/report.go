package stacker

import(
	"fmt"
	"math"
	"time"

	"github.com/codahale/hdrhistogram"
)

// A Report summarizes a run: what got used, and how far frames drifted.
type Report struct {
	FramesUsed    int
	FramesSkipped []string
	Estimator     string
	Elapsed       time.Duration

	dx, dy, dist  *hdrhistogram.Histogram
}

func NewReport(maxShift int) *Report {
	if maxShift < 1 { maxShift = 1 }
	max := int64(2 * maxShift)
	return &Report{
		FramesSkipped: []string{},
		dx:            hdrhistogram.New(0, max, 3),
		dy:            hdrhistogram.New(0, max, 3),
		dist:          hdrhistogram.New(0, max, 3),
	}
}

// AddShift records the magnitude of a candidate's corrected shift.
func (r *Report)AddShift(s Shift) error {
	adx, ady := int64(abs(s.DX)), int64(abs(s.DY))
	d := int64(math.Round(math.Hypot(float64(s.DX), float64(s.DY))))
	if err := r.dx.RecordValue(adx); err != nil {
		return fmt.Errorf("report dx %d: %v", s.DX, err)
	}
	if err := r.dy.RecordValue(ady); err != nil {
		return fmt.Errorf("report dy %d: %v", s.DY, err)
	}
	if err := r.dist.RecordValue(d); err != nil {
		return fmt.Errorf("report dist %d: %v", d, err)
	}
	return nil
}

func (r *Report)NumShifts() int64   { return r.dist.TotalCount() }
func (r *Report)MaxDistance() int64 { return r.dist.Max() }
func (r *Report)MedianDistance() int64 { return r.dist.ValueAtQuantile(50) }

func (r Report)String() string {
	str := fmt.Sprintf("Report[%d frames used, %d skipped, %s, %.2fs]\n",
		r.FramesUsed, len(r.FramesSkipped), r.Estimator, r.Elapsed.Seconds())
	for _, name := range r.FramesSkipped {
		str += fmt.Sprintf("  skipped: %s\n", name)
	}
	if r.dist.TotalCount() > 0 {
		str += fmt.Sprintf("  |dx| mean %.1f max %d; |dy| mean %.1f max %d\n",
			r.dx.Mean(), r.dx.Max(), r.dy.Mean(), r.dy.Max())
		str += fmt.Sprintf("  drift p50 %d, p90 %d, max %d px\n",
			r.dist.ValueAtQuantile(50), r.dist.ValueAtQuantile(90), r.dist.Max())
	}
	return str
}

func abs(i int) int {
	if i < 0 { return -i }
	return i
}
