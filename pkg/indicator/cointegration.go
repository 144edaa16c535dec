package indicator

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/window"
)

const (
	// DefaultSpreadDecay weights older observations of the dynamic spread regression.
	DefaultSpreadDecay = 0.94

	cointegrationMinObservations = 3
	cointegrationSignificance    = 0.05
)

// MacKinnon (2010) approximate p-value coefficients for the Engle-Granger
// test with two variables and a constant.
var (
	engleTauStar = -2.62
	engleTauMin  = -18.86
	engleTauMax  = 0.92

	engleSmallP = []float64{2.92, 1.5012, 0.039796}
	engleLargeP = []float64{2.1945, 0.64695, -0.29198, -0.042377}
)

// Cointegration tests whether two float series move together over the last
// period observations.
//
// Results: spread_std and spread_dyn, the residual of the last observation
// against an ordinary and an exponentially weighted regression of y on x;
// engle_t_stat, engle_p_value and is_coint from the Engle-Granger test;
// pearson and correlation.
type Cointegration struct {
	ResultUpdater

	Decay float64

	x, y *window.Window[float64]
}

func NewCointegration(period int) (*Cointegration, error) {
	if period < cointegrationMinObservations {
		return nil, invalidParameter("cointegration period %d, want at least %d", period, cointegrationMinObservations)
	}

	return &Cointegration{
		Decay: DefaultSpreadDecay,
		x:     window.New(period, 0.),
		y:     window.New(period, 0.),
	}, nil
}

// Update pushes one pair. Only pushed observations take part in the
// statistics; with fewer than three of them the result set is empty. The
// window is not padded with zero pairs, so until period pairs have been
// pushed the statistics cover a shorter sample than a zero-filled window of
// period observations would.
func (inc *Cointegration) Update(x, y float64) ResultSet {
	inc.x.Push(x)
	inc.y.Push(y)

	r := ResultSet{}
	n := inc.x.Filled()
	if n < cointegrationMinObservations {
		inc.EmitUpdate(r)
		return r
	}

	xs, ys := inc.x.Tail(n), inc.y.Tail(n)

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r[KeySpreadStd] = fixedpoint.NewFromFloat(ys[n-1] - (alpha + beta*xs[n-1]))

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = math.Pow(inc.Decay, float64(n-1-i))
	}
	dynAlpha, dynBeta := stat.LinearRegression(xs, ys, weights, false)
	r[KeySpreadDyn] = fixedpoint.NewFromFloat(ys[n-1] - (dynAlpha + dynBeta*xs[n-1]))

	residuals := make([]float64, n)
	for i := range residuals {
		residuals[i] = ys[i] - (alpha + beta*xs[i])
	}

	tStat := adfStatistic(residuals)
	if math.IsNaN(tStat) || math.IsInf(tStat, 0) {
		tStat = 0
	}
	pValue := engleGrangerPValue(tStat)
	r[KeyEngleTStat] = fixedpoint.NewFromFloat(tStat)
	r[KeyEnglePValue] = fixedpoint.NewFromFloat(pValue)
	r[KeyIsCoint] = boolValue(pValue < cointegrationSignificance)

	r[KeyPearson] = fixedpoint.NewFromFloat(stat.Correlation(xs, ys, nil))
	r[KeyCorrelation] = fixedpoint.NewFromFloat(correlation(xs, ys))

	inc.EmitUpdate(r)
	return r
}

// adfStatistic is the Dickey-Fuller t statistic of the regression
// diff(e)[t] = gamma * e[t-1], without constant or lags. A degenerate series
// gives 0.
func adfStatistic(e []float64) float64 {
	m := len(e) - 1
	if m < 2 {
		return 0
	}

	lagged := e[:m]
	diff := make([]float64, m)
	floats.SubTo(diff, e[1:], lagged)

	sxx := floats.Dot(lagged, lagged)
	if sxx == 0 {
		return 0
	}

	gamma := floats.Dot(lagged, diff) / sxx

	var ssr float64
	for i := range diff {
		u := diff[i] - gamma*lagged[i]
		ssr += u * u
	}

	se := math.Sqrt(ssr / float64(m-1) / sxx)
	if se == 0 {
		return 0
	}
	return gamma / se
}

// engleGrangerPValue approximates the p-value of the test statistic with the
// MacKinnon response surface.
func engleGrangerPValue(tStat float64) float64 {
	if tStat > engleTauMax {
		return 1
	}
	if tStat < engleTauMin {
		return 0
	}

	coef := engleLargeP
	if tStat <= engleTauStar {
		coef = engleSmallP
	}

	var poly, pow float64 = 0, 1
	for _, c := range coef {
		poly += c * pow
		pow *= tStat
	}
	return distuv.UnitNormal.CDF(poly)
}

func correlation(xs, ys []float64) float64 {
	mx, my := stat.Mean(xs, nil), stat.Mean(ys, nil)

	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}

	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / (math.Sqrt(vx) * math.Sqrt(vy))
}
