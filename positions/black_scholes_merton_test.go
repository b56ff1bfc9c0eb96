package positions

import (
	"errors"
	"math"
	"testing"

	"github.com/bcdannyboy/takeprofit/models"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestBlackScholesCallReferenceValues(t *testing.T) {
	// Reference prices computed independently with the erf form of N(x).
	cases := []struct {
		name string
		p    models.ContractParameters
		want float64
	}{
		{"atm half year", models.ContractParameters{S0: 100, K: 100, T: 0.5, R: 0.045, Q: 0, Sigma: 0.30}, 9.512236711701362},
		{"textbook", models.ContractParameters{S0: 100, K: 100, T: 1, R: 0.05, Q: 0, Sigma: 0.2}, 10.450583572185565},
		{"otm with dividend", models.ContractParameters{S0: 100, K: 110, T: 0.25, R: 0.03, Q: 0.02, Sigma: 0.25}, 1.729263128070201},
		{"itm long dated", models.ContractParameters{S0: 50, K: 40, T: 2, R: 0.01, Q: 0.03, Sigma: 0.5}, 16.243165532404326},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BlackScholesCall(tc.p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !scalar.EqualWithinRel(got, tc.want, 1e-9) {
				t.Errorf("price = %.15f, want %.15f", got, tc.want)
			}
		})
	}
}

func TestBlackScholesCallEndToEndScenario(t *testing.T) {
	got, err := BlackScholesCall(models.ContractParameters{S0: 100, K: 100, T: 0.5, R: 0.045, Q: 0, Sigma: 0.30})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-9.5122) > 0.01 {
		t.Errorf("price = %.4f, want about 9.5122", got)
	}
}

func TestBlackScholesCallBounds(t *testing.T) {
	p := models.ContractParameters{S0: 80, K: 100, T: 0.75, R: 0.04, Q: 0.01, Sigma: 0.35}
	got, err := BlackScholesCall(p)
	if err != nil {
		t.Fatal(err)
	}
	lower, upper := CallPriceBounds(p)
	if got < lower || got > upper {
		t.Errorf("price %v outside no-arbitrage bounds [%v, %v]", got, lower, upper)
	}
}

func TestBlackScholesCallInvalidParameters(t *testing.T) {
	base := models.ContractParameters{S0: 100, K: 100, T: 0.5, R: 0.045, Q: 0, Sigma: 0.3}

	cases := []struct {
		param  string
		mutate func(*models.ContractParameters)
	}{
		{"sigma", func(p *models.ContractParameters) { p.Sigma = 0 }},
		{"T", func(p *models.ContractParameters) { p.T = 0 }},
		{"S0", func(p *models.ContractParameters) { p.S0 = -1 }},
		{"K", func(p *models.ContractParameters) { p.K = 0 }},
		{"sigma", func(p *models.ContractParameters) { p.Sigma = math.NaN() }},
		{"r", func(p *models.ContractParameters) { p.R = math.Inf(1) }},
	}

	for _, tc := range cases {
		t.Run(tc.param, func(t *testing.T) {
			p := base
			tc.mutate(&p)
			_, err := BlackScholesCall(p)
			if !errors.Is(err, models.ErrInvalidParameter) {
				t.Fatalf("expected invalid parameter error, got %v", err)
			}
			var ipe *models.InvalidParameterError
			if !errors.As(err, &ipe) || ipe.Param != tc.param {
				t.Errorf("error should name %s, got %v", tc.param, err)
			}
		})
	}
}

func TestNormCDF(t *testing.T) {
	if got := NormCDF(0); got != 0.5 {
		t.Errorf("NormCDF(0) = %v", got)
	}
	if got := NormCDF(1.959963984540054); !scalar.EqualWithinAbs(got, 0.975, 1e-12) {
		t.Errorf("NormCDF(1.96) = %v", got)
	}
	for _, x := range []float64{-3, -1.2, 0.3, 2.5} {
		if s := NormCDF(x) + NormCDF(-x); !scalar.EqualWithinAbs(s, 1, 1e-15) {
			t.Errorf("NormCDF(%v)+NormCDF(%v) = %v", x, -x, s)
		}
	}
	if NormCDF(-40) < 0 || NormCDF(40) > 1 {
		t.Error("NormCDF left [0, 1]")
	}
}

func TestImpliedVolatilityRecoversSigma(t *testing.T) {
	for _, sigma := range []float64{0.12, 0.3, 0.65} {
		p := models.ContractParameters{S0: 100, K: 105, T: 0.4, R: 0.045, Q: 0.01, Sigma: sigma}
		price, err := BlackScholesCall(p)
		if err != nil {
			t.Fatal(err)
		}

		p.Sigma = 0
		iv, err := ImpliedVolatility(p, price)
		if err != nil {
			t.Fatalf("sigma %v: %v", sigma, err)
		}
		if !scalar.EqualWithinAbs(iv, sigma, 1e-4) {
			t.Errorf("implied vol = %v, want %v", iv, sigma)
		}
	}
}

func TestImpliedVolatilityRejectsArbitragePrices(t *testing.T) {
	p := models.ContractParameters{S0: 100, K: 100, T: 0.5, R: 0.045}
	for _, price := range []float64{0, 100, 150} {
		if _, err := ImpliedVolatility(p, price); !errors.Is(err, models.ErrInvalidParameter) {
			t.Errorf("price %v: expected invalid parameter, got %v", price, err)
		}
	}
}
