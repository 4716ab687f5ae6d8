package series

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Tuning gathers the empirically tuned thresholds used by the Evaluator to select
// between algorithms. All cutoffs are lengths (number of coefficients) unless
// stated otherwise. The zero value is not valid: use DefaultTuning.
type Tuning struct {
	// MullowClassicalCutoff is the operand length below which the classical product is used.
	// It is halved above 1024 bits of precision.
	MullowClassicalCutoff int `json:"mullow_classical_cutoff" toml:"mullow_classical_cutoff" yaml:"mullow_classical_cutoff"`

	// BlockExponentSpread is the largest exponent spread (in bits) between the coefficients
	// of one block of the block multiplication.
	BlockExponentSpread int `json:"block_exponent_spread" toml:"block_exponent_spread" yaml:"block_exponent_spread"`

	InvNewtonCutoff      int `json:"inv_newton_cutoff" toml:"inv_newton_cutoff" yaml:"inv_newton_cutoff"`
	DivNewtonCutoff      int `json:"div_newton_cutoff" toml:"div_newton_cutoff" yaml:"div_newton_cutoff"`
	ExpNewtonCutoff      int `json:"exp_newton_cutoff" toml:"exp_newton_cutoff" yaml:"exp_newton_cutoff"`
	TanNewtonCutoff      int `json:"tan_newton_cutoff" toml:"tan_newton_cutoff" yaml:"tan_newton_cutoff"`
	RsqrtNewtonCutoff    int `json:"rsqrt_newton_cutoff" toml:"rsqrt_newton_cutoff" yaml:"rsqrt_newton_cutoff"`
	LambertWNewtonCutoff int `json:"lambertw_newton_cutoff" toml:"lambertw_newton_cutoff" yaml:"lambertw_newton_cutoff"`

	ComposeHornerCutoff    int `json:"compose_horner_cutoff" toml:"compose_horner_cutoff" yaml:"compose_horner_cutoff"`
	ComposeBrentKungCutoff int `json:"compose_brent_kung_cutoff" toml:"compose_brent_kung_cutoff" yaml:"compose_brent_kung_cutoff"`

	RevertLagrangeFastCutoff int `json:"revert_lagrange_fast_cutoff" toml:"revert_lagrange_fast_cutoff" yaml:"revert_lagrange_fast_cutoff"`
	RevertNewtonCutoff       int `json:"revert_newton_cutoff" toml:"revert_newton_cutoff" yaml:"revert_newton_cutoff"`

	TaylorShiftDivConquerCutoff  int `json:"taylor_shift_div_conquer_cutoff" toml:"taylor_shift_div_conquer_cutoff" yaml:"taylor_shift_div_conquer_cutoff"`
	TaylorShiftConvolutionCutoff int `json:"taylor_shift_convolution_cutoff" toml:"taylor_shift_convolution_cutoff" yaml:"taylor_shift_convolution_cutoff"`
	BinomialTransformBorelCutoff int `json:"binomial_transform_borel_cutoff" toml:"binomial_transform_borel_cutoff" yaml:"binomial_transform_borel_cutoff"`
	EvaluateRectangularCutoff    int `json:"evaluate_rectangular_cutoff" toml:"evaluate_rectangular_cutoff" yaml:"evaluate_rectangular_cutoff"`
	MultipointFastCutoff         int `json:"multipoint_fast_cutoff" toml:"multipoint_fast_cutoff" yaml:"multipoint_fast_cutoff"`
	InterpolateFastCutoff        int `json:"interpolate_fast_cutoff" toml:"interpolate_fast_cutoff" yaml:"interpolate_fast_cutoff"`

	// MaxPrecisionRetries is the number of times a scalar evaluation with an insufficient
	// relative accuracy is retried at doubled working precision.
	MaxPrecisionRetries int `json:"max_precision_retries" toml:"max_precision_retries" yaml:"max_precision_retries"`
}

// DefaultTuning returns the default thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		MullowClassicalCutoff:        30,
		BlockExponentSpread:          512,
		InvNewtonCutoff:              20,
		DivNewtonCutoff:              40,
		ExpNewtonCutoff:              24,
		TanNewtonCutoff:              16,
		RsqrtNewtonCutoff:            16,
		LambertWNewtonCutoff:         8,
		ComposeHornerCutoff:          8,
		ComposeBrentKungCutoff:       12,
		RevertLagrangeFastCutoff:     12,
		RevertNewtonCutoff:           48,
		TaylorShiftDivConquerCutoff:  30,
		TaylorShiftConvolutionCutoff: 120,
		BinomialTransformBorelCutoff: 16,
		EvaluateRectangularCutoff:    16,
		MultipointFastCutoff:         32,
		InterpolateFastCutoff:        24,
		MaxPrecisionRetries:          4,
	}
}

// Validate checks that every threshold is in its range.
func (t Tuning) Validate() error {

	cutoffs := map[string]int{
		"MullowClassicalCutoff":        t.MullowClassicalCutoff,
		"InvNewtonCutoff":              t.InvNewtonCutoff,
		"DivNewtonCutoff":              t.DivNewtonCutoff,
		"ExpNewtonCutoff":              t.ExpNewtonCutoff,
		"TanNewtonCutoff":              t.TanNewtonCutoff,
		"RsqrtNewtonCutoff":            t.RsqrtNewtonCutoff,
		"LambertWNewtonCutoff":         t.LambertWNewtonCutoff,
		"ComposeHornerCutoff":          t.ComposeHornerCutoff,
		"ComposeBrentKungCutoff":       t.ComposeBrentKungCutoff,
		"RevertLagrangeFastCutoff":     t.RevertLagrangeFastCutoff,
		"RevertNewtonCutoff":           t.RevertNewtonCutoff,
		"TaylorShiftDivConquerCutoff":  t.TaylorShiftDivConquerCutoff,
		"TaylorShiftConvolutionCutoff": t.TaylorShiftConvolutionCutoff,
		"BinomialTransformBorelCutoff": t.BinomialTransformBorelCutoff,
		"EvaluateRectangularCutoff":    t.EvaluateRectangularCutoff,
		"MultipointFastCutoff":         t.MultipointFastCutoff,
		"InterpolateFastCutoff":        t.InterpolateFastCutoff,
	}

	for name, v := range cutoffs {
		if v < 1 {
			return fmt.Errorf("invalid tuning: %s = %d must be positive", name, v)
		}
	}

	if t.BlockExponentSpread < 64 {
		return fmt.Errorf("invalid tuning: BlockExponentSpread = %d must be at least 64", t.BlockExponentSpread)
	}

	if t.MaxPrecisionRetries < 0 || t.MaxPrecisionRetries > 16 {
		return fmt.Errorf("invalid tuning: MaxPrecisionRetries = %d must be in [0, 16]", t.MaxPrecisionRetries)
	}

	return nil
}

// Equal returns true if t and other hold the same thresholds.
func (t Tuning) Equal(other Tuning) bool {
	// plain copy without the Equal method, which cmp would otherwise call back
	type thresholds Tuning
	return cmp.Equal(thresholds(t), thresholds(other))
}

// LoadTuning reads a tuning file in TOML, YAML or JSON format, selected by the file extension.
// Thresholds absent from the file keep their default value. The result is validated.
func LoadTuning(path string) (t Tuning, err error) {

	t = DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, errors.Wrap(err, "cannot read tuning file")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err = toml.Decode(string(data), &t); err != nil {
			return t, errors.Wrapf(err, "cannot decode TOML tuning %s", path)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &t); err != nil {
			return t, errors.Wrapf(err, "cannot decode YAML tuning %s", path)
		}
	case ".json":
		if err = json.Unmarshal(data, &t); err != nil {
			return t, errors.Wrapf(err, "cannot decode JSON tuning %s", path)
		}
	default:
		return t, errors.Errorf("unsupported tuning file extension %q", ext)
	}

	if err = t.Validate(); err != nil {
		return t, errors.Wrapf(err, "tuning file %s", path)
	}

	return t, nil
}
