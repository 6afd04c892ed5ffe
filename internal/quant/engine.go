package quant

import (
	"github.com/rs/zerolog"

	"motiond/internal/registry"
)

// Tensor names produced by the engine, consumed by pipeline stages.
const (
	TensorEncoderMix = "mix"
	TensorAlignProj  = "proj"
	TensorCondProj   = "cond_proj"
	TensorStepMix    = "step_mix"
	TensorRotProj    = "rot_proj"
	TensorTranslProj = "transl_proj"
)

// Engine loads model components at a requested precision. Weights are
// materialized deterministically from the manifest digest, so a given
// (manifest, component, precision) triple always yields the same tensors.
type Engine struct {
	man    *registry.Manifest
	digest uint64
	log    zerolog.Logger
}

// NewEngine builds an engine over a loaded manifest.
func NewEngine(man *registry.Manifest, log zerolog.Logger) *Engine {
	return &Engine{man: man, digest: man.Digest(), log: log}
}

// Verify asserts the dimensional compatibility of the manifest's component
// chain: the encoder's output width must match the cross-modal input width,
// and the cross-modal output width must match the denoiser conditioning
// width. Called once before any component loads.
func (e *Engine) Verify() error {
	enc, _ := e.man.Component(registry.CompTextEncoder)
	cm, _ := e.man.Component(registry.CompCrossModal)
	den, _ := e.man.Component(registry.CompDenoiser)
	if enc.WidthOut <= 0 {
		return ErrModelIncompatible("%s has no output width", registry.CompTextEncoder)
	}
	if cm.WidthIn <= 0 || cm.WidthOut <= 0 {
		return ErrModelIncompatible("%s has no wiring widths", registry.CompCrossModal)
	}
	if den.CondWidth <= 0 {
		return ErrModelIncompatible("%s has no conditioning width", registry.CompDenoiser)
	}
	if enc.WidthOut != cm.WidthIn {
		return ErrModelIncompatible("%s output width %d does not match %s input width %d",
			registry.CompTextEncoder, enc.WidthOut, registry.CompCrossModal, cm.WidthIn)
	}
	if cm.WidthOut != den.CondWidth {
		return ErrModelIncompatible("%s output width %d does not match %s conditioning width %d",
			registry.CompCrossModal, cm.WidthOut, registry.CompDenoiser, den.CondWidth)
	}
	return nil
}

// Load materializes one component at the requested precision. Components
// not marked quantizable in the manifest always load at full precision.
func (e *Engine) Load(name string, p Precision) (*Component, error) {
	if _, err := ParsePrecision(string(p)); err != nil {
		return nil, err
	}
	spec, ok := e.man.Component(name)
	if !ok {
		return nil, ErrModelIncompatible("manifest has no component %q", name)
	}
	eff := p
	if !spec.Quantizable {
		eff = PrecisionFull
	}
	c := &Component{
		Name:           name,
		Precision:      eff,
		FootprintBytes: eff.Footprint(spec.Params),
		Quantizable:    spec.Quantizable,
		WidthIn:        spec.WidthIn,
		WidthOut:       spec.WidthOut,
		CondWidth:      spec.CondWidth,
		tensors:        make(map[string]Tensor),
	}
	for _, sh := range e.tensorShapes(spec) {
		c.tensors[sh.name] = e.newTensor(name, sh.name, sh.rows, sh.cols, eff)
	}
	e.log.Info().
		Str("component", name).
		Str("precision", string(eff)).
		Int64("footprint_bytes", c.FootprintBytes).
		Int("tensors", len(c.tensors)).
		Msg("component loaded")
	return c, nil
}

type tensorShape struct {
	name       string
	rows, cols int
}

// tensorShapes returns the weight tensors a component kind carries. The
// prompt rewriter is text-to-text and the mesh decoder is pure geometry,
// so neither holds learned tensors here; their footprints still count.
func (e *Engine) tensorShapes(spec registry.ComponentSpec) []tensorShape {
	switch spec.Name {
	case registry.CompTextEncoder:
		return []tensorShape{{TensorEncoderMix, spec.WidthOut, spec.WidthOut}}
	case registry.CompCrossModal:
		return []tensorShape{{TensorAlignProj, spec.WidthIn, spec.WidthOut}}
	case registry.CompDenoiser:
		return []tensorShape{
			{TensorCondProj, spec.CondWidth, e.man.LatentWidth},
			{TensorStepMix, e.man.LatentWidth, e.man.LatentWidth},
		}
	case registry.CompPoseDecoder:
		return []tensorShape{
			{TensorRotProj, e.man.LatentWidth, e.man.Joints * 6},
			{TensorTranslProj, e.man.LatentWidth, 3},
		}
	default:
		return nil
	}
}
