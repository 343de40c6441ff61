package silhouette

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
)

// Sink persists one finished mask under name.
type Sink interface {
	Save(name string, img image.Image) error
}

// Output is one finished mask and the suffix appended to the base name.
type Output struct {
	Suffix string
	Mask   *Bitmap
}

// Report summarizes one Run.
type Report struct {
	Source string
	Saved  []string
	Failed []*TransformError
}

// Orchestrator renders the full variant family of a source bitmap.
// It is safe for concurrent use on different sources.
type Orchestrator struct {
	opts Options
	sink Sink
}

func New(opts Options, sink Sink) *Orchestrator {
	return &Orchestrator{opts: opts, sink: sink}
}

func (o *Orchestrator) Options() Options { return o.opts }

// job renders the outputs of one variant from a read-only source.
type job struct {
	name   string
	render func(src *Bitmap) ([]Output, error)
}

func (o *Orchestrator) jobs() []job {
	fg := o.opts.Foreground
	minSize := o.opts.MinClusterSize
	finish := func(m *Bitmap) *Bitmap {
		return Smooth(CleanColor(m, minSize, fg))
	}

	var jobs []job
	for _, spec := range Catalogue() {
		jobs = append(jobs, job{
			name: spec.Suffix,
			render: func(src *Bitmap) ([]Output, error) {
				return []Output{{spec.Suffix, finish(ClassifyColor(src, spec.Predicate, fg))}}, nil
			},
		})
	}

	ex := o.opts.extractor()
	extract := func(suffix string, fn func(*Bitmap) (*Bitmap, error)) job {
		return job{
			name: suffix,
			render: func(src *Bitmap) ([]Output, error) {
				// Extractors work on their own copy of the source.
				m, err := fn(src.Clone())
				if err != nil {
					return nil, err
				}
				return []Output{{suffix, finish(m)}}, nil
			},
		}
	}
	jobs = append(jobs,
		extract(SuffixEdges, ex.Edges),
		extract(SuffixLines, ex.Lines),
		extract(SuffixThick, ex.Thick),
		extract(SuffixCurved, ex.Curved),
	)

	jobs = append(jobs, job{
		name: "characteristic",
		render: func(src *Bitmap) ([]Output, error) {
			res, ok := SplitColor(src, minSize, fg)
			if !ok {
				return nil, nil
			}
			Logger().Debug("characteristic split",
				"dominant", res.Dominant.String(),
				"samples", res.Samples,
				"mean", res.Stats[res.Dominant].Mean,
			)
			return []Output{{res.LabelA, res.A}, {res.LabelB, res.B}}, nil
		},
	})

	if o.opts.Layers > 0 {
		jobs = append(jobs, job{
			name: "palette_layers",
			render: func(src *Bitmap) ([]Output, error) {
				layers, _ := PaletteLayers(src, o.opts.Layers, o.opts.PaletteMethod, fg)
				out := make([]Output, 0, len(layers))
				for i, l := range layers {
					out = append(out, Output{layerSuffix(i), finish(l)})
				}
				return out, nil
			},
		})
	}
	return jobs
}

// Render produces every variant of src. A failing variant is reported in
// the returned slice of errors and does not stop the others. The error
// result is non-nil only for an invalid source or a cancelled context; in
// the latter case the outputs rendered so far are still returned.
func (o *Orchestrator) Render(ctx context.Context, src *Bitmap, source string) ([]Output, []*TransformError, error) {
	if !src.Valid() {
		return nil, nil, ErrInvalidBitmap
	}
	jobs := o.jobs()
	results := make([][]Output, len(jobs))
	errs := make([]*TransformError, len(jobs))

	sem := make(chan struct{}, o.opts.workers())
	var wg sync.WaitGroup
	var ctxErr error
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			Logger().Debug("render variant", "source", source, "variant", j.name)
			results[i], errs[i] = runJob(j, src, source)
		}()
	}
	wg.Wait()

	var outputs []Output
	var failed []*TransformError
	for i := range jobs {
		outputs = append(outputs, results[i]...)
		if errs[i] != nil {
			Logger().Warn("variant failed", "source", source, "variant", errs[i].Variant, "err", errs[i].Err)
			failed = append(failed, errs[i])
		}
	}
	return outputs, failed, ctxErr
}

// runJob renders one job, converting an error or panic into a
// TransformError.
func runJob(j job, src *Bitmap, source string) (out []Output, terr *TransformError) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			terr = &TransformError{Source: source, Variant: j.name, Err: panicError{value: r}}
		}
	}()
	out, err := j.render(src)
	if err != nil {
		return nil, &TransformError{Source: source, Variant: j.name, Err: err}
	}
	return out, nil
}

// Run renders every variant of src and saves each through the sink as
// base + "_" + suffix. Variant and save failures are collected in the
// report; the returned error joins the save failures, an invalid source or
// a cancelled context.
func (o *Orchestrator) Run(ctx context.Context, src *Bitmap, base string) (*Report, error) {
	if o.sink == nil {
		return nil, errors.New("silhouette: nil sink")
	}
	outputs, failed, err := o.Render(ctx, src, base)
	report := &Report{Source: base, Failed: failed}
	if errors.Is(err, ErrInvalidBitmap) {
		return report, fmt.Errorf("render %s: %w", base, err)
	}

	var saveErrs []error
	for _, out := range outputs {
		name := base + "_" + out.Suffix
		if serr := o.sink.Save(name, out.Mask.NRGBA()); serr != nil {
			Logger().Warn("save failed", "source", base, "variant", out.Suffix, "err", serr)
			saveErrs = append(saveErrs, fmt.Errorf("save %s: %w", name, serr))
			continue
		}
		Logger().Info("saved variant", "source", base, "name", name)
		report.Saved = append(report.Saved, name)
	}
	if err != nil {
		saveErrs = append(saveErrs, err)
	}
	return report, errors.Join(saveErrs...)
}
