package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-blocks/internal/blocks"
	"finitefield.org/hanko-blocks/internal/ui"
)

//go:embed data/*.yaml
var sampleData embed.FS

const tracerName = "hanko-blocks/catalog"

// Recorder receives render timings. The metrics package provides the
// production implementation.
type Recorder interface {
	ObserveRender(kind string, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRender(string, time.Duration, error) {}

// Option customises StaticService construction.
type Option func(*options)

type options struct {
	fsys     fs.FS
	locale   blocks.Locale
	recorder Recorder
}

// WithFS loads documents from fsys (all *.yaml files under data/) instead of
// the embedded samples.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithLocale sets the currency and language applied to blocks that leave
// them blank.
func WithLocale(l blocks.Locale) Option {
	return func(o *options) {
		o.locale = l
	}
}

// WithRecorder wires render metrics.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// StaticService serves entries decoded once at construction. It is
// immutable afterwards and safe for concurrent use.
type StaticService struct {
	entries    []Entry
	byID       map[string]int
	categories []string
	recorder   Recorder
}

type document struct {
	ID          string      `yaml:"id"`
	Kind        blocks.Kind `yaml:"kind"`
	Title       string      `yaml:"title"`
	Category    string      `yaml:"category"`
	Description string      `yaml:"description"`
	Props       yaml.Node   `yaml:"props"`
}

// NewStaticService decodes and validates every sample document.
func NewStaticService(opts ...Option) (*StaticService, error) {
	o := options{fsys: sampleData, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}

	files, err := fs.Glob(o.fsys, "data/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: list data: %w", err)
	}
	sort.Strings(files)

	svc := &StaticService{byID: map[string]int{}, recorder: o.recorder}
	seenCategory := map[string]bool{}
	for _, name := range files {
		docs, err := readDocuments(o.fsys, name)
		if err != nil {
			return nil, err
		}
		for i, doc := range docs {
			entry, err := decodeEntry(doc, o.locale)
			if err != nil {
				return nil, fmt.Errorf("catalog: %s document %d: %w", path.Base(name), i, err)
			}
			if _, dup := svc.byID[entry.ID]; dup {
				return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateID, entry.ID, path.Base(name))
			}
			svc.byID[entry.ID] = len(svc.entries)
			svc.entries = append(svc.entries, entry)
			if !seenCategory[entry.Category] {
				seenCategory[entry.Category] = true
				svc.categories = append(svc.categories, entry.Category)
			}
		}
	}
	return svc, nil
}

func readDocuments(fsys fs.FS, name string) ([]document, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", name, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	var docs []document
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: decode %s: %w", name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeEntry(doc document, locale blocks.Locale) (Entry, error) {
	id := strings.TrimSpace(doc.ID)
	if id == "" {
		return Entry{}, errors.New("id is required")
	}
	props, ok := blocks.New(doc.Kind)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q (%s)", ErrUnknownKind, doc.Kind, id)
	}
	if doc.Props.Kind != 0 {
		if err := doc.Props.Decode(props); err != nil {
			return Entry{}, fmt.Errorf("%s: decode props: %w", id, err)
		}
	}
	props.SetLocale(locale)
	if err := props.Validate(); err != nil {
		return Entry{}, fmt.Errorf("%s: %w", id, err)
	}
	category := strings.TrimSpace(doc.Category)
	if category == "" {
		category = "general"
	}
	title := doc.Title
	if title == "" {
		title = id
	}
	return Entry{
		ID:          id,
		Kind:        doc.Kind,
		Title:       title,
		Category:    category,
		Description: doc.Description,
		Props:       props,
	}, nil
}

// List implements Service.
func (s *StaticService) List(_ context.Context, filter Filter) ([]Entry, error) {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	result := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if filter.Category != "" && !strings.EqualFold(e.Category, filter.Category) {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.Title+" "+e.ID+" "+e.Description), query) {
			continue
		}
		result = append(result, e)
	}
	order := make(map[string]int, len(s.categories))
	for i, c := range s.categories {
		order[c] = i
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return order[result[i].Category] < order[result[j].Category]
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id string) (Entry, error) {
	idx, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.entries[idx], nil
}

// Categories implements Service.
func (s *StaticService) Categories(context.Context) ([]string, error) {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// Render implements Service. Rendering happens when the component is
// written, inside a span named after the block kind.
func (s *StaticService) Render(ctx context.Context, id string) (templ.Component, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.Render")
		defer span.End()
		span.SetAttributes(
			attribute.String("block.id", entry.ID),
			attribute.String("block.kind", string(entry.Kind)),
		)

		start := time.Now()
		err := ui.Component(entry.Props.Render()).Render(ctx, w)
		s.recorder.ObserveRender(string(entry.Kind), time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}), nil
}
