package page

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"sync"

	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/samber/do"
)

//go:embed assets/index.html
var indexTmpl string

//go:embed assets/gallery.html
var galleryTmpl string

// IndexParams populates the generation form with the configured choices and
// their defaults.
type IndexParams struct {
	Models       []string
	Sizes        []string
	Steps        []int
	DefaultModel string
	DefaultSize  string
	DefaultSteps int
}

type GalleryItem struct {
	URL              string
	Prompt           string
	TranslatedPrompt string
	Model            string
	Created          string
}

type GalleryParams struct {
	Items []GalleryItem
}

type Templator struct {
	index   *template.Template
	gallery *template.Template
	once    sync.Once
}

func NewTemplator(*do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (t *Templator) parse() {
	t.index = template.Must(template.New("index").Parse(indexTmpl))
	t.gallery = template.Must(template.New("gallery").Parse(galleryTmpl))
}

func (t *Templator) Index(ctx context.Context, params IndexParams) ([]byte, error) {
	t.once.Do(t.parse)
	log.FromContextOrDiscard(ctx).Debug("rendering index page")

	var data bytes.Buffer
	if err := t.index.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}

func (t *Templator) Gallery(ctx context.Context, params GalleryParams) ([]byte, error) {
	t.once.Do(t.parse)
	log.FromContextOrDiscard(ctx).Debug("rendering gallery page")

	var data bytes.Buffer
	if err := t.gallery.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}
