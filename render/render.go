package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"github.com/dasdy/flaykeys/keyboard"
	"github.com/dasdy/flaykeys/model"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

const (
	// DefaultPixelSize maps one layout pixel to millimetres on the page.
	DefaultPixelSize = 0.2

	mmPerPt     = 25.4 / 72.0
	strokeWidth = 0.2
)

var ErrEmptyPage = errors.New("page size must be positive")

var (
	touchColor    = canvas.Hex("#d0d0d0")
	visibleColor  = canvas.Hex("#f4f4f4")
	drawableColor = canvas.Hex("#7a9cc6")
	labelColor    = canvas.Hex("#c67a7a")
)

// Renderer draws the bounds of a laid out keyboard into a PDF.
type Renderer struct {
	pixelSize float64
	fontPath  string
	family    *canvas.FontFamily
}

type Option func(*Renderer)

func WithPixelSize(mm float64) Option {
	return func(r *Renderer) {
		r.pixelSize = mm
	}
}

// WithFont draws labels using the font file at path. Without a font only the
// label rectangles are drawn.
func WithFont(path string) Option {
	return func(r *Renderer) {
		r.fontPath = path
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{pixelSize: DefaultPixelSize}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// PDF renders kb with the default renderer.
func PDF(kb *keyboard.Keyboard, width, height int) ([]byte, error) {
	return NewRenderer().Render(kb, width, height)
}

// Render draws kb on a page of width by height layout pixels.
func (r *Renderer) Render(kb *keyboard.Keyboard, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyPage, width, height)
	}

	if err := r.loadFont(); err != nil {
		return nil, err
	}

	pageW := float64(width) * r.pixelSize
	pageH := float64(height) * r.pixelSize

	var buf bytes.Buffer
	writer := pdf.New(&buf, pageW, pageH, nil)

	c := canvas.New(pageW, pageH)
	ctx := canvas.NewContext(c)
	// keep the origin in the top left corner like the layout does
	ctx.SetCoordSystem(canvas.CartesianIV)

	for key := range kb.Keys() {
		r.drawKey(ctx, key)
	}

	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not write pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) loadFont() error {
	if r.fontPath == "" || r.family != nil {
		return nil
	}

	family := canvas.NewFontFamily("flaykeys")
	if err := family.LoadFontFile(r.fontPath, canvas.FontRegular); err != nil {
		return fmt.Errorf("could not load font %s: %w", r.fontPath, err)
	}

	r.family = family

	return nil
}

func (r *Renderer) drawRect(ctx *canvas.Context, rect model.Rect, fill, stroke color.Color) {
	if rect.IsEmpty() {
		return
	}

	ctx.SetFillColor(fill)
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(strokeWidth)
	ctx.DrawPath(
		float64(rect.Left)*r.pixelSize,
		float64(rect.Top)*r.pixelSize,
		canvas.Rectangle(float64(rect.Width())*r.pixelSize, float64(rect.Height())*r.pixelSize),
	)
}

func (r *Renderer) drawKey(ctx *canvas.Context, key *model.Key) {
	transparent := color.RGBA{0, 0, 0, 0}

	r.drawRect(ctx, key.Bounds.Touch, transparent, touchColor)
	r.drawRect(ctx, key.Bounds.Visible, visibleColor, canvas.Black)
	r.drawRect(ctx, key.Bounds.Drawable, transparent, drawableColor)
	r.drawRect(ctx, key.Bounds.Label, transparent, labelColor)

	if r.family == nil || key.Label == "" || key.Bounds.Label.IsEmpty() {
		return
	}

	label := key.Bounds.Label
	heightMM := float64(label.Height()) * r.pixelSize
	face := r.family.Face(heightMM*0.8/mmPerPt, canvas.Black, canvas.FontRegular, canvas.FontNormal)

	centerX := float64(label.Left+label.Right) / 2 * r.pixelSize
	baseline := float64(label.Top)*r.pixelSize + heightMM*0.8

	ctx.DrawText(centerX, baseline, canvas.NewTextLine(face, key.Label, canvas.Center))
}
