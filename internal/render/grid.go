// Package render rasterizes the derived schedule layout into a PNG. It
// consumes the same snapshot the HTTP layout endpoint serves; the geometry is
// the mapper's, converted from percent columns to pixels here.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/weekplan/weekplan-backend/internal/layout"
	"github.com/weekplan/weekplan-backend/internal/model"
)

// ErrMissingRenderTarget is returned when there is no renderable grid.
var ErrMissingRenderTarget = errors.New("no renderable schedule grid")

// ErrUnresolvedColorFormat is returned when a course background color cannot
// be parsed. The export is aborted; nothing is written.
var ErrUnresolvedColorFormat = errors.New("unresolved color format")

const (
	baseWidth       = 1600.0
	titleBandHeight = 64.0
	dayBandHeight   = 44.0
	bottomPadding   = 16.0

	titleFontSize    = 28.0
	dayFontSize      = 18.0
	slotLabelSize    = 13.0
	eventTitleSize   = 15.0
	eventDetailSize  = 13.0
	eventLineSpacing = 17.0
	eventPadding     = 8.0

	boxRadius    = 6.0
	shadowOffset = 2.0
)

// theme is the render color scheme derived from the schedule settings.
type theme struct {
	background color.NRGBA
	headerText color.NRGBA
	labelText  color.NRGBA
	gridLine   color.NRGBA
	overlay    color.NRGBA
	eventText  color.NRGBA
	shadow     color.NRGBA
}

var lightTheme = theme{
	background: color.NRGBA{245, 246, 248, 255},
	headerText: color.NRGBA{40, 44, 50, 255},
	labelText:  color.NRGBA{110, 115, 120, 255},
	gridLine:   color.NRGBA{150, 150, 150, 90},
	overlay:    color.NRGBA{0, 0, 0, 75},
	eventText:  color.NRGBA{255, 255, 255, 255},
	shadow:     color.NRGBA{0, 0, 0, 25},
}

var darkTheme = theme{
	background: color.NRGBA{24, 26, 30, 255},
	headerText: color.NRGBA{230, 232, 235, 255},
	labelText:  color.NRGBA{160, 165, 170, 255},
	gridLine:   color.NRGBA{120, 120, 120, 90},
	overlay:    color.NRGBA{0, 0, 0, 75},
	eventText:  color.NRGBA{255, 255, 255, 255},
	shadow:     color.NRGBA{0, 0, 0, 60},
}

// GridRenderer draws the weekly grid. A font file may be supplied for
// crisper output; otherwise the built-in bitmap face is used everywhere.
type GridRenderer struct {
	scale    int
	log      zerolog.Logger
	typeface *opentype.Font
}

// NewGridRenderer creates a renderer. fontPath may be empty; an unreadable
// font is logged and the renderer falls back to the bitmap face.
func NewGridRenderer(fontPath string, scale int, log zerolog.Logger) *GridRenderer {
	if scale < 1 {
		scale = 1
	}
	r := &GridRenderer{
		scale: scale,
		log:   log.With().Str("component", "grid_renderer").Logger(),
	}

	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			r.log.Warn().Err(err).Str("path", fontPath).Msg("Font unavailable, using bitmap face")
			return r
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			r.log.Warn().Err(err).Str("path", fontPath).Msg("Font unparseable, using bitmap face")
			return r
		}
		r.typeface = parsed
	}
	return r
}

// WeeklyGrid renders the snapshot as a PNG: title band, day headers in the
// configured week order, hour labels down the left column, slot rules and
// one colored box per event at its mapper-resolved position.
func (r *GridRenderer) WeeklyGrid(snap layout.Snapshot, settings model.ScheduleSettings, title string) ([]byte, error) {
	if len(snap.Axis.Slots) == 0 {
		return nil, ErrMissingRenderTarget
	}

	th := lightTheme
	if settings.Theme == model.ThemeDark {
		th = darkTheme
	}

	gridTop := titleBandHeight + dayBandHeight
	totalHeight := gridTop + snap.GridHeight + bottomPadding
	colWidth := baseWidth / layout.GridColumns

	dc := gg.NewContext(int(baseWidth)*r.scale, int(totalHeight)*r.scale)
	dc.Scale(float64(r.scale), float64(r.scale))
	dc.SetColor(th.background)
	dc.Clear()

	// Title band
	r.setFace(dc, titleFontSize)
	dc.SetColor(th.headerText)
	dc.DrawStringAnchored(title, baseWidth/2, titleBandHeight/2, 0.5, 0.35)

	// Day headers over columns 1..7
	r.setFace(dc, dayFontSize)
	for i, day := range snap.Days {
		x := colWidth*float64(i+1) + colWidth/2
		dc.DrawStringAnchored(day, x, titleBandHeight+dayBandHeight/2, 0.5, 0.35)
	}

	// Slot rules and hour labels
	dc.SetLineWidth(0.5)
	for i, label := range snap.SlotLabels {
		y := gridTop + float64(i)*snap.SlotHeight
		dc.SetColor(th.gridLine)
		dc.DrawLine(0, y, baseWidth, y)
		dc.Stroke()

		r.setFace(dc, slotLabelSize)
		dc.SetColor(th.labelText)
		dc.DrawStringAnchored(label, colWidth-8, y+2, 1, 1)
	}

	// Vertical column separators
	dc.SetColor(th.gridLine)
	for col := 1; col < layout.GridColumns; col++ {
		x := colWidth * float64(col)
		dc.DrawLine(x, gridTop, x, gridTop+snap.GridHeight)
		dc.Stroke()
	}

	// Event boxes
	for _, ev := range snap.Events {
		if err := r.drawEvent(dc, ev, gridTop, th); err != nil {
			r.log.Error().Err(err).Str("event_id", ev.ID).Msg("PNG export aborted")
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *GridRenderer) drawEvent(dc *gg.Context, ev layout.EventLayout, gridTop float64, th theme) error {
	fill, err := parseHexColor(ev.BackgroundColor)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnresolvedColorFormat, ev.BackgroundColor)
	}

	x := ev.Box.LeftPercent/100*baseWidth + ev.Box.GutterPx
	w := ev.Box.WidthPercent/100*baseWidth - 2*ev.Box.GutterPx
	y := gridTop + ev.Box.Top + 1
	h := ev.Box.Height - 2

	// Shadow
	dc.SetColor(th.shadow)
	dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, w, h, boxRadius)
	dc.Fill()

	// Box with a darkening overlay so white text stays readable on any
	// palette color
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, boxRadius)
	dc.Fill()
	dc.SetColor(th.overlay)
	dc.DrawRoundedRectangle(x, y, w, h, boxRadius)
	dc.Fill()

	// Text lines, clipped to the box
	dc.Push()
	dc.DrawRoundedRectangle(x, y, w, h, boxRadius)
	dc.Clip()

	dc.SetColor(th.eventText)
	textX := x + eventPadding
	textY := y + eventPadding + eventTitleSize*0.75
	maxWidth := w - 2*eventPadding

	r.setFace(dc, eventTitleSize)
	dc.DrawString(truncate(dc, ev.Title, maxWidth), textX, textY)
	textY += eventLineSpacing

	r.setFace(dc, eventDetailSize)
	for _, line := range []string{ev.CourseType, ev.Instructor, ev.TimeLabel, ev.Location} {
		if line == "" {
			continue
		}
		if textY > y+h {
			break
		}
		dc.DrawString(truncate(dc, line, maxWidth), textX, textY)
		textY += eventLineSpacing
	}

	dc.ResetClip()
	dc.Pop()
	return nil
}

// setFace switches the drawing face to the configured font at the given
// size, or the bitmap fallback.
func (r *GridRenderer) setFace(dc *gg.Context, size float64) {
	if r.typeface != nil {
		face, err := opentype.NewFace(r.typeface, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// truncate shortens s with an ellipsis until it fits maxWidth.
func truncate(dc *gg.Context, s string, maxWidth float64) string {
	if w, _ := dc.MeasureString(s); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			return candidate
		}
	}
	return "..."
}

// parseHexColor parses #RGB and #RRGGBB strings.
func parseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 255}

	hexByte := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}

	pair := func(hi, lo byte) (uint8, bool) {
		h, ok1 := hexByte(hi)
		l, ok2 := hexByte(lo)
		return h<<4 | l, ok1 && ok2
	}

	switch {
	case len(s) == 7 && s[0] == '#':
		var ok1, ok2, ok3 bool
		c.R, ok1 = pair(s[1], s[2])
		c.G, ok2 = pair(s[3], s[4])
		c.B, ok3 = pair(s[5], s[6])
		if ok1 && ok2 && ok3 {
			return c, nil
		}
	case len(s) == 4 && s[0] == '#':
		var ok1, ok2, ok3 bool
		c.R, ok1 = pair(s[1], s[1])
		c.G, ok2 = pair(s[2], s[2])
		c.B, ok3 = pair(s[3], s[3])
		if ok1 && ok2 && ok3 {
			return c, nil
		}
	}

	return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
}
