package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything the panel can stack vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
	// SetY moves the widget to the given top edge.
	SetY(y float64)
}

const (
	panelMargin   = 10
	panelTitleH   = 30
	sectionHeader = 25
)

type entry struct {
	widget Widget
	// header is set for section title rows, which have no widget.
	header string
}

// UIPanel lays out widgets top to bottom under optional section headers and
// scrolls with the mouse wheel when they overflow.
type UIPanel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	ScrollOffset  float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	entries []entry
}

func NewUIPanel(x, y, width, height float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

func (p *UIPanel) AddSection(title string) {
	p.entries = append(p.entries, entry{header: title})
}

func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+panelMargin, 0, p.Width-2*panelMargin, label, min, max, value)
	p.add(s)
	return s
}

func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+panelMargin, 0, label, value)
	p.add(c)
	return c
}

func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+panelMargin, 0, p.Width-2*panelMargin, label, onClick)
	p.add(b)
	return b
}

func (p *UIPanel) add(w Widget) {
	p.entries = append(p.entries, entry{widget: w})
	p.layout()
}

// layout places every widget for the current scroll offset. Widgets keep
// these coordinates for hit testing until the next layout.
func (p *UIPanel) layout() {
	y := p.Y + panelTitleH - p.ScrollOffset
	for _, e := range p.entries {
		if e.widget == nil {
			y += sectionHeader
			continue
		}
		e.widget.SetY(y)
		y += e.widget.Height()
	}
}

func (p *UIPanel) contentHeight() float64 {
	h := float64(panelTitleH)
	for _, e := range p.entries {
		if e.widget == nil {
			h += sectionHeader
		} else {
			h += e.widget.Height()
		}
	}
	return h
}

func (p *UIPanel) Update() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		maxScroll := max(p.contentHeight()-p.Height+panelMargin, 0)
		p.ScrollOffset = clamp(p.ScrollOffset-dy*20, 0, maxScroll)
		p.layout()
	}
	for _, e := range p.entries {
		if e.widget != nil {
			e.widget.Update()
		}
	}
}

func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelMargin), int(p.Y+5))

	y := p.Y + panelTitleH - p.ScrollOffset
	for _, e := range p.entries {
		h := float64(sectionHeader)
		if e.widget != nil {
			h = e.widget.Height()
		}
		// only rows fully inside the panel are drawn
		if y >= p.Y+panelTitleH-1 && y+h <= p.Y+p.Height {
			if e.widget == nil {
				vector.FillRect(screen,
					float32(p.X+5), float32(y),
					float32(p.Width-10), 20,
					color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
				ebitenutil.DebugPrintAt(screen, e.header, int(p.X+panelMargin), int(y+3))
			} else {
				e.widget.Draw(screen)
			}
		}
		y += h
	}
}
