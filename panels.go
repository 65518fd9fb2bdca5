package main

import (
	"image/color"
	"strconv"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/mrexhibit/common"
	"github.com/milk9111/mrexhibit/exhibit"
	"github.com/milk9111/mrexhibit/operator"
)

const maxActionButtons = 9

var (
	panelColor     = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	buttonColor    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	buttonHover    = color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255}
	buttonDisabled = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}
	textColor      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	mutedColor     = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	transparent    = color.NRGBA{}
)

// statusColors follows the Red List palette, indexed by ConservationStatus.
var statusColors = [exhibit.StatusCount]color.NRGBA{
	{R: 0x70, G: 0x70, B: 0x70, A: 0xff},
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	{R: 0x54, G: 0x23, B: 0x44, A: 0xff},
	{R: 0xd8, G: 0x1e, B: 0x05, A: 0xff},
	{R: 0xfc, G: 0x7f, B: 0x3f, A: 0xff},
	{R: 0xf9, G: 0xe8, B: 0x14, A: 0xff},
	{R: 0xcc, G: 0xe2, B: 0x26, A: 0xff},
	{R: 0x60, G: 0xc6, B: 0x59, A: 0xff},
}

const (
	iconSize = 24
	lineStep = 16
)

type hasWidget interface {
	GetWidget() *widget.Widget
}

func setShown(w hasWidget, on bool) {
	if on {
		w.GetWidget().Visibility = widget.Visibility_Show
	} else {
		w.GetWidget().Visibility = widget.Visibility_Hide
	}
}

type PanelsOptions struct {
	MaxNameLength int
	Console       *operator.Console
	Unlock        *operator.Unlock
	// Click is played on every button press.
	Click  func()
	Logger *zap.Logger
}

// Panels is the ebitenui presentation surface: one panel per mode plus the
// operator console.
type Panels struct {
	ui   *ebitenui.UI
	root *widget.Container
	face ebtext.Face

	panels  map[exhibit.PanelKind]*widget.Container
	current exhibit.PanelKind

	tooltip          *widget.Text
	detailName       *widget.Text
	detailScientific *widget.Text
	detailFamily     *widget.Text
	detailStatus     *widget.Text
	iconsSmall       []*widget.Container
	iconsLarge       []*widget.Container
	actionButtons    []*widget.Button

	operatorTarget *widget.Button
	operatorPanel  *widget.Container
	operatorOpen   bool
	console        *operator.Console
	unlock         *operator.Unlock
	clipboardOK    bool

	maxName     int
	click       func()
	coordinator *exhibit.Coordinator
	registry    *exhibit.Registry
	log         *zap.Logger
}

func NewPanels(opts PanelsOptions) *Panels {
	p := &Panels{
		face:    ebtext.NewGoXFace(basicfont.Face7x13),
		panels:  make(map[exhibit.PanelKind]*widget.Container),
		current: -1,
		console: opts.Console,
		unlock:  opts.Unlock,
		maxName: opts.MaxNameLength,
		click:   opts.Click,
		log:     opts.Logger,
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.maxName <= 0 {
		p.maxName = exhibit.DefaultMaxNameLength
	}
	if p.unlock == nil {
		p.unlock = operator.NewUnlock(operator.DefaultTaps, operator.DefaultTapWindow)
	}
	if err := clipboard.Init(); err != nil {
		p.log.Warn("clipboard unavailable, log copy disabled", zap.Error(err))
	} else {
		p.clipboardOK = true
	}

	p.root = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	p.panels[exhibit.PanelTitle] = p.buildTitle()
	p.panels[exhibit.PanelAnchoring] = p.buildAnchoring()
	p.panels[exhibit.PanelSelection] = p.buildSelection()
	p.panels[exhibit.PanelDetail] = p.buildDetail()
	for _, kind := range []exhibit.PanelKind{exhibit.PanelTitle, exhibit.PanelAnchoring, exhibit.PanelSelection, exhibit.PanelDetail} {
		panel := p.panels[kind]
		setShown(panel, false)
		p.root.AddChild(panel)
	}
	p.operatorTarget = p.buildOperatorTarget()
	p.operatorPanel = p.buildOperatorPanel()
	setShown(p.operatorTarget, false)
	setShown(p.operatorPanel, false)
	p.root.AddChild(p.operatorTarget)
	p.root.AddChild(p.operatorPanel)

	p.ui = &ebitenui.UI{Container: p.root}
	return p
}

// Bind connects the buttons to the coordinator and registry. It is separate
// from NewPanels because the coordinator itself needs the panels.
func (p *Panels) Bind(coordinator *exhibit.Coordinator, registry *exhibit.Registry) {
	p.coordinator = coordinator
	p.registry = registry
}

func (p *Panels) ShowPanel(kind exhibit.PanelKind) {
	for k, panel := range p.panels {
		setShown(panel, k == kind)
	}
	setShown(p.operatorTarget, kind == exhibit.PanelTitle)
	if kind == exhibit.PanelTitle {
		p.tooltip.Label = ""
	}
	if kind != p.current {
		p.log.Debug("panel shown", zap.Stringer("panel", kind))
	}
	p.current = kind
	p.root.RequestRelayout()
}

func (p *Panels) ShowTooltip(d *exhibit.Descriptor) {
	p.tooltip.Label = exhibit.DisplayName(d, p.maxName)
}

func (p *Panels) HideTooltip() {
	p.tooltip.Label = ""
}

func (p *Panels) ShowDetail(d *exhibit.Descriptor) {
	if d == nil {
		return
	}
	p.detailName.Label = exhibit.DisplayName(d, p.maxName)
	p.detailScientific.Label = d.ScientificName
	p.detailFamily.Label = ""
	if d.Family != "" {
		p.detailFamily.Label = "Family: " + d.Family
	}
	p.detailStatus.Label = "Status: " + d.Status.String()

	icons, ok := exhibit.StatusIcons(d.Status, exhibit.StatusCount)
	if !ok {
		p.log.Warn("unknown conservation status", zap.String("exhibit", d.Label()), zap.Int("status", int(d.Status)))
	}
	for i, icon := range icons {
		large := icon.Scale > 1
		setShown(p.iconsSmall[i], icon.Visible && !large)
		setShown(p.iconsLarge[i], icon.Visible && large)
	}

	for i, btn := range p.actionButtons {
		if i >= len(d.Actions) {
			setShown(btn, false)
			continue
		}
		setShown(btn, true)
		clip := d.Actions[i]
		btn.GetWidget().Disabled = clip == nil
		label := "Action " + strconv.Itoa(i+1)
		if clip != nil && clip.Name != "" {
			label = clip.Name
		}
		if text := btn.Text(); text != nil {
			text.Label = label
		}
	}
	p.panels[exhibit.PanelDetail].RequestRelayout()
}

// PointerCaptured reports whether the cursor is over a shown widget.
func (p *Panels) PointerCaptured() bool {
	return ebuiinput.UIHovered
}

func (p *Panels) Update() {
	p.ui.Update()
}

func (p *Panels) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
	if p.operatorOpen {
		p.drawConsole(screen)
	}
}

func (p *Panels) drawConsole(screen *ebiten.Image) {
	r := p.operatorPanel.GetWidget().Rect
	y := float64(r.Min.Y + 40)
	for _, line := range p.console.Lines() {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(r.Min.X+12), y)
		op.ColorScale.ScaleWithColor(line.Color())
		ebtext.Draw(screen, line.String(), p.face, op)
		y += lineStep
	}
}

func (p *Panels) pressed() {
	if p.click != nil {
		p.click()
	}
}

func (p *Panels) button(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     imageui.NewNineSliceColor(buttonColor),
			Hover:    imageui.NewNineSliceColor(buttonHover),
			Pressed:  imageui.NewNineSliceColor(buttonColor),
			Disabled: imageui.NewNineSliceColor(buttonDisabled),
		}),
		widget.ButtonOpts.Text(label, &p.face, &widget.ButtonTextColor{Idle: textColor, Disabled: mutedColor}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(160, 32),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			p.pressed()
			onClick()
		}),
	)
}

func (p *Panels) text(label string, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &p.face, clr),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (p *Panels) panel(h, v widget.AnchorLayoutPosition, minW, minH int, dir widget.Direction) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(dir),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: h, VerticalPosition: v}),
		),
	)
}

func (p *Panels) buildTitle() *widget.Container {
	panel := p.panel(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionCenter, common.BaseWidth/3, common.BaseHeight/3, widget.DirectionVertical)
	panel.AddChild(p.text("Mr. Exhibit", textColor))
	panel.AddChild(p.text("Animals and plants of the rainforest", mutedColor))
	panel.AddChild(p.button("Start", func() { p.coordinator.StartGame() }))
	panel.AddChild(p.button("Quit", func() { p.coordinator.Quit() }))
	return panel
}

func (p *Panels) buildAnchoring() *widget.Container {
	panel := p.panel(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionEnd, common.BaseWidth/2, 0, widget.DirectionVertical)
	panel.AddChild(p.text("Place the anchor on a flat surface, then confirm.", textColor))
	panel.AddChild(p.button("Confirm anchor", func() { p.coordinator.ConfirmAnchor() }))
	return panel
}

func (p *Panels) buildSelection() *widget.Container {
	panel := p.panel(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionStart, common.BaseWidth/2, 0, widget.DirectionVertical)
	panel.AddChild(p.text("Tap an exhibit to learn more", mutedColor))
	p.tooltip = p.text("", textColor)
	panel.AddChild(p.tooltip)
	panel.AddChild(p.button("Back to title", func() { p.coordinator.ReturnToTitle() }))
	return panel
}

func (p *Panels) buildDetail() *widget.Container {
	panel := p.panel(widget.AnchorLayoutPositionEnd, widget.AnchorLayoutPositionCenter, common.BaseWidth/4, common.BaseHeight/2, widget.DirectionVertical)

	p.detailName = p.text("", textColor)
	p.detailScientific = p.text("", mutedColor)
	p.detailFamily = p.text("", mutedColor)
	p.detailStatus = p.text("", mutedColor)
	panel.AddChild(p.detailName)
	panel.AddChild(p.detailScientific)
	panel.AddChild(p.detailFamily)
	panel.AddChild(p.detailStatus)

	icons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(4),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	for i := range exhibit.StatusCount {
		small := p.statusIcon(exhibit.ConservationStatus(i), iconSize)
		large := p.statusIcon(exhibit.ConservationStatus(i), int(iconSize*exhibit.HighlightScale))
		p.iconsSmall = append(p.iconsSmall, small)
		p.iconsLarge = append(p.iconsLarge, large)
		icons.AddChild(small)
		icons.AddChild(large)
	}
	panel.AddChild(icons)

	for i := range maxActionButtons {
		btn := p.button("Action "+strconv.Itoa(i+1), func() { p.registry.PlayCurrentAction(i) })
		setShown(btn, false)
		p.actionButtons = append(p.actionButtons, btn)
		panel.AddChild(btn)
	}

	panel.AddChild(p.button("Return", func() { p.registry.ReturnCurrent() }))
	return panel
}

func (p *Panels) statusIcon(status exhibit.ConservationStatus, size int) *widget.Container {
	icon := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(statusColors[status])),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(size, size),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
	)
	icon.AddChild(widget.NewText(
		widget.TextOpts.Text(status.String(), &p.face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	))
	return icon
}

// buildOperatorTarget is an invisible corner button on the title screen.
// Tapping it quickly enough toggles the operator console.
func (p *Panels) buildOperatorTarget() *widget.Button {
	none := imageui.NewNineSliceColor(transparent)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: none, Hover: none, Pressed: none}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(80, 80),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if p.unlock.Tap() {
				p.setOperatorOpen(!p.operatorOpen)
			}
		}),
	)
}

func (p *Panels) buildOperatorPanel() *widget.Container {
	height := 60 + lineStep*p.consoleLines()
	panel := p.panel(widget.AnchorLayoutPositionStart, widget.AnchorLayoutPositionStart, common.BaseWidth/2, height, widget.DirectionHorizontal)
	panel.AddChild(p.text("Operator console", textColor))
	copyBtn := p.button("Copy log", p.copyLog)
	copyBtn.GetWidget().Disabled = !p.clipboardOK
	panel.AddChild(copyBtn)
	panel.AddChild(p.button("Clear", func() { p.console.Clear() }))
	panel.AddChild(p.button("Close", func() { p.setOperatorOpen(false) }))
	return panel
}

func (p *Panels) consoleLines() int {
	if p.console == nil {
		return 0
	}
	return p.console.Cap()
}

func (p *Panels) setOperatorOpen(open bool) {
	if p.console == nil {
		return
	}
	p.operatorOpen = open
	setShown(p.operatorPanel, open)
	p.root.RequestRelayout()
	p.log.Info("operator console toggled", zap.Bool("open", open))
}

func (p *Panels) copyLog() {
	if !p.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(p.console.Text()))
	p.log.Debug("operator log copied", zap.Int("lines", p.console.Len()))
}
