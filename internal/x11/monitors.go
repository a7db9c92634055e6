package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// PlacementMonitor returns the monitor new windows should open on: the one
// under the pointer, else the first one, clipped to the EWMH work area.
// Without RandR the root window geometry is used.
func (c *Connection) PlacementMonitor() Monitor {
	monitors, err := c.GetMonitors()
	if err != nil || len(monitors) == 0 {
		screen := c.XUtil.Screen()
		return Monitor{Name: "root", Width: int(screen.WidthInPixels), Height: int(screen.HeightInPixels)}
	}

	mon := monitors[0]
	if m := findMonitorForPointer(c, monitors); m != nil {
		mon = *m
	}

	if workArea, err := ewmh.WorkareaGet(c.XUtil); err == nil && len(workArea) > 0 {
		desktopIndex := 0
		if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
		wa := workArea[desktopIndex]
		mon = clipToWorkArea(mon, int(wa.X), int(wa.Y), int(wa.Width), int(wa.Height))
	}
	return mon
}

// CenteredOrigin returns the top-left corner that centers a width×height
// window on mon, never placing it above or left of the monitor origin.
func CenteredOrigin(mon Monitor, width, height int) (int, int) {
	x := mon.X + (mon.Width-width)/2
	y := mon.Y + (mon.Height-height)/2
	return max(x, mon.X), max(y, mon.Y)
}

func clipToWorkArea(mon Monitor, waX, waY, waW, waH int) Monitor {
	x1 := max(mon.X, waX)
	y1 := max(mon.Y, waY)
	x2 := min(mon.X+mon.Width, waX+waW)
	y2 := min(mon.Y+mon.Height, waY+waH)

	if x2 > x1 && y2 > y1 {
		mon.X = x1
		mon.Y = y1
		mon.Width = x2 - x1
		mon.Height = y2 - y1
	}
	return mon
}

func findMonitorForPointer(c *Connection, monitors []Monitor) *Monitor {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil
	}

	x := int(pointer.RootX)
	y := int(pointer.RootY)

	for i := range monitors {
		mon := &monitors[i]
		if x >= mon.X && x < mon.X+mon.Width && y >= mon.Y && y < mon.Y+mon.Height {
			return mon
		}
	}
	return nil
}
