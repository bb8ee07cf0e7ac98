// Package platform describes the host an action runs on.
package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Details describes the runner host.
type Details struct {
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
	Version   string `json:"version"`
	Kernel    string `json:"kernel,omitempty"`
	Hostname  string `json:"hostname,omitempty"`
	IsWindows bool   `json:"isWindows"`
	IsMacOS   bool   `json:"isMacOS"`
	IsLinux   bool   `json:"isLinux"`
}

// Platform names, as in GOOS.
const (
	Windows = "windows"
	MacOS   = "darwin"
	Linux   = "linux"
)

// hostInfo is replaced in tests.
var hostInfo = host.InfoWithContext

// Detect queries the host.
func Detect(ctx context.Context) (Details, error) {
	info, err := hostInfo(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to get host info: %w", err)
	}
	return fromHostInfo(info, runtime.GOOS, runtime.GOARCH), nil
}

// IsWindows reports whether the toolkit was built for Windows.
func IsWindows() bool {
	return runtime.GOOS == Windows
}

// IsMacOS reports whether the toolkit was built for macOS.
func IsMacOS() bool {
	return runtime.GOOS == MacOS
}

// IsLinux reports whether the toolkit was built for Linux.
func IsLinux() bool {
	return runtime.GOOS == Linux
}

// Arch maps a GOARCH to the architecture names used by runner labels.
func Arch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	}
	return goarch
}

func fromHostInfo(info *host.InfoStat, goos, goarch string) Details {
	d := Details{
		Platform:  goos,
		Arch:      Arch(goarch),
		IsWindows: goos == Windows,
		IsMacOS:   goos == MacOS,
		IsLinux:   goos == Linux,
	}
	if info == nil {
		d.Name = goos
		return d
	}
	d.Version = info.PlatformVersion
	d.Kernel = info.KernelVersion
	d.Hostname = info.Hostname

	switch {
	case d.IsMacOS:
		d.Name = "macOS"
	case info.Platform != "":
		d.Name = displayName(info.Platform)
	default:
		d.Name = goos
	}
	return d
}

// displayName capitalizes single word distribution ids such as "ubuntu".
// Windows already reports a full product name.
func displayName(platform string) string {
	if strings.ContainsAny(platform, " ") {
		return platform
	}
	return strings.ToUpper(platform[:1]) + platform[1:]
}
