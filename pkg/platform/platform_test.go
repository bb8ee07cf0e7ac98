package platform

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHostInfo(t *testing.T) {
	tests := []struct {
		name   string
		info   *host.InfoStat
		goos   string
		goarch string
		want   Details
	}{
		{
			name:   "ubuntu",
			info:   &host.InfoStat{Hostname: "runner", Platform: "ubuntu", PlatformVersion: "22.04", KernelVersion: "6.5.0"},
			goos:   "linux",
			goarch: "amd64",
			want: Details{
				Name: "Ubuntu", Platform: "linux", Arch: "x64", Version: "22.04",
				Kernel: "6.5.0", Hostname: "runner", IsLinux: true,
			},
		},
		{
			name:   "macos",
			info:   &host.InfoStat{Platform: "darwin", PlatformVersion: "14.2"},
			goos:   "darwin",
			goarch: "arm64",
			want:   Details{Name: "macOS", Platform: "darwin", Arch: "arm64", Version: "14.2", IsMacOS: true},
		},
		{
			name:   "windows",
			info:   &host.InfoStat{Platform: "Microsoft Windows Server 2022 Datacenter", PlatformVersion: "10.0.20348"},
			goos:   "windows",
			goarch: "386",
			want: Details{
				Name: "Microsoft Windows Server 2022 Datacenter", Platform: "windows", Arch: "x86",
				Version: "10.0.20348", IsWindows: true,
			},
		},
		{
			name:   "no host info",
			goos:   "freebsd",
			goarch: "riscv64",
			want:   Details{Name: "freebsd", Platform: "freebsd", Arch: "riscv64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fromHostInfo(tt.info, tt.goos, tt.goarch))
		})
	}
}

func TestDetect(t *testing.T) {
	orig := hostInfo
	t.Cleanup(func() { hostInfo = orig })

	hostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{Platform: "debian", PlatformVersion: "12"}, nil
	}
	d, err := Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, runtime.GOOS, d.Platform)
	assert.Equal(t, "12", d.Version)

	hostInfo = func(context.Context) (*host.InfoStat, error) {
		return nil, errors.New("no /proc")
	}
	_, err = Detect(context.Background())
	require.ErrorContains(t, err, "no /proc")
}

func TestBuildPlatform(t *testing.T) {
	count := 0
	for _, b := range []bool{IsWindows(), IsMacOS(), IsLinux()} {
		if b {
			count++
		}
	}
	assert.LessOrEqual(t, count, 1)
}
