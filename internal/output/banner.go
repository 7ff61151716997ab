// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"

	figure "github.com/common-nighthawk/go-figure"
)

// BannerOptions configures the startup banner.
type BannerOptions struct {
	ShowBanner  bool
	ShowVersion bool
}

// DefaultBannerOptions is what an interactive TTY session sees.
func DefaultBannerOptions() BannerOptions {
	return BannerOptions{ShowBanner: true, ShowVersion: true}
}

// PrintBanner writes the startup banner for the codeintel CLI.
func PrintBanner(w io.Writer, version string, opts BannerOptions) {
	if w == nil {
		return
	}
	if !opts.ShowBanner {
		if opts.ShowVersion {
			fmt.Fprintf(w, "codeintel v%s\n", version)
		}
		return
	}
	fmt.Fprintln(w, GetASCIILogo())
	if opts.ShowVersion {
		fmt.Fprintf(w, "codeintel v%s\n", version)
	}
	fmt.Fprintln(w)
}

// GetASCIILogo renders the CLI's ASCII-art wordmark.
func GetASCIILogo() string {
	fig := figure.NewFigure("codeintel", "standard", true)
	return fig.String()
}

// CompactBanner is the single-line form printed to non-TTY output.
func CompactBanner(version string) string {
	return fmt.Sprintf("codeintel v%s", version)
}

// ShouldShowBanner decides whether the full banner renders: never under
// --no-banner, and only ever on an interactive TTY.
func ShouldShowBanner(isTTY bool, noBannerFlag bool) bool {
	if noBannerFlag {
		return false
	}
	return isTTY
}
