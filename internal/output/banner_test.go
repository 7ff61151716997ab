// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package output

import "testing"

func TestShouldShowBannerRespectsNoBannerFlag(t *testing.T) {
	if ShouldShowBanner(true, true) {
		t.Fatal("expected --no-banner to suppress banner even on a TTY")
	}
}

func TestShouldShowBannerRequiresTTY(t *testing.T) {
	if ShouldShowBanner(false, false) {
		t.Fatal("expected non-TTY output to suppress the full banner")
	}
	if !ShouldShowBanner(true, false) {
		t.Fatal("expected a TTY with no suppressing flag to show the banner")
	}
}
