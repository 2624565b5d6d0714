package stepctl

import (
	"math"
	"testing"
)

func TestNextClampsToFacBounds(t *testing.T) {
	hist := &History{FirstStep: true}
	fac, hNew := Next(1e10, 0, 8, 4, 1.0, hist)
	if fac != FacMin {
		t.Errorf("fac = %v, want FacMin %v", fac, FacMin)
	}
	if hNew != FacMin {
		t.Errorf("hNew = %v, want %v", hNew, FacMin)
	}

	fac, _ = Next(1e-10, 0, 8, 4, 1.0, hist)
	if fac != FacMax {
		t.Errorf("fac = %v, want FacMax %v", fac, FacMax)
	}
}

func TestNextGustafssonDampens(t *testing.T) {
	hist := &History{Gustafsson: true, FirstStep: false, HAcc: 1.0, ErrOld: 0.5}
	fac, hNew := Next(0.4, 3, 8, 4, 1.0, hist)
	if fac > FacMax || fac < FacMin {
		t.Errorf("fac out of bounds: %v", fac)
	}
	if math.IsNaN(hNew) {
		t.Error("hNew is NaN")
	}
}

func TestAcceptClampsToInterval(t *testing.T) {
	hist := &History{}
	hFinal, hitEnd := Accept(0.5, 100.0, 0.3, 1e-8, 9.9, 10.0, false, hist)
	if hFinal > 10.0-9.9+1e-12 {
		t.Errorf("hFinal %v exceeds remaining interval", hFinal)
	}
	_ = hitEnd
}

func TestAcceptCapsToHOldAfterReject(t *testing.T) {
	hist := &History{}
	hFinal, _ := Accept(0.5, 2.0, 0.3, 1e-8, 0.0, 100.0, true, hist)
	if hFinal > 0.5 {
		t.Errorf("hFinal %v should be capped at h=0.5 after a rejection", hFinal)
	}
}

func TestRejectUsesFacRejOnFirstStep(t *testing.T) {
	h := Reject(1.0, 0.9, true)
	if h != FacRej {
		t.Errorf("Reject(firstStep) = %v, want FacRej %v", h, FacRej)
	}
}

func TestRejectUsesFacOtherwise(t *testing.T) {
	h := Reject(2.0, 0.5, false)
	if h != 1.0 {
		t.Errorf("Reject = %v, want 1.0", h)
	}
}
