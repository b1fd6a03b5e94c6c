package game

import "errors"

var (
	ErrTooClose    = errors.New("carrier too close to an enemy carrier")
	ErrNotAttached = errors.New("second carrier tile is not attached to the first")
)

// PlaceCarrierPoint applies one step of the two-step carrier placement for
// team t inside ocean o. The first call sets tile A, the next ones set tile B.
// On error the team is left untouched.
func PlaceCarrierPoint(o *Ocean, t *Team, p Point) error {
	if TooClose(p, o.Teams, t.Color, o.Config.CarrierMinDist) {
		return ErrTooClose
	}

	// first-tile mode is keyed on the x coordinate alone
	if t.CarrierA.X == Unset.X {
		t.CarrierA = p
		// placeholder until the second tile fixes the orientation
		t.FacingA, t.FacingB = South, North
		return nil
	}

	if !IsAttached(t.CarrierA, p) {
		return ErrNotAttached
	}
	t.CarrierB = p
	if fa, fb, ok := Facings(t.CarrierA, p); ok {
		t.FacingA, t.FacingB = fa, fb
	}
	return nil
}

// RemoveCarrier clears both tiles regardless of the commit state.
func RemoveCarrier(t *Team) {
	t.CarrierA = Unset
	t.CarrierB = Unset
}
