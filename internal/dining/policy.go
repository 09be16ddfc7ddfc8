package dining

import "errors"

// Variant names the fork acquisition policy a table runs with.
type Variant string

// VariantSymmetry is the asymmetric last-seat policy: philosophers 0..n-2
// pick up their right fork first, the last philosopher starts with its
// left. One seat going against the grain removes the circular wait, so the
// ring cannot deadlock.
const VariantSymmetry Variant = "symmetry"

// ErrUnsupportedVariant is returned when a configuration names a policy
// this implementation does not provide.
var ErrUnsupportedVariant = errors.New("unsupported variant")

// acquisitionOrder returns the two fork indices philosopher id picks up, in
// pickup order, under the symmetry policy. The left fork shares the
// philosopher's index; the right fork is the next one around the ring.
func acquisitionOrder(id, n int) (first, second int) {
	left := id
	right := (id + 1) % n
	if id == n-1 {
		return left, right
	}
	return right, left
}
