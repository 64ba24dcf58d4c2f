// Package bezier deals with Bezier curves of arbitrary degree whose control
// points have non-decreasing x-coordinates.
/*

Curves of this kind are used as functions y(x): as animation timing curves
(progress over time) and as acceleration curves (pixels per tick over tick
rate). To evaluate y for a given x, the curve parameter t producing x is
searched first (Newton-Raphson with a bisection fallback), then the curve is
sampled on the y-axis at t.

Sampling uses De Casteljau's algorithm, repeatedly interpolating between
adjacent control point coordinates of one axis. This is O(n²) in the number
of control points, which is fine for the cubic curves we deal with. The
derivative is computed from the Bernstein form:

	B'(t) = m · Σ_{i=0..m-1} b(i,m-1)(t) · (P[i+1] − P[i])    with m = n−1

Usage

	curve, err := bezier.New(smoothscroll.P(0, 0), smoothscroll.P(0, 0),
	    smoothscroll.P(0.66, 1), smoothscroll.P(1, 1))
	y := curve.Evaluate(0.5, 0.001)

The x-value monotonicity restriction is not a general restriction for Bezier
curves, but it guarantees that the inversion x → t is unique.

References

	De Casteljau's algorithm
	https://en.wikipedia.org/wiki/De_Casteljau%27s_algorithm

	Bezier curves, derivative
	https://en.wikipedia.org/wiki/Bézier_curve#Derivative


BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package bezier
