package radau

// makeInterpolant builds the quadratic CONT coefficients (len 3n) through
// the three stage increments Z1,Z2,Z3, Q(c_i) = Z_i, carried across
// successful steps as the warm-start for the next Newton iteration.
func makeInterpolant(z1, z2, z3, cont []float64) {
	n := len(z1)
	c0, c1, c2 := rkC[0], rkC[1], rkC[2]
	den := (c2 - c1) * (c1 - c0) * (c0 - c2)

	for i := 0; i < n; i++ {
		cont[i] = ((-c2*c2*c1*z1[i]+z3[i]*c1*c0*c0+
			c1*c1*c2*z1[i]-c1*c1*c0*z3[i]+
			c2*c2*c0*z2[i]-z2[i]*c2*c0*c0)/den - z3[i])
		cont[n+i] = -(c0*c0*(z3[i]-z2[i]) + c1*c1*(z1[i]-z3[i]) + c2*c2*(z2[i]-z1[i])) / den
		cont[2*n+i] = (c0*(z3[i]-z2[i]) + c1*(z1[i]-z3[i]) + c2*(z2[i]-z1[i])) / den
	}
}

// interpolate warm-starts Z1,Z2,Z3 for the next Newton solve from the
// carried CONT coefficients and the step-size ratio h/hOld. Each stage is
// evaluated at its own x_i (x1, x2, x3 respectively); z3 uses x3, not x2.
func interpolate(h, hOld float64, cont, z1, z2, z3 []float64) {
	n := len(z1)
	r := h / hOld
	x1 := 1.0 + rkC[0]*r
	x2 := 1.0 + rkC[1]*r
	x3 := 1.0 + rkC[2]*r

	for i := 0; i < n; i++ {
		z1[i] = cont[i] + x1*(cont[n+i]+x1*cont[2*n+i])
		z2[i] = cont[i] + x2*(cont[n+i]+x2*cont[2*n+i])
		z3[i] = cont[i] + x3*(cont[n+i]+x3*cont[2*n+i])
	}
}
