package uniform

// Lanes4 holds four independent LCG states, one per SSE lane.
type Lanes4 [4]uint32

// Lanes8 holds eight independent LCG states, one per AVX lane.
type Lanes8 [8]uint32

// Next advances every lane once and returns the lane uniforms.
func (l *Lanes4) Next() (u [4]float32) {
	for i := range l {
		l[i] = l[i]*LCGMul + LCGInc
		u[i] = ToUnit(l[i])
	}
	return u
}

// Next advances every lane once and returns the lane uniforms.
func (l *Lanes8) Next() (u [8]float32) {
	for i := range l {
		l[i] = l[i]*LCGMul + LCGInc
		u[i] = ToUnit(l[i])
	}
	return u
}

// Slice exposes the lane states for kernels that advance them in place.
func (l *Lanes4) Slice() []uint32 { return l[:] }

// Slice exposes the lane states for kernels that advance them in place.
func (l *Lanes8) Slice() []uint32 { return l[:] }
