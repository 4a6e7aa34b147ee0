package swr

// clipEpsilon is the smallest w kept by clipping.
const clipEpsilon = 1e-5

// clipPlanes is the number of planes bounding the view volume: the six
// frustum sides and w >= clipEpsilon.
const clipPlanes = 7

// planeDistance returns the signed distance of a clip-space position to
// a view volume plane. The inside is >= 0.
func planeDistance(plane int, p [4]float32) float32 {
	switch plane {
	case 0:
		return p[3] + p[0]
	case 1:
		return p[3] - p[0]
	case 2:
		return p[3] + p[1]
	case 3:
		return p[3] - p[1]
	case 4:
		return p[3] + p[2]
	case 5:
		return p[3] - p[2]
	default:
		return p[3] - clipEpsilon
	}
}

// outcode returns a bit per plane the position is outside of.
func outcode(p [4]float32) uint8 {
	var code uint8
	for plane := range clipPlanes {
		if !(planeDistance(plane, p) >= 0) {
			code |= 1 << plane
		}
	}
	return code
}

func insideViewVolume(p [4]float32) bool {
	return outcode(p) == 0
}

// lerpVertex returns a + t*(b-a) for every vertex output.
func (c *Context) lerpVertex(a, b *Vertex, t float32) *Vertex {
	v := c.verts.alloc()
	v.Position = a.Position.Add(b.Position.Sub(a.Position).Mul(t))
	v.PointSize = a.PointSize + t*(b.PointSize-a.PointSize)
	for i := range v.Varyings {
		v.Varyings[i] = a.Varyings[i].Add(b.Varyings[i].Sub(a.Varyings[i]).Mul(t))
	}
	for i := range v.ClipDistances {
		v.ClipDistances[i] = a.ClipDistances[i] + t*(b.ClipDistances[i]-a.ClipDistances[i])
	}
	return v
}

// clipLine clips a line against the view volume. The returned vertices are
// the inputs when no clipping was needed.
func (c *Context) clipLine(s *RenderStates, v0, v1 *Vertex) (*Vertex, *Vertex, bool) {
	c0, c1 := outcode(v0.Position), outcode(v1.Position)
	if c0|c1 == 0 {
		return v0, v1, true
	}
	if c0&c1 != 0 {
		return nil, nil, false
	}

	t0, t1 := float32(0), float32(1)
	for plane := range clipPlanes {
		d0 := planeDistance(plane, v0.Position)
		d1 := planeDistance(plane, v1.Position)
		switch {
		case d0 < 0 && d1 < 0:
			return nil, nil, false
		case d0 < 0:
			t0 = max(t0, d0/(d0-d1))
		case d1 < 0:
			t1 = min(t1, d0/(d0-d1))
		}
	}
	if !(t0 < t1) {
		return nil, nil, false
	}

	a, b := v0, v1
	if t0 > 0 {
		a = c.lerpVertex(v0, v1, t0)
	}
	if t1 < 1 {
		b = c.lerpVertex(v0, v1, t1)
		copyFlat(b, v1, s.Program.info.Varyings)
	}
	return a, b, true
}

// clipTriangle clips a triangle against the view volume and returns the
// resulting convex polygon. Flat varyings of generated vertices are copied
// from v2 so that every triangle of the fan keeps the provoking value.
func (c *Context) clipTriangle(s *RenderStates, v0, v1, v2 *Vertex) []*Vertex {
	c0, c1, c2 := outcode(v0.Position), outcode(v1.Position), outcode(v2.Position)
	if c0|c1|c2 == 0 {
		return []*Vertex{v0, v1, v2}
	}
	if c0&c1&c2 != 0 {
		return nil
	}

	poly := make([]*Vertex, 0, 3+clipPlanes)
	poly = append(poly, v0, v1, v2)
	next := make([]*Vertex, 0, 3+clipPlanes)
	for plane := range clipPlanes {
		if len(poly) == 0 {
			break
		}
		next = next[:0]
		for i, a := range poly {
			b := poly[(i+1)%len(poly)]
			da := planeDistance(plane, a.Position)
			db := planeDistance(plane, b.Position)
			if da >= 0 {
				next = append(next, a)
			}
			if (da >= 0) != (db >= 0) {
				next = append(next, c.lerpVertex(a, b, da/(da-db)))
			}
		}
		poly, next = next, poly
	}
	if len(poly) < 3 {
		return nil
	}

	// The rasterizer takes flat values from the last vertex of each fan
	// triangle, which may be any vertex of the polygon.
	quals := s.Program.info.Varyings
	if !hasFlat(quals) {
		return poly
	}
	for i, v := range poly {
		switch v {
		case v2:
		case v0, v1:
			cp := c.verts.alloc()
			*cp = *v
			copyFlat(cp, v2, quals)
			poly[i] = cp
		default:
			copyFlat(v, v2, quals)
		}
	}
	return poly
}

func hasFlat(quals []Interpolation) bool {
	for _, q := range quals {
		if q == Flat {
			return true
		}
	}
	return false
}

// copyFlat copies the flat varyings of src to dst.
func copyFlat(dst, src *Vertex, quals []Interpolation) {
	for j, q := range quals {
		if q == Flat {
			dst.Varyings[j] = src.Varyings[j]
		}
	}
}
