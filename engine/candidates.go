package engine

import (
	"slices"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/vmath"
)

// searchParticle tests the 3x3 neighbourhood: particles, vertices and segments by cell,
// pistons by row, then the cell exit
func (s *State) searchParticle(p *Particle) {
	segs := s.segBuf[:0]
	seen := s.idBuf[:0]
	c := p.cell
	for y := c.Y - 1; y <= c.Y+1; y++ {
		for x := c.X - 1; x <= c.X+1; x++ {
			cell := vmath.Cell{X: x, Y: y}
			for _, id := range s.grid.ParticlesAt(cell) {
				if id != p.ID {
					s.testMobile(&p.Mobile, s.mobile(id))
				}
			}
			for _, v := range s.grid.VerticesAt(cell) {
				s.testSingle(&p.Mobile, vertexCollision(p.ID, v))
			}
			for _, seg := range s.grid.SegmentsAt(cell) {
				if !slices.Contains(segs, seg) {
					segs = append(segs, seg)
				}
			}
		}
		// A piston spanning two rows is registered in both
		for _, id := range s.grid.PistonsAt(y) {
			if !slices.Contains(seen, id) {
				seen = append(seen, id)
				s.testMobile(&p.Mobile, s.mobile(id))
			}
		}
	}
	for _, seg := range segs {
		s.testSingle(&p.Mobile, segmentCollision(p.ID, seg))
	}
	s.testSingle(&p.Mobile, areaCollision(p.ID))
	s.segBuf, s.idBuf = segs[:0], seen[:0]
}

// searchPiston tests whole rows around both edges: particles, other pistons and vertices
func (s *State) searchPiston(p *Piston) {
	var rows []int
	for _, r := range p.rows {
		for y := r - 1; y <= r+1; y++ {
			if !slices.Contains(rows, y) {
				rows = append(rows, y)
			}
		}
	}
	slices.Sort(rows)

	seen := s.idBuf[:0]
	for _, y := range rows {
		s.grid.RowParticles(y, func(id core.ID) {
			s.testMobile(&p.Mobile, s.mobile(id))
		})
		for _, id := range s.grid.PistonsAt(y) {
			if id != p.ID && !slices.Contains(seen, id) {
				seen = append(seen, id)
				s.testMobile(&p.Mobile, s.mobile(id))
			}
		}
		s.grid.RowVertices(y, func(v vmath.Vec) {
			s.testSingle(&p.Mobile, vertexCollision(p.ID, v))
		})
	}
	s.testSingle(&p.Mobile, areaCollision(p.ID))
	s.idBuf = seen[:0]
}
