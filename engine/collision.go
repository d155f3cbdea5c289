package engine

import (
	"fmt"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/event"
	"github.com/lixenwraith/collisions/vmath"
)

// CollisionKind tags the participants of a Collision
type CollisionKind uint8

const (
	CollisionArea    CollisionKind = iota // A leaves its grid cell or row
	CollisionMobiles                      // A meets mobile B
	CollisionVertex                       // A touches an obstacle vertex
	CollisionSegment                      // A touches an obstacle segment
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionArea:
		return "area"
	case CollisionMobiles:
		return "mobiles"
	case CollisionVertex:
		return "vertex"
	case CollisionSegment:
		return "segment"
	}
	return "unknown"
}

// Collision describes one predicted contact; comparable
// Mobile pairs are stored with A < B so both sides build equal values
type Collision struct {
	Kind    CollisionKind
	A, B    core.ID
	Vertex  vmath.Vec
	Segment vmath.Segment
}

func pairCollision(a, b core.ID) Collision {
	if b < a {
		a, b = b, a
	}
	return Collision{Kind: CollisionMobiles, A: a, B: b}
}

func vertexCollision(a core.ID, v vmath.Vec) Collision {
	return Collision{Kind: CollisionVertex, A: a, B: core.NoID, Vertex: v}
}

func segmentCollision(a core.ID, s vmath.Segment) Collision {
	return Collision{Kind: CollisionSegment, A: a, B: core.NoID, Segment: s}
}

func areaCollision(a core.ID) Collision {
	return Collision{Kind: CollisionArea, A: a, B: core.NoID}
}

// Real reports whether the collision changes a trajectory; area crossings only re-bin
func (c Collision) Real() bool {
	return c.Kind != CollisionArea
}

// Other returns the partner of id in a mobile pair
func (c Collision) Other(id core.ID) core.ID {
	if c.A == id {
		return c.B
	}
	return c.A
}

func (c Collision) String() string {
	switch c.Kind {
	case CollisionMobiles:
		return fmt.Sprintf("{%d ; %d}", c.A, c.B)
	case CollisionVertex:
		return fmt.Sprintf("{%d : (%g, %g)}", c.A, c.Vertex.X, c.Vertex.Y)
	case CollisionSegment:
		return fmt.Sprintf("{%d -> (%g, %g)}", c.A, c.Segment.V.X, c.Segment.V.Y)
	default:
		return fmt.Sprintf("{%d = area}", c.A)
	}
}

// Scheduled is the payload of a queued event
type Scheduled struct {
	Type      event.EventType
	Collision Collision // EventCollision
	Particle  core.ID   // EventMutation
}
