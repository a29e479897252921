package geometry

import (
	"cmp"

	"golang.org/x/exp/slices"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// BVHNode is an internal node of a Bounding Volume Hierarchy.
// Children are either further BVH nodes or leaf hittables; a node built over a single
// object references that object from both sides.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is immutable after construction and safe for concurrent traversal.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH over objects. The caller's slice is not modified.
func NewBVH(objects []Hittable) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}

	// Construction sorts in place, so work on a copy
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return &BVH{Root: buildBVH(objectsCopy)}
}

// NewBVHFromList constructs a BVH over the children of a list
func NewBVHFromList(list *HittableList) *BVH {
	return NewBVH(list.Objects())
}

// buildBVH recursively partitions objects at the midpoint after sorting along the longest axis
func buildBVH(objects []Hittable) *BVHNode {
	bbox := core.EmptyAABB
	for _, object := range objects {
		bbox = bbox.Union(object.BoundingBox())
	}

	node := &BVHNode{bbox: bbox}

	switch len(objects) {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		node.Left = objects[0]
		node.Right = objects[1]
	default:
		axis := bbox.LongestAxis()
		slices.SortStableFunc(objects, func(a, b Hittable) int {
			return cmp.Compare(a.BoundingBox().AxisInterval(axis).Min, b.BoundingBox().AxisInterval(axis).Min)
		})

		mid := len(objects) / 2
		node.Left = buildBVH(objects[:mid])
		node.Right = buildBVH(objects[mid:])
	}

	return node
}

// Hit tests the ray against the node's box, then its children.
// The right child is only searched for hits closer than the left child's.
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT, sampler)
	if hitLeft {
		rayT.Max = leftHit.T
	}

	// A degenerate leaf holds the same object on both sides
	if n.Right == n.Left {
		return leftHit, hitLeft
	}

	if rightHit, hitRight := n.Right.Hit(ray, rayT, sampler); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the merged box of both children
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// Hit tests if a ray intersects any object in the BVH
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.Hit(ray, rayT, sampler)
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB
	}
	return bvh.Root.bbox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int     // Internal BVH nodes
	LeafCount  int     // Leaf hittables referenced by the tree
	MaxDepth   int     // Depth of the deepest leaf (the root is at depth 0)
	AvgDepth   float64 // Average leaf depth
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	collectStats(bvh.Root, 0, &stats)

	if stats.LeafCount > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafCount)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	children := []Hittable{node.Left}
	if node.Right != node.Left {
		children = append(children, node.Right)
	}

	for _, child := range children {
		if inner, ok := child.(*BVHNode); ok {
			collectStats(inner, depth+1, stats)
			continue
		}
		stats.LeafCount++
		stats.AvgDepth += float64(depth + 1) // Accumulate depth for average calculation
		if depth+1 > stats.MaxDepth {
			stats.MaxDepth = depth + 1
		}
	}
}
