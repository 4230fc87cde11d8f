package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWouldCreateCycle_EmptyGraph(t *testing.T) {
	proposed := DependencyEdge{DependentID: 1, PrerequisiteID: 2}
	assert.False(t, WouldCreateCycle(nil, proposed))
}

func TestWouldCreateCycle_DirectCycle(t *testing.T) {
	edges := []DependencyEdge{{DependentID: 1, PrerequisiteID: 2}}
	proposed := DependencyEdge{DependentID: 2, PrerequisiteID: 1}
	assert.True(t, WouldCreateCycle(edges, proposed))
}

func TestWouldCreateCycle_SelfEdge(t *testing.T) {
	proposed := DependencyEdge{DependentID: 7, PrerequisiteID: 7}
	assert.True(t, WouldCreateCycle(nil, proposed))
}

func TestWouldCreateCycle_TransitiveCycle(t *testing.T) {
	edges := []DependencyEdge{
		{DependentID: 1, PrerequisiteID: 2},
		{DependentID: 2, PrerequisiteID: 3},
		{DependentID: 3, PrerequisiteID: 4},
	}
	proposed := DependencyEdge{DependentID: 4, PrerequisiteID: 1}
	assert.True(t, WouldCreateCycle(edges, proposed))
}

func TestWouldCreateCycle_DiamondIsAcyclic(t *testing.T) {
	// 1 -> 2 -> 4 and 1 -> 3 -> 4 share a sink but close no cycle.
	edges := []DependencyEdge{
		{DependentID: 1, PrerequisiteID: 2},
		{DependentID: 2, PrerequisiteID: 4},
		{DependentID: 1, PrerequisiteID: 3},
	}
	proposed := DependencyEdge{DependentID: 3, PrerequisiteID: 4}
	assert.False(t, WouldCreateCycle(edges, proposed))
}

func TestWouldCreateCycle_DisconnectedComponents(t *testing.T) {
	edges := []DependencyEdge{
		{DependentID: 10, PrerequisiteID: 11},
		{DependentID: 20, PrerequisiteID: 21},
	}
	proposed := DependencyEdge{DependentID: 11, PrerequisiteID: 20}
	assert.False(t, WouldCreateCycle(edges, proposed))
}
