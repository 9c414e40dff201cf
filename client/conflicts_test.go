package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConflicts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sentinel/checks", r.URL.Path)
		var in ConflictCheck
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Aerts NV", in.PartyName)
		_, _ = w.Write([]byte(`{"conflicted":true,"hits":[{"case_id":"c1","case_title":"Dupont v. Aerts","role":"opposing","score":0.97}]}`))
	})

	result, err := c.CheckConflicts(context.Background(), ConflictCheck{PartyName: "Aerts NV"})

	require.NoError(t, err)
	assert.True(t, result.Conflicted)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "opposing", result.Hits[0].Role)
}

func TestCheckConflicts_RequiresPartyName(t *testing.T) {
	c := New("http://localhost:0", nil)
	_, err := c.CheckConflicts(context.Background(), ConflictCheck{})
	assert.Error(t, err)
}

func TestConflictGraphDOT(t *testing.T) {
	g := &ConflictGraph{
		Nodes: []GraphNode{
			{ID: "p1", Kind: "party", Label: "Aerts NV"},
			{ID: "c1", Kind: "matter", Label: "Dupont v. Aerts"},
		},
		Edges: []GraphEdge{
			{From: "p1", To: "c1", Relation: "opposing"},
		},
	}

	dot := g.DOT()

	assert.Contains(t, dot, "digraph sentinel {")
	assert.Contains(t, dot, `"p1" [label="Aerts NV", kind="party"];`)
	assert.Contains(t, dot, `"p1" -> "c1" [label="opposing"];`)
}
