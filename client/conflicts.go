package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// CheckConflicts runs a SENTINEL conflict-of-interest check for a candidate
// party.
func (c *Client) CheckConflicts(ctx context.Context, in ConflictCheck) (*ConflictResult, error) {
	if in.PartyName == "" {
		return nil, fmt.Errorf("conflict check requires a party name")
	}
	var out ConflictResult
	if err := c.Post(ctx, "/sentinel/checks", in, &out); err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	return &out, nil
}

// GetConflictGraph retrieves the relationship graph around a case.
func (c *Client) GetConflictGraph(ctx context.Context, caseID string) (*ConflictGraph, error) {
	var out ConflictGraph
	if err := c.Get(ctx, "/sentinel/graph?case_id="+url.QueryEscape(caseID), &out); err != nil {
		return nil, fmt.Errorf("failed to get conflict graph for case %s: %w", caseID, err)
	}
	return &out, nil
}

// DOT renders the graph in Graphviz DOT form. Drawing is left to external
// tooling.
func (g *ConflictGraph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph sentinel {\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "  %q [label=%q, kind=%q];\n", n.ID, n.Label, n.Kind)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.From, e.To, e.Relation)
	}
	b.WriteString("}\n")
	return b.String()
}
