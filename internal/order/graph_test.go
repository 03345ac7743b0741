package order

import "testing"

type recordingReporter struct {
	events []OrderEvent
}

func (r *recordingReporter) ReportInvalidOrderOperation(e OrderEvent) {
	r.events = append(r.events, e)
}

func TestGraphInsertIsIdempotentAndStable(t *testing.T) {
	g := NewGraph(NullReporter{}, "test")
	a := g.Insert(Primitive{Name: "pkg.A"})
	b := g.Insert(Primitive{Name: "pkg.A"})
	if a != b {
		t.Errorf("second Insert of an existing type returned a new index: %d != %d", a, b)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestGraphConnectMirrorsBackedges(t *testing.T) {
	g := NewGraph(NullReporter{}, "test")
	g.Insert(Primitive{Name: "pkg.Sub"})
	g.Insert(Primitive{Name: "pkg.Super"})
	g.Connect(Primitive{Name: "pkg.Sub"}, Primitive{Name: "pkg.Super"}, nil)

	subIdx, _ := g.IndexOf(Primitive{Name: "pkg.Sub"})
	superIdx, _ := g.IndexOf(Primitive{Name: "pkg.Super"})

	if len(g.edges[subIdx]) == 0 || g.edges[subIdx][len(g.edges[subIdx])-1].Index != superIdx {
		t.Errorf("Sub has no forward edge to Super")
	}
	found := false
	for _, bk := range g.backedges[superIdx] {
		if bk.Index == subIdx {
			found = true
		}
	}
	if !found {
		t.Errorf("Super has no backedge to Sub")
	}
}

func TestGraphInsertAutoConnectsBottom(t *testing.T) {
	g := NewGraph(NullReporter{}, "test")
	g.Insert(Bottom{})
	g.Insert(Primitive{Name: "pkg.A"})

	bottomIdx, _ := g.IndexOf(Bottom{})
	aIdx, _ := g.IndexOf(Primitive{Name: "pkg.A"})

	found := false
	for _, e := range g.edges[bottomIdx] {
		if e.Index == aIdx {
			found = true
		}
	}
	if !found {
		t.Errorf("Insert did not connect Bottom to the new vertex")
	}
}

func TestGraphConnectUntrackedReportsTelemetry(t *testing.T) {
	reporter := &recordingReporter{}
	g := NewGraph(reporter, "test-engine")
	g.Insert(Primitive{Name: "pkg.Known"})

	g.Connect(Primitive{Name: "pkg.Unknown"}, Primitive{Name: "pkg.Known"}, nil)

	if len(reporter.events) != 1 {
		t.Fatalf("expected 1 telemetry event, got %d", len(reporter.events))
	}
	if reporter.events[0].EngineID != "test-engine" || reporter.events[0].Operation != "connect" {
		t.Errorf("unexpected event: %+v", reporter.events[0])
	}
}

func TestGraphDisconnectSuccessorsClearsBothDirections(t *testing.T) {
	g := NewGraph(NullReporter{}, "test")
	g.Insert(Primitive{Name: "pkg.Sub"})
	g.Insert(Primitive{Name: "pkg.Super"})
	g.Connect(Primitive{Name: "pkg.Sub"}, Primitive{Name: "pkg.Super"}, nil)

	g.DisconnectSuccessors(Primitive{Name: "pkg.Sub"})

	subIdx, _ := g.IndexOf(Primitive{Name: "pkg.Sub"})
	superIdx, _ := g.IndexOf(Primitive{Name: "pkg.Super"})
	if len(g.edges[subIdx]) != 0 {
		t.Errorf("Sub still has forward edges after DisconnectSuccessors")
	}
	for _, bk := range g.backedges[superIdx] {
		if bk.Index == subIdx {
			t.Errorf("Super still has a backedge to Sub after DisconnectSuccessors")
		}
	}
}
