package layout_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/calgrid/calgrid/internal/collection"
	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/layout"
	"github.com/calgrid/calgrid/internal/temporal"
)

func items(t *testing.T, loc *time.Location, events ...domain.Event) []collection.Item {
	t.Helper()
	out, rejected := collection.Normalize(events, loc)
	if len(rejected) != 0 {
		t.Fatalf("unexpected rejects: %+v", rejected)
	}
	return out
}

func timed(id string, start time.Time, dur time.Duration, loc *time.Location) domain.Event {
	return domain.Event{
		ID:    id,
		Title: id,
		Start: temporal.NewZoned(start, loc),
		End:   temporal.NewZoned(start.Add(dur), loc),
	}
}

func byID(positioned []layout.Positioned) map[string]layout.Positioned {
	out := make(map[string]layout.Positioned, len(positioned))
	for _, p := range positioned {
		out[p.Event.ID] = p
	}
	return out
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDayEmpty(t *testing.T) {
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	if got := layout.Day(nil, day, layout.DefaultConfig()); got != nil {
		t.Errorf("empty day = %v, want nil", got)
	}
}

func TestDayNonOverlappingFullWidth(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)

	in := items(t, loc,
		timed("a", day.Add(9*time.Hour), time.Hour, loc),
		timed("b", day.Add(11*time.Hour), time.Hour, loc),
		timed("c", day.Add(13*time.Hour), time.Hour, loc),
	)

	for _, p := range layout.Day(in, day, layout.DefaultConfig()) {
		if !approx(p.Width, 1) || !approx(p.Left, 0) {
			t.Errorf("%s: width %v left %v, want full width at 0", p.Event.ID, p.Width, p.Left)
		}
	}
}

func TestDayOverlapColumns(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)

	// Three simultaneously active events: all columns distinct, widths 1/3.
	in := items(t, loc,
		timed("a", day.Add(9*time.Hour), 3*time.Hour, loc),
		timed("b", day.Add(9*time.Hour+30*time.Minute), 2*time.Hour, loc),
		timed("c", day.Add(10*time.Hour), time.Hour, loc),
	)

	pos := byID(layout.Day(in, day, layout.DefaultConfig()))
	for id, p := range pos {
		if !approx(p.Width, 1.0/3) {
			t.Errorf("%s: width = %v, want 1/3", id, p.Width)
		}
	}
	if !approx(pos["a"].Left, 0) || !approx(pos["b"].Left, 1.0/3) || !approx(pos["c"].Left, 2.0/3) {
		t.Errorf("lefts = %v %v %v, want 0, 1/3, 2/3", pos["a"].Left, pos["b"].Left, pos["c"].Left)
	}
	if pos["a"].ZIndex >= pos["b"].ZIndex || pos["b"].ZIndex >= pos["c"].ZIndex {
		t.Errorf("z order = %d %d %d, want increasing with column", pos["a"].ZIndex, pos["b"].ZIndex, pos["c"].ZIndex)
	}
}

func TestColumnCountIsMaxConcurrency(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)

	// a and b overlap, c overlaps only b: a chain, never three at once.
	// Two columns suffice and c reuses column 0.
	in := items(t, loc,
		timed("a", day.Add(9*time.Hour), 2*time.Hour, loc),
		timed("b", day.Add(10*time.Hour), 2*time.Hour, loc),
		timed("c", day.Add(11*time.Hour+15*time.Minute), time.Hour, loc),
	)

	pos := byID(layout.Day(in, day, layout.DefaultConfig()))
	for id, p := range pos {
		if !approx(p.Width, 0.5) {
			t.Errorf("%s: width = %v, want 1/2", id, p.Width)
		}
	}
	if !approx(pos["c"].Left, 0) {
		t.Errorf("c left = %v, want column 0 reused", pos["c"].Left)
	}
}

func TestNoOverlapWithinColumn(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)

	in := items(t, loc,
		timed("a", day.Add(9*time.Hour), 90*time.Minute, loc),
		timed("b", day.Add(9*time.Hour+15*time.Minute), 3*time.Hour, loc),
		timed("c", day.Add(10*time.Hour), 30*time.Minute, loc),
		timed("d", day.Add(10*time.Hour+45*time.Minute), 2*time.Hour, loc),
		timed("e", day.Add(13*time.Hour), time.Hour, loc),
	)

	pos := layout.Day(in, day, layout.DefaultConfig())
	spans := make(map[string][2]time.Time)
	for _, it := range in {
		spans[it.Event.ID] = [2]time.Time{it.Start, it.End.Add(time.Second)}
	}

	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			a, b := pos[i], pos[j]
			if !approx(a.Left, b.Left) || !approx(a.Width, b.Width) {
				continue
			}
			sa, sb := spans[a.Event.ID], spans[b.Event.ID]
			if sa[0].Before(sb[1]) && sb[0].Before(sa[1]) {
				t.Errorf("%s and %s share a column but overlap", a.Event.ID, b.Event.ID)
			}
		}
	}
}

func TestVerticalGeometry(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)
	cfg := layout.Config{DayStartHour: 8, DayEndHour: 20, CellHeight: 60, MinEventHeight: 10}

	in := items(t, loc, timed("a", day.Add(9*time.Hour+30*time.Minute), 45*time.Minute, loc))
	pos := layout.Day(in, day, cfg)
	if len(pos) != 1 {
		t.Fatalf("positioned = %d, want 1", len(pos))
	}

	// 09:30 with an 08:00 grid start at 60px/h: 90 minutes down.
	if !approx(pos[0].Top, 90) {
		t.Errorf("top = %v, want 90", pos[0].Top)
	}
	if !approx(pos[0].Height, 45) {
		t.Errorf("height = %v, want 45", pos[0].Height)
	}
}

func TestDSTHeightUsesElapsedTime(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation error = %v", err)
	}
	day := time.Date(2024, time.March, 10, 0, 0, 0, 0, ny)

	// 01:30 EST to 03:30 EDT: the wall clock shows two hours but only
	// one hour elapses across the spring-forward gap.
	start := time.Date(2024, time.March, 10, 1, 30, 0, 0, ny)
	end := time.Date(2024, time.March, 10, 3, 30, 0, 0, ny)
	ev := domain.Event{
		ID:    "dst",
		Start: temporal.NewZoned(start, ny),
		End:   temporal.NewZoned(end, ny),
	}

	in := items(t, ny, ev)
	cfg := layout.Config{DayStartHour: 0, DayEndHour: 24, CellHeight: 48, MinEventHeight: 10}
	pos := layout.Day(in, day, cfg)
	if len(pos) != 1 {
		t.Fatalf("positioned = %d, want 1", len(pos))
	}
	if !approx(pos[0].Height, 48) {
		t.Errorf("height = %v, want 48 (one real hour)", pos[0].Height)
	}
}

func TestMinHeightClamp(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)
	cfg := layout.Config{DayStartHour: 0, DayEndHour: 24, CellHeight: 48, MinEventHeight: 12}

	in := items(t, loc, timed("blip", day.Add(9*time.Hour), time.Minute, loc))
	pos := layout.Day(in, day, cfg)
	if len(pos) != 1 {
		t.Fatalf("positioned = %d, want 1", len(pos))
	}
	if !approx(pos[0].Height, 12) {
		t.Errorf("height = %v, want clamped to 12", pos[0].Height)
	}
}

func TestEqualEventsDeterministicOrder(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)

	// Same start, same duration: the id decides the column, regardless
	// of input order.
	x := timed("x", day.Add(9*time.Hour), time.Hour, loc)
	y := timed("y", day.Add(9*time.Hour), time.Hour, loc)

	first := layout.Day(items(t, loc, x, y), day, layout.DefaultConfig())
	second := layout.Day(items(t, loc, y, x), day, layout.DefaultConfig())

	if !reflect.DeepEqual(byID(first), byID(second)) {
		t.Error("layout depends on input order for equal events")
	}
	if p := byID(first)["x"]; !approx(p.Left, 0) {
		t.Errorf("x left = %v, want column 0 by id tie-break", p.Left)
	}
}

func TestDayIdempotent(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)
	in := items(t, loc,
		timed("a", day.Add(9*time.Hour), 2*time.Hour, loc),
		timed("b", day.Add(10*time.Hour), time.Hour, loc),
	)

	first := layout.Day(in, day, layout.DefaultConfig())
	second := layout.Day(in, day, layout.DefaultConfig())
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated layout differs")
	}
}

func TestWeekColumns(t *testing.T) {
	loc := time.UTC
	days := []time.Time{
		time.Date(2024, time.June, 10, 0, 0, 0, 0, loc),
		time.Date(2024, time.June, 11, 0, 0, 0, 0, loc),
	}

	monday := items(t, loc, timed("m", days[0].Add(9*time.Hour), time.Hour, loc))
	cols := layout.Week([][]collection.Item{monday, nil}, days, layout.DefaultConfig())

	if len(cols) != 2 {
		t.Fatalf("columns = %d, want 2", len(cols))
	}
	if len(cols[0]) != 1 || len(cols[1]) != 0 {
		t.Errorf("column sizes = %d, %d, want 1, 0", len(cols[0]), len(cols[1]))
	}
}
