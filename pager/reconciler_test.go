package pager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/util"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func ids(videos []catalog.Video) []string {
	return lo.Map(videos, func(v catalog.Video, _ int) string { return v.ID })
}

func TestWindows(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name        string
		size, total int
	}{
		{"bulk pages of 1000 with a short last page", 1000, 2500},
		{"pages smaller than a UI page", 7, 100},
		{"pages that are a multiple of a UI page", 48, 144},
		{"a structured board as one page", 50, 50},
	}

	for _, c := range cases {
		Convey("Walking every UI page of "+c.name+" reproduces the source", t, func() {
			src := newFake("s", c.size, c.total)
			r := NewReconciler()
			defer r.Close()

			v, err := r.Load(ctx, src)
			So(err, ShouldBeNil)

			var seen []string
			for ui := 1; ui <= v.Cursor.TotalUIPages; ui++ {
				if ui > 1 {
					v, err = r.Goto(ctx, ui)
					So(err, ShouldBeNil)
				}
				So(v.Cursor.UIPage, ShouldEqual, ui)
				So(v.Items, ShouldHaveLength, util.Min(24, c.total-(ui-1)*24))
				seen = append(seen, ids(v.Items)...)
			}

			r.Wait()
			So(v.Cursor.Exact, ShouldBeTrue)
			So(v.Cursor.TotalUIPages, ShouldEqual, util.CeilDiv(c.total, 24))
			So(seen, ShouldResemble, src.all())
		})
	}
}

func TestPrefetch(t *testing.T) {
	ctx := context.Background()

	Convey("Given a loaded bulk category", t, func() {
		src := newFake("censored", 1000, 3000)
		r := NewReconciler()
		defer r.Close()

		_, err := r.Load(ctx, src)
		So(err, ShouldBeNil)
		r.Wait()

		So(src.count(1), ShouldEqual, 1)
		So(src.count(2), ShouldEqual, 1)

		Convey("Moving inside the loaded source page makes no call", func() {
			v, err := r.Goto(ctx, 41)
			So(err, ShouldBeNil)
			So(v.Cursor.SourcePage, ShouldEqual, 1)
			So(src.count(1), ShouldEqual, 1)
			So(src.count(2), ShouldEqual, 1)
		})

		Convey("Crossing into the prefetched page swaps without a fetch", func() {
			_, err := r.Goto(ctx, 41)
			So(err, ShouldBeNil)
			So(Plan(r.State(), 42).Step, ShouldEqual, Swap)

			v, err := r.Goto(ctx, 42)
			So(err, ShouldBeNil)
			So(v.Cursor.SourcePage, ShouldEqual, 2)
			So(v.Items[0].ID, ShouldEqual, "censored-984")
			So(src.count(2), ShouldEqual, 1)

			Convey("and immediately prefetches the following page", func() {
				r.Wait()
				So(src.count(3), ShouldEqual, 1)
				So(r.State().Prefetch.MustGet().Number, ShouldEqual, 3)
			})
		})

		Convey("Out of range pages are a no-op", func() {
			before, _ := r.View()
			v, err := r.Goto(ctx, 0)
			So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
			So(v, ShouldResemble, before)

			_, err = r.Goto(ctx, before.Cursor.TotalUIPages+1)
			So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
		})
	})

	Convey("A failed prefetch is silent and degrades to a synchronous fetch", t, func() {
		src := newFake("amateur", 48, 480)
		src.failPage(2, errors.New("upstream 502"))
		r := NewReconciler()
		defer r.Close()

		_, err := r.Load(ctx, src)
		So(err, ShouldBeNil)
		r.Wait()
		So(r.State().Prefetch.IsAbsent(), ShouldBeTrue)

		src.failPage(2, nil)
		v, err := r.Goto(ctx, 3)
		So(err, ShouldBeNil)
		So(v.Cursor.SourcePage, ShouldEqual, 2)
		So(src.count(2), ShouldEqual, 2)
	})

	Convey("A failed synchronous fetch surfaces and keeps the state", t, func() {
		src := newFake("amateur", 48, 480)
		r := NewReconciler()
		defer r.Close()

		_, err := r.Load(ctx, src)
		So(err, ShouldBeNil)
		r.Wait()

		src.failPage(7, catalog.Unavailable("amateur", errors.New("timeout")))
		_, err = r.Goto(ctx, 14)
		So(catalog.IsUnavailable(err), ShouldBeTrue)

		v, _ := r.View()
		So(v.Cursor.UIPage, ShouldEqual, 1)
	})
}

func TestStaleness(t *testing.T) {
	ctx := context.Background()

	Convey("A prefetch overtaken by a far jump is discarded", t, func() {
		src := newFake("uncensored", 48, 480)
		gate := src.gate(2)
		r := NewReconciler()
		defer r.Close()

		_, err := r.Load(ctx, src)
		So(err, ShouldBeNil)
		So(eventually(func() bool { return src.count(2) == 1 }), ShouldBeTrue)

		v, err := r.Goto(ctx, 10)
		So(err, ShouldBeNil)
		So(v.Cursor.SourcePage, ShouldEqual, 5)

		close(gate)
		r.Wait()

		state := r.State()
		So(state.SourcePage, ShouldEqual, 5)
		So(state.Resident, ShouldNotContainKey, 2)
		if p, ok := state.Prefetch.Get(); ok {
			So(p.Number, ShouldEqual, 6)
		}

		after, _ := r.View()
		So(ids(after.Items), ShouldResemble, ids(v.Items))
		So(after.Items[0].ID, ShouldEqual, "uncensored-216")

		Convey("so returning near it fetches again", func() {
			_, err := r.Goto(ctx, 3)
			So(err, ShouldBeNil)
			So(src.count(2), ShouldEqual, 2)
		})
	})

	Convey("Crossing into a page still being prefetched waits for it", t, func() {
		src := newFake("censored", 1000, 3000)
		gate := src.gate(2)
		r := NewReconciler()
		defer r.Close()

		_, err := r.Load(ctx, src)
		So(err, ShouldBeNil)
		So(eventually(func() bool { return src.count(2) == 1 }), ShouldBeTrue)

		_, err = r.Goto(ctx, 41)
		So(err, ShouldBeNil)

		type result struct {
			v   View
			err error
		}
		done := make(chan result, 1)
		go func() {
			v, err := r.Goto(ctx, 42)
			done <- result{v, err}
		}()

		time.Sleep(20 * time.Millisecond)
		So(src.count(2), ShouldEqual, 1)

		close(gate)
		res := <-done
		So(res.err, ShouldBeNil)
		So(res.v.Cursor.SourcePage, ShouldEqual, 2)
		So(res.v.Items[0].ID, ShouldEqual, "censored-984")
		So(src.count(2), ShouldEqual, 1)
	})

	Convey("Waiting on a prefetch honours cancellation", t, func() {
		src := newFake("censored", 1000, 3000)
		gate := src.gate(2)
		r := NewReconciler()
		defer r.Close()
		defer close(gate)

		_, err := r.Load(ctx, src)
		So(err, ShouldBeNil)
		So(eventually(func() bool { return src.count(2) == 1 }), ShouldBeTrue)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = r.Goto(cancelled, 42)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
		So(src.count(2), ShouldEqual, 1)

		v, _ := r.View()
		So(v.Cursor.UIPage, ShouldEqual, 1)
	})

	Convey("Loading another category supersedes a load in flight", t, func() {
		slow := newFake("slow", 1000, 10)
		gate := slow.gate(1)
		fast := newFake("fast", 1000, 10)
		r := NewReconciler()
		defer r.Close()

		done := make(chan error, 1)
		go func() {
			_, err := r.Load(ctx, slow)
			done <- err
		}()
		So(eventually(func() bool { return slow.count(1) == 1 }), ShouldBeTrue)

		v, err := r.Load(ctx, fast)
		So(err, ShouldBeNil)
		So(v.Category, ShouldEqual, "fast")

		close(gate)
		So(errors.Is(<-done, ErrSuperseded), ShouldBeTrue)

		after, _ := r.View()
		So(after.Category, ShouldEqual, "fast")
		So(after.Items[0].ID, ShouldEqual, "fast-0")
		So(r.Category().MustGet(), ShouldEqual, "fast")
	})

	Convey("A newer navigation supersedes a slow fetch", t, func() {
		src := newFake("chinese-av", 48, 480)
		gate := src.gate(5)
		r := NewReconciler()
		defer r.Close()

		_, err := r.Load(ctx, src)
		So(err, ShouldBeNil)

		done := make(chan error, 1)
		go func() {
			_, err := r.Goto(ctx, 10)
			done <- err
		}()
		So(eventually(func() bool { return src.count(5) == 1 }), ShouldBeTrue)

		v, err := r.Goto(ctx, 2)
		So(err, ShouldBeNil)
		So(v.Cursor.UIPage, ShouldEqual, 2)

		close(gate)
		So(errors.Is(<-done, ErrSuperseded), ShouldBeTrue)

		after, _ := r.View()
		So(after.Cursor.UIPage, ShouldEqual, 2)
	})

	Convey("Prefetches of a replaced category never land", t, func() {
		first := newFake("first", 1000, 3000)
		gate := first.gate(2)
		second := newFake("second", 1000, 10)
		r := NewReconciler()
		defer r.Close()

		_, err := r.Load(ctx, first)
		So(err, ShouldBeNil)
		So(eventually(func() bool { return first.count(2) == 1 }), ShouldBeTrue)

		_, err = r.Load(ctx, second)
		So(err, ShouldBeNil)
		close(gate)
		r.Wait()

		So(r.State().Prefetch.IsAbsent(), ShouldBeTrue)
		So(r.State().SourceTotalPages, ShouldEqual, 1)
	})
}

func TestEmpty(t *testing.T) {
	ctx := context.Background()

	Convey("A bulk category with zero pages", t, func() {
		src := newFake("empty", 1000, 0)
		r := NewReconciler()
		defer r.Close()

		v, err := r.Load(ctx, src)
		So(err, ShouldBeNil)
		So(v.Cursor.TotalUIPages, ShouldEqual, 1)
		So(v.Items, ShouldBeEmpty)

		_, err = r.Goto(ctx, 2)
		So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)

		v, err = r.Goto(ctx, 1)
		So(err, ShouldBeNil)
		So(v.Items, ShouldBeEmpty)
	})

	Convey("Goto before Load", t, func() {
		_, err := NewReconciler().Goto(ctx, 1)
		So(errors.Is(err, ErrNotLoaded), ShouldBeTrue)
	})

	Convey("A failing load", t, func() {
		src := newFake("down", 1000, 10)
		src.failPage(1, catalog.Unavailable("down", errors.New("refused")))
		r := NewReconciler()
		defer r.Close()

		_, err := r.Load(ctx, src)
		So(catalog.IsUnavailable(err), ShouldBeTrue)
		_, loaded := r.View()
		So(loaded, ShouldBeFalse)
	})
}
