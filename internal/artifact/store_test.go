package artifact_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/albapepper/fantasy-recap/internal/artifact"
)

func TestStore(t *testing.T) {
	Convey("Given an empty output directory", t, func() {
		dir := filepath.Join(t.TempDir(), "out")
		store, err := artifact.NewStore(dir)
		So(err, ShouldBeNil)

		Convey("When a week is saved", func() {
			a, err := store.Save(4, []byte("mp3-bytes"))

			Convey("Then it lands under the conventional name", func() {
				So(err, ShouldBeNil)
				So(a.Filename, ShouldEqual, "recap_week_4.mp3")
				So(a.Size, ShouldEqual, 9)
				data, err := os.ReadFile(filepath.Join(dir, "recap_week_4.mp3"))
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "mp3-bytes")
			})

			Convey("Then no temp files remain", func() {
				entries, err := os.ReadDir(dir)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
			})

			Convey("Then it can be opened", func() {
				f, info, err := store.Open("recap_week_4.mp3")
				So(err, ShouldBeNil)
				defer f.Close()
				b, _ := io.ReadAll(f)
				So(string(b), ShouldEqual, "mp3-bytes")
				So(info.Size(), ShouldEqual, 9)
			})
		})

		Convey("When several weeks and stray files exist", func() {
			for _, w := range []int{10, 2, 7} {
				_, err := store.Save(w, []byte(fmt.Sprintf("week-%d", w)))
				So(err, ShouldBeNil)
			}
			So(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644), ShouldBeNil)
			So(os.WriteFile(filepath.Join(dir, "recap_week_x.mp3"), []byte("x"), 0o644), ShouldBeNil)

			list, err := store.List()

			Convey("Then only artifacts are listed, sorted numerically by week", func() {
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 3)
				So(list[0].Week, ShouldEqual, 2)
				So(list[1].Week, ShouldEqual, 7)
				So(list[2].Week, ShouldEqual, 10)
				So(list[2].Filename, ShouldEqual, "recap_week_10.mp3")
				So(list[2].Size, ShouldEqual, int64(len("week-10")))
			})
		})

		Convey("When the same week is saved concurrently", func() {
			payloads := [][]byte{
				[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
				[]byte("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
			}
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(p []byte) {
					defer wg.Done()
					_, _ = store.Save(3, p)
				}(payloads[i%2])
			}
			wg.Wait()

			Convey("Then the file holds one complete payload", func() {
				data, err := os.ReadFile(filepath.Join(dir, "recap_week_3.mp3"))
				So(err, ShouldBeNil)
				So(string(data) == string(payloads[0]) || string(data) == string(payloads[1]), ShouldBeTrue)
			})
		})

		Convey("When opening invalid names", func() {
			_, _, err := store.Open("recap_week_1.wav")
			So(errors.Is(err, artifact.ErrInvalidName), ShouldBeTrue)

			_, _, err = store.Open("../recap_week_1.mp3")
			So(errors.Is(err, artifact.ErrInvalidName), ShouldBeTrue)

			_, _, err = store.Open("recap_week_99.mp3")
			So(errors.Is(err, artifact.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestParseFileName(t *testing.T) {
	Convey("Given artifact names", t, func() {
		w, ok := artifact.ParseFileName("recap_week_12.mp3")
		So(ok, ShouldBeTrue)
		So(w, ShouldEqual, 12)

		_, ok = artifact.ParseFileName("recap_week_12.mp3.tmp")
		So(ok, ShouldBeFalse)

		_, ok = artifact.ParseFileName("week_12.mp3")
		So(ok, ShouldBeFalse)

		So(artifact.FileName(5), ShouldEqual, "recap_week_5.mp3")
	})
}
