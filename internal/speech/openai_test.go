package speech

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOpenAIRenderer(t *testing.T) {
	Convey("Given a speech endpoint", t, func() {
		var path, body string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			path, body = r.URL.Path, string(b)
			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("ID3-fake-mp3"))
		}))
		defer srv.Close()

		r := NewOpenAIRenderer("sk-test", "", "nova", 0, nil,
			option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))

		Convey("When text is rendered", func() {
			audio, err := r.Render(context.Background(), "  Week 4 recap.  ")

			Convey("Then mp3 bytes are returned", func() {
				So(err, ShouldBeNil)
				So(string(audio.Data), ShouldEqual, "ID3-fake-mp3")
				So(audio.Format, ShouldEqual, "mp3")
			})

			Convey("Then the configured voice and defaults are sent", func() {
				So(path, ShouldEqual, "/audio/speech")
				So(body, ShouldContainSubstring, `"voice":"nova"`)
				So(body, ShouldContainSubstring, `"model":"tts-1"`)
				So(body, ShouldContainSubstring, `"response_format":"mp3"`)
				So(body, ShouldContainSubstring, `"input":"Week 4 recap."`)
			})
		})

		Convey("When the text is blank", func() {
			_, err := r.Render(context.Background(), " \n")
			So(errors.Is(err, ErrEmptyText), ShouldBeTrue)
		})
	})

	Convey("Given a failing speech endpoint", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
		}))
		defer srv.Close()

		r := NewOpenAIRenderer("sk-bad", "", "", 0, nil,
			option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
		_, err := r.Render(context.Background(), "hello")

		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "openai speech error")
	})
}

func TestClip(t *testing.T) {
	Convey("Given text under the limit", t, func() {
		So(clip("Short.", 10), ShouldEqual, "Short.")
	})

	Convey("Given text over the limit", t, func() {
		s := "First sentence. Second sentence is long."
		So(clip(s, 25), ShouldEqual, "First sentence.")
	})

	Convey("Given text with no sentence boundary", t, func() {
		So(clip(strings.Repeat("a", 20), 5), ShouldEqual, "aaaaa")
	})
}
