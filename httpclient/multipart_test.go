package httpclient

import (
	"context"
	stderrors "errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kbukum/routekit/errors"
)

type part struct {
	name, fileName, contentType, data string
}

func readParts(t *testing.T, r io.Reader, contentType string) []part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" || params["boundary"] == "" {
		t.Fatalf("unexpected Content-Type %q (%v)", contentType, err)
	}
	mr := multipart.NewReader(r, params["boundary"])
	var parts []part
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return parts
		}
		if err != nil {
			t.Fatalf("NextPart error: %v", err)
		}
		data, _ := io.ReadAll(p)
		parts = append(parts, part{p.FormName(), p.FileName(), p.Header.Get("Content-Type"), string(data)})
	}
}

func TestMultipartBody_Encode(t *testing.T) {
	body := (&MultipartBody{}).
		AddField("title", "avatar").
		AddField("owner", "u-1").
		AddFile("image", "me.png", "image/png", []byte("png bytes"))
	body.Files = append(body.Files, FileField{FieldName: "notes", FileName: "notes.txt", Reader: strings.NewReader("streamed")})

	r, contentType, err := body.encode()
	if err != nil {
		t.Fatalf("encode() error: %v", err)
	}
	got := readParts(t, r, contentType)
	want := []part{
		{name: "owner", data: "u-1"},
		{name: "title", data: "avatar"},
		{name: "image", fileName: "me.png", contentType: "image/png", data: "png bytes"},
		{name: "notes", fileName: "notes.txt", contentType: ContentTypeOctet, data: "streamed"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d parts, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMultipartBody_EncodeEscapesNames(t *testing.T) {
	body := (&MultipartBody{}).AddFile("doc", `a "quoted" name.txt`, "", []byte("x"))
	r, contentType, err := body.encode()
	if err != nil {
		t.Fatalf("encode() error: %v", err)
	}
	if got := readParts(t, r, contentType); got[0].fileName != `a "quoted" name.txt` {
		t.Errorf("filename = %q", got[0].fileName)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, stderrors.New("disk gone") }

func TestMultipartBody_EncodeReaderError(t *testing.T) {
	body := &MultipartBody{Files: []FileField{{FieldName: "upload", FileName: "f", Reader: failingReader{}}}}

	_, _, err := body.encode()
	if !errors.HasCode(err, errors.ErrCodeEncoding) {
		t.Fatalf("expected ENCODING_ERROR, got %v", err)
	}
	if !strings.Contains(err.Error(), "upload") {
		t.Errorf("expected the failing field in the message, got %v", err)
	}

	_, err = newTestTransport(t, TransportConfig{}).Fetch(context.Background(), "http://127.0.0.1", &Request{
		Method: http.MethodPost, Body: body,
	})
	if !errors.HasCode(err, errors.ErrCodeEncoding) {
		t.Errorf("expected transport to surface ENCODING_ERROR, got %v", err)
	}
}

func TestTransport_Fetch_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm error: %v", err)
			return
		}
		if got := r.FormValue("album"); got != "holidays" {
			t.Errorf("album = %q", got)
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			t.Errorf("FormFile error: %v", err)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "beach.jpg" || string(data) != "jpeg" {
			t.Errorf("unexpected file %q %q", header.Filename, data)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	resp, err := newTestTransport(t, TransportConfig{}).Fetch(context.Background(), srv.URL+"/photos", &Request{
		Method: http.MethodPost,
		Body:   (&MultipartBody{}).AddField("album", "holidays").AddFile("photo", "beach.jpg", "image/jpeg", []byte("jpeg")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}
