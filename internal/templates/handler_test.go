package templates_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/formatdiff/internal/templates"
	"github.com/JaimeStill/formatdiff/pkg/docx"
	"github.com/JaimeStill/formatdiff/pkg/pagination"
)

type mockSystem struct {
	listFn        func(ctx context.Context, page pagination.PageRequest, filters templates.Filters) (*pagination.PageResult[templates.Template], error)
	findFn        func(ctx context.Context, id uuid.UUID) (*templates.Template, error)
	findDefaultFn func(ctx context.Context) (*templates.Template, error)
	createFn      func(ctx context.Context, cmd templates.CreateCommand) (*templates.Template, error)
	renameFn      func(ctx context.Context, id uuid.UUID, name string) (*templates.Template, error)
	setDefaultFn  func(ctx context.Context, id uuid.UUID) (*templates.Template, error)
	deleteFn      func(ctx context.Context, id uuid.UUID) error
	downloadFn    func(ctx context.Context, id uuid.UUID) (*templates.Template, io.ReadCloser, error)
}

func (m *mockSystem) Handler(maxUploadSize int64) *templates.Handler {
	return newTestHandler(m, maxUploadSize)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters templates.Filters) (*pagination.PageResult[templates.Template], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*templates.Template, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) FindDefault(ctx context.Context) (*templates.Template, error) {
	return m.findDefaultFn(ctx)
}

func (m *mockSystem) Create(ctx context.Context, cmd templates.CreateCommand) (*templates.Template, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Rename(ctx context.Context, id uuid.UUID, name string) (*templates.Template, error) {
	return m.renameFn(ctx, id, name)
}

func (m *mockSystem) SetDefault(ctx context.Context, id uuid.UUID) (*templates.Template, error) {
	return m.setDefaultFn(ctx, id)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockSystem) Download(ctx context.Context, id uuid.UUID) (*templates.Template, io.ReadCloser, error) {
	return m.downloadFn(ctx, id)
}

func newTestHandler(sys templates.System, maxUploadSize int64) *templates.Handler {
	return templates.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		maxUploadSize,
	)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	h := sys.Handler(50 * 1024 * 1024)
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleTemplate() templates.Template {
	return templates.Template{
		ID:         uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Name:       "Annual Report",
		Filename:   "annual.docx",
		SizeBytes:  11,
		Checksum:   "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		StorageKey: "templates/550e8400-e29b-41d4-a716-446655440000/annual.docx",
		IsDefault:  true,
		CreatedAt:  time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandlerList(t *testing.T) {
	tmpl := sampleTemplate()

	t.Run("returns paginated list", func(t *testing.T) {
		sys := &mockSystem{
			listFn: func(_ context.Context, _ pagination.PageRequest, _ templates.Filters) (*pagination.PageResult[templates.Template], error) {
				result := pagination.NewPageResult([]templates.Template{tmpl}, 1, 1, 20)
				return &result, nil
			},
		}

		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/templates", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result pagination.PageResult[templates.Template]
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Total != 1 || len(result.Data) != 1 {
			t.Fatalf("result = %+v, want one template", result)
		}
		if result.Data[0].ID != tmpl.ID {
			t.Errorf("id = %v, want %v", result.Data[0].ID, tmpl.ID)
		}
	})

	t.Run("passes query filters", func(t *testing.T) {
		var captured templates.Filters
		sys := &mockSystem{
			listFn: func(_ context.Context, _ pagination.PageRequest, f templates.Filters) (*pagination.PageResult[templates.Template], error) {
				captured = f
				result := pagination.NewPageResult([]templates.Template{}, 0, 1, 20)
				return &result, nil
			},
		}

		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/templates?name=annual&is_default=true", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.Name == nil || *captured.Name != "annual" {
			t.Errorf("name filter = %v, want annual", captured.Name)
		}
		if captured.IsDefault == nil || !*captured.IsDefault {
			t.Errorf("is_default filter = %v, want true", captured.IsDefault)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	tmpl := sampleTemplate()

	tests := []struct {
		name   string
		path   string
		findFn func(context.Context, uuid.UUID) (*templates.Template, error)
		want   int
	}{
		{
			name: "found",
			path: "/templates/" + tmpl.ID.String(),
			findFn: func(_ context.Context, id uuid.UUID) (*templates.Template, error) {
				return &tmpl, nil
			},
			want: http.StatusOK,
		},
		{
			name: "invalid uuid",
			path: "/templates/not-a-uuid",
			want: http.StatusBadRequest,
		},
		{
			name: "not found",
			path: "/templates/" + uuid.New().String(),
			findFn: func(context.Context, uuid.UUID) (*templates.Template, error) {
				return nil, templates.ErrNotFound
			},
			want: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{findFn: tt.findFn}

			rec := httptest.NewRecorder()
			setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerFindDefault(t *testing.T) {
	tmpl := sampleTemplate()

	t.Run("returns default template", func(t *testing.T) {
		sys := &mockSystem{
			findDefaultFn: func(context.Context) (*templates.Template, error) { return &tmpl, nil },
			findFn: func(context.Context, uuid.UUID) (*templates.Template, error) {
				t.Fatal("/default must not route to Find")
				return nil, nil
			},
		}

		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/templates/default", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got templates.Template
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !got.IsDefault || got.ID != tmpl.ID {
			t.Errorf("template = %+v, want default %v", got, tmpl.ID)
		}
	})

	t.Run("no templates returns 404", func(t *testing.T) {
		sys := &mockSystem{
			findDefaultFn: func(context.Context) (*templates.Template, error) { return nil, templates.ErrNoDefault },
		}

		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/templates/default", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerSearch(t *testing.T) {
	t.Run("normalizes pagination and passes filters", func(t *testing.T) {
		var capturedPage pagination.PageRequest
		var capturedFilters templates.Filters
		sys := &mockSystem{
			listFn: func(_ context.Context, page pagination.PageRequest, f templates.Filters) (*pagination.PageResult[templates.Template], error) {
				capturedPage = page
				capturedFilters = f
				result := pagination.NewPageResult([]templates.Template{}, 0, page.Page, page.PageSize)
				return &result, nil
			},
		}

		body := `{"page": 0, "page_size": 500, "filename": "annual"}`

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/templates/search", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		setupMux(sys).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if capturedPage.Page != 1 {
			t.Errorf("page = %d, want 1", capturedPage.Page)
		}
		if capturedPage.PageSize != 100 {
			t.Errorf("page_size = %d, want 100 (max)", capturedPage.PageSize)
		}
		if capturedFilters.Filename == nil || *capturedFilters.Filename != "annual" {
			t.Errorf("filename filter = %v, want annual", capturedFilters.Filename)
		}
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/templates/search", strings.NewReader("not json"))
		setupMux(&mockSystem{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerUpload(t *testing.T) {
	tmpl := sampleTemplate()

	t.Run("creates template from multipart form", func(t *testing.T) {
		var captured templates.CreateCommand
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd templates.CreateCommand) (*templates.Template, error) {
				captured = cmd
				return &tmpl, nil
			},
		}

		body, contentType := multipartForm(t, "annual.docx", []byte("docx bytes"), map[string]string{
			"name":       "Annual Report",
			"is_default": "true",
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/templates", body)
		req.Header.Set("Content-Type", contentType)
		setupMux(sys).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if captured.Filename != "annual.docx" {
			t.Errorf("filename = %q, want annual.docx", captured.Filename)
		}
		if captured.Name != "Annual Report" {
			t.Errorf("name = %q, want Annual Report", captured.Name)
		}
		if !captured.IsDefault {
			t.Error("is_default not passed through")
		}
		if string(captured.Data) != "docx bytes" {
			t.Errorf("data = %q, want docx bytes", captured.Data)
		}
	})

	tests := []struct {
		name     string
		filename string
		content  []byte
		fields   map[string]string
		createFn func(context.Context, templates.CreateCommand) (*templates.Template, error)
		want     int
	}{
		{
			name:     "non-docx file returns 400",
			filename: "annual.pdf",
			content:  []byte("pdf"),
			want:     http.StatusBadRequest,
		},
		{
			name:   "missing file returns 400",
			fields: map[string]string{"name": "x"},
			want:   http.StatusBadRequest,
		},
		{
			name:     "invalid is_default returns 400",
			filename: "annual.docx",
			content:  []byte("docx"),
			fields:   map[string]string{"is_default": "perhaps"},
			want:     http.StatusBadRequest,
		},
		{
			name:     "system error maps status",
			filename: "annual.docx",
			content:  []byte("docx"),
			createFn: func(context.Context, templates.CreateCommand) (*templates.Template, error) {
				return nil, templates.ErrDuplicate
			},
			want: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{createFn: tt.createFn}
			body, contentType := multipartForm(t, tt.filename, tt.content, tt.fields)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/templates", body)
			req.Header.Set("Content-Type", contentType)
			setupMux(sys).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	t.Run("oversized upload returns 413", func(t *testing.T) {
		h := newTestHandler(&mockSystem{}, 64)
		body, contentType := multipartForm(t, "annual.docx", bytes.Repeat([]byte("x"), 4096), nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/templates", body)
		req.Header.Set("Content-Type", contentType)
		h.Upload(rec, req)

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", rec.Code)
		}
	})

	t.Run("malformed multipart returns 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/templates", strings.NewReader("not multipart"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		setupMux(&mockSystem{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerRename(t *testing.T) {
	tmpl := sampleTemplate()

	t.Run("renames template", func(t *testing.T) {
		var capturedName string
		sys := &mockSystem{
			renameFn: func(_ context.Context, id uuid.UUID, name string) (*templates.Template, error) {
				capturedName = name
				renamed := tmpl
				renamed.Name = name
				return &renamed, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/templates/"+tmpl.ID.String(), strings.NewReader(`{"name":"Quarterly"}`))
		setupMux(sys).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if capturedName != "Quarterly" {
			t.Errorf("name = %q, want Quarterly", capturedName)
		}
	})

	t.Run("empty name returns 400", func(t *testing.T) {
		sys := &mockSystem{
			renameFn: func(context.Context, uuid.UUID, string) (*templates.Template, error) {
				return nil, templates.ErrInvalidName
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/templates/"+tmpl.ID.String(), strings.NewReader(`{"name":""}`))
		setupMux(sys).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerSetDefault(t *testing.T) {
	tmpl := sampleTemplate()

	var capturedID uuid.UUID
	sys := &mockSystem{
		setDefaultFn: func(_ context.Context, id uuid.UUID) (*templates.Template, error) {
			capturedID = id
			return &tmpl, nil
		},
		renameFn: func(context.Context, uuid.UUID, string) (*templates.Template, error) {
			t.Fatal("/default must not route to Rename")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("PUT", "/templates/"+tmpl.ID.String()+"/default", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if capturedID != tmpl.ID {
		t.Errorf("id = %v, want %v", capturedID, tmpl.ID)
	}
}

func TestHandlerDownload(t *testing.T) {
	tmpl := sampleTemplate()

	t.Run("streams file as attachment", func(t *testing.T) {
		sys := &mockSystem{
			downloadFn: func(context.Context, uuid.UUID) (*templates.Template, io.ReadCloser, error) {
				return &tmpl, io.NopCloser(strings.NewReader("hello world")), nil
			},
		}

		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/templates/"+tmpl.ID.String()+"/download", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != docx.ContentType {
			t.Errorf("content type = %q", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="annual.docx"` {
			t.Errorf("content disposition = %q", cd)
		}
		if rec.Body.String() != "hello world" {
			t.Errorf("body = %q, want hello world", rec.Body.String())
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			downloadFn: func(context.Context, uuid.UUID) (*templates.Template, io.ReadCloser, error) {
				return nil, nil, templates.ErrNotFound
			},
		}

		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/templates/"+tmpl.ID.String()+"/download", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	tests := []struct {
		name     string
		path     string
		deleteFn func(context.Context, uuid.UUID) error
		want     int
	}{
		{
			name:     "deletes template",
			path:     "/templates/" + id.String(),
			deleteFn: func(context.Context, uuid.UUID) error { return nil },
			want:     http.StatusNoContent,
		},
		{
			name: "invalid uuid returns 400",
			path: "/templates/not-a-uuid",
			want: http.StatusBadRequest,
		},
		{
			name:     "not found returns 404",
			path:     "/templates/" + id.String(),
			deleteFn: func(context.Context, uuid.UUID) error { return templates.ErrNotFound },
			want:     http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{deleteFn: tt.deleteFn}

			rec := httptest.NewRecorder()
			setupMux(sys).ServeHTTP(rec, httptest.NewRequest("DELETE", tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerRoutes(t *testing.T) {
	group := newTestHandler(&mockSystem{}, 1024).Routes()

	if group.Prefix != "/templates" {
		t.Errorf("prefix = %q, want /templates", group.Prefix)
	}

	want := []struct {
		method  string
		pattern string
	}{
		{"GET", ""},
		{"GET", "/default"},
		{"GET", "/{id}"},
		{"GET", "/{id}/download"},
		{"POST", ""},
		{"POST", "/search"},
		{"PUT", "/{id}"},
		{"PUT", "/{id}/default"},
		{"DELETE", "/{id}"},
	}

	if len(group.Routes) != len(want) {
		t.Fatalf("route count = %d, want %d", len(group.Routes), len(want))
	}

	for i, w := range want {
		r := group.Routes[i]
		if r.Method != w.method || r.Pattern != w.pattern {
			t.Errorf("route[%d] = %s %s, want %s %s", i, r.Method, r.Pattern, w.method, w.pattern)
		}
		if r.OpenAPI == nil || len(r.OpenAPI.Responses) == 0 {
			t.Errorf("route[%d] %s %s is undocumented", i, r.Method, r.Pattern)
		}
	}
}

func multipartForm(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(content)
	}

	for k, v := range fields {
		writer.WriteField(k, v)
	}

	writer.Close()
	return &buf, writer.FormDataContentType()
}
