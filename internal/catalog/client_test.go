package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, 0, staticToken(token)), srv
}

func TestListItemsEndpoints(t *testing.T) {
	cases := []struct {
		view model.View
		path string
	}{
		{model.ViewToday, "/items/today"},
		{model.ViewLast3Days, "/items/last3days"},
		{model.ViewSaved, "/items/saved"},
		{model.View("anything"), "/items"},
	}

	for _, tc := range cases {
		t.Run(string(tc.view), func(t *testing.T) {
			var gotPath string
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`[]`))
			}, "")

			if _, err := c.ListItems(context.Background(), tc.view, ""); err != nil {
				t.Fatalf("ListItems: %v", err)
			}
			if gotPath != tc.path {
				t.Errorf("path = %q, want %q", gotPath, tc.path)
			}
		})
	}
}

func TestListItemsQueryParam(t *testing.T) {
	var gotQuery string
	var hasQ bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasQ = r.URL.Query()["q"]
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[]`))
	}, "")

	if _, err := c.ListItems(context.Background(), model.ViewToday, "montblanc 149"); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "montblanc 149" {
		t.Errorf("q = %q", gotQuery)
	}

	// Empty query means no q parameter at all.
	if _, err := c.ListItems(context.Background(), model.ViewToday, ""); err != nil {
		t.Fatal(err)
	}
	if hasQ {
		t.Error("empty query must not send a q parameter")
	}
}

func TestBearerHeader(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "tok-123")

	if _, err := c.ListItems(context.Background(), model.ViewToday, ""); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestNoBearerHeaderWhenSignedOut(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "")

	if _, err := c.ListItems(context.Background(), model.ViewToday, ""); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("unexpected Authorization header %q", gotAuth)
	}
}

func TestListItemsDecodes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","name":"Lamy 2000","price":"$200","url":"https://example.com/p1","saved":true}]`))
	}, "")

	items, err := c.ListItems(context.Background(), model.ViewToday, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "p1" || !items[0].Saved {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestListItemsProtocolError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, "")

	_, err := c.ListItems(context.Background(), model.ViewToday, "")
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("want ProtocolError, got %T: %v", err, err)
	}
	if pe.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", pe.Status)
	}
}

func TestListItemsFormatError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}, "")

	_, err := c.ListItems(context.Background(), model.ViewToday, "")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("want FormatError, got %T: %v", err, err)
	}
}

func TestListItemsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(srv.URL, time.Second, 0, staticToken(""))
	srv.Close() // nothing listening anymore

	_, err := c.ListItems(context.Background(), model.ViewToday, "")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want TransportError, got %T: %v", err, err)
	}
}

func TestFetchStats(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/stats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"today":2,"last3days":7,"saved":4}`))
	}, "")

	counts, err := c.FetchStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if counts.Today != 2 || counts.Last3Days != 7 || counts.Saved != 4 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestSetItemFlag(t *testing.T) {
	var gotMethod, gotPath, gotFlag string
	var gotBody model.Item
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotFlag = r.URL.Query().Get("saved")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(gotBody)
	}, "tok")

	item := model.Item{ID: "p9", Name: "Visconti HS", Saved: true}
	updated, err := c.SetItemFlag(context.Background(), item, "saved", true)
	if err != nil {
		t.Fatal(err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %q", gotMethod)
	}
	if gotPath != "/items/p9" {
		t.Errorf("path = %q", gotPath)
	}
	if gotFlag != "true" {
		t.Errorf("saved param = %q", gotFlag)
	}
	if !gotBody.Saved || gotBody.ID != "p9" {
		t.Errorf("body should carry the full item with the flag applied: %+v", gotBody)
	}
	if !updated.Saved {
		t.Errorf("updated = %+v", updated)
	}
}

func TestSetItemFlagEmptyResponseEchoesRequest(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "")

	item := model.Item{ID: "p2", Viewed: true}
	updated, err := c.SetItemFlag(context.Background(), item, "viewed", true)
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != "p2" || !updated.Viewed {
		t.Errorf("empty body should echo the request item: %+v", updated)
	}
}

func TestLogin(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["username"] != "collector" || req["password"] != "hunter2" {
			http.Error(w, "nope", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"token":"fresh-token"}`))
	}, "")

	tok, err := c.Login(context.Background(), "collector", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if tok != "fresh-token" {
		t.Errorf("token = %q", tok)
	}

	if _, err := c.Login(context.Background(), "collector", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("want ErrBadCredentials, got %v", err)
	}
}

func TestChangeCredentials(t *testing.T) {
	var gotBody map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/change" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}, "tok")

	if err := c.ChangeCredentials(context.Background(), "newname", "newpass"); err != nil {
		t.Fatal(err)
	}
	if gotBody["newUsername"] != "newname" || gotBody["newPassword"] != "newpass" {
		t.Errorf("body = %v", gotBody)
	}
}
