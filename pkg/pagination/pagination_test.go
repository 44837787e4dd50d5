package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithQuery(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestFromContextDefaults(t *testing.T) {
	p := FromContext(contextWithQuery(""))
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContextCapsLimit(t *testing.T) {
	p := FromContext(contextWithQuery("limit=5000"))
	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContextParsesValues(t *testing.T) {
	p := FromContext(contextWithQuery("limit=10&offset=40"))
	if p.Limit != 10 || p.Offset != 40 {
		t.Errorf("expected {10 40}, got %+v", p)
	}
}

func TestNewPageHasMore(t *testing.T) {
	page := NewPage(nil, 50, 20, 20)
	if !page.HasMore {
		t.Error("expected has_more=true at offset 20 of 50")
	}
	page = NewPage(nil, 50, 20, 40)
	if page.HasMore {
		t.Error("expected has_more=false at offset 40 of 50")
	}
}
