package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smallerp/erp-gateway/internal/core/domain"
)

func TestPageHandler_ProjectsHidesFinancialsFromLowestTier(t *testing.T) {
	user := testUser(domain.RoleUser)
	cu, tokens, _ := newAccessorFixture(t, user)
	h := NewPageHandler(cu)

	c := contextWithToken(t, tokens, user)
	if err := h.Projects(c); err != nil {
		t.Fatalf("Projects returned error: %v", err)
	}
	body := c.Response().Writer.(*httptest.ResponseRecorder).Body.String()
	if strings.Contains(body, "financials") {
		t.Fatalf("financial section leaked to the lowest tier: %s", body)
	}
}

func TestPageHandler_ProjectsShowsFinancialsToStaff(t *testing.T) {
	user := testUser(domain.RoleSUser)
	cu, tokens, _ := newAccessorFixture(t, user)
	h := NewPageHandler(cu)

	c := contextWithToken(t, tokens, user)
	if err := h.Projects(c); err != nil {
		t.Fatalf("Projects returned error: %v", err)
	}
	body := c.Response().Writer.(*httptest.ResponseRecorder).Body.String()
	if !strings.Contains(body, "financials") {
		t.Fatalf("staff tier should see the financial section: %s", body)
	}
}

func TestPageHandler_AdminRedirectsDowngradedRole(t *testing.T) {
	// The token says admin but the store record was downgraded afterwards;
	// the page check uses the fresh record.
	user := testUser(domain.RoleAdmin)
	cu, tokens, repo := newAccessorFixture(t, user)
	h := NewPageHandler(cu)

	c := contextWithToken(t, tokens, user)
	downgraded := *user
	downgraded.Role = domain.RoleUser
	repo.user = &downgraded

	if err := h.Admin(c); err != nil {
		t.Fatalf("Admin returned error: %v", err)
	}
	rec := c.Response().Writer.(*httptest.ResponseRecorder)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/en/" {
		t.Fatalf("expected redirect to /en/, got %q", loc)
	}
}

func TestPageHandler_AdminRenders(t *testing.T) {
	user := testUser(domain.RoleAdmin)
	cu, tokens, _ := newAccessorFixture(t, user)
	h := NewPageHandler(cu)

	c := contextWithToken(t, tokens, user)
	if err := h.Admin(c); err != nil {
		t.Fatalf("Admin returned error: %v", err)
	}
	rec := c.Response().Writer.(*httptest.ResponseRecorder)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "user-admin") {
		t.Fatalf("admin page did not render: %s", rec.Body.String())
	}
}
