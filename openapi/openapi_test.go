package openapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/veilhq/turnstile"
)

func noopHandler() turnstile.Handler {
	return turnstile.HandlerFunc(func(_ context.Context, _ *turnstile.Request) (*turnstile.Response, error) {
		return turnstile.Text(http.StatusOK, "ok"), nil
	})
}

func newDocRouter(t *testing.T) *turnstile.Router {
	t.Helper()
	rt := turnstile.New(turnstile.WithGlobalAuthorization(turnstile.GlobalAuthorization{
		Scheme:         turnstile.SchemeBearer,
		Enabled:        true,
		RequiredClaims: turnstile.NewRequiredClaims("read"),
	}))
	rt.MustRegister(turnstile.GET, "/health", noopHandler(),
		turnstile.WithPolicy(turnstile.AllowAnonymous()),
		turnstile.WithSummary("Health check"),
	)
	rt.MustRegister(turnstile.GET, "/users/{id}", noopHandler(),
		turnstile.WithPolicy(turnstile.RequireClaims("admin")),
		turnstile.WithRouteKeys("id"),
		turnstile.WithOperationID("getUser"),
		turnstile.WithResponse(200, "The user"),
		turnstile.WithResponse(404, "Unknown user"),
	)
	rt.MustRegister(turnstile.POST, "/users", noopHandler(),
		turnstile.WithRequestBody(),
		turnstile.WithTags("users"),
	)
	return rt
}

func TestBuild_Paths(t *testing.T) {
	doc := Build(newDocRouter(t), Info{Title: "Test API", Version: "1.0.0"})

	if doc.OpenAPI != "3.0.3" {
		t.Errorf("openapi version = %q", doc.OpenAPI)
	}
	if len(doc.Paths) != 3 {
		t.Fatalf("paths = %d, want 3", len(doc.Paths))
	}

	users := doc.Paths["/users/{id}"]
	if users == nil || users.Get == nil {
		t.Fatal("expected GET /users/{id} operation")
	}
	if users.Get.OperationID != "getUser" {
		t.Errorf("operationId = %q", users.Get.OperationID)
	}
	if len(users.Get.Parameters) != 1 {
		t.Fatalf("parameters = %d, want 1", len(users.Get.Parameters))
	}
	p := users.Get.Parameters[0]
	if p.Name != "id" || p.In != "path" || !p.Required || p.Schema.Type != "string" {
		t.Errorf("unexpected parameter: %+v", p)
	}
	if len(users.Get.Responses) != 2 {
		t.Errorf("responses = %d, want 2", len(users.Get.Responses))
	}

	if post := doc.Paths["/users"]; post == nil || post.Post == nil {
		t.Fatal("expected POST /users operation")
	}
}

func TestBuild_Security(t *testing.T) {
	doc := Build(newDocRouter(t), Info{Title: "Test API", Version: "1.0.0"})

	// Document-level security mirrors the enabled global scheme.
	if len(doc.Security) != 1 {
		t.Fatalf("document security = %d requirements, want 1", len(doc.Security))
	}
	if scopes, ok := doc.Security[0]["BearerAuth"]; !ok || len(scopes) != 1 || scopes[0] != "read" {
		t.Errorf("unexpected document security: %v", doc.Security)
	}

	// Anonymous endpoint overrides with an empty requirement list.
	health := doc.Paths["/health"].Get
	if health.Security == nil || len(*health.Security) != 0 {
		t.Errorf("expected explicit empty security for anonymous endpoint, got %v", health.Security)
	}

	// Claim-protected endpoint lists its claims as scopes.
	users := doc.Paths["/users/{id}"].Get
	if users.Security == nil || len(*users.Security) != 1 {
		t.Fatalf("expected operation security, got %v", users.Security)
	}
	if scopes := (*users.Security)[0]["BearerAuth"]; len(scopes) != 1 || scopes[0] != "admin" {
		t.Errorf("unexpected operation security: %v", *users.Security)
	}

	// Inheriting endpoint omits the field, inheriting document security.
	if post := doc.Paths["/users"].Post; post.Security != nil {
		t.Errorf("expected inherited security (field omitted), got %v", *post.Security)
	}

	if doc.Components == nil {
		t.Fatal("expected security schemes component")
	}
	scheme, ok := doc.Components.SecuritySchemes["BearerAuth"]
	if !ok || scheme.Type != "http" || scheme.Scheme != "bearer" {
		t.Errorf("unexpected scheme object: %+v", scheme)
	}
}

func TestBuild_NoGlobal(t *testing.T) {
	rt := turnstile.New()
	rt.MustRegister(turnstile.GET, "/public", noopHandler())

	doc := Build(rt, Info{Title: "t", Version: "v"})
	if len(doc.Security) != 0 {
		t.Errorf("expected no document security, got %v", doc.Security)
	}
	if doc.Components != nil {
		t.Error("expected no components when nothing is secured")
	}
}

func TestBuild_APIKeyScheme(t *testing.T) {
	rt := turnstile.New(turnstile.WithGlobalAuthorization(turnstile.GlobalAuthorization{
		Scheme:  turnstile.SchemeAPIKey,
		Enabled: true,
	}))
	rt.MustRegister(turnstile.GET, "/data", noopHandler())

	doc := Build(rt, Info{Title: "t", Version: "v"})
	scheme, ok := doc.Components.SecuritySchemes["ApiKeyAuth"]
	if !ok || scheme.Type != "apiKey" || scheme.In != "header" || scheme.Name != "X-API-Key" {
		t.Errorf("unexpected scheme object: %+v", scheme)
	}
}

func TestDocument_JSONAndYAML(t *testing.T) {
	doc := Build(newDocRouter(t), Info{Title: "Test API", Version: "1.0.0"})

	jsonBody, err := doc.JSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(jsonBody, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["openapi"] != "3.0.3" {
		t.Errorf("decoded openapi = %v", decoded["openapi"])
	}

	yamlBody, err := doc.YAML()
	if err != nil {
		t.Fatal(err)
	}
	var decodedYAML map[string]any
	if err := yaml.Unmarshal(yamlBody, &decodedYAML); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if !strings.Contains(string(yamlBody), "operationId: getUser") {
		t.Error("expected yaml tags to preserve operationId casing")
	}
}

func TestHandler_ServesBothFormats(t *testing.T) {
	h := Handler(Build(newDocRouter(t), Info{Title: "Test API", Version: "1.0.0"}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("json: status %d content-type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/yaml" {
		t.Fatalf("yaml: status %d content-type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "Test API") {
		t.Error("expected document title in yaml body")
	}
}
