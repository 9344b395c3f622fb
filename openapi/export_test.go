package openapi

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/route"
	"github.com/kbukum/routekit/schema"
)

func check(any) (any, error) { return nil, nil }

func sampleRoutes() route.Map {
	return route.Map{
		"users": route.Map{
			"get": route.New(route.GET, "/orgs/:org/users/:id",
				route.WithTags("users"),
				route.WithSummary("Get a user"),
				route.WithResponse(200, "the user", check),
				route.WithResponse(404, "not found", nil),
			),
			"create": route.New(route.POST, "orgs/:org/users",
				route.WithTags("users", "admin"),
				route.WithOperationID("createUser"),
				route.WithBody(check),
				route.WithResponse(201, "created", nil),
			),
			"replace": route.New(route.PUT, "/orgs/:org/users/:id?notify=1",
				route.WithBody(schema.None),
			),
		},
	}
}

func TestExport(t *testing.T) {
	doc, err := Export(sampleRoutes(), Info{
		Title:   "Users API",
		Version: "1.2.0",
		Servers: []string{"https://api.example.com"},
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("exported document is invalid: %v", err)
	}

	item := doc.Paths["/orgs/{org}/users/{id}"]
	if item == nil {
		t.Fatalf("expected converted path, got %v", doc.Paths)
	}
	get := item.Get
	if get == nil || get.OperationID != "users.get" || get.Summary != "Get a user" {
		t.Fatalf("unexpected GET operation %+v", get)
	}
	if len(get.Parameters) != 2 || get.Parameters[0].Value.Name != "org" || get.Parameters[1].Value.In != "path" {
		t.Errorf("unexpected parameters %+v", get.Parameters)
	}
	if get.Responses["200"] == nil || get.Responses["404"] == nil {
		t.Errorf("expected documented responses, got %v", get.Responses)
	}
	if get.Responses["200"].Value.Content.Get("application/json") == nil {
		t.Error("expected JSON content for a response with a schema")
	}
	if get.Responses["404"].Value.Content != nil {
		t.Error("expected no content for a description-only response")
	}

	put := item.Put
	if put == nil || put.RequestBody != nil {
		t.Errorf("expected PUT on the same path without a documented body, got %+v", put)
	}
	if put.Responses["default"] == nil {
		t.Error("expected default response when none are declared")
	}

	create := doc.Paths["/orgs/{org}/users"].Post
	if create == nil || create.OperationID != "createUser" || create.RequestBody == nil {
		t.Fatalf("unexpected POST operation %+v", create)
	}

	if len(doc.Tags) != 2 || doc.Tags[0].Name != "admin" || doc.Tags[1].Name != "users" {
		t.Errorf("expected sorted unique tags, got %v", doc.Tags)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "https://api.example.com" {
		t.Errorf("unexpected servers %v", doc.Servers)
	}
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name   string
		routes route.Map
		info   Info
	}{
		{"missing title", sampleRoutes(), Info{Version: "1"}},
		{"invalid definition", route.Map{"x": route.New(route.GET, "")}, Info{Title: "t", Version: "1"}},
		{"duplicate operation", route.Map{
			"a": route.New(route.GET, "/x/:id"),
			"b": route.New(route.GET, "x/:key"),
			"c": route.New(route.GET, "/x/:id"),
		}, Info{Title: "t", Version: "1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Export(tc.routes, tc.info); !errors.HasCode(err, errors.ErrCodeConfiguration) {
				t.Errorf("expected CONFIGURATION_ERROR, got %v", err)
			}
		})
	}
}

func TestTemplatePath(t *testing.T) {
	tests := map[string]string{
		"/users/:id":                         "/users/{id}",
		"users":                              "/users",
		"/users/:id#top":                     "/users/{id}",
		"https://api.example.com/v1/:tenant": "/v1/{tenant}",
		"/users/:identity/:id":               "/users/{identity}/{id}",
	}
	for in, want := range tests {
		if got := templatePath(in); got != want {
			t.Errorf("templatePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRender(t *testing.T) {
	doc, err := Export(sampleRoutes(), Info{Title: "Users API", Version: "1.2.0"})
	if err != nil {
		t.Fatal(err)
	}

	data, err := JSON(doc)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["openapi"] != Version {
		t.Errorf("expected openapi %s, got %v", Version, decoded["openapi"])
	}

	out, err := YAML(doc)
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}
	if strings.Contains(string(out), "{\"") {
		t.Errorf("expected block style YAML, got:\n%s", out)
	}
	var parsed struct {
		OpenAPI string                               `yaml:"openapi"`
		Paths   map[string]map[string]map[string]any `yaml:"paths"`
	}
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if parsed.OpenAPI != Version {
		t.Errorf("expected openapi %s, got %q", Version, parsed.OpenAPI)
	}
	responses, _ := parsed.Paths["/orgs/{org}/users/{id}"]["get"]["responses"].(map[string]any)
	if _, ok := responses["200"]; !ok {
		t.Errorf("expected status keys to stay strings, got %v", responses)
	}
}
