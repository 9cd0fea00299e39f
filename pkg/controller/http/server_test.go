package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpctrl "github.com/meetingtax/meetingtax/pkg/controller/http"
	"github.com/meetingtax/meetingtax/pkg/domain/interfaces"
	"github.com/meetingtax/meetingtax/pkg/domain/model"
	"github.com/meetingtax/meetingtax/pkg/domain/types"
	"github.com/meetingtax/meetingtax/pkg/repository/memory"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

type testEnv struct {
	srv  *httptest.Server
	repo interfaces.Repository

	engineering types.DepartmentID
	engineer    types.JobRoleID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()

	server, err := httpctrl.New(usecase.New(repo))
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)

	env := &testEnv{srv: srv, repo: repo}

	dept, err := repo.Department().Create(ctx, &model.Department{
		ID: types.NewDepartmentID(), Name: "Engineering", Slug: "engineering",
	})
	if err != nil {
		t.Fatalf("failed to seed department: %v", err)
	}
	env.engineering = dept.ID

	role, err := repo.JobRole().Create(ctx, &model.JobRole{
		ID: types.NewJobRoleID(), Name: "Engineer", Slug: "engineer",
	})
	if err != nil {
		t.Fatalf("failed to seed role: %v", err)
	}
	env.engineer = role.ID

	if _, err := repo.Rate().Create(ctx, &model.HourlyRate{
		ID: types.NewRateID(), RoleID: role.ID, RateCents: 15000,
	}); err != nil {
		t.Fatalf("failed to seed rate: %v", err)
	}

	return env
}

// call sends a JSON request and decodes the JSON response into out
// when out is non-nil.
func (env *testEnv) call(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, env.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

type sessionBody struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func (env *testEnv) signUp(t *testing.T, name, email string) sessionBody {
	t.Helper()
	var session sessionBody
	status := env.call(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": "p4ssw0rd!",
	}, &session)
	if status != http.StatusCreated {
		t.Fatalf("signup returned status %d", status)
	}
	return session
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	var body map[string]string
	if status := env.call(t, http.MethodGet, "/health", "", nil, &body); status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	session := env.signUp(t, "Alice", "alice@example.com")
	if session.User.Role != "Admin" {
		t.Errorf("first user should be Admin, got %s", session.User.Role)
	}

	t.Run("me with bearer token", func(t *testing.T) {
		var me struct {
			Email string `json:"email"`
		}
		if status := env.call(t, http.MethodGet, "/api/auth/me", session.Token, nil, &me); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if me.Email != "alice@example.com" {
			t.Errorf("unexpected email: %s", me.Email)
		}
	})

	t.Run("me without token", func(t *testing.T) {
		if status := env.call(t, http.MethodGet, "/api/auth/me", "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", status)
		}
	})

	t.Run("me with bogus token", func(t *testing.T) {
		if status := env.call(t, http.MethodGet, "/api/auth/me", "deadbeef", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", status)
		}
	})

	t.Run("duplicate signup conflicts", func(t *testing.T) {
		status := env.call(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"name": "Alice Again", "email": "alice@example.com", "password": "p4ssw0rd!",
		}, nil)
		if status != http.StatusConflict {
			t.Errorf("expected 409, got %d", status)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/api/auth/signin", bytes.NewBufferString("{not json"))
		if err != nil {
			t.Fatal(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("signout revokes the token", func(t *testing.T) {
		if status := env.call(t, http.MethodPost, "/api/auth/signout", session.Token, nil, nil); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if status := env.call(t, http.MethodGet, "/api/auth/me", session.Token, nil, nil); status != http.StatusUnauthorized {
			t.Errorf("expected 401 after signout, got %d", status)
		}
	})
}

func TestMeetingEndpoints(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signUp(t, "Alice", "alice@example.com")
	employee := env.signUp(t, "Bob", "bob@example.com")

	meetingBody := func(name string) map[string]any {
		return map[string]any{
			"name":            name,
			"startTime":       time.Now().Add(time.Hour).UnixMilli(),
			"durationMinutes": 60,
			"attendees": []map[string]any{
				{"roleId": env.engineer.String(), "departmentId": env.engineering.String(), "count": 2},
			},
		}
	}

	var created struct {
		ID        string `json:"id"`
		CostCents int64  `json:"costCents"`
		CreatedBy string `json:"createdBy"`
	}
	status := env.call(t, http.MethodPost, "/api/meetings", employee.Token, meetingBody("planning"), &created)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if created.CostCents != 30000 {
		t.Errorf("expected cost 30000, got %d", created.CostCents)
	}
	if created.CreatedBy != employee.User.ID {
		t.Errorf("creator mismatch: %s", created.CreatedBy)
	}

	t.Run("creator lists it", func(t *testing.T) {
		var list []json.RawMessage
		if status := env.call(t, http.MethodGet, "/api/meetings", employee.Token, nil, &list); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(list) != 1 {
			t.Errorf("expected 1 meeting, got %d", len(list))
		}
	})

	t.Run("time filter excludes it", func(t *testing.T) {
		from := time.Now().Add(2 * time.Hour).UnixMilli()
		path := fmt.Sprintf("/api/meetings?from=%d", from)
		var list []json.RawMessage
		if status := env.call(t, http.MethodGet, path, employee.Token, nil, &list); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(list) != 0 {
			t.Errorf("expected empty list, got %d", len(list))
		}
	})

	t.Run("bad time bound is 400", func(t *testing.T) {
		if status := env.call(t, http.MethodGet, "/api/meetings?from=yesterday", employee.Token, nil, nil); status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	t.Run("unknown meeting is 404", func(t *testing.T) {
		path := fmt.Sprintf("/api/meetings/%s", types.NewMeetingID())
		if status := env.call(t, http.MethodGet, path, admin.Token, nil, nil); status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})

	t.Run("invalid attendee role is 400", func(t *testing.T) {
		body := meetingBody("broken")
		body["attendees"] = []map[string]any{
			{"roleId": types.NewJobRoleID().String(), "departmentId": env.engineering.String(), "count": 1},
		}
		if status := env.call(t, http.MethodPost, "/api/meetings", employee.Token, body, nil); status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	t.Run("cancel returns savings", func(t *testing.T) {
		path := "/api/meetings/" + created.ID
		var resp struct {
			Success    bool  `json:"success"`
			SavedCents int64 `json:"savedCents"`
		}
		if status := env.call(t, http.MethodDelete, path+"?cancelOnly=true", employee.Token, nil, &resp); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if !resp.Success || resp.SavedCents != 30000 {
			t.Errorf("unexpected cancel response: %+v", resp)
		}
		if status := env.call(t, http.MethodGet, path, employee.Token, nil, nil); status != http.StatusNotFound {
			t.Errorf("expected 404 after cancel, got %d", status)
		}
	})
}

func TestAdminGatedEndpoints(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signUp(t, "Alice", "alice@example.com")
	employee := env.signUp(t, "Bob", "bob@example.com")

	t.Run("employee cannot list users", func(t *testing.T) {
		if status := env.call(t, http.MethodGet, "/api/users", employee.Token, nil, nil); status != http.StatusForbidden {
			t.Errorf("expected 403, got %d", status)
		}
	})

	t.Run("admin lists users with department names", func(t *testing.T) {
		var users []struct {
			Email          string `json:"email"`
			DepartmentName string `json:"departmentName"`
		}
		if status := env.call(t, http.MethodGet, "/api/users", admin.Token, nil, &users); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(users) != 2 {
			t.Errorf("expected 2 users, got %d", len(users))
		}
	})

	t.Run("employee cannot create departments", func(t *testing.T) {
		status := env.call(t, http.MethodPost, "/api/departments", employee.Token, map[string]string{"name": "Finance"}, nil)
		if status != http.StatusForbidden {
			t.Errorf("expected 403, got %d", status)
		}
	})

	t.Run("admin creates a department", func(t *testing.T) {
		var dept struct {
			Slug string `json:"slug"`
		}
		status := env.call(t, http.MethodPost, "/api/departments", admin.Token, map[string]string{"name": "Finance"}, &dept)
		if status != http.StatusCreated {
			t.Fatalf("expected 201, got %d", status)
		}
		if dept.Slug != "finance" {
			t.Errorf("unexpected slug: %s", dept.Slug)
		}
	})

	t.Run("admin sets a rate", func(t *testing.T) {
		status := env.call(t, http.MethodPut, "/api/rates", admin.Token, map[string]any{
			"roleId": env.engineer.String(), "departmentId": env.engineering.String(), "rateCents": 20000,
		}, nil)
		if status != http.StatusOK {
			t.Errorf("expected 200, got %d", status)
		}
	})

	t.Run("admin sets the threshold", func(t *testing.T) {
		status := env.call(t, http.MethodPut, "/api/settings/cost_threshold", admin.Token, map[string]string{"value": "100000"}, nil)
		if status != http.StatusOK {
			t.Errorf("expected 200, got %d", status)
		}
	})
}

func TestCostReportEndpoint(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signUp(t, "Alice", "alice@example.com")

	ctx := context.Background()
	if _, err := env.repo.Meeting().Create(ctx, &model.Meeting{
		ID:              types.NewMeetingID(),
		Name:            "retro",
		DurationMinutes: 60,
		StartTime:       time.Now().Add(-time.Hour).UnixMilli(),
		CreatedBy:       types.UserID(admin.User.ID),
		Attendees: []model.Attendee{
			{RoleID: env.engineer, DepartmentID: env.engineering, Count: 2},
		},
	}); err != nil {
		t.Fatalf("failed to seed meeting: %v", err)
	}

	var report struct {
		Period       string `json:"period"`
		TotalCents   int64  `json:"totalCents"`
		MeetingCount int64  `json:"meetingCount"`
	}
	if status := env.call(t, http.MethodGet, "/api/reports/costs?period=week", admin.Token, nil, &report); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if report.Period != "week" {
		t.Errorf("unexpected period: %s", report.Period)
	}
	if report.MeetingCount != 1 || report.TotalCents != 30000 {
		t.Errorf("unexpected report: %+v", report)
	}

	t.Run("invalid period", func(t *testing.T) {
		status := env.call(t, http.MethodGet, "/api/reports/costs?period=quarter", admin.Token, nil, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})
}
