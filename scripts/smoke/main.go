package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Drives the core slot-assignment flow against a running instance:
// register a user, add a vehicle, open a request, then approve it as
// admin and verify the slot binding. Intended for local and staging
// smoke checks, not CI.

type session struct {
	client   *http.Client
	base     string
	apiBase  string
	ts       string
	userTok  string
	adminTok string

	vehicleID string
	requestID string
	slotID    string
}

type step struct {
	name string
	run  func(*session) error
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	var (
		base          string
		adminEmail    string
		adminPassword string
		timeout       time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&adminEmail, "admin-email", "admin@parkgrid.local", "Admin login email")
	flag.StringVar(&adminPassword, "admin-password", "", "Admin login password")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	if adminPassword == "" {
		log.Fatal("missing -admin-password")
	}

	s := &session{
		client:  &http.Client{Timeout: timeout},
		base:    strings.TrimRight(base, "/"),
		apiBase: strings.TrimRight(base, "/") + "/api/v1",
		ts:      fmt.Sprintf("%d", time.Now().Unix()),
	}

	steps := []step{
		{"health", func(s *session) error {
			status, _, err := s.do(http.MethodGet, s.base+"/health", "", nil)
			if err != nil {
				return err
			}
			return expectStatus(status, http.StatusOK)
		}},
		{"register user", func(s *session) error {
			status, _, err := s.do(http.MethodPost, s.apiBase+"/auth/register", "", map[string]string{
				"email":     fmt.Sprintf("smoke-%s@example.com", s.ts),
				"password":  "smoke-pass-1",
				"full_name": "Smoke Tester",
			})
			if err != nil {
				return err
			}
			return expectStatus(status, http.StatusCreated)
		}},
		{"login user", func(s *session) error {
			tok, err := s.login(fmt.Sprintf("smoke-%s@example.com", s.ts), "smoke-pass-1")
			if err != nil {
				return err
			}
			s.userTok = tok
			return nil
		}},
		{"login admin", func(s *session) error {
			tok, err := s.login(adminEmail, adminPassword)
			if err != nil {
				return err
			}
			s.adminTok = tok
			return nil
		}},
		{"create vehicle", func(s *session) error {
			status, data, err := s.do(http.MethodPost, s.apiBase+"/vehicles", s.userTok, map[string]string{
				"plate_number": "SMK-" + s.ts[len(s.ts)-6:],
				"vehicle_type": "CAR",
				"size":         "MEDIUM",
			})
			if err != nil {
				return err
			}
			if err := expectStatus(status, http.StatusCreated); err != nil {
				return err
			}
			s.vehicleID, err = extractID(data)
			return err
		}},
		{"create slot", func(s *session) error {
			status, data, err := s.do(http.MethodPost, s.apiBase+"/parking/slots", s.adminTok, map[string]string{
				"slot_number":  "SMK-" + s.ts[len(s.ts)-6:],
				"vehicle_type": "CAR",
				"size":         "MEDIUM",
				"location":     "NORTH",
			})
			if err != nil {
				return err
			}
			if err := expectStatus(status, http.StatusCreated); err != nil {
				return err
			}
			s.slotID, err = extractID(data)
			return err
		}},
		{"open request", func(s *session) error {
			status, data, err := s.do(http.MethodPost, s.apiBase+"/parking/requests", s.userTok, map[string]string{
				"vehicle_id": s.vehicleID,
			})
			if err != nil {
				return err
			}
			if err := expectStatus(status, http.StatusCreated); err != nil {
				return err
			}
			s.requestID, err = extractID(data)
			return err
		}},
		{"approve request", func(s *session) error {
			status, _, err := s.do(http.MethodPut, s.apiBase+"/parking/requests/"+s.requestID+"/status", s.adminTok, map[string]string{
				"status":  "APPROVED",
				"slot_id": s.slotID,
			})
			if err != nil {
				return err
			}
			return expectStatus(status, http.StatusOK)
		}},
		{"verify binding", func(s *session) error {
			status, data, err := s.do(http.MethodGet, s.apiBase+"/parking/requests/"+s.requestID, s.userTok, nil)
			if err != nil {
				return err
			}
			if err := expectStatus(status, http.StatusOK); err != nil {
				return err
			}
			var item struct {
				Status string  `json:"status"`
				SlotID *string `json:"slot_id"`
			}
			if err := json.Unmarshal(data, &item); err != nil {
				return err
			}
			if item.Status != "APPROVED" {
				return fmt.Errorf("expected APPROVED, got %s", item.Status)
			}
			if item.SlotID == nil || *item.SlotID != s.slotID {
				return fmt.Errorf("request not bound to slot %s", s.slotID)
			}
			return nil
		}},
		{"occupancy report", func(s *session) error {
			status, _, err := s.do(http.MethodGet, s.apiBase+"/parking/reports/occupancy", s.adminTok, nil)
			if err != nil {
				return err
			}
			return expectStatus(status, http.StatusOK)
		}},
	}

	failed := 0
	for _, st := range steps {
		start := time.Now()
		err := st.run(s)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %-18s %v\n", st.name, err)
			continue
		}
		fmt.Printf("ok    %-18s %s\n", st.name, time.Since(start).Round(time.Millisecond))
	}

	fmt.Printf("%d/%d steps passed\n", len(steps)-failed, len(steps))
	if failed > 0 {
		os.Exit(1)
	}
}

func (s *session) login(email, password string) (string, error) {
	status, data, err := s.do(http.MethodPost, s.apiBase+"/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if err := expectStatus(status, http.StatusOK); err != nil {
		return "", err
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("empty access token for %s", email)
	}
	return resp.AccessToken, nil
}

func (s *session) do(method, url, token string, payload interface{}) (int, json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	if len(raw) == 0 {
		return resp.StatusCode, nil, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return resp.StatusCode, nil, nil
	}
	if env.Error != nil {
		return resp.StatusCode, env.Data, fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
	}
	return resp.StatusCode, env.Data, nil
}

func expectStatus(got, want int) error {
	if got != want {
		return fmt.Errorf("expected status %d, got %d", want, got)
	}
	return nil
}

func extractID(data json.RawMessage) (string, error) {
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", err
	}
	if obj.ID == "" {
		return "", fmt.Errorf("response missing id")
	}
	return obj.ID, nil
}
