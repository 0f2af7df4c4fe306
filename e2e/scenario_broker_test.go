package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// testBrokerSuite exercises a running broker end to end over HTTP:
// register, login, token issuance with a bearer session, and the presence
// notification endpoint.
type testBrokerSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

func TestBrokerSuite(t *testing.T) {
	suite.Run(t, &testBrokerSuite{})
}

func (s *testBrokerSuite) SetupSuite() {
	cfg, err := LoadConfig()
	s.Require().NoError(err)
	if cfg.BrokerAddr == "" {
		s.T().Skip("BROKER_ADDR not set, skipping broker e2e suite")
	}
	s.Config = cfg
	s.client = &http.Client{Timeout: time.Duration(cfg.HTTPTimeout) * time.Second}
}

func (s *testBrokerSuite) postJSON(path string, body any) (*http.Response, []byte) {
	data, err := json.Marshal(body)
	s.Require().NoError(err)
	resp, err := s.client.Post(s.Config.BrokerAddr+path, "application/json", bytes.NewReader(data))
	s.Require().NoError(err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	s.Require().NoError(err)
	return resp, buf.Bytes()
}

func (s *testBrokerSuite) TestFullSessionFlow() {
	email := fmt.Sprintf("e2e-%s@example.com", uuid.New().String()[:8])
	var sessionToken, userID string

	s.Run("Step 1: Register a throwaway account", func() {
		resp, body := s.postJSON("/register", map[string]string{
			"name":     "E2E Probe",
			"email":    email,
			"password": s.Config.UserPassword,
		})
		s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

		var out struct {
			Token  string `json:"token"`
			UserID string `json:"userId"`
		}
		s.Require().NoError(json.Unmarshal(body, &out))
		s.Require().NotEmpty(out.Token)
		s.Require().NotEmpty(out.UserID)
		sessionToken = out.Token
		userID = out.UserID
	})

	s.Run("Step 2: Login with the same credentials", func() {
		resp, body := s.postJSON("/login", map[string]string{
			"email":    email,
			"password": s.Config.UserPassword,
		})
		s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	})

	s.Run("Step 3: Token endpoint binds the session identity", func() {
		req, err := http.NewRequest(http.MethodGet, s.Config.BrokerAddr+"/token?clientId=impostor", nil)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+sessionToken)

		resp, err := s.client.Do(req)
		s.Require().NoError(err)
		defer resp.Body.Close()
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var fields struct {
			ClientID string `json:"clientId"`
		}
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&fields))
		s.Require().Equal(userID, fields.ClientID)
	})

	s.Run("Step 4: Presence notification is accepted", func() {
		resp, body := s.postJSON("/notify-connection", map[string]string{
			"userId":    userID,
			"userName":  "E2E Probe",
			"userEmail": email,
		})
		s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
		s.Require().JSONEq(`{"success":true}`, string(body))
	})

	s.Run("Step 5: Online roster lists the user", func() {
		resp, err := s.client.Get(s.Config.BrokerAddr + "/status")
		s.Require().NoError(err)
		defer resp.Body.Close()
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var roster []struct {
			UserID   string `json:"id"`
			IsOnline bool   `json:"is_online"`
		}
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&roster))

		found := false
		for _, entry := range roster {
			if entry.UserID == userID {
				found = entry.IsOnline
			}
		}
		s.Require().True(found, "registered user missing from the online roster")
	})
}
