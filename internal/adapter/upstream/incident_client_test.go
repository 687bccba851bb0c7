package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incidra/incidra/internal/domain"
	"github.com/incidra/incidra/internal/ports"
	"github.com/incidra/incidra/internal/token"
	"github.com/incidra/incidra/pkg/apperror"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestFetchIncidents_Success(t *testing.T) {
	tokenService := token.NewJWTService("test-secret", time.Hour)
	claims := &ports.Claims{Subject: uuid.NewString(), UserType: "company"}
	incidents := []domain.Incident{
		{ID: uuid.New(), Description: "Outage", State: domain.IncidentStateOpen, Channel: domain.IncidentChannelPhone, Priority: domain.IncidentPriorityHigh, CreationDate: time.Now().UTC(), UserID: uuid.New(), CompanyID: uuid.New()},
	}

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company-incidents", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(incidents)
	}))
	defer server.Close()

	client := NewIncidentClient(server.URL, 5*time.Second, tokenService, testLogger())
	got, err := client.FetchIncidents(context.Background(), claims)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, incidents[0].ID, got[0].ID)
	assert.Equal(t, domain.IncidentStateOpen, got[0].State)

	// The outbound credential is a fresh mint carrying the caller's
	// identity, not the caller's original token.
	require.True(t, strings.HasPrefix(gotAuth, "Bearer "))
	outbound, err := tokenService.Verify(strings.TrimPrefix(gotAuth, "Bearer "))
	require.NoError(t, err)
	assert.Equal(t, claims.Subject, outbound.Subject)
	assert.Equal(t, claims.UserType, outbound.UserType)
}

func TestFetchIncidents_UpstreamError(t *testing.T) {
	tokenService := token.NewJWTService("test-secret", time.Hour)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "incident store exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewIncidentClient(server.URL, 5*time.Second, tokenService, testLogger())
	_, err := client.FetchIncidents(context.Background(), &ports.Claims{Subject: "u"})

	var upErr *apperror.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Contains(t, upErr.Body, "incident store exploded")
}

func TestFetchIncidents_UpstreamStatusMirrored(t *testing.T) {
	tokenService := token.NewJWTService("test-secret", time.Hour)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewIncidentClient(server.URL, 5*time.Second, tokenService, testLogger())
	_, err := client.FetchIncidents(context.Background(), &ports.Claims{Subject: "u"})

	var upErr *apperror.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusForbidden, upErr.StatusCode)
}

func TestFetchIncidents_ConnectivityError(t *testing.T) {
	tokenService := token.NewJWTService("test-secret", time.Hour)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewIncidentClient(server.URL, time.Second, tokenService, testLogger())
	_, err := client.FetchIncidents(context.Background(), &ports.Claims{Subject: "u"})

	var connErr *apperror.ConnectivityError
	require.ErrorAs(t, err, &connErr)
}

func TestFetchIncidents_UnknownEnumValueRejected(t *testing.T) {
	tokenService := token.NewJWTService("test-secret", time.Hour)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Valid shape, but "pending" is not a known incident state.
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":            uuid.NewString(),
				"description":   "Mystery incident",
				"state":         "pending",
				"channel":       "phone",
				"priority":      "high",
				"creation_date": time.Now().UTC().Format(time.RFC3339),
				"user_id":       uuid.NewString(),
				"company_id":    uuid.NewString(),
			},
		})
	}))
	defer server.Close()

	client := NewIncidentClient(server.URL, 5*time.Second, tokenService, testLogger())
	_, err := client.FetchIncidents(context.Background(), &ports.Claims{Subject: "u"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Contains(t, appErr.Message, "unknown state")
}

func TestFetchIncidents_MalformedBody(t *testing.T) {
	tokenService := token.NewJWTService("test-secret", time.Hour)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewIncidentClient(server.URL, 5*time.Second, tokenService, testLogger())
	_, err := client.FetchIncidents(context.Background(), &ports.Claims{Subject: "u"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}
