package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estateline/estateline/internal/entity"
)

func TestHTTPForwarderRecordPersonal(t *testing.T) {
	var got struct {
		path      string
		requestID string
		body      map[string]string
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.requestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	forwarder := NewHTTPForwarder(server.URL, zerolog.Nop())
	err := forwarder.RecordPersonal("req-1", entity.PersonalMessage{
		Sender: "alice", Receiver: "bob", Content: "hi", Timestamp: "t1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/send_personal_message", got.path)
	assert.Equal(t, "req-1", got.requestID)
	assert.Equal(t, map[string]string{
		"sender": "alice", "receiver": "bob", "content": "hi", "timestamp": "t1",
	}, got.body)
}

func TestHTTPForwarderRefusedMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"code": 404, "error": `receiver "ghost" does not exist`})
	}))
	defer server.Close()

	forwarder := NewHTTPForwarder(server.URL, zerolog.Nop())
	err := forwarder.RecordPersonal("req-1", entity.PersonalMessage{Sender: "alice", Receiver: "ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "ghost")
}

func TestHTTPForwarderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	forwarder := NewHTTPForwarder(server.URL, zerolog.Nop())
	err := forwarder.RecordPersonal("req-1", entity.PersonalMessage{Sender: "alice", Receiver: "bob"})
	assert.Error(t, err)
}

type recordingForwarder struct {
	ids  []string
	msgs []entity.PersonalMessage
	err  error
}

func (f *recordingForwarder) RecordPersonal(id string, msg entity.PersonalMessage) error {
	f.ids = append(f.ids, id)
	f.msgs = append(f.msgs, msg)
	return f.err
}

func TestRemoteMessageServiceForwards(t *testing.T) {
	forwarder := &recordingForwarder{}
	svc := NewRemoteMessageService(forwarder, zerolog.Nop())

	confirmation, err := svc.SendPersonal("alice", "bob", "hi", "t1")
	require.NoError(t, err)
	assert.Equal(t, `message sent from "alice" to "bob"`, confirmation)

	require.Len(t, forwarder.msgs, 1)
	assert.Equal(t, "alice", forwarder.msgs[0].Sender)
	assert.NotEmpty(t, forwarder.ids[0], "every forward carries a request id")
}

func TestRemoteMessageServiceRelayOnlyOperations(t *testing.T) {
	svc := NewRemoteMessageService(&recordingForwarder{}, zerolog.Nop())

	_, err := svc.SendGroup("alice", "plumbers", "hi", "t1")
	assert.ErrorIs(t, err, ErrRelayOnly)

	_, err = svc.PersonalHistory("alice", "bob")
	assert.ErrorIs(t, err, ErrRelayOnly)
}
