package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/entity"
	"github.com/estateline/estateline/internal/metrics"
)

// Forwarder knows how to hand a personal message to the process that owns
// the entity store and message log.
type Forwarder interface {
	// RecordPersonal asks the persistence process to record the message.
	// id correlates the request in both processes' logs.
	RecordPersonal(id string, msg entity.PersonalMessage) error
}

// forwardTimeout bounds the synchronous call to the persistence process. A
// relay that blocks on a slow peer would stall its session loops.
const forwardTimeout = 3 * time.Second

// httpForwarder posts the message to the persistence service's
// send_personal_message endpoint.
type httpForwarder struct {
	base   string
	client *http.Client
	logger zerolog.Logger
}

func NewHTTPForwarder(base string, logger zerolog.Logger) Forwarder {
	return &httpForwarder{
		base:   base,
		client: &http.Client{Timeout: forwardTimeout},
		logger: logger,
	}
}

func (f *httpForwarder) RecordPersonal(id string, msg entity.PersonalMessage) error {
	body, err := json.Marshal(map[string]string{
		"sender":    msg.Sender,
		"receiver":  msg.Receiver,
		"content":   msg.Content,
		"timestamp": msg.Timestamp,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, f.base+"/send_personal_message", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", id)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("persistence service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return fmt.Errorf("persistence service refused message (%d): %s", resp.StatusCode, envelope.Error)
	}
	return nil
}

// remoteMessageService is the relay-topology dispatcher: it forwards every
// personal send over the network and holds no state of its own. History and
// group sends stay with the persistence process.
type remoteMessageService struct {
	forwarder Forwarder
	logger    zerolog.Logger
}

func NewRemoteMessageService(forwarder Forwarder, logger zerolog.Logger) MessageService {
	return &remoteMessageService{
		forwarder: forwarder,
		logger:    logger,
	}
}

func (m *remoteMessageService) SendPersonal(sender, receiver, content, timestamp string) (string, error) {
	id := uuid.New().String()
	msg := entity.PersonalMessage{
		Sender:    sender,
		Receiver:  receiver,
		Content:   content,
		Timestamp: timestamp,
	}
	if err := m.forwarder.RecordPersonal(id, msg); err != nil {
		metrics.RelayForwardFailures.Inc()
		m.logger.Error().Err(err).Str("request_id", id).Msg("forwarding personal message failed")
		return "", err
	}
	m.logger.Info().Str("request_id", id).Str("sender", sender).Str("receiver", receiver).Msg("personal message forwarded")
	return fmt.Sprintf("message sent from %q to %q", sender, receiver), nil
}

func (m *remoteMessageService) SendGroup(string, string, string, string) (string, error) {
	return "", ErrRelayOnly
}

func (m *remoteMessageService) PersonalHistory(string, string) ([]entity.PersonalMessage, error) {
	return nil, ErrRelayOnly
}
